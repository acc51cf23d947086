package graphics_test

import (
	"errors"
	"strings"
	"testing"

	"emberglow/internal/graphics"
	"emberglow/internal/graphics/graphicstest"
)

func TestCompileProgram(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(d *graphicstest.Device)
		wantErr error
		wantLog string
	}{
		{
			name: "success",
		},
		{
			name:    "vertex compile failure",
			setup:   func(d *graphicstest.Device) { d.FailCompile[graphics.VertexStage] = true },
			wantErr: graphics.ErrCompile,
			wantLog: "vertex",
		},
		{
			name:    "fragment compile failure",
			setup:   func(d *graphicstest.Device) { d.FailCompile[graphics.FragmentStage] = true },
			wantErr: graphics.ErrCompile,
			wantLog: "fragment",
		},
		{
			name:    "link failure",
			setup:   func(d *graphicstest.Device) { d.FailLink = true },
			wantErr: graphics.ErrLink,
			wantLog: "simulated link failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := graphicstest.NewDevice()
			if tt.setup != nil {
				tt.setup(dev)
			}

			program, err := graphics.CompileProgram(dev, "vs", "fs")
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if program == 0 {
					t.Fatal("expected a program name")
				}
				// Only the program survives; both shaders are deleted after linking.
				if live := dev.Live(); live != 1 {
					t.Errorf("live objects = %d, want 1", live)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantLog) {
				t.Errorf("error %q does not mention %q", err, tt.wantLog)
			}
			if program != 0 {
				t.Errorf("program = %d, want 0", program)
			}
			if live := dev.Live(); live != 0 {
				t.Errorf("%d objects leaked after failure", live)
			}
		})
	}
}

func TestShaderStageString(t *testing.T) {
	if graphics.VertexStage.String() != "vertex" || graphics.FragmentStage.String() != "fragment" {
		t.Error("unexpected stage names")
	}
	if graphics.ShaderStage(9).String() != "unknown" {
		t.Error("out of range stage should be unknown")
	}
}
