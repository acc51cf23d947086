package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Errorf("window = %dx%d, want 800x600", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.VSync {
		t.Error("vsync should default to on")
	}
	if cfg.Scroll.FadeDistance <= 0 {
		t.Error("fade distance default missing")
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil || level != slog.LevelInfo {
		t.Errorf("level = %v, %v; want info", level, err)
	}
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	path := writeConfig(t, "window:\n  width: 1920\nlog:\n  level: debug\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.Width != 1920 {
		t.Errorf("width = %d, want 1920", cfg.Window.Width)
	}
	if cfg.Window.Height != 600 {
		t.Errorf("height = %d, want default 600", cfg.Window.Height)
	}
	if cfg.Window.Title != "emberglow" {
		t.Errorf("title = %q, want default", cfg.Window.Title)
	}
	if level, _ := cfg.Log.SlogLevel(); level != slog.LevelDebug {
		t.Errorf("level = %v, want debug", level)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "window: [\n"},
		{"zero width", "window:\n  width: 0\n"},
		{"zero fade", "scroll:\n  fade_distance: 0\n"},
		{"bad level", "log:\n  level: loud\n"},
		{"bad scale", "preview:\n  scale: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.yaml)); err == nil {
				t.Error("expected an error")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
