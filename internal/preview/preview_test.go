package preview

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"
)

func TestMeasure(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 0, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 0, 0, 255})
	img.SetRGBA(1, 1, color.RGBA{0, 0, 0, 255})

	s := Measure(img)
	if math.Abs(s.MeanLuma-0.25) > 1e-9 {
		t.Errorf("mean = %f, want 0.25", s.MeanLuma)
	}
	if math.Abs(s.PeakLuma-1) > 1e-9 {
		t.Errorf("peak = %f, want 1", s.PeakLuma)
	}
	if s.LitFraction != 0.25 {
		t.Errorf("lit = %f, want 0.25", s.LitFraction)
	}
	if s.StdDevLuma <= 0 {
		t.Errorf("stddev = %f, want > 0", s.StdDevLuma)
	}
}

func TestSweepBrightensWithIntensity(t *testing.T) {
	stats, err := Sweep(context.Background(), SweepOptions{
		Width: 48, Height: 32, Scale: 2, Frames: 2, Duration: 4,
		Intensities: []float64{0, 1},
	})
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if len(stats) != 4 {
		t.Fatalf("got %d rows, want 4", len(stats))
	}
	if stats[0].Time != 0 || stats[1].Time != 2 {
		t.Errorf("times = %v, %v; want 0, 2", stats[0].Time, stats[1].Time)
	}
	for _, s := range stats[:2] {
		if s.MeanLuma != 0 {
			t.Errorf("intensity 0 frame has mean luma %f", s.MeanLuma)
		}
	}
	for _, s := range stats[2:] {
		if s.MeanLuma <= 0 || s.LitFraction <= 0 {
			t.Errorf("intensity 1 frame is dark: %+v", s)
		}
	}
}

func TestSweepRejectsNoFrames(t *testing.T) {
	if _, err := Sweep(context.Background(), SweepOptions{Width: 8, Height: 8, Scale: 1}); err == nil {
		t.Error("expected an error")
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []FrameStats{{Time: 1.5, Intensity: 1, MeanLuma: 0.1}})
	if err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header and one row", len(lines))
	}
	if !strings.HasPrefix(lines[0], "time,intensity,mean_luma") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1.5,1,0.1") {
		t.Errorf("row = %q", lines[1])
	}
}

func TestWritePNGRoundTrip(t *testing.T) {
	img, err := Frame(context.Background(), 16, 12, 1, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v, want %v", decoded.Bounds(), img.Bounds())
	}
	if _, err := Frame(context.Background(), 0, 10, 1, 0, 1); err == nil {
		t.Error("expected an error for an empty frame")
	}
}
