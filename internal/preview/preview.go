// Package preview renders the ember field offline and summarises frames, for
// tuning the look without opening a window.
package preview

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"

	"emberglow/internal/noisefield"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// litThreshold is the luma above which a pixel counts as lit.
const litThreshold = 0.05

// FrameStats summarises the luminance of one rendered frame.
type FrameStats struct {
	Time        float64 `csv:"time"`
	Intensity   float64 `csv:"intensity"`
	MeanLuma    float64 `csv:"mean_luma"`
	StdDevLuma  float64 `csv:"stddev_luma"`
	PeakLuma    float64 `csv:"peak_luma"`
	LitFraction float64 `csv:"lit_fraction"`
}

// Measure computes luminance statistics (Rec. 709 weights, 0..1) of img.
func Measure(img *image.RGBA) FrameStats {
	b := img.Bounds()
	luma := make([]float64, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			l := (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255
			luma = append(luma, l)
		}
	}
	if len(luma) == 0 {
		return FrameStats{}
	}

	mean, std := stat.MeanStdDev(luma, nil)
	lit := 0
	for _, l := range luma {
		if l > litThreshold {
			lit++
		}
	}
	return FrameStats{
		MeanLuma:    mean,
		StdDevLuma:  std,
		PeakLuma:    floats.Max(luma),
		LitFraction: float64(lit) / float64(len(luma)),
	}
}

// Frame renders a single frame of the given size.
func Frame(ctx context.Context, width, height, scale int, elapsed, intensity float64) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("frame size %dx%d must be positive", width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if err := noisefield.RenderScaled(ctx, img, float32(elapsed), float32(intensity), scale); err != nil {
		return nil, err
	}
	return img, nil
}

// SweepOptions describes a grid of frames over time and intensity.
type SweepOptions struct {
	Width, Height int
	Scale         int
	Frames        int
	Duration      float64
	Intensities   []float64
}

// Sweep renders Frames evenly spaced instants in [0, Duration) for every
// intensity and measures each frame.
func Sweep(ctx context.Context, opts SweepOptions) ([]FrameStats, error) {
	if opts.Frames <= 0 {
		return nil, fmt.Errorf("sweep needs at least one frame, got %d", opts.Frames)
	}
	out := make([]FrameStats, 0, opts.Frames*len(opts.Intensities))
	for _, intensity := range opts.Intensities {
		for i := 0; i < opts.Frames; i++ {
			t := opts.Duration * float64(i) / float64(opts.Frames)
			img, err := Frame(ctx, opts.Width, opts.Height, opts.Scale, t, intensity)
			if err != nil {
				return nil, fmt.Errorf("frame t=%.2f intensity=%.2f: %w", t, intensity, err)
			}
			s := Measure(img)
			s.Time, s.Intensity = t, intensity
			out = append(out, s)
		}
	}
	return out, nil
}

// WriteCSV writes stats with a header row.
func WriteCSV(w io.Writer, stats []FrameStats) error {
	if err := gocsv.Marshal(stats, w); err != nil {
		return fmt.Errorf("write stats csv: %w", err)
	}
	return nil
}

// WritePNG encodes img.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
