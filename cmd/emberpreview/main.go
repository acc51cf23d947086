// Renders the ember background on the CPU to a PNG, and optionally a CSV of
// luminance statistics over a time/intensity sweep.
//
// Usage: go run ./cmd/emberpreview -out ember.png -stats sweep.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"emberglow/internal/config"
	"emberglow/internal/preview"

	"github.com/xlab/closer"
)

func main() {
	defer closer.Close()

	configPath := flag.String("config", "", "Path to a YAML config file (defaults are embedded)")
	outPath := flag.String("out", "ember.png", "Output PNG path")
	statsPath := flag.String("stats", "", "Optional CSV path for a sweep of frame statistics")
	intensities := flag.String("intensities", "0.25,0.5,1", "Comma separated intensities for the sweep")
	width := flag.Int("width", 0, "Render width (0 = config)")
	height := flag.Int("height", 0, "Render height (0 = config)")
	at := flag.Float64("time", -1, "Elapsed seconds to render (<0 = config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		closer.Fatalln(err)
	}
	p := cfg.Preview
	if *width > 0 {
		p.Width = *width
	}
	if *height > 0 {
		p.Height = *height
	}
	if *at >= 0 {
		p.Time = *at
	}

	// closer handles SIGINT: it runs the bound cleanup and exits.
	ctx := context.Background()
	partial := &partialFiles{paths: map[string]bool{}}
	closer.Bind(partial.removeAll)

	img, err := preview.Frame(ctx, p.Width, p.Height, p.Scale, p.Time, p.Intensity)
	if err != nil {
		closer.Fatalln(err)
	}
	if err := writeFile(*outPath, partial, func(f *os.File) error { return preview.WritePNG(f, img) }); err != nil {
		closer.Fatalln(err)
	}
	fmt.Printf("Rendered %s (%dx%d, t=%.2fs, intensity=%.2f)\n", *outPath, p.Width, p.Height, p.Time, p.Intensity)

	if *statsPath == "" {
		return
	}
	levels, err := parseIntensities(*intensities)
	if err != nil {
		closer.Fatalln(err)
	}
	stats, err := preview.Sweep(ctx, preview.SweepOptions{
		Width:       p.Width,
		Height:      p.Height,
		Scale:       p.Scale,
		Frames:      p.SweepFrames,
		Duration:    p.SweepDuration,
		Intensities: levels,
	})
	if err != nil {
		closer.Fatalln(err)
	}
	if err := writeFile(*statsPath, partial, func(f *os.File) error { return preview.WriteCSV(f, stats) }); err != nil {
		closer.Fatalln(err)
	}
	fmt.Printf("Wrote %d frame statistics to %s\n", len(stats), *statsPath)
}

// partialFiles tracks outputs that are still being written.
type partialFiles struct {
	mu    sync.Mutex
	paths map[string]bool
}

func (p *partialFiles) set(path string, writing bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if writing {
		p.paths[path] = true
	} else {
		delete(p.paths, path)
	}
}

func (p *partialFiles) removeAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for path := range p.paths {
		os.Remove(path)
	}
}

func writeFile(path string, partial *partialFiles, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	partial.set(path, true)
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	partial.set(path, false)
	return nil
}

func parseIntensities(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("intensity %q: %w", part, err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no intensities given")
	}
	return out, nil
}
