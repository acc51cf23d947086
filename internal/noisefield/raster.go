package noisefield

import (
	"context"
	"fmt"
	"image"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// rowsPerBand is the unit of work handed to one goroutine.
const rowsPerBand = 16

// Rasterize evaluates the field for every pixel of dst. Pixels are sampled at
// their centres with y flipped so row 0 is the top of the image, matching what
// glReadPixels followed by a vertical flip would give. Colors are clamped to
// [0,1] before quantising, as the display pipeline does.
func Rasterize(ctx context.Context, dst *image.RGBA, elapsed, intensity float32) error {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	aspect := float32(w) / float32(h)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for y0 := 0; y0 < h; y0 += rowsPerBand {
		y1 := min(y0+rowsPerBand, h)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for y := y0; y < y1; y++ {
				cy := 1 - (float32(y)+0.5)/float32(h)
				row := dst.Pix[dst.PixOffset(b.Min.X, b.Min.Y+y):]
				for x := 0; x < w; x++ {
					cx := (float32(x) + 0.5) / float32(w)
					c := Evaluate(mgl32.Vec2{cx, cy}, aspect, elapsed, intensity)
					i := x * 4
					row[i] = quantize(c[0])
					row[i+1] = quantize(c[1])
					row[i+2] = quantize(c[2])
					row[i+3] = 0xff
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// RenderScaled rasterizes at 1/factor of dst's size and upscales into dst.
// The field is smooth enough that factors of 2-4 are hard to tell apart from
// a full-resolution render.
func RenderScaled(ctx context.Context, dst xdraw.Image, elapsed, intensity float32, factor int) error {
	if factor < 1 {
		return fmt.Errorf("scale factor %d must be at least 1", factor)
	}
	b := dst.Bounds()
	sw := max(1, (b.Dx()+factor-1)/factor)
	sh := max(1, (b.Dy()+factor-1)/factor)

	src := image.NewRGBA(image.Rect(0, 0, sw, sh))
	if err := Rasterize(ctx, src, elapsed, intensity); err != nil {
		return fmt.Errorf("rasterize %dx%d: %w", sw, sh, err)
	}
	xdraw.CatmullRom.Scale(dst, b, src, src.Bounds(), xdraw.Src, nil)
	return nil
}

func quantize(v float32) uint8 {
	return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
}
