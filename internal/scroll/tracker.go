// Package scroll turns page scrolling into the background's ember intensity.
package scroll

import (
	"emberglow/internal/config"

	"github.com/go-gl/mathgl/mgl64"
)

// IntensitySink receives intensity updates.
type IntensitySink interface {
	SetScrollIntensity(v float32)
}

// Tracker follows the scroll position of a virtual page. The embers are dark
// at the top and reach full strength FadeDistance pixels down.
type Tracker struct {
	cfg            config.ScrollConfig
	viewportHeight float64
	pos            float64
	sink           IntensitySink
}

// New returns a tracker at the top of the page and pushes the initial
// intensity to sink.
func New(cfg config.ScrollConfig, viewportHeight float64, sink IntensitySink) *Tracker {
	t := &Tracker{cfg: cfg, viewportHeight: viewportHeight, sink: sink}
	t.publish()
	return t
}

// Scroll applies wheel notches. Positive values scroll up, as GLFW reports them.
func (t *Tracker) Scroll(notches float64) {
	t.moveTo(t.pos - notches*t.cfg.WheelStep)
}

// Page moves n viewport pages; positive moves down.
func (t *Tracker) Page(n int) {
	t.moveTo(t.pos + float64(n)*t.cfg.PageStep*t.viewportHeight)
}

// Home jumps to the top.
func (t *Tracker) Home() { t.moveTo(0) }

// End jumps to the bottom.
func (t *Tracker) End() { t.moveTo(t.maxScroll()) }

// SetViewportHeight updates the visible height and re-clamps the position.
func (t *Tracker) SetViewportHeight(h float64) {
	t.viewportHeight = max(0, h)
	t.moveTo(t.pos)
}

// Position returns the scroll offset from the top in pixels.
func (t *Tracker) Position() float64 {
	return t.pos
}

// Intensity returns the ember intensity for the current position.
func (t *Tracker) Intensity() float32 {
	return float32(mgl64.Clamp(t.pos/t.cfg.FadeDistance, 0, 1))
}

func (t *Tracker) maxScroll() float64 {
	return max(0, t.cfg.PageHeight-t.viewportHeight)
}

func (t *Tracker) moveTo(pos float64) {
	t.pos = mgl64.Clamp(pos, 0, t.maxScroll())
	t.publish()
}

func (t *Tracker) publish() {
	if t.sink != nil {
		t.sink.SetScrollIntensity(t.Intensity())
	}
}
