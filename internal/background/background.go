// Package background drives the animated ember background: it owns the
// graphics context of a surface, builds the noise field program and runs the
// refresh-synchronised render loop.
//
// A RenderSurface never returns errors or panics to its caller. When the
// context or program cannot be built it logs why and turns inert.
package background

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"emberglow/internal/graphics"
	"emberglow/internal/noisefield"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrNoContext reports a surface that could not provide a graphics context.
var ErrNoContext = errors.New("graphics context unavailable")

// Surface is the drawable target a RenderSurface renders into.
type Surface interface {
	// Context acquires the graphics context. It is called once.
	Context() (graphics.Device, error)
	// DisplaySize is the size the surface is shown at, in pixels.
	DisplaySize() (width, height int)
	// OnResize registers fn to run when the display size changes and returns
	// a function that unregisters it.
	OnResize(fn func()) (detach func())
}

type uniforms struct {
	time       int32
	resolution int32
	intensity  int32
}

// RenderSurface renders the noise field into a Surface. All methods must be
// called from the goroutine that owns the graphics context; the scheduler
// runs frame callbacks there too.
type RenderSurface struct {
	surface Surface
	sched   graphics.Scheduler
	log     *slog.Logger
	now     func() time.Time

	state        State
	dev          graphics.Device
	program      uint32
	vao          uint32
	uniforms     uniforms
	detachResize func()

	// backing buffer size last pushed to the viewport
	width, height int

	startTime       time.Time
	scrollIntensity float32
	frame           graphics.FrameHandle
}

// Option configures a RenderSurface.
type Option func(*RenderSurface)

// WithLogger sets the diagnostic logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *RenderSurface) { r.log = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *RenderSurface) { r.now = now }
}

// New builds a RenderSurface for surface and initializes it: the context is
// acquired, the program compiled and linked, uniforms resolved, the resize
// listener registered and the viewport synced to the surface. Check State to
// see whether initialization succeeded; a Failed surface is safe to use and
// does nothing.
func New(surface Surface, sched graphics.Scheduler, opts ...Option) *RenderSurface {
	r := &RenderSurface{
		surface: surface,
		sched:   sched,
		log:     slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = slog.Default()
	}
	r.log = r.log.With("component", "background")
	r.initialize()
	return r
}

func (r *RenderSurface) initialize() {
	if r.surface == nil || r.sched == nil {
		r.fail(fmt.Errorf("%w: no surface or scheduler", ErrNoContext))
		return
	}

	dev, err := r.surface.Context()
	if err == nil && dev == nil {
		err = errors.New("surface returned no device")
	}
	if err != nil {
		r.fail(fmt.Errorf("%w: %w", ErrNoContext, err))
		return
	}

	program, err := graphics.CompileProgram(dev, noisefield.VertexShader, noisefield.FragmentShader)
	if err != nil {
		dev.Release()
		r.fail(fmt.Errorf("building noise field program: %w", err))
		return
	}
	r.log.Debug("noise field program linked", "program", program)

	r.dev = dev
	r.program = program
	r.vao = dev.CreateVertexArray()
	r.uniforms = uniforms{
		time:       r.uniformLocation(noisefield.UniformTime),
		resolution: r.uniformLocation(noisefield.UniformResolution),
		intensity:  r.uniformLocation(noisefield.UniformScrollIntensity),
	}
	r.startTime = r.now()
	r.state = Ready

	r.detachResize = r.surface.OnResize(r.Resize)
	r.syncSize()

	r.log.Info("background renderer initialized", "width", r.width, "height", r.height)
}

// uniformLocation resolves name, warning when the program does not expose it.
// Rendering carries on either way; the driver may have optimised it out.
func (r *RenderSurface) uniformLocation(name string) int32 {
	loc := r.dev.UniformLocation(r.program, name)
	if loc == graphics.NoUniform {
		r.log.Warn("uniform not found in noise field program", "uniform", name)
	}
	return loc
}

func (r *RenderSurface) fail(err error) {
	r.state = Failed
	r.log.Error("background renderer disabled", "err", err)
}

// syncSize matches the backing buffer to the display size and reports
// whether anything changed.
func (r *RenderSurface) syncSize() bool {
	w, h := r.surface.DisplaySize()
	if w == r.width && h == r.height {
		return false
	}
	r.width, r.height = w, h
	r.dev.Viewport(0, 0, int32(w), int32(h))
	return true
}

// Resize resyncs the backing buffer with the display size. While the loop
// is not running a changed size triggers one frame so the surface does not
// show a stretched image.
func (r *RenderSurface) Resize() {
	if !r.state.drawable() {
		return
	}
	if !r.syncSize() {
		return
	}
	r.log.Debug("surface resized", "width", r.width, "height", r.height)
	if r.state != Rendering {
		r.RenderFrame()
	}
}

// RenderFrame draws one frame with the current time, size and intensity.
func (r *RenderSurface) RenderFrame() {
	if !r.state.drawable() || r.width <= 0 || r.height <= 0 {
		return
	}
	elapsed := float32(r.now().Sub(r.startTime).Seconds())

	r.dev.UseProgram(r.program)
	r.dev.BindVertexArray(r.vao)
	r.dev.Uniform1f(r.uniforms.time, elapsed)
	r.dev.Uniform2f(r.uniforms.resolution, float32(r.width), float32(r.height))
	r.dev.Uniform1f(r.uniforms.intensity, r.scrollIntensity)
	r.dev.DrawTriangles(0, noisefield.QuadVertices)
}

// StartRendering restarts the clock and begins rendering one frame per
// display refresh. It does nothing when already rendering or inert.
func (r *RenderSurface) StartRendering() {
	if r.state != Ready && r.state != Paused {
		return
	}
	r.startTime = r.now()
	r.state = Rendering
	r.requestFrame()
	r.log.Debug("rendering started")
}

// StopRendering cancels the pending frame. Safe to call at any time.
func (r *RenderSurface) StopRendering() {
	if r.frame != graphics.NoFrame {
		r.sched.CancelFrame(r.frame)
		r.frame = graphics.NoFrame
	}
	if r.state == Rendering {
		r.state = Paused
		r.log.Debug("rendering stopped")
	}
}

// requestFrame keeps at most one callback outstanding.
func (r *RenderSurface) requestFrame() {
	if r.frame != graphics.NoFrame {
		return
	}
	r.frame = r.sched.RequestFrame(r.onFrame)
}

func (r *RenderSurface) onFrame() {
	r.frame = graphics.NoFrame
	if r.state != Rendering {
		return
	}
	r.RenderFrame()
	r.requestFrame()
}

// SetScrollIntensity stores v clamped to [0,1]; NaN counts as 0. The value
// is picked up by the next frame drawn. Failed and disposed surfaces ignore it.
func (r *RenderSurface) SetScrollIntensity(v float32) {
	if r.state == Failed || r.state == Disposed {
		return
	}
	if math.IsNaN(float64(v)) {
		v = 0
	}
	r.scrollIntensity = mgl32.Clamp(v, 0, 1)
}

// ScrollIntensity returns the stored, clamped intensity.
func (r *RenderSurface) ScrollIntensity() float32 {
	return r.scrollIntensity
}

// State returns the lifecycle state.
func (r *RenderSurface) State() State {
	return r.state
}

// FramePending reports whether a frame callback is outstanding.
func (r *RenderSurface) FramePending() bool {
	return r.frame != graphics.NoFrame
}

// Size returns the backing buffer size.
func (r *RenderSurface) Size() (width, height int) {
	return r.width, r.height
}

// Dispose stops rendering, deletes the program, releases the context and
// detaches the resize listener. Further calls do nothing.
func (r *RenderSurface) Dispose() {
	if r.state == Disposed {
		return
	}
	r.StopRendering()
	if r.detachResize != nil {
		r.detachResize()
		r.detachResize = nil
	}
	if r.dev != nil {
		r.dev.DeleteVertexArray(r.vao)
		r.dev.DeleteProgram(r.program)
		r.dev.Release()
		r.dev = nil
		r.program, r.vao = 0, 0
	}
	r.state = Disposed
	r.log.Debug("background renderer disposed")
}
