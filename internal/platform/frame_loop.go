package platform

import (
	"log/slog"
	"time"

	"emberglow/internal/graphics"
	"emberglow/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	// idleWait bounds how long the loop blocks on events with nothing to draw.
	idleWait = 0.25 // seconds
	// slowFrame is the frame time above which the loop logs a breakdown.
	slowFrame = 50 * time.Millisecond
)

type frameRequest struct {
	handle graphics.FrameHandle
	fn     func()
}

// FrameLoop schedules frame callbacks on the window's refresh. Callbacks
// requested while a batch runs go to the next refresh, so a self-rescheduling
// callback runs once per refresh. It implements graphics.Scheduler.
type FrameLoop struct {
	window *Window
	pacer  *Pacer
	log    *slog.Logger

	next      graphics.FrameHandle
	pending   []frameRequest
	running   []frameRequest
	presented uint64
}

var _ graphics.Scheduler = (*FrameLoop)(nil)

// NewFrameLoop returns a loop for w. pacer may be nil when vsync paces
// buffer swaps.
func NewFrameLoop(w *Window, pacer *Pacer, log *slog.Logger) *FrameLoop {
	if log == nil {
		log = slog.Default()
	}
	return &FrameLoop{window: w, pacer: pacer, log: log.With("component", "frameloop")}
}

// RequestFrame queues fn for the next refresh.
func (l *FrameLoop) RequestFrame(fn func()) graphics.FrameHandle {
	l.next++
	l.pending = append(l.pending, frameRequest{handle: l.next, fn: fn})
	return l.next
}

// CancelFrame drops a queued callback.
func (l *FrameLoop) CancelFrame(h graphics.FrameHandle) {
	for i, r := range l.pending {
		if r.handle == h {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			return
		}
	}
	for i := range l.running {
		if l.running[i].handle == h {
			l.running[i].fn = nil
			return
		}
	}
}

// Pending returns the number of queued callbacks.
func (l *FrameLoop) Pending() int {
	return len(l.pending)
}

// dispatch runs the callbacks queued before the call, in request order.
// A callback cancelled by an earlier one in the same batch does not run.
func (l *FrameLoop) dispatch() int {
	l.running, l.pending = l.pending, nil
	ran := 0
	for i := range l.running {
		fn := l.running[i].fn
		if fn == nil {
			continue
		}
		l.running[i].fn = nil
		fn()
		ran++
	}
	l.running = nil
	return ran
}

// Run pumps events and frames until the window is asked to close. It must
// run on the main thread.
func (l *FrameLoop) Run() {
	for !l.window.ShouldClose() {
		profiling.ResetFrame()
		start := time.Now()

		if len(l.pending) == 0 {
			// Nothing animating: block until input or a resize arrives.
			func() { defer profiling.Track("glfw.WaitEvents")(); glfw.WaitEventsTimeout(idleWait) }()
			if l.pacer != nil {
				l.pacer.Reset()
			}
		} else {
			func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()
		}

		func() { defer profiling.Track("frame.Dispatch")(); l.dispatch() }()

		if l.present() && l.pacer != nil {
			l.pacer.Wait()
		}

		if d := time.Since(start); d > slowFrame && len(l.pending) > 0 {
			l.log.Warn("slow frame", "duration", d, "top", profiling.TopN(3))
		}
	}
}

// present swaps buffers when something was drawn since the last swap.
func (l *FrameLoop) present() bool {
	draws, ok := l.window.drawCount()
	if !ok || draws == l.presented {
		return false
	}
	l.presented = draws
	defer profiling.Track("glfw.SwapBuffers")()
	l.window.swapBuffers()
	return true
}
