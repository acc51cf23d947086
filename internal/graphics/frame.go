package graphics

// FrameHandle identifies a pending frame callback.
type FrameHandle uint64

// NoFrame is the handle of "nothing scheduled".
const NoFrame FrameHandle = 0

// Scheduler runs callbacks in step with the display refresh, the way a
// browser's requestAnimationFrame does. Each requested callback runs at most
// once, on the thread that owns the graphics context.
type Scheduler interface {
	RequestFrame(fn func()) FrameHandle
	// CancelFrame drops a pending callback. Unknown or already-run handles
	// are ignored.
	CancelFrame(h FrameHandle)
}
