package background

// State is the lifecycle position of a RenderSurface.
type State int

const (
	Uninitialized State = iota
	// Ready: program built, loop never started.
	Ready
	// Rendering: the frame loop is live.
	Rendering
	// Paused: the loop was started and then stopped.
	Paused
	// Failed: initialization failed; every operation is a no-op.
	Failed
	// Disposed: resources released; every operation is a no-op.
	Disposed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Rendering:
		return "rendering"
	case Paused:
		return "paused"
	case Failed:
		return "failed"
	case Disposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// drawable reports whether the state holds a linked program.
func (s State) drawable() bool {
	return s == Ready || s == Rendering || s == Paused
}
