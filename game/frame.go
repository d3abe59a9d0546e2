package game

// Bounds is the visible arena, centred on the origin
type Bounds struct {
	Width  float64
	Height float64
}

// HalfWidth returns the distance from the centre to the left/right edge
func (b Bounds) HalfWidth() float64 {
	return b.Width / 2
}

// HalfHeight returns the distance from the centre to the top/bottom edge
func (b Bounds) HalfHeight() float64 {
	return b.Height / 2
}

// FrameContext is threaded through every system in a frame. It replaces
// ambient globals: the time step, arena bounds, derived input and the event
// log all arrive here.
type FrameContext struct {
	Frame uint64
	// DT is the elapsed time in seconds; non-negative and finite
	DT     float64
	Arena  Bounds
	Input  InputState
	Events *EventLog
	// MatchOver is set once the player ship has been destroyed or the
	// opposition wiped out. Player-dependent systems skip instead of failing.
	MatchOver bool

	// DespawnDistance is the per-axis limit beyond which projectiles expire
	DespawnDistance float64
	ShipDepth       float64
	ProjectileDepth float64
}

// System is one pass of the frame pipeline
type System interface {
	Name() string
	Update(ctx *FrameContext) error
}
