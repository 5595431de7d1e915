package obj

import "math"

// GroundState is the debounced grounded state of the player.
type GroundState int

const (
	GroundUnknown GroundState = iota
	GroundAirborne
	GroundGrounded
)

func (s GroundState) String() string {
	switch s {
	case GroundAirborne:
		return "airborne"
	case GroundGrounded:
		return "grounded"
	}
	return "unknown"
}

// GroundHooks are invoked on debounced landings. Any field may be nil.
type GroundHooks struct {
	Lander   Lander
	OnLanded func()
}

// GroundDebouncer turns raw, possibly repeated ground-contact signals from
// the physics step into at most one landing per real transition.
//
// Signal may be called any number of times during a frame. Reconcile runs
// once at the end of the frame, compares what was observed against the
// confirmed state and fires hooks on change. Signals must be re-asserted
// every frame they remain true.
//
// Losing contact without a jump only counts as a takeoff once no signal has
// arrived for the takeoff grace. A rebound off the ground that lands again
// inside the grace stays one landing.
type GroundDebouncer struct {
	hooks GroundHooks

	state   GroundState
	pending bool
	// ignore drops signals between a jump and the next Reconcile; the body
	// still overlaps the ground during the sub-steps right after takeoff.
	ignore bool

	grace    float64
	airTime  float64
	landings int
}

func NewGroundDebouncer(hooks GroundHooks) *GroundDebouncer {
	return &GroundDebouncer{hooks: hooks}
}

func (g *GroundDebouncer) State() GroundState { return g.state }
func (g *GroundDebouncer) Grounded() bool     { return g.state == GroundGrounded }
func (g *GroundDebouncer) Pending() bool      { return g.pending }

// Landings counts landing transitions fired since construction.
func (g *GroundDebouncer) Landings() int { return g.landings }

// SetTakeoffGrace sets how long, in seconds, a grounded player may go
// without a ground signal before it is considered airborne. Zero makes the
// first frame without a signal a takeoff.
func (g *GroundDebouncer) SetTakeoffGrace(grace float64) { g.grace = math.Max(0, grace) }

func (g *GroundDebouncer) TakeoffGrace() float64 { return g.grace }

// Signal records a ground contact observed during this frame.
func (g *GroundDebouncer) Signal() {
	if g.ignore {
		return
	}
	g.pending = true
}

// Jumped forces the airborne state immediately, ahead of reconciliation.
func (g *GroundDebouncer) Jumped() {
	g.pending = false
	g.ignore = true
	g.airTime = 0
	g.state = GroundAirborne
}

// Reconcile settles this frame's signals into the confirmed state. dt is
// the frame length and only feeds the takeoff grace.
func (g *GroundDebouncer) Reconcile(dt float64) {
	touched := g.pending
	g.pending = false
	g.ignore = false

	switch {
	case touched:
		g.airTime = 0
		if g.state == GroundGrounded {
			return
		}
		g.state = GroundGrounded
		g.landings++
		if g.hooks.Lander != nil {
			g.hooks.Lander.TriggerLand()
		}
		if g.hooks.OnLanded != nil {
			g.hooks.OnLanded()
		}
	case g.state == GroundGrounded:
		g.airTime += math.Max(0, dt)
		if g.airTime >= g.grace {
			g.state = GroundAirborne
			g.airTime = 0
		}
	case g.state == GroundUnknown:
		g.state = GroundAirborne
	}
}
