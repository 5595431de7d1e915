package component

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/squashjump/common"
)

// MorphPhase is the half of a two-phase morph currently running.
type MorphPhase int

const (
	PhaseToTarget MorphPhase = iota
	PhaseToRest
)

func (p MorphPhase) String() string {
	if p == PhaseToRest {
		return "to_rest"
	}
	return "to_target"
}

const morphDoneThreshold = 0.99

// SquashStretchConfig holds the scale limits and rates used by the animator.
type SquashStretchConfig struct {
	MinXScale    float64
	MaxXScale    float64
	MinYScale    float64
	MaxYScale    float64
	ShotMinScale float64

	JumpRate  float64
	LandRate  float64
	BlendRate float64

	// MoveBlendFloor is the speed below which moving produces no stretch.
	MoveBlendFloor float64
}

func DefaultSquashStretchConfig() SquashStretchConfig {
	return SquashStretchConfig{
		MinXScale:      0.8,
		MaxXScale:      1.2,
		MinYScale:      0.8,
		MaxYScale:      1.2,
		ShotMinScale:   0.5,
		JumpRate:       1.5,
		LandRate:       7,
		BlendRate:      7,
		MoveBlendFloor: 100,
	}
}

var neutralScale = cp.Vector{X: 1, Y: 1}

// SquashStretch animates a 2D visual scale. Discrete triggers (jump, land,
// forced squish) run a two-phase morph out to a target and back to (1,1);
// continuous blends ease the scale toward a velocity-derived target only
// while no discrete morph is in flight.
type SquashStretch struct {
	cfg SquashStretchConfig

	scale    cp.Vector
	target   cp.Vector
	rate     float64
	progress float64
	morphing bool
	phase    MorphPhase
	// forced holds a force-squish pose until CompleteForceSquish.
	forced bool
}

func NewSquashStretch(cfg SquashStretchConfig) *SquashStretch {
	return &SquashStretch{
		cfg:    cfg,
		scale:  neutralScale,
		target: neutralScale,
	}
}

// SetConfig swaps tuning values without disturbing the current pose.
func (s *SquashStretch) SetConfig(cfg SquashStretchConfig) {
	s.cfg = cfg
}

func (s *SquashStretch) Scale() cp.Vector            { return s.scale }
func (s *SquashStretch) Target() cp.Vector           { return s.target }
func (s *SquashStretch) Morphing() bool              { return s.morphing }
func (s *SquashStretch) Phase() MorphPhase           { return s.phase }
func (s *SquashStretch) Progress() float64           { return s.progress }
func (s *SquashStretch) Forced() bool                { return s.forced }
func (s *SquashStretch) Busy() bool                  { return s.morphing || s.forced }
func (s *SquashStretch) Config() SquashStretchConfig { return s.cfg }

// Reset returns to the neutral pose with nothing in flight.
func (s *SquashStretch) Reset() {
	s.scale = neutralScale
	s.target = neutralScale
	s.morphing = false
	s.forced = false
	s.progress = 0
	s.phase = PhaseToTarget
}

func (s *SquashStretch) TriggerJump() {
	s.startMorph(cp.Vector{X: s.cfg.MinXScale, Y: s.cfg.MaxYScale}, s.cfg.JumpRate)
}

func (s *SquashStretch) TriggerLand() {
	s.startMorph(cp.Vector{X: s.cfg.MaxXScale, Y: s.cfg.MinYScale}, s.cfg.LandRate)
}

// TriggerForceSquish snaps the scale to a squish derived from the aim axis
// components. A full-magnitude component squishes that axis to ShotMinScale.
func (s *SquashStretch) TriggerForceSquish(axisX, axisY float64) {
	ax := common.Clamp(math.Abs(axisX), 0, 1)
	ay := common.Clamp(math.Abs(axisY), 0, 1)
	s.scale = cp.Vector{
		X: common.MapRange(ax, 0, 1, 1, s.cfg.ShotMinScale),
		Y: common.MapRange(ay, 0, 1, 1, s.cfg.ShotMinScale),
	}
	s.morphing = false
	s.forced = true
	s.progress = 0
}

// CompleteForceSquish releases a forced pose by morphing back to neutral at
// the landing rate.
func (s *SquashStretch) CompleteForceSquish() {
	s.forced = false
	s.morphing = true
	s.phase = PhaseToRest
	s.progress = 0
	s.rate = s.cfg.LandRate
	s.target = neutralScale
}

func (s *SquashStretch) BlendFalling(velocity, maxVelocity, dt float64) {
	if s.Busy() || maxVelocity <= 0 {
		return
	}
	v := common.Clamp(velocity, 0, maxVelocity)
	x := common.MapRange(v, 0, maxVelocity, 1, s.cfg.MinXScale)
	y := common.MapRange(v, 0, maxVelocity, 1, s.cfg.MaxYScale)
	s.ease(cp.Vector{X: x, Y: y}, dt)
}

func (s *SquashStretch) BlendMoving(speed, maxSpeed, dt float64) {
	floor := s.cfg.MoveBlendFloor
	if s.Busy() || maxSpeed <= floor {
		return
	}
	v := common.Clamp(speed, floor, maxSpeed)
	x := common.MapRange(v, floor, maxSpeed, 1, s.cfg.MaxXScale)
	y := common.MapRange(v, floor, maxSpeed, 1, s.cfg.MinYScale)
	s.ease(cp.Vector{X: x, Y: y}, dt)
}

// Tick advances an in-flight morph.
func (s *SquashStretch) Tick(dt float64) {
	if !s.morphing || dt <= 0 {
		return
	}

	s.scale = s.scale.Lerp(s.target, s.progress)
	s.progress += s.rate * dt
	if s.progress < morphDoneThreshold {
		return
	}

	if s.phase == PhaseToTarget {
		s.phase = PhaseToRest
		s.progress = 0
		s.target = neutralScale
		return
	}

	s.morphing = false
	s.progress = 0
	s.scale = neutralScale
}

func (s *SquashStretch) startMorph(target cp.Vector, rate float64) {
	s.target = target
	s.rate = rate
	s.progress = 0
	s.phase = PhaseToTarget
	s.morphing = true
	s.forced = false
}

func (s *SquashStretch) ease(target cp.Vector, dt float64) {
	if dt <= 0 {
		return
	}
	t := common.Clamp(s.cfg.BlendRate*dt, 0, 1)
	s.scale = cp.Vector{
		X: common.Lerp(s.scale.X, target.X, t),
		Y: common.Lerp(s.scale.Y, target.Y, t),
	}
}
