package obj

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/squashjump/common"
)

// EffectKind is a category of cosmetic particle effect.
type EffectKind int

const (
	EffectLandDust EffectKind = iota
	EffectDash
	EffectStarSpiral
	EffectBulletTrail
	effectKindCount
)

func (k EffectKind) String() string {
	switch k {
	case EffectLandDust:
		return "land_dust"
	case EffectDash:
		return "dash"
	case EffectStarSpiral:
		return "star_spiral"
	case EffectBulletTrail:
		return "bullet_trail"
	}
	return "unknown"
}

// ParseEffectKind maps a name returned by EffectKind.String back to its kind.
func ParseEffectKind(name string) (EffectKind, bool) {
	for k := EffectKind(0); k < effectKindCount; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// EffectSink plays fire-and-forget effects at a world position. Duration is
// in seconds.
type EffectSink interface {
	PlayEffect(kind EffectKind, duration, x, y float64)
}

// Shaker shakes the view. Intensity is a fraction of the view size.
type Shaker interface {
	Shake(durationMs, intensity float64)
}

// Flasher briefly flashes the view.
type Flasher interface {
	Flash(durationMs float64)
}

// Body is the slice of a physics body the movement controller drives.
type Body interface {
	Velocity() cp.Vector
	SetVelocity(x, y float64)
	SetAccelerationX(ax float64)
	SetAccelerationY(ay float64)
	SetMaxVelocity(x, y float64)
	Center() cp.Vector
}

// ForcePoser is the part of the squash-and-stretch animator driven by
// abilities.
type ForcePoser interface {
	TriggerJump()
	TriggerForceSquish(axisX, axisY float64)
	CompleteForceSquish()
}

// Lander receives the landing pose trigger.
type Lander interface {
	TriggerLand()
}

// JumpNotifier is told when a jump leaves the ground.
type JumpNotifier interface {
	Jumped()
}

// ProjectileLauncher fires a projectile from origin along a unit direction.
type ProjectileLauncher interface {
	Spawn(origin, direction cp.Vector, playerOwned bool) *Projectile
}

// Cue is a gameplay moment that has a sound.
type Cue int

const (
	CueJump Cue = iota
	CueLand
	CueDash
	CueShoot
)

func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueLand:
		return "land"
	case CueDash:
		return "dash"
	case CueShoot:
		return "shoot"
	}
	return "unknown"
}

// CuePlayer plays the sound for a cue.
type CuePlayer interface {
	PlayCue(c Cue)
}

func playCue(p CuePlayer, c Cue) {
	if p != nil {
		p.PlayCue(c)
	}
}

// ShakeSpec is a camera shake preset.
type ShakeSpec struct {
	DurationMs float64
	Intensity  float64
}

func (s ShakeSpec) apply(sh Shaker) {
	if sh == nil || s.DurationMs <= 0 {
		return
	}
	sh.Shake(s.DurationMs, s.Intensity)
}

type nopEffects struct{}

func (nopEffects) PlayEffect(EffectKind, float64, float64, float64) {}

const minAimLength = 1e-6

// normalizeOr returns v scaled to unit length, or fallback when v is too
// short to carry a direction.
func normalizeOr(v, fallback cp.Vector) cp.Vector {
	l := v.Length()
	if !common.Finite(l) || l < minAimLength {
		return fallback
	}
	return v.Mult(1 / l)
}
