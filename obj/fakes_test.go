package obj

import "github.com/jakecoffman/cp"

const frameDt = 1.0 / 60.0

type fakeBody struct {
	vel    cp.Vector
	accel  cp.Vector
	maxVel cp.Vector
	center cp.Vector
}

func (b *fakeBody) Velocity() cp.Vector         { return b.vel }
func (b *fakeBody) SetVelocity(x, y float64)    { b.vel = cp.Vector{X: x, Y: y} }
func (b *fakeBody) SetAccelerationX(ax float64) { b.accel.X = ax }
func (b *fakeBody) SetAccelerationY(ay float64) { b.accel.Y = ay }
func (b *fakeBody) SetMaxVelocity(x, y float64) { b.maxVel = cp.Vector{X: x, Y: y} }
func (b *fakeBody) Center() cp.Vector           { return b.center }

type effectCall struct {
	kind     EffectKind
	duration float64
	x, y     float64
}

type fakeEffects struct {
	calls []effectCall
}

func (e *fakeEffects) PlayEffect(kind EffectKind, duration, x, y float64) {
	e.calls = append(e.calls, effectCall{kind, duration, x, y})
}

func (e *fakeEffects) count(kind EffectKind) int {
	n := 0
	for _, c := range e.calls {
		if c.kind == kind {
			n++
		}
	}
	return n
}

type fakeShaker struct {
	shakes  []ShakeSpec
	flashes []float64
}

func (s *fakeShaker) Shake(durationMs, intensity float64) {
	s.shakes = append(s.shakes, ShakeSpec{DurationMs: durationMs, Intensity: intensity})
}

func (s *fakeShaker) Flash(durationMs float64) { s.flashes = append(s.flashes, durationMs) }

type launch struct {
	origin, direction cp.Vector
	playerOwned       bool
}

type fakeLauncher struct {
	launches []launch
}

func (l *fakeLauncher) Spawn(origin, direction cp.Vector, playerOwned bool) *Projectile {
	l.launches = append(l.launches, launch{origin, direction, playerOwned})
	return nil
}

type fakePoser struct {
	jumps     int
	lands     int
	squishes  []cp.Vector
	completes int
}

func (p *fakePoser) TriggerJump()                      { p.jumps++ }
func (p *fakePoser) TriggerLand()                      { p.lands++ }
func (p *fakePoser) TriggerForceSquish(ax, ay float64) { p.squishes = append(p.squishes, cp.Vector{X: ax, Y: ay}) }
func (p *fakePoser) CompleteForceSquish()              { p.completes++ }

type fakeJumpNotifier struct {
	jumps int
}

func (n *fakeJumpNotifier) Jumped() { n.jumps++ }

type fakeProjectileBody struct {
	pos       cp.Vector
	vel       cp.Vector
	angle     float64
	destroyed int
}

func (b *fakeProjectileBody) SetVelocity(x, y float64) { b.vel = cp.Vector{X: x, Y: y} }
func (b *fakeProjectileBody) SetAngle(angle float64)   { b.angle = angle }
func (b *fakeProjectileBody) Position() cp.Vector      { return b.pos }
func (b *fakeProjectileBody) Destroy()                 { b.destroyed++ }

type fakeFactory struct {
	bodies []*fakeProjectileBody
}

func (f *fakeFactory) NewProjectileBody(origin cp.Vector, size float64, playerOwned bool) ProjectileBody {
	b := &fakeProjectileBody{pos: origin}
	f.bodies = append(f.bodies, b)
	return b
}

type fakeCues struct {
	played []Cue
}

func (c *fakeCues) PlayCue(cue Cue) { c.played = append(c.played, cue) }
