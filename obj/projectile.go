package obj

import (
	"math"

	"github.com/jakecoffman/cp"
)

// ProjectileBody is the physics handle behind a projectile.
type ProjectileBody interface {
	SetVelocity(x, y float64)
	SetAngle(angle float64)
	Position() cp.Vector
	// Destroy removes the body from the simulation. It is called exactly once.
	Destroy()
}

// ProjectileFactory creates projectile bodies at a world position.
type ProjectileFactory interface {
	NewProjectileBody(origin cp.Vector, size float64, playerOwned bool) ProjectileBody
}

type ProjectileConfig struct {
	Size          float64
	Lifetime      float64
	LaunchSpeed   float64
	TrailInterval float64
	TrailDuration float64
}

func DefaultProjectileConfig() ProjectileConfig {
	return ProjectileConfig{
		Size:          10,
		Lifetime:      3,
		LaunchSpeed:   500,
		TrailInterval: 0.03,
		TrailDuration: 0.05,
	}
}

// Projectile is a fired shot owned by a ProjectileSet.
type Projectile struct {
	body        ProjectileBody
	remaining   float64
	direction   cp.Vector
	rotation    float64
	playerOwned bool
	trailTimer  float64
}

func (p *Projectile) Remaining() float64   { return p.remaining }
func (p *Projectile) Direction() cp.Vector { return p.direction }
func (p *Projectile) Rotation() float64    { return p.rotation }
func (p *Projectile) PlayerOwned() bool    { return p.playerOwned }
func (p *Projectile) Position() cp.Vector  { return p.body.Position() }

// ProjectileSet owns a collection of live projectiles and reaps them when
// their lifetime runs out.
type ProjectileSet struct {
	cfg     ProjectileConfig
	factory ProjectileFactory
	effects EffectSink
	items   []*Projectile
}

func NewProjectileSet(cfg ProjectileConfig, factory ProjectileFactory, effects EffectSink) *ProjectileSet {
	if effects == nil {
		effects = nopEffects{}
	}
	return &ProjectileSet{cfg: cfg, factory: factory, effects: effects}
}

func (s *ProjectileSet) SetConfig(cfg ProjectileConfig) { s.cfg = cfg }
func (s *ProjectileSet) Config() ProjectileConfig       { return s.cfg }
func (s *ProjectileSet) Len() int                       { return len(s.items) }

// Spawn launches a projectile from origin along direction. A direction too
// short to normalize fires along +X.
func (s *ProjectileSet) Spawn(origin, direction cp.Vector, playerOwned bool) *Projectile {
	if s.factory == nil {
		return nil
	}
	dir := normalizeOr(direction, cp.Vector{X: 1})
	body := s.factory.NewProjectileBody(origin, s.cfg.Size, playerOwned)
	if body == nil {
		return nil
	}

	vel := dir.Mult(s.cfg.LaunchSpeed)
	rotation := math.Atan2(dir.Y, dir.X)
	body.SetVelocity(vel.X, vel.Y)
	body.SetAngle(rotation)

	p := &Projectile{
		body:        body,
		remaining:   s.cfg.Lifetime,
		direction:   dir,
		rotation:    rotation,
		playerOwned: playerOwned,
		trailTimer:  s.cfg.TrailInterval,
	}
	s.items = append(s.items, p)
	return p
}

// Tick ages every projectile by dt and destroys the ones whose lifetime has
// run out. Removal walks backwards so indices stay valid.
func (s *ProjectileSet) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	for i := len(s.items) - 1; i >= 0; i-- {
		p := s.items[i]
		p.remaining -= dt
		if p.remaining <= 0 {
			p.body.Destroy()
			s.items = append(s.items[:i], s.items[i+1:]...)
			continue
		}
		s.trail(p, dt)
	}
}

func (s *ProjectileSet) trail(p *Projectile, dt float64) {
	if s.cfg.TrailInterval <= 0 {
		return
	}
	p.trailTimer -= dt
	if p.trailTimer > 0 {
		return
	}
	for p.trailTimer <= 0 {
		p.trailTimer += s.cfg.TrailInterval
	}
	pos := p.body.Position()
	s.effects.PlayEffect(EffectBulletTrail, s.cfg.TrailDuration, pos.X, pos.Y)
}

// Each calls fn for every live projectile in spawn order.
func (s *ProjectileSet) Each(fn func(p *Projectile)) {
	for _, p := range s.items {
		fn(p)
	}
}

// Clear destroys every projectile.
func (s *ProjectileSet) Clear() {
	for _, p := range s.items {
		p.body.Destroy()
	}
	s.items = nil
}
