package obj

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
)

// EffectStyle describes how one effect kind emits particles. Angles are in
// degrees, 0 pointing right and 90 pointing down.
type EffectStyle struct {
	// Count particles are emitted per burst.
	Count int
	// Interval between bursts while the effect is playing. Zero emits a
	// single burst.
	Interval float64
	Speed    float64
	Angle    float64
	Spread   float64
	// Ring spaces the burst evenly around a full circle instead of picking
	// random angles inside Spread.
	Ring bool
	// Spin rotates every following burst by this many degrees.
	Spin     float64
	Lifetime float64
	Size     float64
	Gravity  float64
	Color    color.RGBA
}

type EffectStyles [effectKindCount]EffectStyle

func DefaultEffectStyles() EffectStyles {
	var s EffectStyles
	s[EffectLandDust] = EffectStyle{
		Count: 10, Speed: 90, Angle: -90, Spread: 150,
		Lifetime: 0.5, Size: 4, Gravity: 240,
		Color: color.RGBA{R: 0xc8, G: 0xb4, B: 0x8c, A: 0xff},
	}
	s[EffectDash] = EffectStyle{
		Count: 3, Interval: 0.02, Speed: 25, Spread: 360,
		Lifetime: 0.3, Size: 6,
		Color: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xc0},
	}
	s[EffectStarSpiral] = EffectStyle{
		Count: 6, Interval: 0.03, Speed: 160, Ring: true, Spin: 17,
		Lifetime: 0.35, Size: 3,
		Color: color.RGBA{R: 0xff, G: 0xf0, B: 0x66, A: 0xff},
	}
	s[EffectBulletTrail] = EffectStyle{
		Count: 1, Speed: 15, Spread: 360,
		Lifetime: 0.2, Size: 3,
		Color: color.RGBA{R: 0xff, G: 0xaa, B: 0x00, A: 0xff},
	}
	return s
}

// Particle is a single point of an effect.
type Particle struct {
	Pos     cp.Vector
	Vel     cp.Vector
	Life    float64
	MaxLife float64
	Size    float64
	Color   color.RGBA
}

// Alpha is the remaining fraction of the particle's life.
func (p Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return math.Max(0, p.Life/p.MaxLife)
}

type effect struct {
	kind  EffectKind
	style EffectStyle
	pos   cp.Vector

	lifeTime  float64
	dead      bool
	deadLeft  float64
	emitTimer float64
	bursts    int

	particles []Particle
}

// DefaultEffectGrace is how long a stopped effect lingers so its particles
// can finish.
const DefaultEffectGrace = 1.0

// EffectManager plays particle effects. An effect emits for its duration,
// stops, and is destroyed Grace seconds later together with whatever
// particles remain.
type EffectManager struct {
	styles  EffectStyles
	grace   float64
	rng     *rand.Rand
	effects []*effect
}

func NewEffectManager(styles EffectStyles, seed uint64) *EffectManager {
	return &EffectManager{
		styles: styles,
		grace:  DefaultEffectGrace,
		rng:    rand.New(rand.NewPCG(seed, seed+1)),
	}
}

func (m *EffectManager) SetStyles(styles EffectStyles) { m.styles = styles }

func (m *EffectManager) SetGrace(grace float64) {
	if grace < 0 {
		grace = 0
	}
	m.grace = grace
}

// Len is the number of effects still alive, including stopped ones in their
// grace period.
func (m *EffectManager) Len() int { return len(m.effects) }

// PlayEffect starts an effect of kind at (x, y) that emits for duration
// seconds. The first burst is emitted immediately.
func (m *EffectManager) PlayEffect(kind EffectKind, duration, x, y float64) {
	if kind < 0 || kind >= effectKindCount {
		return
	}
	e := &effect{
		kind:     kind,
		style:    m.styles[kind],
		pos:      cp.Vector{X: x, Y: y},
		lifeTime: duration,
		deadLeft: m.grace,
	}
	m.burst(e)
	e.emitTimer = e.style.Interval
	m.effects = append(m.effects, e)
}

// Update advances every effect by dt. Iteration runs backwards so finished
// effects can be removed in place.
func (m *EffectManager) Update(dt float64) {
	if dt <= 0 {
		return
	}
	for i := len(m.effects) - 1; i >= 0; i-- {
		e := m.effects[i]
		m.stepParticles(e, dt)

		if e.dead {
			e.deadLeft -= dt
			if e.deadLeft <= 0 {
				m.effects = append(m.effects[:i], m.effects[i+1:]...)
			}
			continue
		}

		e.lifeTime -= dt
		if e.lifeTime <= 0 {
			e.dead = true
			continue
		}
		if e.style.Interval > 0 {
			e.emitTimer -= dt
			for e.emitTimer <= 0 {
				m.burst(e)
				e.emitTimer += e.style.Interval
			}
		}
	}
}

func (m *EffectManager) burst(e *effect) {
	st := e.style
	if st.Count <= 0 || st.Lifetime <= 0 {
		return
	}
	base := st.Angle + st.Spin*float64(e.bursts)
	e.bursts++
	for i := 0; i < st.Count; i++ {
		var deg float64
		if st.Ring {
			deg = base + 360*float64(i)/float64(st.Count)
		} else {
			deg = base + (m.rng.Float64()-0.5)*st.Spread
		}
		rad := deg * math.Pi / 180
		speed := st.Speed * (0.75 + 0.5*m.rng.Float64())
		e.particles = append(e.particles, Particle{
			Pos:     e.pos,
			Vel:     cp.Vector{X: math.Cos(rad) * speed, Y: math.Sin(rad) * speed},
			Life:    st.Lifetime,
			MaxLife: st.Lifetime,
			Size:    st.Size,
			Color:   st.Color,
		})
	}
}

func (m *EffectManager) stepParticles(e *effect, dt float64) {
	alive := e.particles[:0]
	for _, p := range e.particles {
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		p.Vel.Y += e.style.Gravity * dt
		p.Pos = p.Pos.Add(p.Vel.Mult(dt))
		alive = append(alive, p)
	}
	e.particles = alive
}

// EachParticle calls fn for every live particle.
func (m *EffectManager) EachParticle(fn func(p Particle)) {
	for _, e := range m.effects {
		for _, p := range e.particles {
			fn(p)
		}
	}
}

// ParticleCount is the total number of live particles.
func (m *EffectManager) ParticleCount() int {
	n := 0
	for _, e := range m.effects {
		n += len(e.particles)
	}
	return n
}

// Clear drops every effect immediately.
func (m *EffectManager) Clear() { m.effects = nil }
