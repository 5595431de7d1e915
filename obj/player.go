package obj

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/squashjump/component"
)

// fallBlendThreshold is the downward speed, in px/s, above which the player
// counts as falling for the stretch blend. Resting contact leaves a few
// hundredths of jitter in the vertical velocity.
const fallBlendThreshold = 1.0

// groundGraceMargin is added on top of the longest rebound so contact
// flicker between physics steps never reads as a takeoff.
const groundGraceMargin = 0.1

// takeoffGrace is how long a rebound off the ground can last: a landing at
// the fall speed cap bounces back at Bounce times that speed. The ground's
// own elasticity is 1, so Bounce is the whole restitution.
func takeoffGrace(cfg PlayerConfig, gravity float64) float64 {
	if cfg.Bounce <= 0 || gravity <= 0 {
		return groundGraceMargin
	}
	return 2*cfg.Bounce*cfg.Movement.MaxFallVelocity/gravity + groundGraceMargin
}

type PlayerConfig struct {
	Width, Height float64
	Spawn         cp.Vector
	DragX         float64
	Bounce        float64

	Movement   MovementConfig
	Squash     component.SquashStretchConfig
	Projectile ProjectileConfig

	LandShake        ShakeSpec
	LandFlashMs      float64
	LandDustDuration float64
}

func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		Width:            50,
		Height:           50,
		Spawn:            cp.Vector{X: 400, Y: 300},
		DragX:            500,
		Bounce:           0.3,
		Movement:         DefaultMovementConfig(),
		Squash:           component.DefaultSquashStretchConfig(),
		Projectile:       DefaultProjectileConfig(),
		LandShake:        ShakeSpec{DurationMs: 200, Intensity: 0.01},
		LandFlashMs:      250,
		LandDustDuration: 0.1,
	}
}

// PlayerDeps are the collaborators a Player is wired to. Only World is
// required; NewPlayer panics without it.
type PlayerDeps struct {
	World   *CollisionWorld
	Device  Device
	Effects EffectSink
	Shaker  Shaker
	Flasher Flasher
	Cues    CuePlayer
}

// Player owns the body, input, controller, animator, ground debouncer and
// projectiles, and advances them in a fixed order each frame.
type Player struct {
	cfg  PlayerConfig
	deps PlayerDeps

	body        *ArcadeBody
	input       *InputSampler
	controller  *MovementController
	squash      *component.SquashStretch
	ground      *GroundDebouncer
	projectiles *ProjectileSet
}

func NewPlayer(cfg PlayerConfig, deps PlayerDeps) *Player {
	if deps.World == nil {
		panic("obj: NewPlayer requires a CollisionWorld")
	}
	if deps.Effects == nil {
		deps.Effects = nopEffects{}
	}
	p := &Player{cfg: cfg, deps: deps}

	p.body = NewArcadeBody(cfg.Spawn, cfg.Width, cfg.Height)
	p.body.SetDragX(cfg.DragX)
	p.body.SetBounce(cfg.Bounce)

	p.input = NewInputSampler(deps.Device)
	p.squash = component.NewSquashStretch(cfg.Squash)
	p.projectiles = NewProjectileSet(cfg.Projectile, deps.World, deps.Effects)
	p.ground = NewGroundDebouncer(GroundHooks{
		Lander:   p.squash,
		OnLanded: p.landed,
	})
	p.ground.SetTakeoffGrace(takeoffGrace(cfg, deps.World.Config().Gravity))
	p.controller = NewMovementController(cfg.Movement, p.body, ControllerHooks{
		Effects:  deps.Effects,
		Shaker:   deps.Shaker,
		Launcher: p.projectiles,
		Animator: p.squash,
		Ground:   p.ground,
		Cues:     deps.Cues,
	})

	deps.World.AttachPlayer(p.body)
	deps.World.OnGroundContact = p.ground.Signal
	return p
}

// Update advances the player by dt seconds: input, abilities, physics,
// animation, ground reconciliation, projectiles.
func (p *Player) Update(dt float64) {
	if dt <= 0 {
		return
	}

	p.input.Update()
	p.controller.Update(dt, p.input.Command())

	p.deps.World.Step(dt)

	p.squash.Tick(dt)
	p.blend(dt)
	p.body.SetScale(p.squash.Scale())

	p.ground.Reconcile(dt)
	p.projectiles.Tick(dt)
}

func (p *Player) blend(dt float64) {
	v := p.body.Velocity()
	mv := p.cfg.Movement
	if v.Y > fallBlendThreshold {
		p.squash.BlendFalling(v.Y, mv.MaxFallVelocity, dt)
	} else if math.Abs(v.X) > 0 {
		p.squash.BlendMoving(math.Abs(v.X), mv.MaxMovementSpeed, dt)
	}
}

func (p *Player) landed() {
	at := p.body.BottomCenter()
	p.deps.Effects.PlayEffect(EffectLandDust, p.cfg.LandDustDuration, at.X, at.Y)
	p.cfg.LandShake.apply(p.deps.Shaker)
	if p.deps.Flasher != nil && p.cfg.LandFlashMs > 0 {
		p.deps.Flasher.Flash(p.cfg.LandFlashMs)
	}
	playCue(p.deps.Cues, CueLand)
}

// ApplyConfig re-tunes a live player. Size and spawn changes take effect on
// the next Reset.
func (p *Player) ApplyConfig(cfg PlayerConfig) {
	p.cfg = cfg
	p.body.SetDragX(cfg.DragX)
	p.body.SetBounce(cfg.Bounce)
	p.controller.SetConfig(cfg.Movement)
	p.squash.SetConfig(cfg.Squash)
	p.projectiles.SetConfig(cfg.Projectile)
	p.ground.SetTakeoffGrace(takeoffGrace(cfg, p.deps.World.Config().Gravity))
}

// Reset rebuilds the body at the spawn point and clears abilities,
// projectiles and ground state.
func (p *Player) Reset() {
	world := p.deps.World
	world.DetachPlayer()
	p.projectiles.Clear()

	p.body = NewArcadeBody(p.cfg.Spawn, p.cfg.Width, p.cfg.Height)
	p.body.SetDragX(p.cfg.DragX)
	p.body.SetBounce(p.cfg.Bounce)
	world.AttachPlayer(p.body)

	p.ground = NewGroundDebouncer(p.ground.hooks)
	p.ground.SetTakeoffGrace(takeoffGrace(p.cfg, world.Config().Gravity))
	hooks := p.controller.hooks
	hooks.Ground = p.ground
	p.controller = NewMovementController(p.cfg.Movement, p.body, hooks)
	p.squash.SetConfig(p.cfg.Squash)
	p.squash.Reset()
	world.OnGroundContact = p.ground.Signal
}

func (p *Player) Config() PlayerConfig             { return p.cfg }
func (p *Player) Body() *ArcadeBody                { return p.body }
func (p *Player) Controller() *MovementController  { return p.controller }
func (p *Player) Squash() *component.SquashStretch { return p.squash }
func (p *Player) Ground() *GroundDebouncer         { return p.ground }
func (p *Player) Projectiles() *ProjectileSet      { return p.projectiles }
func (p *Player) Input() *InputSampler             { return p.input }

// AimDirection is the unit vector the next shot would travel along.
func (p *Player) AimDirection(pointer cp.Vector) cp.Vector {
	return p.controller.AimDirection(pointer)
}

// PlayerState is a snapshot for debug display.
type PlayerState struct {
	Position      cp.Vector
	Velocity      cp.Vector
	Scale         cp.Vector
	Ground        GroundState
	Landings      int
	Critical      AbilityKind
	UnControlTime float64
	ShotCooldown  float64
	Morph         component.MorphPhase
	Morphing      bool
	Projectiles   int
}

func (p *Player) State() PlayerState {
	return PlayerState{
		Position:      p.body.Center(),
		Velocity:      p.body.Velocity(),
		Scale:         p.body.Scale(),
		Ground:        p.ground.State(),
		Landings:      p.ground.Landings(),
		Critical:      p.controller.Critical().Kind(),
		UnControlTime: p.controller.UnControlTime(),
		ShotCooldown:  p.controller.ShotCooldown(),
		Morph:         p.squash.Phase(),
		Morphing:      p.squash.Morphing(),
		Projectiles:   p.projectiles.Len(),
	}
}
