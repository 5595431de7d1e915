package obj

import (
	"math"

	"github.com/jakecoffman/cp"
)

// MovementConfig tunes locomotion and the critical abilities. Speeds are in
// pixels per second, accelerations in pixels per second squared and times in
// seconds.
type MovementConfig struct {
	MovementAccel    float64
	MaxMovementSpeed float64
	MaxFallVelocity  float64
	JumpSpeed        float64
	FallMultiplier   float64

	DashSpeed           float64
	DashControlTime     float64
	DashTrailInterval   float64
	DashTrailDuration   float64
	DashBurstDuration   float64
	ShotCooldown        float64
	RecoilSpeed         float64
	RecoilControlTime   float64
	MuzzleBurstDuration float64

	// UnclampedVelocity is the velocity ceiling while a critical ability owns
	// the body.
	UnclampedVelocity float64

	DashShake ShakeSpec
	ShotShake ShakeSpec
}

func DefaultMovementConfig() MovementConfig {
	return MovementConfig{
		MovementAccel:       400,
		MaxMovementSpeed:    230,
		MaxFallVelocity:     300,
		JumpSpeed:           200,
		FallMultiplier:      21,
		DashSpeed:           500,
		DashControlTime:     0.3,
		DashTrailInterval:   0.05,
		DashTrailDuration:   0.1,
		DashBurstDuration:   0.2,
		ShotCooldown:        0.4,
		RecoilSpeed:         250,
		RecoilControlTime:   0.15,
		MuzzleBurstDuration: 0.15,
		UnclampedVelocity:   10000,
		DashShake:           ShakeSpec{DurationMs: 150, Intensity: 0.008},
		ShotShake:           ShakeSpec{DurationMs: 100, Intensity: 0.005},
	}
}

// ControllerHooks are the capabilities the controller calls out to. Nil
// fields are skipped.
type ControllerHooks struct {
	Effects  EffectSink
	Shaker   Shaker
	Launcher ProjectileLauncher
	Animator ForcePoser
	Ground   JumpNotifier
	Cues     CuePlayer
}

// MovementController arbitrates between normal locomotion and the critical
// abilities (dash, shot recoil) that temporarily take over the body's
// velocity.
type MovementController struct {
	cfg   MovementConfig
	body  Body
	hooks ControllerHooks

	critical     CriticalAbility
	shotCooldown float64
	trailTimer   float64
	facing       float64
}

func NewMovementController(cfg MovementConfig, body Body, hooks ControllerHooks) *MovementController {
	if hooks.Effects == nil {
		hooks.Effects = nopEffects{}
	}
	c := &MovementController{
		cfg:    cfg,
		body:   body,
		hooks:  hooks,
		facing: 1,
	}
	c.restoreCeiling()
	return c
}

// SetConfig swaps tuning values. The velocity ceiling is reapplied unless an
// ability currently owns it.
func (c *MovementController) SetConfig(cfg MovementConfig) {
	c.cfg = cfg
	if !c.critical.Active() {
		c.restoreCeiling()
	}
}

func (c *MovementController) Config() MovementConfig    { return c.cfg }
func (c *MovementController) Critical() CriticalAbility { return c.critical }
func (c *MovementController) UnControlTime() float64    { return c.critical.Remaining() }
func (c *MovementController) ShotCooldown() float64     { return c.shotCooldown }
func (c *MovementController) Facing() float64           { return c.facing }

// Update runs one tick: locomotion, jump, fall assist, ability triggers, then
// timer decay.
func (c *MovementController) Update(dt float64, in Command) {
	if dt <= 0 {
		return
	}

	if in.Direction.X != 0 {
		c.facing = float64(in.Direction.X)
	}

	if !c.critical.Active() {
		c.body.SetAccelerationX(float64(in.Direction.X) * c.cfg.MovementAccel)
	}

	if in.Jumped {
		c.jump()
	}

	c.applyFallAssist()

	if in.Dashed {
		c.tryDash(in.Direction)
	}

	if in.Fired {
		c.tryShoot(in.Pointer)
	}

	c.decay(dt)
}

func (c *MovementController) jump() {
	v := c.body.Velocity()
	c.body.SetVelocity(v.X, -c.cfg.JumpSpeed)
	if c.hooks.Animator != nil {
		c.hooks.Animator.TriggerJump()
	}
	if c.hooks.Ground != nil {
		c.hooks.Ground.Jumped()
	}
	playCue(c.hooks.Cues, CueJump)
}

// applyFallAssist adds extra downward pull while the body is still rising.
// Descent is left to gravity.
func (c *MovementController) applyFallAssist() {
	if c.body.Velocity().Y < 0 {
		c.body.SetAccelerationY(c.cfg.FallMultiplier)
		return
	}
	c.body.SetAccelerationY(0)
}

func (c *MovementController) tryDash(dir Direction) {
	if c.critical.Active() {
		return
	}
	d := dir.Vector()
	if dir.Zero() {
		d = cp.Vector{X: c.facing}
	}

	c.critical = StartDash(c.cfg.DashControlTime)
	if !c.critical.Active() {
		return
	}
	c.body.SetMaxVelocity(c.cfg.UnclampedVelocity, c.cfg.UnclampedVelocity)
	c.body.SetAccelerationX(0)
	v := d.Mult(c.cfg.DashSpeed)
	c.body.SetVelocity(v.X, v.Y)

	center := c.body.Center()
	c.hooks.Effects.PlayEffect(EffectStarSpiral, c.cfg.DashBurstDuration, center.X, center.Y)
	c.hooks.Effects.PlayEffect(EffectDash, c.cfg.DashTrailDuration, center.X, center.Y)
	c.trailTimer = c.cfg.DashTrailInterval
	c.cfg.DashShake.apply(c.hooks.Shaker)
	playCue(c.hooks.Cues, CueDash)
}

// AimDirection returns the unit vector from the body center toward the
// pointer. When the pointer sits on the center the player's facing is used.
func (c *MovementController) AimDirection(pointer cp.Vector) cp.Vector {
	return normalizeOr(pointer.Sub(c.body.Center()), cp.Vector{X: c.facing})
}

func (c *MovementController) tryShoot(pointer cp.Vector) {
	if c.shotCooldown > 0 || c.critical.Active() {
		return
	}

	center := c.body.Center()
	aim := c.AimDirection(pointer)
	if c.hooks.Launcher != nil {
		c.hooks.Launcher.Spawn(center, aim, true)
	}
	c.shotCooldown = c.cfg.ShotCooldown

	c.critical = StartShoot(c.cfg.RecoilControlTime)
	if !c.critical.Active() {
		return
	}
	recoil := aim.Neg().Mult(c.cfg.RecoilSpeed)
	c.body.SetMaxVelocity(c.cfg.UnclampedVelocity, c.cfg.UnclampedVelocity)
	c.body.SetAccelerationX(0)
	c.body.SetVelocity(recoil.X, recoil.Y)

	if c.hooks.Animator != nil {
		c.hooks.Animator.TriggerForceSquish(aim.X, aim.Y)
	}
	c.hooks.Effects.PlayEffect(EffectStarSpiral, c.cfg.MuzzleBurstDuration, center.X, center.Y)
	c.cfg.ShotShake.apply(c.hooks.Shaker)
	playCue(c.hooks.Cues, CueShoot)
}

func (c *MovementController) decay(dt float64) {
	if c.shotCooldown > 0 {
		c.shotCooldown = math.Max(0, c.shotCooldown-dt)
	}

	if c.critical.Kind() == AbilityDash && c.cfg.DashTrailInterval > 0 {
		c.trailTimer -= dt
		for c.trailTimer <= 0 {
			center := c.body.Center()
			c.hooks.Effects.PlayEffect(EffectDash, c.cfg.DashTrailDuration, center.X, center.Y)
			c.trailTimer += c.cfg.DashTrailInterval
		}
	}

	if c.critical.Tick(dt) {
		c.trailTimer = 0
		if c.hooks.Animator != nil {
			c.hooks.Animator.CompleteForceSquish()
		}
		c.restoreCeiling()
	}
}

// Reset ends any critical ability, clears the shot cooldown and restores the
// normal velocity ceiling.
func (c *MovementController) Reset() {
	c.critical = CriticalAbility{}
	c.shotCooldown = 0
	c.trailTimer = 0
	c.restoreCeiling()
}

func (c *MovementController) restoreCeiling() {
	c.body.SetMaxVelocity(c.cfg.MaxMovementSpeed, c.cfg.MaxFallVelocity)
}
