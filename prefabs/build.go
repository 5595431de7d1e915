package prefabs

import (
	"fmt"
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/squashjump/component"
	"github.com/milk9111/squashjump/obj"
)

// Palette holds the flat colors the renderer uses.
type Palette struct {
	Background color.RGBA
	Ground     color.RGBA
	Player     color.RGBA
	Projectile color.RGBA
}

func DefaultPalette() Palette {
	return Palette{
		Background: color.RGBA{R: 0x1e, G: 0x1e, B: 0x28, A: 0xff},
		Ground:     color.RGBA{R: 0x50, G: 0x5a, B: 0x64, A: 0xff},
		Player:     color.RGBA{R: 0x3c, G: 0x8c, B: 0xdc, A: 0xff},
		Projectile: color.RGBA{R: 0xff, G: 0xaa, B: 0x00, A: 0xff},
	}
}

// Tuning is every runtime config derived from the prefab yaml files.
type Tuning struct {
	World       obj.WorldConfig
	Player      obj.PlayerConfig
	Camera      obj.CameraConfig
	Effects     obj.EffectStyles
	EffectGrace float64
	Palette     Palette
}

func DefaultTuning() Tuning {
	return Tuning{
		World:       obj.DefaultWorldConfig(),
		Player:      obj.DefaultPlayerConfig(),
		Camera:      obj.DefaultCameraConfig(),
		Effects:     obj.DefaultEffectStyles(),
		EffectGrace: obj.DefaultEffectGrace,
		Palette:     DefaultPalette(),
	}
}

// LoadTuning loads and validates every prefab file and builds a Tuning from
// them. Any failure leaves nothing half-applied: the caller keeps its
// previous Tuning.
func LoadTuning() (Tuning, error) {
	world, err := LoadWorldSpec()
	if err != nil {
		return Tuning{}, err
	}
	player, err := LoadPlayerSpec()
	if err != nil {
		return Tuning{}, err
	}
	proj, err := LoadProjectileSpec()
	if err != nil {
		return Tuning{}, err
	}
	cam, err := LoadCameraSpec()
	if err != nil {
		return Tuning{}, err
	}
	fx, err := LoadEffectsSpec()
	if err != nil {
		return Tuning{}, err
	}
	return BuildTuning(world, player, proj, cam, fx)
}

func BuildTuning(world *WorldSpec, player *PlayerSpec, proj *ProjectileSpec, cam *CameraSpec, fx *EffectsSpec) (Tuning, error) {
	t := DefaultTuning()

	t.World = world.WorldConfig()
	t.Palette.Background = world.Background.RGBAOr(t.Palette.Background)
	t.Palette.Ground = world.GroundColor.RGBAOr(t.Palette.Ground)
	t.Palette.Player = player.Color.RGBAOr(t.Palette.Player)
	t.Palette.Projectile = proj.Color.RGBAOr(t.Palette.Projectile)

	t.Player = player.PlayerConfig()
	t.Player.Projectile = proj.ProjectileConfig()
	cam.applyTo(&t.Player, &t.Camera)

	styles, err := fx.Styles(t.Effects)
	if err != nil {
		return Tuning{}, err
	}
	t.Effects = styles
	t.EffectGrace = fx.Grace
	return t, nil
}

func (s *WorldSpec) WorldConfig() obj.WorldConfig {
	return obj.WorldConfig{
		Width:        s.Width,
		Height:       s.Height,
		Gravity:      s.Gravity,
		SubSteps:     s.SubSteps,
		GroundHeight: s.GroundHeight,
	}
}

// PlayerConfig builds the player config. Projectile and camera-driven
// fields keep their defaults.
func (s *PlayerSpec) PlayerConfig() obj.PlayerConfig {
	cfg := obj.DefaultPlayerConfig()
	cfg.Width = s.Width
	cfg.Height = s.Height
	cfg.Spawn = cp.Vector{X: s.SpawnX, Y: s.SpawnY}
	cfg.DragX = s.Drag
	cfg.Bounce = s.Bounce
	cfg.LandDustDuration = s.LandDustDuration

	mv := &cfg.Movement
	mv.MovementAccel = s.MovementAccel
	mv.MaxMovementSpeed = s.MaxMovementSpeed
	mv.MaxFallVelocity = s.MaxFallVelocity
	mv.JumpSpeed = s.JumpSpeed
	mv.FallMultiplier = s.FallMultiplier
	mv.UnclampedVelocity = s.UnclampedVelocity
	mv.DashSpeed = s.Dash.Speed
	mv.DashControlTime = s.Dash.ControlTime
	mv.DashTrailInterval = s.Dash.TrailInterval
	mv.DashTrailDuration = s.Dash.TrailDuration
	mv.DashBurstDuration = s.Dash.BurstDuration
	mv.ShotCooldown = s.Shot.Cooldown
	mv.RecoilSpeed = s.Shot.RecoilSpeed
	mv.RecoilControlTime = s.Shot.RecoilControlTime
	mv.MuzzleBurstDuration = s.Shot.MuzzleBurstDuration

	cfg.Squash = component.SquashStretchConfig{
		MinXScale:      s.Squash.MinXScale,
		MaxXScale:      s.Squash.MaxXScale,
		MinYScale:      s.Squash.MinYScale,
		MaxYScale:      s.Squash.MaxYScale,
		ShotMinScale:   s.Squash.ShotMinScale,
		JumpRate:       s.Squash.JumpRate,
		LandRate:       s.Squash.LandRate,
		BlendRate:      s.Squash.BlendRate,
		MoveBlendFloor: s.Squash.MoveBlendFloor,
	}
	return cfg
}

func (s *ProjectileSpec) ProjectileConfig() obj.ProjectileConfig {
	return obj.ProjectileConfig{
		Size:          s.Size,
		Lifetime:      s.Lifetime,
		LaunchSpeed:   s.LaunchSpeed,
		TrailInterval: s.TrailInterval,
		TrailDuration: s.TrailDuration,
	}
}

func (s ShakeSpec) shake() obj.ShakeSpec {
	return obj.ShakeSpec{DurationMs: s.DurationMs, Intensity: s.Intensity}
}

func (s *CameraSpec) applyTo(player *obj.PlayerConfig, cam *obj.CameraConfig) {
	player.LandShake = s.LandShake.shake()
	player.LandFlashMs = s.LandFlashMs
	player.Movement.DashShake = s.DashShake.shake()
	player.Movement.ShotShake = s.ShotShake.shake()
	cam.FlashMaxAlpha = s.FlashMaxAlpha
}

// Styles overlays the named effects onto base. Unknown names are rejected.
func (s *EffectsSpec) Styles(base obj.EffectStyles) (obj.EffectStyles, error) {
	out := base
	for name, e := range s.Effects {
		kind, ok := obj.ParseEffectKind(name)
		if !ok {
			return base, fmt.Errorf("%w: unknown effect %q", ErrInvalidSpec, name)
		}
		out[kind] = obj.EffectStyle{
			Count:    e.Count,
			Interval: e.Interval,
			Speed:    e.Speed,
			Angle:    e.Angle,
			Spread:   e.Spread,
			Ring:     e.Ring,
			Spin:     e.Spin,
			Lifetime: e.Lifetime,
			Size:     e.Size,
			Gravity:  e.Gravity,
			Color:    e.Color.RGBAOr(base[kind].Color),
		}
	}
	return out, nil
}
