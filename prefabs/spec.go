package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: spec invalid")

const (
	PlayerFile     = "player.yaml"
	ProjectileFile = "projectile.yaml"
	EffectsFile    = "effects.yaml"
	CameraFile     = "camera.yaml"
	WorldFile      = "world.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type validator interface {
	Validate() error
}

// loadValidated loads filename and rejects it if Validate fails.
func loadValidated[T any, PT interface {
	*T
	validator
}](filename string) (*T, error) {
	spec, err := LoadSpec[T](filename)
	if err != nil {
		return nil, err
	}
	if err := PT(&spec).Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

type PlayerSpec struct {
	Name   string     `yaml:"name"`
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
	Color  *YAMLColor `yaml:"color"`
	SpawnX float64    `yaml:"spawn_x"`
	SpawnY float64    `yaml:"spawn_y"`

	JumpSpeed         float64 `yaml:"jump_speed"`
	MaxFallVelocity   float64 `yaml:"max_fall_velocity"`
	FallMultiplier    float64 `yaml:"fall_multiplier"`
	MaxMovementSpeed  float64 `yaml:"max_movement_speed"`
	MovementAccel     float64 `yaml:"movement_accel"`
	Drag              float64 `yaml:"drag"`
	Bounce            float64 `yaml:"bounce"`
	UnclampedVelocity float64 `yaml:"unclamped_velocity"`
	LandDustDuration  float64 `yaml:"land_dust_duration"`

	Dash   DashSpec   `yaml:"dash"`
	Shot   ShotSpec   `yaml:"shot"`
	Squash SquashSpec `yaml:"squash"`
}

type DashSpec struct {
	Speed         float64 `yaml:"speed"`
	ControlTime   float64 `yaml:"control_time"`
	TrailInterval float64 `yaml:"trail_interval"`
	TrailDuration float64 `yaml:"trail_duration"`
	BurstDuration float64 `yaml:"burst_duration"`
}

type ShotSpec struct {
	Cooldown            float64 `yaml:"cooldown"`
	RecoilSpeed         float64 `yaml:"recoil_speed"`
	RecoilControlTime   float64 `yaml:"recoil_control_time"`
	MuzzleBurstDuration float64 `yaml:"muzzle_burst_duration"`
}

type SquashSpec struct {
	MinXScale      float64 `yaml:"min_x_scale"`
	MaxXScale      float64 `yaml:"max_x_scale"`
	MinYScale      float64 `yaml:"min_y_scale"`
	MaxYScale      float64 `yaml:"max_y_scale"`
	ShotMinScale   float64 `yaml:"shot_min_scale"`
	JumpRate       float64 `yaml:"jump_rate"`
	LandRate       float64 `yaml:"land_rate"`
	BlendRate      float64 `yaml:"blend_rate"`
	MoveBlendFloor float64 `yaml:"move_blend_floor"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	return loadValidated[PlayerSpec](PlayerFile)
}

func (s *PlayerSpec) Validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"width", s.Width},
		{"height", s.Height},
		{"jump_speed", s.JumpSpeed},
		{"max_fall_velocity", s.MaxFallVelocity},
		{"max_movement_speed", s.MaxMovementSpeed},
		{"movement_accel", s.MovementAccel},
		{"unclamped_velocity", s.UnclampedVelocity},
		{"dash.speed", s.Dash.Speed},
		{"dash.control_time", s.Dash.ControlTime},
		{"shot.recoil_speed", s.Shot.RecoilSpeed},
		{"shot.recoil_control_time", s.Shot.RecoilControlTime},
		{"squash.jump_rate", s.Squash.JumpRate},
		{"squash.land_rate", s.Squash.LandRate},
		{"squash.blend_rate", s.Squash.BlendRate},
	}
	for _, c := range checks {
		if c.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidSpec, c.name, c.v)
		}
	}
	if s.Drag < 0 || s.FallMultiplier < 0 || s.Shot.Cooldown < 0 || s.Dash.TrailInterval < 0 {
		return fmt.Errorf("%w: drag, fall_multiplier, shot.cooldown and dash.trail_interval must not be negative", ErrInvalidSpec)
	}
	if s.Bounce < 0 || s.Bounce > 1 {
		return fmt.Errorf("%w: bounce must be within [0,1], got %v", ErrInvalidSpec, s.Bounce)
	}
	if s.UnclampedVelocity < s.MaxMovementSpeed || s.UnclampedVelocity < s.MaxFallVelocity {
		return fmt.Errorf("%w: unclamped_velocity must not be below the normal ceiling", ErrInvalidSpec)
	}
	sq := s.Squash
	if sq.MinXScale <= 0 || sq.MinYScale <= 0 || sq.ShotMinScale <= 0 || sq.MaxXScale < 1 || sq.MaxYScale < 1 {
		return fmt.Errorf("%w: squash scales out of range", ErrInvalidSpec)
	}
	if sq.MoveBlendFloor < 0 || sq.MoveBlendFloor >= s.MaxMovementSpeed {
		return fmt.Errorf("%w: squash.move_blend_floor must be below max_movement_speed", ErrInvalidSpec)
	}
	return nil
}

type ProjectileSpec struct {
	Name          string     `yaml:"name"`
	Size          float64    `yaml:"size"`
	Lifetime      float64    `yaml:"lifetime"`
	LaunchSpeed   float64    `yaml:"launch_speed"`
	TrailInterval float64    `yaml:"trail_interval"`
	TrailDuration float64    `yaml:"trail_duration"`
	Color         *YAMLColor `yaml:"color"`
}

func LoadProjectileSpec() (*ProjectileSpec, error) {
	return loadValidated[ProjectileSpec](ProjectileFile)
}

func (s *ProjectileSpec) Validate() error {
	if s.Size <= 0 || s.Lifetime <= 0 || s.LaunchSpeed <= 0 {
		return fmt.Errorf("%w: size, lifetime and launch_speed must be positive", ErrInvalidSpec)
	}
	if s.TrailInterval < 0 || s.TrailDuration < 0 {
		return fmt.Errorf("%w: trail timings must not be negative", ErrInvalidSpec)
	}
	return nil
}

// EffectsSpec maps effect names (land_dust, dash, star_spiral, bullet_trail)
// to their emitter settings.
type EffectsSpec struct {
	Grace   float64                    `yaml:"grace"`
	Effects map[string]EffectStyleSpec `yaml:"effects"`
}

type EffectStyleSpec struct {
	Count    int        `yaml:"count"`
	Interval float64    `yaml:"interval"`
	Speed    float64    `yaml:"speed"`
	Angle    float64    `yaml:"angle"`
	Spread   float64    `yaml:"spread"`
	Ring     bool       `yaml:"ring"`
	Spin     float64    `yaml:"spin"`
	Lifetime float64    `yaml:"lifetime"`
	Size     float64    `yaml:"size"`
	Gravity  float64    `yaml:"gravity"`
	Color    *YAMLColor `yaml:"color"`
}

func LoadEffectsSpec() (*EffectsSpec, error) {
	return loadValidated[EffectsSpec](EffectsFile)
}

func (s *EffectsSpec) Validate() error {
	if s.Grace < 0 {
		return fmt.Errorf("%w: grace must not be negative", ErrInvalidSpec)
	}
	for name, e := range s.Effects {
		if e.Count < 0 || e.Interval < 0 || e.Lifetime < 0 || e.Size < 0 {
			return fmt.Errorf("%w: effect %s has negative settings", ErrInvalidSpec, name)
		}
	}
	return nil
}

type ShakeSpec struct {
	DurationMs float64 `yaml:"duration_ms"`
	Intensity  float64 `yaml:"intensity"`
}

type CameraSpec struct {
	Name          string    `yaml:"name"`
	LandShake     ShakeSpec `yaml:"land_shake"`
	DashShake     ShakeSpec `yaml:"dash_shake"`
	ShotShake     ShakeSpec `yaml:"shot_shake"`
	LandFlashMs   float64   `yaml:"land_flash_ms"`
	FlashMaxAlpha float64   `yaml:"flash_max_alpha"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	return loadValidated[CameraSpec](CameraFile)
}

func (s *CameraSpec) Validate() error {
	for name, sh := range map[string]ShakeSpec{"land_shake": s.LandShake, "dash_shake": s.DashShake, "shot_shake": s.ShotShake} {
		if sh.DurationMs < 0 || sh.Intensity < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidSpec, name)
		}
	}
	if s.LandFlashMs < 0 || s.FlashMaxAlpha < 0 || s.FlashMaxAlpha > 1 {
		return fmt.Errorf("%w: flash settings out of range", ErrInvalidSpec)
	}
	return nil
}

type WorldSpec struct {
	Name         string     `yaml:"name"`
	Width        float64    `yaml:"width"`
	Height       float64    `yaml:"height"`
	Gravity      float64    `yaml:"gravity"`
	SubSteps     int        `yaml:"sub_steps"`
	GroundHeight float64    `yaml:"ground_height"`
	GroundColor  *YAMLColor `yaml:"ground_color"`
	Background   *YAMLColor `yaml:"background"`
}

func LoadWorldSpec() (*WorldSpec, error) {
	return loadValidated[WorldSpec](WorldFile)
}

func (s *WorldSpec) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: world size must be positive", ErrInvalidSpec)
	}
	if s.SubSteps < 1 {
		return fmt.Errorf("%w: sub_steps must be at least 1", ErrInvalidSpec)
	}
	if s.GroundHeight <= 0 || s.GroundHeight >= s.Height {
		return fmt.Errorf("%w: ground_height must be within the world", ErrInvalidSpec)
	}
	return nil
}

type YAMLColor struct {
	color.Color
}

// RGBAOr returns the color as straight-alpha RGBA, or fallback when c is nil.
func (c *YAMLColor) RGBAOr(fallback color.RGBA) color.RGBA {
	if c == nil || c.Color == nil {
		return fallback
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: n.A}
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
