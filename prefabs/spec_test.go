package prefabs

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedSpecsLoadAndValidate(t *testing.T) {
	SetOverrideDir("")
	defer SetOverrideDir("prefabs")

	player, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	if player.Width != 50 || player.Dash.Speed != 500 || player.Squash.MoveBlendFloor != 100 {
		t.Fatalf("unexpected player spec: %+v", player)
	}

	proj, err := LoadProjectileSpec()
	if err != nil {
		t.Fatalf("projectile: %v", err)
	}
	if proj.LaunchSpeed != 500 || proj.Lifetime != 3 {
		t.Fatalf("unexpected projectile spec: %+v", proj)
	}

	fx, err := LoadEffectsSpec()
	if err != nil {
		t.Fatalf("effects: %v", err)
	}
	for _, name := range []string{"land_dust", "dash", "star_spiral", "bullet_trail"} {
		if _, ok := fx.Effects[name]; !ok {
			t.Fatalf("effects missing %q", name)
		}
	}
	if !fx.Effects["star_spiral"].Ring {
		t.Fatalf("star_spiral should be a ring")
	}

	cam, err := LoadCameraSpec()
	if err != nil {
		t.Fatalf("camera: %v", err)
	}
	if cam.LandShake.DurationMs != 200 || cam.FlashMaxAlpha != 0.6 {
		t.Fatalf("unexpected camera spec: %+v", cam)
	}

	world, err := LoadWorldSpec()
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	if world.SubSteps != 3 || world.Gravity != 600 {
		t.Fatalf("unexpected world spec: %+v", world)
	}
}

func TestDiskOverrideShadowsEmbedded(t *testing.T) {
	dir := t.TempDir()
	SetOverrideDir(dir)
	defer SetOverrideDir("prefabs")

	data := []byte("name: tiny\nwidth: 800\nheight: 600\ngravity: 100\nsub_steps: 1\nground_height: 40\n")
	if err := os.WriteFile(filepath.Join(dir, WorldFile), data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	world, err := LoadWorldSpec()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if world.Name != "tiny" || world.Gravity != 100 {
		t.Fatalf("override not used: %+v", world)
	}
	if _, ok := ModTime(WorldFile); !ok {
		t.Fatalf("expected a mod time for the override")
	}
	if _, ok := ModTime(CameraFile); ok {
		t.Fatalf("camera has no override, expected no mod time")
	}

	if _, err := LoadSpec[WorldSpec]("prefabs/" + WorldFile); err != nil {
		t.Fatalf("prefixed name should resolve: %v", err)
	}
}

func TestInvalidOverrideIsRejected(t *testing.T) {
	dir := t.TempDir()
	SetOverrideDir(dir)
	defer SetOverrideDir("prefabs")

	data := []byte("width: 800\nheight: 600\ngravity: 600\nsub_steps: 0\nground_height: 20\n")
	if err := os.WriteFile(filepath.Join(dir, WorldFile), data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadWorldSpec(); !errors.Is(err, ErrInvalidSpec) {
		t.Fatalf("expected ErrInvalidSpec, got %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, CameraFile), []byte("land_shake: [1, 2"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadCameraSpec(); err == nil || errors.Is(err, ErrInvalidSpec) {
		t.Fatalf("expected a parse error, got %v", err)
	}
}

func validPlayer() PlayerSpec {
	return PlayerSpec{
		Width: 50, Height: 50,
		JumpSpeed: 200, MaxFallVelocity: 300, MaxMovementSpeed: 230, MovementAccel: 400,
		Drag: 500, Bounce: 0.3, UnclampedVelocity: 10000,
		Dash: DashSpec{Speed: 500, ControlTime: 0.3},
		Shot: ShotSpec{Cooldown: 0.4, RecoilSpeed: 250, RecoilControlTime: 0.15},
		Squash: SquashSpec{
			MinXScale: 0.8, MaxXScale: 1.2, MinYScale: 0.8, MaxYScale: 1.2, ShotMinScale: 0.5,
			JumpRate: 1.5, LandRate: 7, BlendRate: 7, MoveBlendFloor: 100,
		},
	}
}

func TestPlayerSpecValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *PlayerSpec)
		ok     bool
	}{
		{"valid", func(s *PlayerSpec) {}, true},
		{"zero width", func(s *PlayerSpec) { s.Width = 0 }, false},
		{"negative cooldown", func(s *PlayerSpec) { s.Shot.Cooldown = -1 }, false},
		{"bounce above one", func(s *PlayerSpec) { s.Bounce = 1.5 }, false},
		{"unclamped below ceiling", func(s *PlayerSpec) { s.UnclampedVelocity = 100 }, false},
		{"floor above max speed", func(s *PlayerSpec) { s.Squash.MoveBlendFloor = 230 }, false},
		{"max scale below one", func(s *PlayerSpec) { s.Squash.MaxYScale = 0.9 }, false},
		{"zero cooldown allowed", func(s *PlayerSpec) { s.Shot.Cooldown = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validPlayer()
			tt.mutate(&s)
			err := s.Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidSpec) {
				t.Fatalf("expected ErrInvalidSpec, got %v", err)
			}
		})
	}
}

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		err  bool
	}{
		{in: `"#ff8000"`, want: color.RGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}},
		{in: `"00ff0080"`, want: color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0x80}},
		{in: `"#fff"`, err: true},
		{in: `"#gg0000"`, err: true},
		{in: `[1, 2]`, err: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var c YAMLColor
			err := yaml.Unmarshal([]byte(tt.in), &c)
			if tt.err {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := c.RGBAOr(color.RGBA{}); got != tt.want {
				t.Fatalf("got %v want %v", got, tt.want)
			}
		})
	}

	var nilColor *YAMLColor
	fallback := color.RGBA{R: 1, G: 2, B: 3, A: 4}
	if got := nilColor.RGBAOr(fallback); got != fallback {
		t.Fatalf("nil color should return fallback, got %v", got)
	}
}
