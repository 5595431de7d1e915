package prefabs

import (
	"errors"
	"testing"

	"github.com/milk9111/squashjump/obj"
)

func TestEmbeddedTuningMatchesDefaults(t *testing.T) {
	SetOverrideDir("")
	defer SetOverrideDir("prefabs")

	got, err := LoadTuning()
	if err != nil {
		t.Fatalf("load tuning: %v", err)
	}
	want := DefaultTuning()

	if got.World != want.World {
		t.Fatalf("world: got %+v want %+v", got.World, want.World)
	}
	if got.Player != want.Player {
		t.Fatalf("player: got %+v want %+v", got.Player, want.Player)
	}
	if got.Camera != want.Camera {
		t.Fatalf("camera: got %+v want %+v", got.Camera, want.Camera)
	}
	if got.Effects != want.Effects {
		t.Fatalf("effects: got %+v want %+v", got.Effects, want.Effects)
	}
	if got.EffectGrace != want.EffectGrace {
		t.Fatalf("grace: got %v want %v", got.EffectGrace, want.EffectGrace)
	}
	if got.Palette != want.Palette {
		t.Fatalf("palette: got %+v want %+v", got.Palette, want.Palette)
	}
}

func TestEffectStylesOverlay(t *testing.T) {
	base := obj.DefaultEffectStyles()
	spec := &EffectsSpec{Effects: map[string]EffectStyleSpec{
		"dash": {Count: 9, Lifetime: 1},
	}}
	styles, err := spec.Styles(base)
	if err != nil {
		t.Fatalf("styles: %v", err)
	}
	if styles[obj.EffectDash].Count != 9 {
		t.Fatalf("dash count = %d", styles[obj.EffectDash].Count)
	}
	if styles[obj.EffectDash].Color != base[obj.EffectDash].Color {
		t.Fatalf("missing color should keep the base color")
	}
	if styles[obj.EffectLandDust] != base[obj.EffectLandDust] {
		t.Fatalf("untouched styles should be unchanged")
	}

	spec.Effects["sparkle"] = EffectStyleSpec{}
	if _, err := spec.Styles(base); !errors.Is(err, ErrInvalidSpec) {
		t.Fatalf("expected ErrInvalidSpec for unknown effect, got %v", err)
	}
}

func TestCameraSpecRoutesShakes(t *testing.T) {
	cam := &CameraSpec{
		LandShake:     ShakeSpec{DurationMs: 1, Intensity: 0.1},
		DashShake:     ShakeSpec{DurationMs: 2, Intensity: 0.2},
		ShotShake:     ShakeSpec{DurationMs: 3, Intensity: 0.3},
		LandFlashMs:   40,
		FlashMaxAlpha: 0.5,
	}
	player := obj.DefaultPlayerConfig()
	camera := obj.DefaultCameraConfig()
	cam.applyTo(&player, &camera)

	if player.LandShake != (obj.ShakeSpec{DurationMs: 1, Intensity: 0.1}) {
		t.Fatalf("land shake = %+v", player.LandShake)
	}
	if player.Movement.DashShake.DurationMs != 2 || player.Movement.ShotShake.Intensity != 0.3 {
		t.Fatalf("ability shakes not routed: %+v", player.Movement)
	}
	if player.LandFlashMs != 40 || camera.FlashMaxAlpha != 0.5 {
		t.Fatalf("flash not routed")
	}
}
