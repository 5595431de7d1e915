package obj

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestCollisionWorldGroundContact(t *testing.T) {
	cw := NewCollisionWorld(DefaultWorldConfig())
	contacts := 0
	cw.OnGroundContact = func() { contacts++ }

	body := NewArcadeBody(cp.Vector{X: 400, Y: 300}, 50, 50)
	cw.AttachPlayer(body)

	firstContact := -1
	for frame := 0; frame < 240; frame++ {
		cw.Step(frameDt)
		if contacts > 0 && firstContact < 0 {
			firstContact = frame
		}
	}
	if firstContact < 0 {
		t.Fatalf("player never touched the ground")
	}
	if firstContact < 10 {
		t.Fatalf("contact reported while still falling (frame %d)", firstContact)
	}

	// at rest the sensor reports on every sub-step
	before := contacts
	cw.Step(frameDt)
	if got := contacts - before; got != 3 {
		t.Fatalf("contacts in one resting frame = %d, want 3", got)
	}

	ground := cw.Ground()
	bottom := body.BottomCenter().Y
	if math.Abs(bottom-ground.Y) > 2 {
		t.Fatalf("player rests at %v, ground top at %v", bottom, ground.Y)
	}
}

func TestCollisionWorldNoContactInAir(t *testing.T) {
	cfg := DefaultWorldConfig()
	cfg.Gravity = 0
	cw := NewCollisionWorld(cfg)
	contacts := 0
	cw.OnGroundContact = func() { contacts++ }
	cw.AttachPlayer(NewArcadeBody(cp.Vector{X: 400, Y: 100}, 50, 50))

	for i := 0; i < 30; i++ {
		cw.Step(frameDt)
	}
	if contacts != 0 {
		t.Fatalf("floating player reported %d ground contacts", contacts)
	}
}

func TestCollisionWorldZeroStep(t *testing.T) {
	cw := NewCollisionWorld(DefaultWorldConfig())
	body := NewArcadeBody(cp.Vector{X: 400, Y: 300}, 50, 50)
	cw.AttachPlayer(body)
	cw.Step(0)
	if body.Center() != (cp.Vector{X: 400, Y: 300}) || body.Velocity() != (cp.Vector{}) {
		t.Fatalf("zero step moved the body")
	}
}

func TestCollisionWorldProjectileBody(t *testing.T) {
	cw := NewCollisionWorld(DefaultWorldConfig())
	pb := cw.NewProjectileBody(cp.Vector{X: 100, Y: 100}, 10, true)
	pb.SetVelocity(500, 0)
	cw.Step(0.1)

	if got := pb.Position(); math.Abs(got.X-150) > 1e-9 || math.Abs(got.Y-100) > 1e-9 {
		t.Fatalf("projectile at %v, want (150,100) with no gravity", got)
	}

	pb.Destroy()
	pb.Destroy()
	if pb.(*projectileBody).space != nil {
		t.Fatalf("destroyed projectile still bound to the space")
	}
	pos := pb.Position()
	cw.Step(0.1)
	if pb.Position() != pos {
		t.Fatalf("destroyed projectile kept moving")
	}
}
