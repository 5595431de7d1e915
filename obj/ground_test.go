package obj

import "testing"

type groundRig struct {
	poser  *fakePoser
	landed int
	g      *GroundDebouncer
}

func newGroundRig() *groundRig {
	r := &groundRig{poser: &fakePoser{}}
	r.g = NewGroundDebouncer(GroundHooks{
		Lander:   r.poser,
		OnLanded: func() { r.landed++ },
	})
	return r
}

func TestGroundDebouncerFirstFrame(t *testing.T) {
	cases := []struct {
		name     string
		signals  int
		state    GroundState
		landings int
	}{
		{"spawned_on_ground", 1, GroundGrounded, 1},
		{"spawned_in_air", 0, GroundAirborne, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newGroundRig()
			if r.g.State() != GroundUnknown {
				t.Fatalf("initial state = %s", r.g.State())
			}
			for i := 0; i < c.signals; i++ {
				r.g.Signal()
			}
			r.g.Reconcile(frameDt)
			if r.g.State() != c.state {
				t.Fatalf("state = %s, want %s", r.g.State(), c.state)
			}
			if r.g.Landings() != c.landings || r.poser.lands != c.landings || r.landed != c.landings {
				t.Fatalf("landings=%d lands=%d hook=%d, want %d", r.g.Landings(), r.poser.lands, r.landed, c.landings)
			}
		})
	}
}

func TestGroundDebouncerCoalescesSignals(t *testing.T) {
	r := newGroundRig()
	r.g.Reconcile(frameDt)

	for i := 0; i < 3; i++ {
		r.g.Signal()
	}
	r.g.Reconcile(frameDt)
	if r.g.Landings() != 1 || r.poser.lands != 1 || r.landed != 1 {
		t.Fatalf("three signals produced %d landings, %d land poses", r.g.Landings(), r.poser.lands)
	}

	// staying on the ground re-signals every frame without re-landing
	for frame := 0; frame < 10; frame++ {
		r.g.Signal()
		r.g.Signal()
		r.g.Reconcile(frameDt)
	}
	if r.g.Landings() != 1 || r.poser.lands != 1 {
		t.Fatalf("resting on ground re-triggered landing: %d", r.g.Landings())
	}
	if !r.g.Grounded() {
		t.Fatalf("state = %s, want grounded", r.g.State())
	}
}

func TestGroundDebouncerTakeoffWithoutSignal(t *testing.T) {
	r := newGroundRig()
	r.g.Signal()
	r.g.Reconcile(frameDt)

	r.g.Reconcile(frameDt)
	if r.g.State() != GroundAirborne {
		t.Fatalf("state = %s, want airborne", r.g.State())
	}

	r.g.Reconcile(frameDt)
	if r.g.State() != GroundAirborne || r.g.Landings() != 1 {
		t.Fatalf("airborne frames changed state=%s landings=%d", r.g.State(), r.g.Landings())
	}

	r.g.Signal()
	r.g.Reconcile(frameDt)
	if r.g.Landings() != 2 || r.landed != 2 {
		t.Fatalf("re-landing not reported, landings=%d", r.g.Landings())
	}
}

func TestGroundDebouncerJump(t *testing.T) {
	r := newGroundRig()
	r.g.Signal()
	r.g.Reconcile(frameDt)

	r.g.Signal()
	r.g.Jumped()
	if r.g.State() != GroundAirborne || r.g.Pending() {
		t.Fatalf("jump should force airborne and clear pending, state=%s pending=%v", r.g.State(), r.g.Pending())
	}

	// the body still overlaps the ground for the rest of the frame
	r.g.Signal()
	r.g.Signal()
	r.g.Reconcile(frameDt)
	if r.g.State() != GroundAirborne || r.g.Landings() != 1 {
		t.Fatalf("jump frame re-landed: state=%s landings=%d", r.g.State(), r.g.Landings())
	}

	// next frame signals count again
	r.g.Signal()
	r.g.Reconcile(frameDt)
	if r.g.Landings() != 2 {
		t.Fatalf("landing after jump frame not counted")
	}
}

func TestGroundDebouncerJumpWhileAirborne(t *testing.T) {
	r := newGroundRig()
	r.g.Reconcile(frameDt)
	r.g.Jumped()
	if r.g.State() != GroundAirborne || r.g.Landings() != 0 {
		t.Fatalf("jump in the air: state=%s landings=%d", r.g.State(), r.g.Landings())
	}
}

func TestGroundDebouncerTakeoffGrace(t *testing.T) {
	cases := []struct {
		name       string
		gapFrames  int
		wantState  GroundState
		wantLanded int
	}{
		{"rebound_inside_grace", 10, GroundGrounded, 1},
		{"gap_just_under_grace", 17, GroundGrounded, 1},
		{"real_takeoff", 30, GroundGrounded, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newGroundRig()
			r.g.SetTakeoffGrace(0.3)
			r.g.Signal()
			r.g.Reconcile(frameDt)

			for i := 0; i < c.gapFrames; i++ {
				r.g.Reconcile(frameDt)
			}
			r.g.Signal()
			r.g.Reconcile(frameDt)

			if r.g.State() != c.wantState {
				t.Fatalf("state = %s, want %s", r.g.State(), c.wantState)
			}
			if r.g.Landings() != c.wantLanded || r.landed != c.wantLanded || r.poser.lands != c.wantLanded {
				t.Fatalf("landings=%d hook=%d poses=%d, want %d", r.g.Landings(), r.landed, r.poser.lands, c.wantLanded)
			}
		})
	}
}

func TestGroundDebouncerGraceResetsOnContact(t *testing.T) {
	r := newGroundRig()
	r.g.SetTakeoffGrace(0.1)
	r.g.Signal()
	r.g.Reconcile(frameDt)

	// short hops that each stay under the grace never add up to a takeoff
	for hop := 0; hop < 10; hop++ {
		for i := 0; i < 4; i++ {
			r.g.Reconcile(frameDt)
		}
		r.g.Signal()
		r.g.Reconcile(frameDt)
	}
	if !r.g.Grounded() || r.g.Landings() != 1 {
		t.Fatalf("state=%s landings=%d", r.g.State(), r.g.Landings())
	}

	// a jump ignores the grace
	r.g.Jumped()
	if r.g.State() != GroundAirborne {
		t.Fatalf("jump kept the grace: %s", r.g.State())
	}
	r.g.Reconcile(frameDt)
	r.g.Signal()
	r.g.Reconcile(frameDt)
	if r.g.Landings() != 2 {
		t.Fatalf("landing after jump not counted: %d", r.g.Landings())
	}

	r.g.SetTakeoffGrace(-1)
	if r.g.TakeoffGrace() != 0 {
		t.Fatalf("negative grace = %v", r.g.TakeoffGrace())
	}
}

func TestGroundDebouncerNilHooks(t *testing.T) {
	g := NewGroundDebouncer(GroundHooks{})
	g.Signal()
	g.Reconcile(frameDt)
	g.Jumped()
	g.Reconcile(frameDt)
	if g.State() != GroundAirborne || g.Landings() != 1 {
		t.Fatalf("state=%s landings=%d", g.State(), g.Landings())
	}
}
