package obj

import (
	"testing"

	"github.com/jakecoffman/cp"
)

type fakeDevice struct {
	held   map[Action]bool
	cx, cy float64
}

func (d *fakeDevice) Pressed(a Action) bool  { return d.held[a] }
func (d *fakeDevice) Cursor() (x, y float64) { return d.cx, d.cy }

func press(actions ...Action) map[Action]bool {
	m := make(map[Action]bool, len(actions))
	for _, a := range actions {
		m[a] = true
	}
	return m
}

func TestInputSamplerDirection(t *testing.T) {
	cases := []struct {
		name string
		held []Action
		want Direction
	}{
		{"none", nil, Direction{}},
		{"left", []Action{ActionLeft}, Direction{X: -1}},
		{"right", []Action{ActionRight}, Direction{X: 1}},
		{"left_wins_over_right", []Action{ActionLeft, ActionRight}, Direction{X: -1}},
		{"up", []Action{ActionUp}, Direction{Y: -1}},
		{"down", []Action{ActionDown}, Direction{Y: 1}},
		{"down_wins_over_up", []Action{ActionUp, ActionDown}, Direction{Y: 1}},
		{"diagonal", []Action{ActionRight, ActionUp}, Direction{X: 1, Y: -1}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewInputSampler(&fakeDevice{held: press(c.held...)})
			s.Update()
			if got := s.Command().Direction; got != c.want {
				t.Fatalf("direction = %+v, want %+v", got, c.want)
			}
		})
	}
}

func TestInputSamplerEdges(t *testing.T) {
	d := &fakeDevice{held: press()}
	s := NewInputSampler(d)

	frames := []struct {
		held                 []Action
		jumped, dashed, fire bool
	}{
		{nil, false, false, false},
		{[]Action{ActionJump, ActionFire}, true, false, true},
		{[]Action{ActionJump, ActionFire}, false, false, false},
		{[]Action{ActionDash}, false, true, false},
		{[]Action{ActionDash, ActionJump}, true, false, false},
		{nil, false, false, false},
		{[]Action{ActionFire}, false, false, true},
	}

	for i, f := range frames {
		d.held = press(f.held...)
		s.Update()
		cmd := s.Command()
		if cmd.Jumped != f.jumped || cmd.Dashed != f.dashed || cmd.Fired != f.fire {
			t.Fatalf("frame %d: got jump=%v dash=%v fire=%v, want %v %v %v",
				i, cmd.Jumped, cmd.Dashed, cmd.Fired, f.jumped, f.dashed, f.fire)
		}
	}
}

func TestInputSamplerPointer(t *testing.T) {
	d := &fakeDevice{cx: 120, cy: 45}
	s := NewInputSampler(d)
	s.Update()
	if s.Pointer() != (cp.Vector{X: 120, Y: 45}) {
		t.Fatalf("pointer = %v", s.Pointer())
	}
}

func TestInputSamplerNilDevice(t *testing.T) {
	s := NewInputSampler(nil)
	s.Update()
	if cmd := s.Command(); cmd != (Command{}) {
		t.Fatalf("command = %+v, want zero", cmd)
	}
}
