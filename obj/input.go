package obj

import "github.com/jakecoffman/cp"

// Action is a logical input polled from a Device.
type Action int

const (
	ActionLeft Action = iota
	ActionRight
	ActionUp
	ActionDown
	ActionJump
	ActionDash
	ActionFire
	actionCount
)

// Device reports the held state of each action and the pointer position in
// world pixels.
type Device interface {
	Pressed(a Action) bool
	Cursor() (x, y float64)
}

// Direction is a discrete input direction. X is -1 left, +1 right; Y is -1
// up, +1 down.
type Direction struct {
	X, Y int
}

func (d Direction) Zero() bool { return d.X == 0 && d.Y == 0 }

func (d Direction) Vector() cp.Vector {
	return cp.Vector{X: float64(d.X), Y: float64(d.Y)}
}

// Command is one frame of sampled input.
type Command struct {
	Direction Direction
	// Jumped, Dashed and Fired are true only on the frame the action went
	// from released to pressed.
	Jumped  bool
	Dashed  bool
	Fired   bool
	Pointer cp.Vector
}

// InputSampler polls a Device once per frame and turns held state into
// edge-triggered commands.
type InputSampler struct {
	device Device
	prev   [actionCount]bool
	cmd    Command
}

func NewInputSampler(device Device) *InputSampler {
	return &InputSampler{device: device}
}

// Update polls the device. Opposite directions resolve to the first one
// checked: left over right, down over up.
func (s *InputSampler) Update() {
	if s.device == nil {
		s.cmd = Command{Pointer: s.cmd.Pointer}
		return
	}

	var held [actionCount]bool
	for a := Action(0); a < actionCount; a++ {
		held[a] = s.device.Pressed(a)
	}

	var dir Direction
	if held[ActionLeft] {
		dir.X = -1
	} else if held[ActionRight] {
		dir.X = 1
	}
	if held[ActionDown] {
		dir.Y = 1
	} else if held[ActionUp] {
		dir.Y = -1
	}

	x, y := s.device.Cursor()
	s.cmd = Command{
		Direction: dir,
		Jumped:    held[ActionJump] && !s.prev[ActionJump],
		Dashed:    held[ActionDash] && !s.prev[ActionDash],
		Fired:     held[ActionFire] && !s.prev[ActionFire],
		Pointer:   cp.Vector{X: x, Y: y},
	}
	s.prev = held
}

func (s *InputSampler) Command() Command { return s.cmd }

// Pointer returns the last sampled pointer position.
func (s *InputSampler) Pointer() cp.Vector { return s.cmd.Pointer }
