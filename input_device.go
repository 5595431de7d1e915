package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/squashjump/obj"
)

const stickDeadZone = 0.4

// ebitenDevice maps keyboard, mouse and standard gamepads onto player
// actions. Any source holding an action counts.
type ebitenDevice struct {
	keys    map[obj.Action][]ebiten.Key
	buttons map[obj.Action][]ebiten.StandardGamepadButton
	pads    []ebiten.GamepadID
}

func newEbitenDevice() *ebitenDevice {
	return &ebitenDevice{
		keys: map[obj.Action][]ebiten.Key{
			obj.ActionLeft:  {ebiten.KeyA, ebiten.KeyArrowLeft},
			obj.ActionRight: {ebiten.KeyD, ebiten.KeyArrowRight},
			obj.ActionUp:    {ebiten.KeyW, ebiten.KeyArrowUp},
			obj.ActionDown:  {ebiten.KeyS, ebiten.KeyArrowDown},
			obj.ActionJump:  {ebiten.KeySpace},
			obj.ActionDash:  {ebiten.KeyShiftLeft, ebiten.KeyK},
			obj.ActionFire:  {ebiten.KeyJ},
		},
		buttons: map[obj.Action][]ebiten.StandardGamepadButton{
			obj.ActionLeft:  {ebiten.StandardGamepadButtonLeftLeft},
			obj.ActionRight: {ebiten.StandardGamepadButtonLeftRight},
			obj.ActionUp:    {ebiten.StandardGamepadButtonLeftTop},
			obj.ActionDown:  {ebiten.StandardGamepadButtonLeftBottom},
			obj.ActionJump:  {ebiten.StandardGamepadButtonRightBottom},
			obj.ActionDash:  {ebiten.StandardGamepadButtonRightRight, ebiten.StandardGamepadButtonFrontTopRight},
			obj.ActionFire:  {ebiten.StandardGamepadButtonRightLeft, ebiten.StandardGamepadButtonFrontBottomRight},
		},
	}
}

// refresh re-reads the connected gamepads. Call once per frame before the
// player samples input.
func (d *ebitenDevice) refresh() {
	d.pads = ebiten.AppendGamepadIDs(d.pads[:0])
}

func (d *ebitenDevice) Pressed(a obj.Action) bool {
	for _, k := range d.keys[a] {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	if a == obj.ActionFire && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return true
	}
	if a == obj.ActionDash && ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		return true
	}
	for _, id := range d.pads {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for _, b := range d.buttons[a] {
			if ebiten.IsStandardGamepadButtonPressed(id, b) {
				return true
			}
		}
		if stickPressed(id, a) {
			return true
		}
	}
	return false
}

func stickPressed(id ebiten.GamepadID, a obj.Action) bool {
	h := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	v := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	switch a {
	case obj.ActionLeft:
		return h < -stickDeadZone
	case obj.ActionRight:
		return h > stickDeadZone
	case obj.ActionUp:
		return v < -stickDeadZone
	case obj.ActionDown:
		return v > stickDeadZone
	}
	return false
}

// Cursor is the mouse position in logical screen pixels, which are also
// world pixels since the view never scrolls.
func (d *ebitenDevice) Cursor() (float64, float64) {
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y)
}
