package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/evescroller/ecs/component"
)

// stickDeadzone ignores gamepad drift. The movement controller applies its
// own deadzone on top.
const stickDeadzone = 0.15

var (
	leftKeys   = []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}
	rightKeys  = []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}
	jumpKeys   = []ebiten.Key{ebiten.KeySpace, ebiten.KeyW, ebiten.KeyArrowUp}
	crouchKeys = []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}
	skipKeys   = []ebiten.Key{ebiten.KeySpace, ebiten.KeyEscape}
	pauseKeys  = []ebiten.Key{ebiten.KeyEscape, ebiten.KeyP}
)

// Input reads keyboard and gamepad state once per frame.
type Input struct {
	gamepads []ebiten.GamepadID
	keys     []ebiten.Key
}

func NewInput() *Input {
	return &Input{}
}

func (in *Input) Read() component.Input {
	in.gamepads = ebiten.AppendGamepadIDs(in.gamepads[:0])
	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])

	var out component.Input
	if anyPressed(leftKeys) {
		out.MoveX--
	}
	if anyPressed(rightKeys) {
		out.MoveX++
	}
	out.JumpPressed = anyJustPressed(jumpKeys)
	out.JumpHeld = anyPressed(jumpKeys)
	out.CrouchHeld = anyPressed(crouchKeys)
	out.SkipPressed = anyJustPressed(skipKeys)
	out.PausePressed = anyJustPressed(pauseKeys)
	out.AnyPressed = len(in.keys) > 0

	for _, id := range in.gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		if x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal); x > stickDeadzone || x < -stickDeadzone {
			out.MoveX += x
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft) {
			out.MoveX--
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight) {
			out.MoveX++
		}
		jump := ebiten.StandardGamepadButtonRightBottom
		out.JumpHeld = out.JumpHeld || ebiten.IsStandardGamepadButtonPressed(id, jump)
		if inpututil.IsStandardGamepadButtonJustPressed(id, jump) {
			out.JumpPressed = true
			out.SkipPressed = true
			out.AnyPressed = true
		}
		out.CrouchHeld = out.CrouchHeld || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftBottom)
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight) {
			out.PausePressed = true
			out.AnyPressed = true
		}
	}

	if out.MoveX > 1 {
		out.MoveX = 1
	} else if out.MoveX < -1 {
		out.MoveX = -1
	}
	return out
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}
