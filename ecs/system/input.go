package system

import (
	"github.com/milk9111/evescroller/ecs"
	"github.com/milk9111/evescroller/ecs/component"
)

// InputReader samples the input devices once per frame.
type InputReader interface {
	Read() component.Input
}

// InputSystem copies the frame's input onto every Input component. Jump
// presses stay latched until a fixed step consumes or drops them, so a press
// on a frame without a fixed step is not lost.
type InputSystem struct {
	reader  InputReader
	current component.Input
}

func NewInputSystem(reader InputReader) *InputSystem {
	return &InputSystem{reader: reader}
}

func (i *InputSystem) Current() component.Input { return i.current }

func (i *InputSystem) Update(w *ecs.World) {
	if i.reader == nil {
		return
	}
	i.current = i.reader.Read()

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		latched := input.JumpPressed
		*input = i.current
		input.JumpPressed = i.current.JumpPressed || latched
	})
}

// dropJumpPresses clears latched jump presses. A press that arrives while the
// player cannot act is discarded rather than replayed later.
func dropJumpPresses(w *ecs.World) {
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		input.JumpPressed = false
	})
}
