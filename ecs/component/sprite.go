package component

import "image/color"

// Sprite is a flat coloured box centred on the transform.
type Sprite struct {
	Width      float64
	Height     float64
	Color      color.RGBA
	FacingLeft bool
	Hidden     bool
}

var SpriteComponent = NewComponent[Sprite]()
