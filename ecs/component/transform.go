package component

import "github.com/milk9111/evescroller/common"

// Transform is the entity centre in world units, y-up.
type Transform struct {
	X      float64
	Y      float64
	ScaleX float64
	ScaleY float64
}

func (t Transform) Vec2() common.Vec2 { return common.Vec2{X: t.X, Y: t.Y} }

var TransformComponent = NewComponent[Transform]()
