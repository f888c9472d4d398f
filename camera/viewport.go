package camera

import "github.com/milk9111/evescroller/common"

// Viewport maps world units (+Y up) to screen pixels (+Y down) around a
// camera centre.
type Viewport struct {
	Center        common.Vec2
	ScreenWidth   float64
	ScreenHeight  float64
	PixelsPerUnit float64
}

func (v Viewport) WorldToScreen(p common.Vec2) (float64, float64) {
	x := (p.X-v.Center.X)*v.PixelsPerUnit + v.ScreenWidth/2
	y := (v.Center.Y-p.Y)*v.PixelsPerUnit + v.ScreenHeight/2
	return x, y
}

func (v Viewport) ScreenToWorld(x, y float64) common.Vec2 {
	if v.PixelsPerUnit == 0 {
		return v.Center
	}
	return common.Vec2{
		X: v.Center.X + (x-v.ScreenWidth/2)/v.PixelsPerUnit,
		Y: v.Center.Y - (y-v.ScreenHeight/2)/v.PixelsPerUnit,
	}
}

// Parallax returns the viewport a layer with weight sees: weight 1 tracks
// the camera, weight 0 stays where the camera started at origin.
func (v Viewport) Parallax(weight float64) Viewport {
	out := v
	out.Center = v.Center.Scale(common.Clamp01(weight))
	return out
}

// RectToScreen returns the top-left corner and size in pixels of a world box
// centred on c.
func (v Viewport) RectToScreen(c common.Vec2, w, h float64) (x, y, sw, sh float64) {
	cx, cy := v.WorldToScreen(c)
	sw = w * v.PixelsPerUnit
	sh = h * v.PixelsPerUnit
	return cx - sw/2, cy - sh/2, sw, sh
}
