package component

import "github.com/milk9111/evescroller/camera"

// Camera binds a follow camera to an entity. View is the visible area in
// world units; bounds are inset by half of it so the view stays inside the
// level.
type Camera struct {
	Follow     *camera.Follow
	ViewWidth  float64
	ViewHeight float64
	// PixelsPerUnit converts world units to screen pixels.
	PixelsPerUnit float64

	BoundsApplied bool
}

var CameraComponent = NewComponent[Camera]()
