package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/milk9111/evescroller/common"
)

func TestViewportRoundTrip(t *testing.T) {
	v := Viewport{Center: common.Vec2{X: 10, Y: 2}, ScreenWidth: 1280, ScreenHeight: 720, PixelsPerUnit: 80}

	x, y := v.WorldToScreen(v.Center)
	assert.Equal(t, 640.0, x)
	assert.Equal(t, 360.0, y)

	x, y = v.WorldToScreen(common.Vec2{X: 11, Y: 3})
	assert.Equal(t, 720.0, x)
	assert.Equal(t, 280.0, y, "up in the world is up on screen")

	p := v.ScreenToWorld(100, 50)
	x, y = v.WorldToScreen(p)
	assert.InDelta(t, 100, x, 1e-9)
	assert.InDelta(t, 50, y, 1e-9)
}

func TestViewportRect(t *testing.T) {
	v := Viewport{ScreenWidth: 200, ScreenHeight: 100, PixelsPerUnit: 10}
	x, y, w, h := v.RectToScreen(common.Vec2{}, 4, 2)
	assert.Equal(t, []float64{80, 40, 40, 20}, []float64{x, y, w, h})
}

func TestViewportParallax(t *testing.T) {
	v := Viewport{Center: common.Vec2{X: 10, Y: 4}, PixelsPerUnit: 1}
	assert.Equal(t, common.Vec2{}, v.Parallax(0).Center)
	assert.Equal(t, common.Vec2{X: 5, Y: 2}, v.Parallax(0.5).Center)
	assert.Equal(t, v.Center, v.Parallax(1).Center)
	assert.Equal(t, v.Center, v.Parallax(3).Center)
}
