// Package render draws the world with ebiten: flat coloured sprites in layer
// order, parallax background bands and the text HUD.
package render

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/evescroller/camera"
	"github.com/milk9111/evescroller/common"
	"github.com/milk9111/evescroller/ecs"
	"github.com/milk9111/evescroller/ecs/component"
)

var (
	clearColor = color.RGBA{R: 0x10, G: 0x14, B: 0x22, A: 0xff}
	eyeColor   = color.RGBA{R: 0x20, G: 0x20, B: 0x28, A: 0xff}
)

type Renderer struct {
	camEntity ecs.Entity
	drawList  []ecs.Entity
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Viewport returns the projection of the world's camera onto a screen of the
// given size. Without a camera it centres on the origin.
func (r *Renderer) Viewport(w *ecs.World, screenW, screenH float64) camera.Viewport {
	v := camera.Viewport{ScreenWidth: screenW, ScreenHeight: screenH, PixelsPerUnit: 80}

	if !r.camEntity.Valid() || !w.IsAlive(r.camEntity) {
		if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}
	if t, ok := ecs.Get(w, r.camEntity, component.TransformComponent.Kind()); ok {
		v.Center = t.Vec2()
	}
	if cam, ok := ecs.Get(w, r.camEntity, component.CameraComponent.Kind()); ok && cam.PixelsPerUnit > 0 {
		v.PixelsPerUnit = cam.PixelsPerUnit
	}
	return v
}

func (r *Renderer) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	screen.Fill(clearColor)

	b := screen.Bounds()
	view := r.Viewport(w, float64(b.Dx()), float64(b.Dy()))

	r.drawList = append(r.drawList[:0], w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())...)
	sort.SliceStable(r.drawList, func(i, j int) bool {
		li, lj := layerOf(w, r.drawList[i]), layerOf(w, r.drawList[j])
		if li != lj {
			return li < lj
		}
		return uint64(r.drawList[i]) < uint64(r.drawList[j])
	})

	for _, e := range r.drawList {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
		if s.Hidden {
			continue
		}

		if p, ok := ecs.Get(w, e, component.ParallaxComponent.Kind()); ok {
			drawBand(screen, view.Parallax(p.Weight), t, s)
			continue
		}

		x, y, sw, sh := view.RectToScreen(t.Vec2(), s.Width*scale(t.ScaleX), s.Height*scale(t.ScaleY))
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(sw), float32(sh), s.Color, false)

		if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
			drawEye(screen, view, t, s)
		}
	}
}

// drawBand fills the full screen width between the band's top and bottom.
func drawBand(screen *ebiten.Image, view camera.Viewport, t *component.Transform, s *component.Sprite) {
	_, top := view.WorldToScreen(common.Vec2{Y: t.Y + s.Height/2})
	_, bottom := view.WorldToScreen(common.Vec2{Y: t.Y - s.Height/2})
	vector.DrawFilledRect(screen, 0, float32(top), float32(view.ScreenWidth), float32(bottom-top), s.Color, false)
}

// drawEye marks which way the player faces.
func drawEye(screen *ebiten.Image, view camera.Viewport, t *component.Transform, s *component.Sprite) {
	dx := s.Width * 0.25
	if s.FacingLeft {
		dx = -dx
	}
	eye := common.Vec2{X: t.X + dx, Y: t.Y + s.Height*0.25}
	x, y, w, h := view.RectToScreen(eye, s.Width*0.15, s.Height*0.15)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), eyeColor, false)
}

func layerOf(w *ecs.World, e ecs.Entity) int {
	if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
		return layer.Index
	}
	return 0
}

func scale(s float64) float64 {
	if s == 0 {
		return 1
	}
	return s
}
