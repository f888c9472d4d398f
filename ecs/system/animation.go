package system

import (
	"image/color"
	"math"

	"github.com/milk9111/evescroller/common"
	"github.com/milk9111/evescroller/ecs"
	"github.com/milk9111/evescroller/ecs/component"
)

// runThreshold is the horizontal speed below which a grounded actor idles.
const runThreshold = 0.1

// AnimationSystem feeds movement telemetry into each Animation every frame,
// picks the pose and writes the tint and landing squash to the sprite.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	dt := w.Clock().Delta
	landed := landings(w)

	ecs.ForEach2(w, component.AnimationComponent.Kind(), component.MovementComponent.Kind(), func(e ecs.Entity, anim *component.Animation, mv *component.Movement) {
		if mv.Controller == nil {
			return
		}
		ctrl := mv.Controller
		anim.Grounded = ctrl.Grounded()
		anim.VelocityY = ctrl.VelocityY()
		anim.Speed = math.Abs(ctrl.VelocityX())
		anim.SpeedPercent = ctrl.SpeedPercent()

		next := pickState(anim)
		if next != anim.Current {
			anim.Current = next
			anim.Timer = 0
		} else {
			anim.Timer += dt
		}

		if speed, ok := landed[e]; ok && anim.SquashSpeed > 0 {
			anim.Impact = math.Max(anim.Impact, common.Clamp01(speed/anim.SquashSpeed))
		} else {
			anim.Impact = math.Max(0, anim.Impact-anim.Recover*dt)
		}

		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			sprite.Color = tint(anim)
		}
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			squash := anim.Squash * anim.Impact
			t.ScaleX = 1 + squash
			t.ScaleY = 1 - squash
		}
	})
}

func pickState(anim *component.Animation) component.AnimState {
	switch {
	case !anim.Grounded && anim.VelocityY > 0:
		return component.AnimJump
	case !anim.Grounded:
		return component.AnimFall
	case anim.Speed > runThreshold:
		return component.AnimRun
	default:
		return component.AnimIdle
	}
}

func tint(anim *component.Animation) color.RGBA {
	p := anim.Palette
	switch anim.Current {
	case component.AnimRun:
		return lerpColor(p.Run, p.Fast, anim.SpeedPercent)
	case component.AnimJump:
		return p.Jump
	case component.AnimFall:
		return p.Fall
	default:
		return p.Idle
	}
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	t = common.Clamp01(t)
	ch := func(x, y uint8) uint8 {
		return uint8(math.Round(common.Lerp(float64(x), float64(y), t)))
	}
	return color.RGBA{R: ch(a.R, b.R), G: ch(a.G, b.G), B: ch(a.B, b.B), A: ch(a.A, b.A)}
}

// landings maps each entity that landed this frame to its impact speed.
func landings(w *ecs.World) map[ecs.Entity]float64 {
	var out map[ecs.Entity]float64
	for _, ev := range w.Events().All() {
		if ev.Kind != ecs.EventLanded {
			continue
		}
		if out == nil {
			out = make(map[ecs.Entity]float64)
		}
		out[ev.Entity] = math.Max(out[ev.Entity], ev.Value)
	}
	return out
}

// SwapSprite applies swap to e's sprite and animation palette.
func SwapSprite(w *ecs.World, e ecs.Entity, swap component.SpriteSwap) {
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		sprite.Width = swap.Width
		sprite.Height = swap.Height
		sprite.Color = swap.Color
	}
	if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
		anim.Palette = swap.Palette
	}
}

// ApplyAnimation swaps the palette and squash tuning of every animator,
// keeping the current pose.
func ApplyAnimation(w *ecs.World, tuning component.Animation) {
	ecs.ForEach(w, component.AnimationComponent.Kind(), func(_ ecs.Entity, anim *component.Animation) {
		anim.Palette = tuning.Palette
		anim.Squash = tuning.Squash
		anim.SquashSpeed = tuning.SquashSpeed
		anim.Recover = tuning.Recover
	})
}
