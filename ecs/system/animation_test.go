package system

import (
	"image/color"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/evescroller/common"
	"github.com/milk9111/evescroller/ecs"
	"github.com/milk9111/evescroller/ecs/component"
	"github.com/milk9111/evescroller/movement"
)

var testPalette = component.AnimationPalette{
	Idle: color.RGBA{R: 10, A: 255},
	Run:  color.RGBA{G: 10, A: 255},
	Fast: color.RGBA{G: 250, A: 255},
	Jump: color.RGBA{B: 10, A: 255},
	Fall: color.RGBA{R: 10, B: 10, A: 255},
}

func addAnimator(t *testing.T, r *rig) *component.Animation {
	t.Helper()
	require.NoError(t, ecs.Add(r.w, r.player, component.AnimationComponent.Kind(), &component.Animation{
		Palette:     testPalette,
		Squash:      0.25,
		SquashSpeed: 5,
		Recover:     4,
	}))
	r.sched.Add(ecs.PhaseFrame, NewAnimationSystem())
	anim, _ := ecs.Get(r.w, r.player, component.AnimationComponent.Kind())
	return anim
}

func (r *rig) sprite() *component.Sprite {
	s, _ := ecs.Get(r.w, r.player, component.SpriteComponent.Kind())
	return s
}

func (r *rig) framesUntil(max int, done func() bool) bool {
	for i := 0; i < max; i++ {
		r.frames(1)
		if done() {
			return true
		}
	}
	return false
}

func TestAnimationFollowsMovement(t *testing.T) {
	r := newRig(t)
	anim := addAnimator(t, r)

	r.frames(30)
	assert.Equal(t, component.AnimIdle, anim.Current)
	assert.True(t, anim.Grounded)
	assert.Equal(t, testPalette.Idle, r.sprite().Color)

	r.input.next.MoveX = 1
	r.frames(10)
	assert.Equal(t, component.AnimRun, anim.Current)
	assert.Greater(t, anim.Speed, runThreshold)
	assert.Equal(t, testPalette.Run, r.sprite().Color, "still inside the buildup delay")

	r.input.next.MoveX = 0
	r.frames(30)
	require.Equal(t, component.AnimIdle, anim.Current)

	r.input.next.JumpPressed = true
	r.input.next.JumpHeld = true
	require.True(t, r.framesUntil(10, func() bool { return anim.Current == component.AnimJump }))
	assert.Equal(t, testPalette.Jump, r.sprite().Color)
	assert.Positive(t, anim.VelocityY)

	r.input.next.JumpHeld = false
	require.True(t, r.framesUntil(120, func() bool { return anim.Current == component.AnimFall }))
	assert.Equal(t, testPalette.Fall, r.sprite().Color)

	require.True(t, r.framesUntil(120, func() bool { return anim.Grounded }))
	assert.Equal(t, component.AnimIdle, anim.Current)
	assert.Positive(t, anim.Impact)
	tr := r.transform(r.player)
	assert.Less(t, tr.ScaleY, 1.0)
	assert.Greater(t, tr.ScaleX, 1.0)

	r.frames(60)
	assert.Zero(t, anim.Impact)
	assert.Equal(t, 1.0, tr.ScaleY)
}

func TestAnimationRunBlendsTowardFast(t *testing.T) {
	r := newRig(t)
	anim := addAnimator(t, r)
	r.frames(30)

	r.input.next.MoveX = 1
	require.True(t, r.framesUntil(240, func() bool { return r.ctrl.AtMaxSpeed() }))
	r.frames(1)

	assert.Equal(t, component.AnimRun, anim.Current)
	assert.Greater(t, anim.SpeedPercent, 0.9)
	assert.Greater(t, r.sprite().Color.G, uint8(200))
}

func TestAnimationTimerResetsOnStateChange(t *testing.T) {
	r := newRig(t)
	anim := addAnimator(t, r)
	r.frames(30)
	idle := anim.Timer
	assert.Positive(t, idle)

	r.input.next.MoveX = 1
	require.True(t, r.framesUntil(30, func() bool { return anim.Current == component.AnimRun }))
	assert.Zero(t, anim.Timer)
	r.frames(1)
	assert.InDelta(t, step, anim.Timer, 1e-9)
}

func TestLerpColor(t *testing.T) {
	a := color.RGBA{R: 0, G: 100, B: 200, A: 255}
	b := color.RGBA{R: 100, G: 0, B: 200, A: 255}
	tests := []struct {
		name string
		t    float64
		want color.RGBA
	}{
		{"start", 0, a},
		{"end", 1, b},
		{"middle", 0.5, color.RGBA{R: 50, G: 50, B: 200, A: 255}},
		{"clamped", 3, b},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, lerpColor(a, b, tc.t))
		})
	}
}

func TestTuningTriggerSwapsSprite(t *testing.T) {
	r := newRig(t)
	addAnimator(t, r)
	alt := movement.DefaultConfig()
	alt.JumpForce = 9
	swap := component.SpriteSwap{
		Width:   0.6,
		Height:  1.4,
		Color:   color.RGBA{R: 1, G: 2, B: 3, A: 255},
		Palette: component.AnimationPalette{Idle: color.RGBA{R: 9, A: 255}},
	}

	e := place(t, r.w, common.Vec2{X: 0, Y: 0.5})
	require.NoError(t, ecs.Add(r.w, e, component.TuningTriggerComponent.Kind(), &component.TuningTrigger{Config: alt, Sprite: &swap, Threshold: 1}))
	NewTuningTriggerSystem(zerolog.Nop()).Update(r.w)

	assert.Equal(t, alt, r.ctrl.Config())
	assert.Equal(t, 1.4, r.sprite().Height)
	assert.Equal(t, 0.6, r.sprite().Width)
	anim, _ := ecs.Get(r.w, r.player, component.AnimationComponent.Kind())
	assert.Equal(t, swap.Palette, anim.Palette)
}

func TestApplyAnimationKeepsPose(t *testing.T) {
	r := newRig(t)
	anim := addAnimator(t, r)
	anim.Current = component.AnimFall

	ApplyAnimation(r.w, component.Animation{Palette: component.AnimationPalette{Fall: color.RGBA{B: 77, A: 255}}, Squash: 0.1})

	assert.Equal(t, component.AnimFall, anim.Current)
	assert.Equal(t, uint8(77), anim.Palette.Fall.B)
	assert.Equal(t, 0.1, anim.Squash)
}
