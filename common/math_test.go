package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoveTowards(t *testing.T) {
	tests := []struct {
		name                     string
		current, target, maxStep float64
		want                     float64
	}{
		{"step_up", 0, 10, 3, 3},
		{"step_down", 0, -10, 3, -3},
		{"snap_when_close", 9, 10, 3, 10},
		{"already_there", 5, 5, 1, 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, MoveTowards(tc.current, tc.target, tc.maxStep), 1e-9)
		})
	}
}

func TestInverseLerp(t *testing.T) {
	assert.InDelta(t, 0.5, InverseLerp(2, 4, 3), 1e-9)
	assert.Equal(t, 0.0, InverseLerp(2, 4, 1))
	assert.Equal(t, 1.0, InverseLerp(2, 4, 8))
	assert.Equal(t, 0.0, InverseLerp(3, 3, 3))
}

func TestSmoothDampConvergesWithoutOvershoot(t *testing.T) {
	pos, vel := 0.0, 0.0
	prev := pos
	for i := 0; i < 600; i++ {
		pos = SmoothDamp(pos, 10, &vel, 0.2, math.Inf(1), 1.0/60)
		assert.LessOrEqual(t, pos, 10.0)
		assert.GreaterOrEqual(t, pos, prev)
		prev = pos
	}
	assert.InDelta(t, 10, pos, 1e-3)
}

func TestSmoothDampZeroDelta(t *testing.T) {
	vel := 1.0
	assert.Equal(t, 3.0, SmoothDamp(3, 10, &vel, 0.2, math.Inf(1), 0))
	assert.Equal(t, 1.0, vel)
}

func TestRectClampPoint(t *testing.T) {
	r := Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 5}
	assert.Equal(t, Vec2{X: 10, Y: 0}, r.ClampPoint(Vec2{X: 12, Y: -3}))
	assert.Equal(t, Vec2{X: 4, Y: 4}, r.ClampPoint(Vec2{X: 4, Y: 4}))

	degenerate := Rect{MinX: 4, MinY: 0, MaxX: 2, MaxY: 5}
	assert.Equal(t, 3.0, degenerate.ClampPoint(Vec2{X: 100, Y: 1}).X)
}

func TestNoiseRangeAndDecorrelation(t *testing.T) {
	a := NewNoise1D(1)
	b := NewNoise1D(2)
	same := 0
	for i := 0; i < 200; i++ {
		tt := float64(i) * 0.37
		va, vb := a.Sample(tt), b.Sample(tt)
		assert.GreaterOrEqual(t, va, -1.0)
		assert.LessOrEqual(t, va, 1.0)
		if va == vb {
			same++
		}
	}
	assert.Less(t, same, 200)
}

func TestNoiseIsContinuous(t *testing.T) {
	n := NewNoise1D(7)
	prev := n.Sample(0)
	for i := 1; i < 1000; i++ {
		v := n.Sample(float64(i) * 0.001)
		assert.Less(t, math.Abs(v-prev), 0.05)
		prev = v
	}
}
