package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/evescroller/movement"
)

func TestMeasureDefaultTuning(t *testing.T) {
	r, err := measure(movement.DefaultConfig(), 5)
	require.NoError(t, err)

	assert.Greater(t, r.TimeToMaxSpeed, 0.4, "buildup delay comes first")
	assert.InDelta(t, movement.DefaultConfig().Momentum.MaxMoveSpeed, r.TopSpeed, 0.2)

	assert.Greater(t, r.TapApex, 0.0)
	assert.Greater(t, r.HeldApex, r.TapApex)
	assert.Greater(t, r.HeldAirtime, r.TapAirtime)
	assert.Positive(t, r.TapAirtime)
}

func TestMeasureWithoutMomentumNeverLatches(t *testing.T) {
	cfg := movement.DefaultConfig()
	cfg.Momentum.Enabled = false
	r, err := measure(cfg, 2)
	require.NoError(t, err)
	assert.Equal(t, -1.0, r.TimeToMaxSpeed)
}

func TestMeasureRejectsInvalidTuning(t *testing.T) {
	cfg := movement.DefaultConfig()
	cfg.Acceleration = 0
	_, err := measure(cfg, 1)
	assert.Error(t, err)
}
