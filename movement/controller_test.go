package movement

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/evescroller/common"
)

const testDt = 0.02

// rig feeds a controller the way the physics system does: the velocity it
// returns comes back next tick, with plain gravity applied while airborne.
type rig struct {
	c   *Controller
	vel common.Vec2
	now float64
}

func newRig(t *testing.T, mutate func(*Config)) *rig {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	c, err := New(cfg)
	require.NoError(t, err)
	return &rig{c: c}
}

func (r *rig) step(in Input, grounded bool) Result {
	r.now += testDt
	res := r.c.Update(Tick{Input: in, Grounded: grounded, Velocity: r.vel, Dt: testDt, Now: r.now})
	r.vel = res.Velocity
	if grounded && r.vel.Y < 0 {
		r.vel.Y = 0
	}
	if !grounded {
		r.vel.Y -= r.c.Config().Gravity * testDt
	}
	return res
}

func (r *rig) idle(n int, grounded bool) {
	for i := 0; i < n; i++ {
		r.step(Input{}, grounded)
	}
}

var (
	press = Input{JumpPressed: true, JumpHeld: true}
	hold  = Input{JumpHeld: true}
	right = Input{MoveX: 1}
)

func TestJumpFromRest(t *testing.T) {
	r := newRig(t, nil)
	r.idle(3, true)

	res := r.step(press, true)

	assert.True(t, res.Events.Jumped)
	assert.Equal(t, r.c.Config().JumpForce, res.Velocity.Y)
	s := r.c.State()
	assert.True(t, s.Jumping)
	assert.Zero(t, s.CoyoteTimeCounter)
	assert.Zero(t, s.JumpBufferCounter)
}

func TestSingleJumpPerWindow(t *testing.T) {
	r := newRig(t, nil)
	r.idle(2, true)

	jumps := 0
	count := func(res Result) {
		if res.Events.Jumped {
			jumps++
		}
	}

	count(r.step(press, true))
	// still overlapping the ground probe while ascending
	count(r.step(press, true))
	count(r.step(press, true))
	// airborne, pressing again inside the coyote window
	count(r.step(Input{}, false))
	count(r.step(press, false))
	count(r.step(press, false))
	count(r.step(hold, false))

	assert.Equal(t, 1, jumps)
	assert.True(t, r.c.Jumping())
}

func TestCoyoteTimeGrace(t *testing.T) {
	tests := []struct {
		name      string
		airborne  int
		wantJumps bool
	}{
		{"pressed_150ms_after_ledge", 8, true},
		{"pressed_after_window", 12, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newRig(t, nil)
			r.idle(5, true)
			r.idle(tc.airborne-1, false)

			res := r.step(press, false)

			assert.Equal(t, tc.wantJumps, res.Events.Jumped)
			if tc.wantJumps {
				assert.Equal(t, r.c.Config().JumpForce, res.Velocity.Y)
			}
		})
	}
}

func TestJumpBufferHonoursEarlyPress(t *testing.T) {
	r := newRig(t, nil)
	r.idle(2, true)
	r.idle(30, false)

	res := r.step(press, false)
	require.False(t, res.Events.Jumped)
	r.step(hold, false)
	r.step(hold, false)

	res = r.step(hold, true)
	assert.True(t, res.Events.Landed)
	assert.True(t, res.Events.Jumped)
	assert.Equal(t, r.c.Config().JumpForce, res.Velocity.Y)
}

func TestJumpBufferExpires(t *testing.T) {
	r := newRig(t, nil)
	r.idle(2, true)
	r.idle(30, false)

	r.step(press, false)
	r.idle(10, false)

	res := r.step(Input{}, true)
	assert.False(t, res.Events.Jumped)
}

func TestVariableJumpHeight(t *testing.T) {
	peak := func(held bool) float64 {
		r := newRig(t, nil)
		r.idle(2, true)
		r.step(press, true)
		in := Input{}
		if held {
			in = hold
		}
		best := 0.0
		for i := 0; i < 10; i++ {
			res := r.step(in, false)
			if res.Velocity.Y > best {
				best = res.Velocity.Y
			}
		}
		return best
	}
	assert.Greater(t, peak(true), peak(false))
}

func TestJumpHoldBoundedByMaxDuration(t *testing.T) {
	r := newRig(t, nil)
	r.idle(2, true)
	r.step(press, true)
	for i := 0; i < 40; i++ {
		r.step(hold, false)
		s := r.c.State()
		assert.LessOrEqual(t, s.JumpHoldTimer, r.c.Config().MaxJumpDuration+1e-12)
		assert.GreaterOrEqual(t, s.JumpHoldTimer, 0.0)
	}
}

func TestJumpCutAppliedOnce(t *testing.T) {
	r := newRig(t, nil)
	r.idle(2, true)
	r.step(press, true)

	before := r.vel.Y
	res := r.step(Input{}, false)
	require.True(t, res.Events.JumpCut)
	assert.Less(t, res.Velocity.Y, before*r.c.Config().JumpCutFactor+1e-9)

	cuts := 0
	for _, in := range []Input{hold, {}, hold, {}} {
		if r.step(in, false).Events.JumpCut {
			cuts++
		}
	}
	assert.Zero(t, cuts)
}

func TestFallMultiplier(t *testing.T) {
	r := newRig(t, nil)
	cfg := r.c.Config()
	res := r.c.Update(Tick{Velocity: common.Vec2{Y: -1}, Dt: testDt, Now: testDt})
	want := -1 - cfg.Gravity*(cfg.FallMultiplier-1)*testDt
	assert.InDelta(t, want, res.Velocity.Y, 1e-9)

	res = r.c.Update(Tick{Velocity: common.Vec2{Y: -100}, Dt: testDt, Now: 2 * testDt})
	assert.Equal(t, -cfg.MaxFallSpeed, res.Velocity.Y)
}

func TestMoveSpeedStaysInRange(t *testing.T) {
	r := newRig(t, nil)
	m := r.c.Config().Momentum
	rng := rand.New(rand.NewSource(42))
	moves := []float64{-1, -0.5, 0, 0.1, 0.5, 1}
	for i := 0; i < 5000; i++ {
		in := Input{MoveX: moves[rng.Intn(len(moves))]}
		if rng.Intn(10) == 0 {
			in.JumpPressed, in.JumpHeld = true, true
		}
		if rng.Intn(200) == 0 {
			r.c.BoostSpeed(rng.Float64() * 3)
		}
		// hold the same input for a while so buildups actually happen
		for j := 0; j < 1+rng.Intn(60); j++ {
			r.step(in, rng.Intn(6) != 0)
			speed := r.c.CurrentMoveSpeed()
			require.GreaterOrEqual(t, speed, m.InitialMoveSpeed)
			require.LessOrEqual(t, speed, m.MaxMoveSpeed)
		}
	}
}

func reachMaxSpeed(t *testing.T, r *rig) int {
	t.Helper()
	events := 0
	for i := 0; i < 200; i++ {
		if r.step(right, true).Events.MaxSpeedReached {
			events++
		}
	}
	require.True(t, r.c.AtMaxSpeed())
	return events
}

func TestSpeedBuildup(t *testing.T) {
	r := newRig(t, nil)
	m := r.c.Config().Momentum

	// inside the buildup delay nothing changes
	for i := 0; i < 10; i++ {
		r.step(right, true)
	}
	assert.Equal(t, m.InitialMoveSpeed, r.c.CurrentMoveSpeed())

	r2 := newRig(t, nil)
	assert.Equal(t, 1, reachMaxSpeed(t, r2))
	assert.InDelta(t, 1.0, r2.c.SpeedPercent(), 1e-9)
	assert.InDelta(t, m.MaxMoveSpeed, r2.vel.X, 1e-9)
}

func TestSpeedDecaysAfterRelease(t *testing.T) {
	r := newRig(t, nil)
	m := r.c.Config().Momentum
	reachMaxSpeed(t, r)

	prev := r.c.CurrentMoveSpeed()
	step := m.SpeedLossRate * testDt
	for i := 0; i < 100 && r.c.CurrentMoveSpeed() > m.InitialMoveSpeed; i++ {
		r.step(Input{}, true)
		cur := r.c.CurrentMoveSpeed()
		if cur > m.InitialMoveSpeed {
			assert.InDelta(t, prev-step, cur, 1e-9)
		}
		prev = cur
	}

	assert.Equal(t, m.InitialMoveSpeed, r.c.CurrentMoveSpeed())
	assert.False(t, r.c.AtMaxSpeed())
	assert.False(t, r.c.State().Decaying)
}

func TestReversingDecaysMomentum(t *testing.T) {
	r := newRig(t, nil)
	reachMaxSpeed(t, r)
	before := r.c.CurrentMoveSpeed()

	res := r.step(Input{MoveX: -1}, true)

	assert.Less(t, r.c.CurrentMoveSpeed(), before)
	assert.True(t, r.c.State().Decaying)
	assert.False(t, res.Events.MaxSpeedReached)
}

func TestBoostSpeedKeepsRampContinuous(t *testing.T) {
	r := newRig(t, nil)
	m := r.c.Config().Momentum
	for i := 0; i < 5; i++ {
		r.step(right, true)
	}
	r.c.BoostSpeed((m.MaxMoveSpeed - m.InitialMoveSpeed) / 2)
	boosted := r.c.CurrentMoveSpeed()

	r.step(right, true)
	assert.GreaterOrEqual(t, r.c.CurrentMoveSpeed(), boosted)
	assert.Less(t, r.c.CurrentMoveSpeed()-boosted, 0.1)
}

func TestBoostToMaxFiresOnce(t *testing.T) {
	r := newRig(t, nil)
	r.c.BoostSpeed(100)
	assert.True(t, r.c.AtMaxSpeed())

	events := 0
	for i := 0; i < 5; i++ {
		if r.step(right, true).Events.MaxSpeedReached {
			events++
		}
	}
	assert.Equal(t, 1, events)
}

func TestResetSpeed(t *testing.T) {
	r := newRig(t, nil)
	reachMaxSpeed(t, r)
	r.c.ResetSpeed()
	assert.Equal(t, r.c.Config().Momentum.InitialMoveSpeed, r.c.CurrentMoveSpeed())
	assert.False(t, r.c.AtMaxSpeed())
}

func TestHorizontalNeverOvershoots(t *testing.T) {
	r := newRig(t, func(c *Config) { c.Momentum.Enabled = false })
	target := r.c.Config().Momentum.InitialMoveSpeed
	for i := 0; i < 30; i++ {
		res := r.step(right, true)
		assert.LessOrEqual(t, res.Velocity.X, target+1e-9)
	}
	assert.InDelta(t, target, r.vel.X, 1e-9)
}

func TestAirControlSlowsAcceleration(t *testing.T) {
	ground := newRig(t, nil)
	air := newRig(t, nil)
	g := ground.step(right, true)
	a := air.step(right, false)
	assert.Greater(t, g.Velocity.X, a.Velocity.X)
}

func TestAddForceClampedToMaxSpeed(t *testing.T) {
	r := newRig(t, nil)
	r.c.AddForce(common.Vec2{X: 500})
	res := r.step(Input{}, true)
	assert.Equal(t, r.c.Config().MaxSpeed, res.Velocity.X)
}

func TestSetVelocityOverridesNextTick(t *testing.T) {
	r := newRig(t, nil)
	r.vel = common.Vec2{X: 3, Y: 3}
	r.c.SetVelocity(common.Vec2{Y: 2})
	res := r.step(Input{}, false)
	assert.Equal(t, 0.0, res.Velocity.X)
	assert.InDelta(t, 2, res.Velocity.Y, 1e-9)
}

func TestFacingFlip(t *testing.T) {
	r := newRig(t, nil)
	require.True(t, r.c.FacingRight())

	flipped := false
	for i := 0; i < 5; i++ {
		if r.step(Input{MoveX: -1}, true).Events.Flipped {
			flipped = true
		}
	}
	assert.True(t, flipped)
	assert.False(t, r.c.FacingRight())
	assert.InDelta(t, r.now-4*testDt, r.c.State().BuildupStartTime, 1e-9, "flip happens on the first tick past the deadzone")
}

func TestFacingFlipRestartsBuildupHold(t *testing.T) {
	cfg := DefaultConfig()
	r := newRig(t, nil)
	for i := 0; i < 10; i++ {
		r.step(Input{MoveX: 1}, true)
	}
	require.True(t, r.c.FacingRight())
	require.InDelta(t, cfg.Momentum.InitialMoveSpeed, r.c.State().CurrentMoveSpeed, 1e-9)

	r.c.SetVelocity(common.Vec2{X: -cfg.MaxSpeed})
	for i := 0; i < 60 && r.c.FacingRight(); i++ {
		r.step(Input{MoveX: 1}, true)
	}
	require.False(t, r.c.FacingRight())
	for i := 0; i < 60 && !r.c.FacingRight(); i++ {
		r.step(Input{MoveX: 1}, true)
	}
	require.True(t, r.c.FacingRight())
	flippedAt := r.now
	assert.InDelta(t, flippedAt, r.c.State().BuildupStartTime, 1e-9)

	// the hold counts from the last flip
	for i := 0; i < int(cfg.Momentum.SpeedBuildupDelay/testDt)-1; i++ {
		r.step(Input{MoveX: 1}, true)
	}
	assert.InDelta(t, cfg.Momentum.InitialMoveSpeed, r.c.State().CurrentMoveSpeed, 1e-9)
}

func TestLandingEventCarriesImpactSpeed(t *testing.T) {
	r := newRig(t, nil)
	r.idle(2, true)
	r.idle(40, false)
	falling := r.c.VelocityY()
	require.Less(t, falling, 0.0)

	res := r.step(Input{}, true)
	assert.True(t, res.Events.Landed)
	assert.InDelta(t, -falling, res.Events.LandingSpeed, 1e-9)
	assert.False(t, r.c.Jumping())
}

func TestDisabledControllerPassesThrough(t *testing.T) {
	r := newRig(t, nil)
	r.c.SetEnabled(false)
	in := common.Vec2{X: 1, Y: 2}
	res := r.c.Update(Tick{Input: press, Grounded: true, Velocity: in, Dt: testDt})
	assert.Equal(t, in, res.Velocity)
	assert.False(t, res.Events.Jumped)
}

func TestMomentumDisabledUsesInitialSpeed(t *testing.T) {
	r := newRig(t, func(c *Config) { c.Momentum.Enabled = false })
	for i := 0; i < 200; i++ {
		r.step(right, true)
	}
	assert.Equal(t, r.c.Config().Momentum.InitialMoveSpeed, r.c.CurrentMoveSpeed())
}

func TestSetConfigClampsState(t *testing.T) {
	r := newRig(t, nil)
	reachMaxSpeed(t, r)

	cfg := r.c.Config()
	cfg.Momentum.MaxMoveSpeed = 3.5
	require.NoError(t, r.c.SetConfig(cfg))
	assert.Equal(t, 3.5, r.c.CurrentMoveSpeed())

	cfg.Acceleration = -1
	assert.ErrorIs(t, r.c.SetConfig(cfg), ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero_acceleration", func(c *Config) { c.Acceleration = 0 }},
		{"air_control_above_one", func(c *Config) { c.AirControl = 2 }},
		{"max_below_initial", func(c *Config) { c.Momentum.MaxMoveSpeed = 1 }},
		{"max_move_above_cap", func(c *Config) { c.Momentum.MaxMoveSpeed = 50 }},
		{"fall_multiplier_below_one", func(c *Config) { c.FallMultiplier = 0.5 }},
		{"negative_coyote", func(c *Config) { c.CoyoteTime = -1 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			_, err := New(cfg)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
	assert.NoError(t, DefaultConfig().Validate())
}
