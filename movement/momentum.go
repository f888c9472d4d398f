package movement

import (
	"math"

	"github.com/milk9111/evescroller/common"
)

// updateMomentum advances the speed buildup for one tick. dir is the held
// direction (-1, 0, 1). It reports whether max speed was reached this tick.
func (c *Controller) updateMomentum(dir, now, dt float64) bool {
	m := c.cfg.Momentum
	s := &c.state

	if dir != 0 && dir == s.MoveDirection && !s.Decaying {
		if s.Grounded {
			elapsed := now - s.BuildupStartTime - m.SpeedBuildupDelay
			if elapsed > 0 {
				ramp := common.Lerp(m.InitialMoveSpeed, m.MaxMoveSpeed, common.Clamp01(elapsed/m.SpeedBuildupRate))
				s.CurrentMoveSpeed = math.Max(s.CurrentMoveSpeed, ramp)
			}
		} else {
			// airborne: freeze the hold clock so landing resumes the same ramp
			s.BuildupStartTime += dt
		}
	} else {
		s.MoveDirection = dir
		s.CurrentMoveSpeed = math.Max(m.InitialMoveSpeed, s.CurrentMoveSpeed-m.SpeedLossRate*dt)
		s.Decaying = true
		if s.CurrentMoveSpeed < m.InitialMoveSpeed+speedEpsilon {
			c.resetBuildup(now)
		}
	}

	s.CurrentMoveSpeed = common.Clamp(s.CurrentMoveSpeed, m.InitialMoveSpeed, m.MaxMoveSpeed)
	return c.latchMaxSpeed()
}

func (c *Controller) latchMaxSpeed() bool {
	s := &c.state
	if s.HasReachedMaxSpeed || s.CurrentMoveSpeed < c.cfg.Momentum.MaxMoveSpeed*maxSpeedRatio {
		return false
	}
	s.HasReachedMaxSpeed = true
	return true
}

// resetBuildup returns the momentum state to its initial values.
func (c *Controller) resetBuildup(now float64) {
	s := &c.state
	s.CurrentMoveSpeed = c.cfg.Momentum.InitialMoveSpeed
	s.HasReachedMaxSpeed = false
	s.Decaying = false
	s.BuildupStartTime = now
}

// rebaseBuildup moves the buildup start so the ramp formula reproduces the
// current speed at now.
func (c *Controller) rebaseBuildup(now float64) {
	m := c.cfg.Momentum
	s := &c.state
	t := common.InverseLerp(m.InitialMoveSpeed, m.MaxMoveSpeed, s.CurrentMoveSpeed)
	if t <= 0 {
		return
	}
	s.BuildupStartTime = now - m.SpeedBuildupDelay - t*m.SpeedBuildupRate
}

// ResetSpeed drops straight back to the initial move speed.
func (c *Controller) ResetSpeed() {
	c.resetBuildup(c.lastNow)
}

// BoostSpeed adds amount to the current move speed and rebases the buildup
// clock so the ramp continues from the boosted value.
func (c *Controller) BoostSpeed(amount float64) {
	m := c.cfg.Momentum
	s := &c.state
	s.CurrentMoveSpeed = common.Clamp(s.CurrentMoveSpeed+amount, m.InitialMoveSpeed, m.MaxMoveSpeed)
	s.Decaying = false
	c.rebaseBuildup(c.lastNow)
	if c.latchMaxSpeed() {
		c.pendingMaxSpeed = true
	}
}
