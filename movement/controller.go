package movement

import (
	"fmt"
	"math"

	"github.com/milk9111/evescroller/common"
)

// Input is the per-tick control state. JumpPressed is the press edge;
// JumpHeld is true for every tick the button is down, including the press.
type Input struct {
	MoveX       float64
	JumpPressed bool
	JumpHeld    bool
}

// Tick carries everything the controller reads in one fixed step.
type Tick struct {
	Input    Input
	Grounded bool
	Position common.Vec2
	Velocity common.Vec2
	// Dt is the fixed step length in seconds.
	Dt float64
	// Now is the global elapsed game time in seconds.
	Now float64
}

// Events are the one-shot signals raised during a tick.
type Events struct {
	Jumped          bool
	Landed          bool
	LandingSpeed    float64
	JumpCut         bool
	MaxSpeedReached bool
	Flipped         bool
}

// Result is the velocity to hand back to the physics body plus the events
// the tick produced.
type Result struct {
	Velocity common.Vec2
	Events   Events
}

// State is the actor's kinematic state. It is owned by the Controller and
// only exposed as a copy.
type State struct {
	Position    common.Vec2
	Velocity    common.Vec2
	Grounded    bool
	WasGrounded bool
	FacingRight bool

	CurrentMoveSpeed   float64
	HasReachedMaxSpeed bool
	Decaying           bool
	MoveDirection      float64
	// BuildupStartTime is on the global clock. A facing flip before any
	// speed has built restarts it.
	BuildupStartTime float64

	Jumping           bool
	JumpHoldTimer     float64
	ReleaseLatched    bool
	CoyoteTimeCounter float64
	JumpBufferCounter float64
}

// Controller turns input and ground contact into velocity, one fixed tick
// at a time.
type Controller struct {
	cfg     Config
	state   State
	enabled bool
	lastNow float64

	pendingVelocity *common.Vec2
	pendingForce    common.Vec2
	pendingMaxSpeed bool
}

// maxSpeedRatio is how close to MaxMoveSpeed counts as having reached it.
const maxSpeedRatio = 0.98

// speedEpsilon is the slack above InitialMoveSpeed at which a decay counts
// as finished.
const speedEpsilon = 0.01

// New validates cfg and returns a grounded-agnostic controller facing right.
func New(cfg Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{cfg: cfg, enabled: true}
	c.state.FacingRight = true
	c.state.CurrentMoveSpeed = cfg.Momentum.InitialMoveSpeed
	return c, nil
}

// Config returns the active tuning.
func (c *Controller) Config() Config { return c.cfg }

// SetConfig swaps tuning in place. Kinematic state survives; speed and
// timers are clamped into the new ranges.
func (c *Controller) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("movement: set config: %w", err)
	}
	c.cfg = cfg
	s := &c.state
	s.CurrentMoveSpeed = common.Clamp(s.CurrentMoveSpeed, cfg.Momentum.InitialMoveSpeed, cfg.Momentum.MaxMoveSpeed)
	s.JumpHoldTimer = math.Min(s.JumpHoldTimer, cfg.MaxJumpDuration)
	s.CoyoteTimeCounter = math.Min(s.CoyoteTimeCounter, cfg.CoyoteTime)
	s.JumpBufferCounter = math.Min(s.JumpBufferCounter, cfg.JumpBufferTime)
	if s.CurrentMoveSpeed < cfg.Momentum.MaxMoveSpeed*maxSpeedRatio {
		s.HasReachedMaxSpeed = false
	}
	c.rebaseBuildup(c.lastNow)
	return nil
}

func (c *Controller) Enabled() bool { return c.enabled }

// SetEnabled gates Update. A disabled controller passes velocity through
// untouched.
func (c *Controller) SetEnabled(enabled bool) { c.enabled = enabled }

// Update runs one fixed tick.
func (c *Controller) Update(t Tick) Result {
	if !c.enabled {
		return Result{Velocity: t.Velocity}
	}

	cfg := c.cfg
	s := &c.state
	dt := math.Max(0, t.Dt)
	c.lastNow = t.Now

	vel := t.Velocity
	if c.pendingVelocity != nil {
		vel = *c.pendingVelocity
		c.pendingVelocity = nil
	}
	vel = vel.Add(c.pendingForce)
	c.pendingForce = common.Vec2{}

	var ev Events
	if c.pendingMaxSpeed {
		ev.MaxSpeedReached = true
		c.pendingMaxSpeed = false
	}

	prevVelocity := s.Velocity
	s.WasGrounded = s.Grounded
	s.Grounded = t.Grounded
	s.Position = t.Position

	if s.Grounded && !s.WasGrounded {
		ev.Landed = true
		ev.LandingSpeed = math.Max(0, -prevVelocity.Y)
	}
	if s.Jumping && s.Grounded && (!s.WasGrounded || vel.Y <= 0) {
		s.Jumping = false
		s.JumpHoldTimer = 0
		s.ReleaseLatched = false
	}

	if s.Grounded {
		s.CoyoteTimeCounter = cfg.CoyoteTime
	} else {
		s.CoyoteTimeCounter = math.Max(0, s.CoyoteTimeCounter-dt)
	}

	if t.Input.JumpPressed {
		s.JumpBufferCounter = cfg.JumpBufferTime
	} else {
		s.JumpBufferCounter = math.Max(0, s.JumpBufferCounter-dt)
	}

	jumped := false
	if s.JumpBufferCounter > 0 && s.CoyoteTimeCounter > 0 && !s.Jumping {
		vel.Y = cfg.JumpForce
		s.Jumping = true
		s.JumpHoldTimer = 0
		s.ReleaseLatched = false
		s.JumpBufferCounter = 0
		s.CoyoteTimeCounter = 0
		ev.Jumped = true
		jumped = true
	}

	if s.Jumping && !jumped && vel.Y > 0 {
		if t.Input.JumpHeld && !s.ReleaseLatched {
			if s.JumpHoldTimer < cfg.MaxJumpDuration {
				step := math.Min(dt, cfg.MaxJumpDuration-s.JumpHoldTimer)
				vel.Y += cfg.JumpHoldForce * step
				s.JumpHoldTimer += step
			}
		} else if !s.ReleaseLatched {
			s.ReleaseLatched = true
			s.JumpHoldTimer = cfg.MaxJumpDuration
			if vel.Y > cfg.JumpCutThreshold {
				vel.Y *= cfg.JumpCutFactor
				ev.JumpCut = true
			}
		}
	}

	if vel.Y < 0 {
		vel.Y -= cfg.Gravity * (cfg.FallMultiplier - 1) * dt
		if cfg.MaxFallSpeed > 0 && vel.Y < -cfg.MaxFallSpeed {
			vel.Y = -cfg.MaxFallSpeed
		}
	}

	moveX := c.axis(t.Input.MoveX)
	if cfg.Momentum.Enabled {
		if c.updateMomentum(common.Sign(moveX), t.Now, dt) {
			ev.MaxSpeedReached = true
		}
	} else {
		s.CurrentMoveSpeed = cfg.Momentum.InitialMoveSpeed
	}

	target := moveX * s.CurrentMoveSpeed
	rate := cfg.Acceleration
	if target == 0 && cfg.Deceleration > 0 {
		rate = cfg.Deceleration
	}
	if !s.Grounded {
		rate *= cfg.AirControl
	}
	vel.X = common.MoveTowards(vel.X, target, rate*dt)
	vel.X = common.Clamp(vel.X, -cfg.MaxSpeed, cfg.MaxSpeed)

	if (vel.X > cfg.FlipDeadzone && !s.FacingRight) || (vel.X < -cfg.FlipDeadzone && s.FacingRight) {
		s.FacingRight = !s.FacingRight
		if !s.Decaying && s.CurrentMoveSpeed <= cfg.Momentum.InitialMoveSpeed+speedEpsilon {
			s.BuildupStartTime = t.Now
		}
		ev.Flipped = true
	}

	s.Velocity = vel
	return Result{Velocity: vel, Events: ev}
}

// axis applies the deadzone and clamps to [-1,1].
func (c *Controller) axis(x float64) float64 {
	if math.Abs(x) <= c.cfg.InputDeadzone {
		return 0
	}
	return common.Clamp(x, -1, 1)
}

// AddForce queues a velocity change applied at the start of the next tick.
func (c *Controller) AddForce(delta common.Vec2) {
	c.pendingForce = c.pendingForce.Add(delta)
}

// SetVelocity overrides the body velocity at the start of the next tick.
func (c *Controller) SetVelocity(v common.Vec2) {
	c.pendingVelocity = &v
}

// Teleport drops all motion and jump state, keeping tuning and facing.
func (c *Controller) Teleport(pos common.Vec2) {
	c.SetVelocity(common.Vec2{})
	c.pendingForce = common.Vec2{}
	s := &c.state
	s.Position = pos
	s.Velocity = common.Vec2{}
	s.Grounded = false
	s.WasGrounded = false
	s.Jumping = false
	s.JumpHoldTimer = 0
	s.ReleaseLatched = false
	s.CoyoteTimeCounter = 0
	s.JumpBufferCounter = 0
	c.resetBuildup(c.lastNow)
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Grounded() bool    { return c.state.Grounded }
func (c *Controller) FacingRight() bool { return c.state.FacingRight }
func (c *Controller) Jumping() bool     { return c.state.Jumping }
func (c *Controller) VelocityX() float64 {
	return c.state.Velocity.X
}
func (c *Controller) VelocityY() float64 {
	return c.state.Velocity.Y
}
func (c *Controller) CurrentMoveSpeed() float64 { return c.state.CurrentMoveSpeed }
func (c *Controller) AtMaxSpeed() bool          { return c.state.HasReachedMaxSpeed }

// SpeedPercent is where the current move speed sits between initial and max.
func (c *Controller) SpeedPercent() float64 {
	m := c.cfg.Momentum
	return common.InverseLerp(m.InitialMoveSpeed, m.MaxMoveSpeed, c.state.CurrentMoveSpeed)
}
