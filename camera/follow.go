// Package camera implements a smoothed follow camera with two-stage
// horizontal look-ahead, a vertical deadzone, optional bounds and
// trauma-driven shake.
package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/evescroller/common"
)

// ErrInvalidConfig is returned by Validate for tuning the camera cannot use.
var ErrInvalidConfig = errors.New("camera: invalid config")

// Config is the follow tuning. Distances are world units, times seconds.
type Config struct {
	Offset common.Vec2 `yaml:"offset"`

	SmoothTimeX float64 `yaml:"smooth_time_x"`
	SmoothTimeY float64 `yaml:"smooth_time_y"`

	LookAheadFactor      float64 `yaml:"look_ahead_factor"`
	LookAheadThreshold   float64 `yaml:"look_ahead_threshold"`
	LookAheadReturnSpeed float64 `yaml:"look_ahead_return_speed"`

	VerticalDeadzone float64 `yaml:"vertical_deadzone"`

	MaxShake       float64 `yaml:"max_shake"`
	TraumaDecay    float64 `yaml:"trauma_decay"`
	NoiseFrequency float64 `yaml:"noise_frequency"`
}

func DefaultConfig() Config {
	return Config{
		Offset:               common.Vec2{Y: 1},
		SmoothTimeX:          0.15,
		SmoothTimeY:          0.25,
		LookAheadFactor:      2,
		LookAheadThreshold:   0.1,
		LookAheadReturnSpeed: 3,
		VerticalDeadzone:     1,
		MaxShake:             0.5,
		TraumaDecay:          1.5,
		NoiseFrequency:       25,
	}
}

func (c Config) Validate() error {
	switch {
	case c.SmoothTimeX < 0, c.SmoothTimeY < 0:
		return fmt.Errorf("%w: smooth times must not be negative", ErrInvalidConfig)
	case c.LookAheadReturnSpeed < 0:
		return fmt.Errorf("%w: look_ahead_return_speed must not be negative", ErrInvalidConfig)
	case c.VerticalDeadzone < 0:
		return fmt.Errorf("%w: vertical_deadzone must not be negative", ErrInvalidConfig)
	case c.MaxShake < 0:
		return fmt.Errorf("%w: max_shake must not be negative", ErrInvalidConfig)
	case c.TraumaDecay <= 0:
		return fmt.Errorf("%w: trauma_decay must be positive", ErrInvalidConfig)
	}
	return nil
}

// Target is a read-only snapshot of the tracked actor.
type Target struct {
	Position common.Vec2
	Velocity common.Vec2
}

// State is the smoothing state of one camera.
type State struct {
	// Position is the smoothed base, without shake.
	Position          common.Vec2
	CurrentVelocity   common.Vec2
	CurrentLookAheadX float64
	TargetLookAheadX  float64
	Trauma            float64
	Bounds            *common.Rect
}

// Follow tracks a Target. It never mutates the actor it follows.
type Follow struct {
	cfg     Config
	state   State
	target  Target
	enabled bool
	shake   shake
}

func New(cfg Config) (*Follow, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Follow{cfg: cfg, enabled: true, shake: newShake()}, nil
}

func (f *Follow) Config() Config { return f.cfg }

// SetConfig swaps tuning. Smoothing state carries over.
func (f *Follow) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("camera: set config: %w", err)
	}
	f.cfg = cfg
	return nil
}

func (f *Follow) SetTarget(t Target) { f.target = t }

func (f *Follow) SetBounds(r common.Rect) {
	f.state.Bounds = &r
	f.state.Position = f.clamp(f.state.Position)
}

func (f *Follow) ClearBounds() { f.state.Bounds = nil }

func (f *Follow) SetFollowingEnabled(enabled bool) { f.enabled = enabled }

func (f *Follow) FollowingEnabled() bool { return f.enabled }

// SetPositionInstant moves the camera without interpolation and drops all
// smoothing and look-ahead state.
func (f *Follow) SetPositionInstant(p common.Vec2) {
	f.state.Position = f.clamp(p)
	f.state.CurrentVelocity = common.Vec2{}
	f.state.CurrentLookAheadX = 0
	f.state.TargetLookAheadX = 0
}

// AddTrauma raises the shake intensity, saturating at 1.
func (f *Follow) AddTrauma(amount float64) {
	f.state.Trauma = common.Clamp01(f.state.Trauma + amount)
}

func (f *Follow) Trauma() float64 { return f.state.Trauma }

func (f *Follow) State() State { return f.state }

// Position is the last output position, shake included.
func (f *Follow) Position() common.Vec2 {
	return f.state.Position.Add(f.shake.offset)
}

// BasePosition is the smoothed position without shake.
func (f *Follow) BasePosition() common.Vec2 { return f.state.Position }

// ShakeOffset is the shake applied to the last output.
func (f *Follow) ShakeOffset() common.Vec2 { return f.shake.offset }

// ShakeAmplitude is MaxShake scaled by trauma squared.
func (f *Follow) ShakeAmplitude() float64 {
	return f.cfg.MaxShake * f.state.Trauma * f.state.Trauma
}

// Update advances one render tick and returns the output position. It does
// nothing unless following is enabled and playing is true.
func (f *Follow) Update(dt float64, playing bool) common.Vec2 {
	if !f.enabled || !playing || dt <= 0 {
		return f.Position()
	}
	cfg := f.cfg
	s := &f.state

	vx := f.target.Velocity.X
	if math.Abs(vx) > cfg.LookAheadThreshold {
		s.TargetLookAheadX = cfg.LookAheadFactor * common.Sign(vx) * math.Min(math.Abs(vx)*0.5, 1)
	} else {
		s.TargetLookAheadX = common.MoveTowards(s.TargetLookAheadX, 0, cfg.LookAheadReturnSpeed*dt)
	}
	s.CurrentLookAheadX = common.MoveTowards(s.CurrentLookAheadX, s.TargetLookAheadX, cfg.LookAheadReturnSpeed*dt)

	goal := f.target.Position.Add(cfg.Offset)
	goal.X += s.CurrentLookAheadX
	if math.Abs(goal.Y-s.Position.Y) <= cfg.VerticalDeadzone {
		goal.Y = s.Position.Y
	}

	s.Position.X = common.SmoothDamp(s.Position.X, goal.X, &s.CurrentVelocity.X, cfg.SmoothTimeX, math.Inf(1), dt)
	s.Position.Y = common.SmoothDamp(s.Position.Y, goal.Y, &s.CurrentVelocity.Y, cfg.SmoothTimeY, math.Inf(1), dt)
	s.Position = f.clamp(s.Position)

	f.shake.update(f, dt)
	return f.Position()
}

func (f *Follow) clamp(p common.Vec2) common.Vec2 {
	if f.state.Bounds == nil {
		return p
	}
	return f.state.Bounds.ClampPoint(p)
}
