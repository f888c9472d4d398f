// Package movement implements the player movement controller: coyote time,
// jump buffering, variable jump height, fall gravity and horizontal speed
// momentum. It is engine-agnostic; callers feed it one Tick per fixed
// simulation step and write the returned velocity back to the physics body.
package movement

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned for tuning values that would put the
// controller into an undefined state.
var ErrInvalidConfig = errors.New("movement: invalid config")

// Config holds the tuning knobs for a Controller. Units are world units and
// seconds; Gravity is the magnitude of the world's downward acceleration.
type Config struct {
	Acceleration  float64 `yaml:"acceleration"`
	Deceleration  float64 `yaml:"deceleration"`
	AirControl    float64 `yaml:"air_control"`
	MaxSpeed      float64 `yaml:"max_speed"`
	FlipDeadzone  float64 `yaml:"flip_deadzone"`
	InputDeadzone float64 `yaml:"input_deadzone"`

	JumpForce        float64 `yaml:"jump_force"`
	JumpHoldForce    float64 `yaml:"jump_hold_force"`
	MaxJumpDuration  float64 `yaml:"max_jump_duration"`
	JumpCutThreshold float64 `yaml:"jump_cut_threshold"`
	JumpCutFactor    float64 `yaml:"jump_cut_factor"`
	CoyoteTime       float64 `yaml:"coyote_time"`
	JumpBufferTime   float64 `yaml:"jump_buffer_time"`

	Gravity        float64 `yaml:"gravity"`
	FallMultiplier float64 `yaml:"fall_multiplier"`
	MaxFallSpeed   float64 `yaml:"max_fall_speed"`

	Momentum MomentumConfig `yaml:"momentum"`
}

// MomentumConfig tunes the speed buildup that rewards holding a direction.
type MomentumConfig struct {
	Enabled           bool    `yaml:"enabled"`
	InitialMoveSpeed  float64 `yaml:"initial_move_speed"`
	MaxMoveSpeed      float64 `yaml:"max_move_speed"`
	SpeedBuildupDelay float64 `yaml:"speed_buildup_delay"`
	SpeedBuildupRate  float64 `yaml:"speed_buildup_rate"`
	SpeedLossRate     float64 `yaml:"speed_loss_rate"`
}

// DefaultConfig is the stock tuning used when no prefab overrides it.
func DefaultConfig() Config {
	return Config{
		Acceleration:     60,
		Deceleration:     70,
		AirControl:       0.65,
		MaxSpeed:         10,
		FlipDeadzone:     0.1,
		InputDeadzone:    0.2,
		JumpForce:        7,
		JumpHoldForce:    18,
		MaxJumpDuration:  0.15,
		JumpCutThreshold: 1,
		JumpCutFactor:    0.5,
		CoyoteTime:       0.2,
		JumpBufferTime:   0.15,
		Gravity:          9.81,
		FallMultiplier:   2.5,
		MaxFallSpeed:     20,
		Momentum: MomentumConfig{
			Enabled:           true,
			InitialMoveSpeed:  2.8,
			MaxMoveSpeed:      4.6,
			SpeedBuildupDelay: 0.4,
			SpeedBuildupRate:  1.5,
			SpeedLossRate:     4,
		},
	}
}

// Validate reports the first tuning value that cannot be honoured.
func (c Config) Validate() error {
	switch {
	case c.Acceleration <= 0:
		return fmt.Errorf("%w: acceleration must be positive", ErrInvalidConfig)
	case c.Deceleration < 0:
		return fmt.Errorf("%w: deceleration must not be negative", ErrInvalidConfig)
	case c.AirControl < 0 || c.AirControl > 1:
		return fmt.Errorf("%w: air_control must be in [0,1]", ErrInvalidConfig)
	case c.MaxSpeed <= 0:
		return fmt.Errorf("%w: max_speed must be positive", ErrInvalidConfig)
	case c.JumpForce <= 0:
		return fmt.Errorf("%w: jump_force must be positive", ErrInvalidConfig)
	case c.MaxJumpDuration < 0, c.CoyoteTime < 0, c.JumpBufferTime < 0:
		return fmt.Errorf("%w: timers must not be negative", ErrInvalidConfig)
	case c.JumpCutFactor < 0 || c.JumpCutFactor > 1:
		return fmt.Errorf("%w: jump_cut_factor must be in [0,1]", ErrInvalidConfig)
	case c.FallMultiplier < 1:
		return fmt.Errorf("%w: fall_multiplier must be at least 1", ErrInvalidConfig)
	case c.Gravity < 0:
		return fmt.Errorf("%w: gravity is a magnitude", ErrInvalidConfig)
	}
	m := c.Momentum
	switch {
	case m.InitialMoveSpeed <= 0:
		return fmt.Errorf("%w: initial_move_speed must be positive", ErrInvalidConfig)
	case m.MaxMoveSpeed < m.InitialMoveSpeed:
		return fmt.Errorf("%w: max_move_speed below initial_move_speed", ErrInvalidConfig)
	case m.MaxMoveSpeed > c.MaxSpeed:
		return fmt.Errorf("%w: max_move_speed above max_speed", ErrInvalidConfig)
	case m.Enabled && (m.SpeedBuildupRate <= 0 || m.SpeedLossRate <= 0 || m.SpeedBuildupDelay < 0):
		return fmt.Errorf("%w: momentum rates must be positive", ErrInvalidConfig)
	}
	return nil
}
