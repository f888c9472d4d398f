package component

import "image/color"

// AnimState is the pose picked from the movement telemetry each frame.
type AnimState int

const (
	AnimIdle AnimState = iota
	AnimRun
	AnimJump
	AnimFall
)

func (s AnimState) String() string {
	switch s {
	case AnimRun:
		return "run"
	case AnimJump:
		return "jump"
	case AnimFall:
		return "fall"
	default:
		return "idle"
	}
}

// AnimationPalette tints the sprite per state. Run blends toward Fast as
// the move speed climbs toward its maximum.
type AnimationPalette struct {
	Idle color.RGBA
	Run  color.RGBA
	Fast color.RGBA
	Jump color.RGBA
	Fall color.RGBA
}

// Animation holds the animator parameters written every frame plus the
// state they select.
type Animation struct {
	Palette AnimationPalette

	// Squash is the squash applied at full landing impact, as a fraction of
	// sprite height. SquashSpeed is the landing speed that reaches it and
	// Recover is how fast the squash fades per second.
	Squash      float64
	SquashSpeed float64
	Recover     float64

	Grounded     bool
	VelocityY    float64
	Speed        float64
	SpeedPercent float64

	Current AnimState
	// Timer is the time spent in Current, in scaled seconds.
	Timer float64
	// Impact is the current squash amount in [0,1].
	Impact float64
}

var AnimationComponent = NewComponent[Animation]()

// SpriteSwap replaces an entity's look, used when a trigger evolves the
// player.
type SpriteSwap struct {
	Width   float64
	Height  float64
	Color   color.RGBA
	Palette AnimationPalette
}
