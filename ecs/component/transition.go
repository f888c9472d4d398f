package component

// AABB is an axis-aligned box. X/Y are offsets from the owning entity's
// Transform to the box centre.
type AABB struct {
	X float64
	Y float64
	W float64
	H float64
}

// LevelExit defines an area that ends the level when the player enters it.
// TargetLevel zero means the next level in order.
type LevelExit struct {
	TargetLevel int
	Bounds      AABB
	Triggered   bool
}

var LevelExitComponent = NewComponent[LevelExit]()
