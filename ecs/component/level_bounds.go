package component

import "github.com/milk9111/evescroller/common"

// LevelBounds stores the world-space bounds of the current level. Actors
// below KillY are respawned.
type LevelBounds struct {
	Rect  common.Rect
	KillY float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
