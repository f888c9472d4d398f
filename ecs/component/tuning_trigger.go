package component

import "github.com/milk9111/evescroller/movement"

// TuningTrigger swaps the player to Config once, when the player gets within
// Threshold of the entity on both axes. Sprite, when set, swaps the player's
// look at the same moment.
type TuningTrigger struct {
	Config    movement.Config
	Sprite    *SpriteSwap
	Threshold float64
	Trauma    float64
	Applied   bool
}

var TuningTriggerComponent = NewComponent[TuningTrigger]()
