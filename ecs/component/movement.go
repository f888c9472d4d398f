package component

import "github.com/milk9111/evescroller/movement"

// Movement binds a movement controller to an entity.
type Movement struct {
	Controller *movement.Controller
	// Disabled is set when a required collaborator is missing. A disabled
	// entity is never simulated again.
	Disabled bool
	// ControlsLocked hands the body to scripted motion.
	ControlsLocked bool
}

var MovementComponent = NewComponent[Movement]()
