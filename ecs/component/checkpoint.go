package component

// Checkpoint is a trigger volume that activates when the player centre is
// within Radius of the entity.
type Checkpoint struct {
	Radius float64
	Active bool
}

var CheckpointComponent = NewComponent[Checkpoint]()
