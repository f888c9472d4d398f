package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// GroundTag marks static level geometry.
type GroundTag struct{}

var GroundTagComponent = NewComponent[GroundTag]()
