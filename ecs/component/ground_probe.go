package component

// GroundProbe is the overlap circle checked below an actor each fixed tick.
// The offset is relative to the body centre.
type GroundProbe struct {
	OffsetX float64
	OffsetY float64
	Radius  float64
	Mask    uint
}

var GroundProbeComponent = NewComponent[GroundProbe]()
