package component

// Collectible is picked up when the player comes within XThreshold on the
// horizontal axis. It bobs around BaseY until collected.
type Collectible struct {
	ID         string
	XThreshold float64
	Collected  bool

	BaseY        float64
	BobAmplitude float64
	BobSpeed     float64
	BobPhase     float64
	Initialized  bool
}

var CollectibleComponent = NewComponent[Collectible]()
