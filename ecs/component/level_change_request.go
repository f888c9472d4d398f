package component

// LevelChangeRequest is a one-shot request emitted by gameplay systems to
// ask the outer game loop to load a different level. Systems only emit data;
// the game loop owns world reinitialization.
type LevelChangeRequest struct {
	TargetLevel int
}

var LevelChangeRequestComponent = NewComponent[LevelChangeRequest]()
