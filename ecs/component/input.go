package component

// Input stores the control state for an entity. JumpPressed is latched
// across frames until the movement system consumes it on a fixed step. It is
// dropped while the player cannot act. The other edges only live for the
// frame they were sampled in.
type Input struct {
	MoveX        float64
	JumpPressed  bool
	JumpHeld     bool
	CrouchHeld   bool
	SkipPressed  bool
	PausePressed bool
	AnyPressed   bool
}

var InputComponent = NewComponent[Input]()
