package component

// RespawnRequest is a marker component indicating a player should be
// teleported to the last checkpoint. The respawn system runs after physics
// so the body is moved between steps.
type RespawnRequest struct{}

var RespawnRequestComponent = NewComponent[RespawnRequest]()
