package system

import (
	"github.com/milk9111/evescroller/common"
	"github.com/milk9111/evescroller/ecs/component"
)

// PlayState gates gameplay systems.
type PlayState interface {
	IsPlaying() bool
}

// FrameInput exposes the input sampled for the current frame.
type FrameInput interface {
	Current() component.Input
}

// Respawner answers where a fallen actor goes back to.
type Respawner interface {
	Last() common.Vec2
}

// CheckpointActivator advances the level's checkpoint.
type CheckpointActivator interface {
	Activate(pos common.Vec2) bool
}

// Collector records collectible pickups.
type Collector interface {
	Collect(id string) bool
}

// alwaysPlaying is used when a system is built without a gate.
type alwaysPlaying struct{}

func (alwaysPlaying) IsPlaying() bool { return true }

func gate(p PlayState) PlayState {
	if p == nil {
		return alwaysPlaying{}
	}
	return p
}
