package game

import (
	"math"

	"github.com/milk9111/evescroller/common"
)

type CheckpointRecorder interface {
	SetCheckpoint(pos common.Vec2)
}

type SFXPlayer interface {
	PlaySFX(name string) bool
}

// Checkpoints is the ordered checkpoint list of the current level. The
// spawn point, when present, is index 0. Activation only ever advances.
type Checkpoints struct {
	rec CheckpointRecorder
	sfx SFXPlayer

	spawn    common.Vec2
	hasSpawn bool
	points   []common.Vec2
	current  int
}

func NewCheckpoints(rec CheckpointRecorder, sfx SFXPlayer) *Checkpoints {
	return &Checkpoints{rec: rec, sfx: sfx, current: -1}
}

// Reset loads a level's checkpoints.
func (c *Checkpoints) Reset(spawn *common.Vec2, triggers []common.Vec2) {
	c.points = c.points[:0]
	c.current = -1
	c.hasSpawn = spawn != nil
	if spawn != nil {
		c.spawn = *spawn
		c.points = append(c.points, *spawn)
		c.current = 0
	}
	c.points = append(c.points, triggers...)
}

func (c *Checkpoints) indexOf(pos common.Vec2) int {
	for i, p := range c.points {
		if math.Abs(p.X-pos.X) < 1e-6 && math.Abs(p.Y-pos.Y) < 1e-6 {
			return i
		}
	}
	return -1
}

// Activate advances to the checkpoint at pos if it lies past the current
// one, records it and plays the checkpoint sound.
func (c *Checkpoints) Activate(pos common.Vec2) bool {
	i := c.indexOf(pos)
	if i <= c.current {
		return false
	}
	c.current = i
	if c.rec != nil {
		c.rec.SetCheckpoint(pos)
	}
	if c.sfx != nil {
		c.sfx.PlaySFX("checkpoint")
	}
	return true
}

// Restore jumps to a saved checkpoint without side effects.
func (c *Checkpoints) Restore(pos common.Vec2) bool {
	i := c.indexOf(pos)
	if i < 0 {
		return false
	}
	c.current = i
	return true
}

func (c *Checkpoints) Current() int { return c.current }

// Last is the active checkpoint, else the spawn point, else the origin.
func (c *Checkpoints) Last() common.Vec2 {
	if c.current >= 0 && c.current < len(c.points) {
		return c.points[c.current]
	}
	if c.hasSpawn {
		return c.spawn
	}
	return common.Vec2{}
}
