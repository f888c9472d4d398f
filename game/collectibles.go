package game

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/milk9111/evescroller/save"
)

type PlayState interface {
	IsPlaying() bool
}

// Collectibles counts pickups across levels. Each id is collected at most
// once and only while playing.
type Collectibles struct {
	log  zerolog.Logger
	game PlayState
	sfx  SFXPlayer
	// known holds every registered id; true once it has been collected.
	known map[string]bool
	// taken holds ids restored from a save that no loaded level has
	// registered yet. They join the count when registered.
	taken map[string]bool

	total     int
	collected int

	ShowPercentage bool
}

func NewCollectibles(log zerolog.Logger, game PlayState, sfx SFXPlayer) *Collectibles {
	return &Collectibles{log: log, game: game, sfx: sfx, known: make(map[string]bool), taken: make(map[string]bool)}
}

// Register adds id to the total the first time it is seen. An id restored
// from a save comes back already collected.
func (c *Collectibles) Register(id string) {
	if _, ok := c.known[id]; ok {
		return
	}
	c.known[id] = c.taken[id]
	if c.taken[id] {
		delete(c.taken, id)
		c.collected++
	}
	c.total++
}

func (c *Collectibles) Collect(id string) bool {
	if c.game != nil && !c.game.IsPlaying() {
		return false
	}
	done, ok := c.known[id]
	if done || c.taken[id] {
		return false
	}
	if !ok {
		c.total++
	}
	c.known[id] = true
	c.collected++
	if c.sfx != nil {
		c.sfx.PlaySFX("collect")
	}
	c.log.Info().Str("id", id).Int("collected", c.collected).Int("total", c.total).Msg("Collected")
	return true
}

func (c *Collectibles) Collected(id string) bool { return c.known[id] || c.taken[id] }
func (c *Collectibles) Count() int               { return c.collected }
func (c *Collectibles) Total() int               { return c.total }

// Visible reports whether the counter should be on screen.
func (c *Collectibles) Visible() bool {
	return c.game == nil || c.game.IsPlaying()
}

func (c *Collectibles) Label() string {
	if c.ShowPercentage && c.total > 0 {
		return fmt.Sprintf("Collected: %.0f%%", float64(c.collected)/float64(c.total)*100)
	}
	return fmt.Sprintf("Collected: %d / %d", c.collected, c.total)
}

// IDs lists every collected id in sorted order.
func (c *Collectibles) IDs() []string {
	ids := make([]string, 0, c.collected+len(c.taken))
	for id, done := range c.known {
		if done {
			ids = append(ids, id)
		}
	}
	for id := range c.taken {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (c *Collectibles) SaveProgress(d *save.Data) {
	d.CollectedCount = c.collected
	d.CollectedIDs = c.IDs()
}

// LoadProgress restores collected ids so they stay latched after a restart.
// A save without ids only restores the count.
func (c *Collectibles) LoadProgress(d save.Data) {
	if len(d.CollectedIDs) == 0 {
		c.collected = d.CollectedCount
		return
	}
	c.collected = 0
	for _, done := range c.known {
		if done {
			c.collected++
		}
	}
	for _, id := range d.CollectedIDs {
		if c.Collected(id) {
			continue
		}
		if _, ok := c.known[id]; ok {
			c.known[id] = true
			c.collected++
		} else {
			c.taken[id] = true
		}
	}
}
