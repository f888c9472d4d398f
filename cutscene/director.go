// Package cutscene runs scripted sequences that take the player out of
// control for a while. A Director is ticked once per frame and can be
// skipped at any point.
package cutscene

import (
	"github.com/rs/zerolog"

	"github.com/milk9111/evescroller/game"
)

// Actor is the slice of the player a sequence is allowed to drive.
type Actor interface {
	Walk(speed float64)
	StopWalking()
	SetControlsEnabled(enabled bool)
}

// StateSetter receives the game state changes a cutscene makes.
type StateSetter interface {
	SetState(s game.State)
}

// FollowToggle turns camera following on and off.
type FollowToggle interface {
	SetFollowingEnabled(enabled bool)
}

// Sequence is one cutscene. Tick reports true once the sequence is done.
type Sequence interface {
	Start()
	Tick(dt float64, a Actor) bool
}

// Director owns the running sequence and restores player control when it
// ends, whether it finished or was skipped.
type Director struct {
	log   zerolog.Logger
	state StateSetter
	cam   FollowToggle
	actor Actor

	seq     Sequence
	active  bool
	elapsed float64
}

func NewDirector(log zerolog.Logger, state StateSetter, cam FollowToggle, actor Actor) *Director {
	return &Director{
		log:   log.With().Str("component", "cutscene").Logger(),
		state: state,
		cam:   cam,
		actor: actor,
	}
}

// Start begins seq. A sequence already running is ended first.
func (d *Director) Start(seq Sequence) {
	if seq == nil {
		return
	}
	if d.active {
		d.End()
	}
	d.seq = seq
	d.active = true
	d.elapsed = 0

	d.state.SetState(game.StateLoading)
	d.cam.SetFollowingEnabled(false)
	d.actor.SetControlsEnabled(false)
	seq.Start()
	d.log.Info().Msg("Cutscene started")
}

// Tick advances the running sequence one frame. skip ends it immediately.
func (d *Director) Tick(dt float64, skip bool) {
	if !d.active {
		return
	}
	if skip {
		d.Skip()
		return
	}
	d.elapsed += dt
	if d.seq.Tick(dt, d.actor) {
		d.End()
	}
}

// Skip aborts the running sequence and jumps straight to its end state.
func (d *Director) Skip() {
	if !d.active {
		return
	}
	d.log.Info().Float64("elapsed", d.elapsed).Msg("Cutscene skipped")
	d.End()
}

// End hands control back to the player.
func (d *Director) End() {
	if !d.active {
		return
	}
	d.active = false
	d.seq = nil

	d.actor.StopWalking()
	d.actor.SetControlsEnabled(true)
	d.cam.SetFollowingEnabled(true)
	d.state.SetState(game.StatePlaying)
	d.log.Info().Float64("elapsed", d.elapsed).Msg("Cutscene ended")
}

func (d *Director) Active() bool     { return d.active }
func (d *Director) Elapsed() float64 { return d.elapsed }
