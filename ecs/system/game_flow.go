package system

import (
	"github.com/rs/zerolog"

	"github.com/milk9111/evescroller/ecs"
	"github.com/milk9111/evescroller/game"
)

// FlowManager is the part of the game manager the flow system drives.
type FlowManager interface {
	State() game.State
	Tick(dt float64)
	TogglePause() bool
	StartGame() error
}

// Ticker is any service advanced on unscaled frame time.
type Ticker interface {
	Tick(dt float64)
}

// GameFlowSystem advances the game manager and scene loader, starts the game
// from the title screen and toggles pause.
type GameFlowSystem struct {
	log     zerolog.Logger
	manager FlowManager
	loader  Ticker
	input   FrameInput
}

func NewGameFlowSystem(log zerolog.Logger, manager FlowManager, loader Ticker, input FrameInput) *GameFlowSystem {
	return &GameFlowSystem{
		log:     log.With().Str("component", "flow").Logger(),
		manager: manager,
		loader:  loader,
		input:   input,
	}
}

func (s *GameFlowSystem) Update(w *ecs.World) {
	dt := w.Clock().Unscaled
	s.manager.Tick(dt)
	if s.loader != nil {
		s.loader.Tick(dt)
	}
	if s.input == nil {
		return
	}

	in := s.input.Current()
	switch s.manager.State() {
	case game.StateTitleScreen:
		if in.AnyPressed {
			if err := s.manager.StartGame(); err != nil {
				s.log.Error().Err(err).Msg("Failed to start game")
			}
		}
	case game.StatePlaying, game.StatePaused:
		if in.PausePressed {
			s.manager.TogglePause()
		}
	}
}
