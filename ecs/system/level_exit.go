package system

import (
	"errors"
	"math"

	"github.com/rs/zerolog"

	"github.com/milk9111/evescroller/ecs"
	"github.com/milk9111/evescroller/ecs/component"
	"github.com/milk9111/evescroller/game"
)

// LevelExitSystem emits a LevelChangeRequest when the player enters an exit.
type LevelExitSystem struct{}

func NewLevelExitSystem() *LevelExitSystem { return &LevelExitSystem{} }

func (s *LevelExitSystem) Update(w *ecs.World) {
	player, ok := w.First(component.PlayerTagComponent.Kind(), component.TransformComponent.Kind())
	if !ok {
		return
	}
	pt, _ := ecs.Get(w, player, component.TransformComponent.Kind())

	ecs.ForEach2(w, component.LevelExitComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, exit *component.LevelExit, t *component.Transform) {
		if exit.Triggered {
			return
		}
		b := exit.Bounds
		cx := t.X + b.X
		cy := t.Y + b.Y
		if math.Abs(pt.X-cx) > b.W/2 || math.Abs(pt.Y-cy) > b.H/2 {
			return
		}
		exit.Triggered = true
		req := ecs.CreateEntity(w)
		_ = ecs.Add(w, req, component.LevelChangeRequestComponent.Kind(), &component.LevelChangeRequest{TargetLevel: exit.TargetLevel})
	})
}

// LevelChanger is the part of the game manager that switches levels.
type LevelChanger interface {
	LoadLevel(n int) error
	NextLevel() error
	FinishGame()
}

// LevelChangeSystem applies level change requests. Finishing the last level
// restarts progress at level 1 and returns to the title screen.
type LevelChangeSystem struct {
	log     zerolog.Logger
	manager LevelChanger
}

func NewLevelChangeSystem(log zerolog.Logger, manager LevelChanger) *LevelChangeSystem {
	return &LevelChangeSystem{log: log.With().Str("component", "levels").Logger(), manager: manager}
}

func (s *LevelChangeSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.LevelChangeRequestComponent.Kind(), func(e ecs.Entity, req *component.LevelChangeRequest) {
		ecs.DestroyEntity(w, e)

		var err error
		if req.TargetLevel > 0 {
			err = s.manager.LoadLevel(req.TargetLevel)
		} else {
			err = s.manager.NextLevel()
		}
		switch {
		case errors.Is(err, game.ErrLevelOutOfRange):
			s.log.Info().Msg("Last level finished")
			s.manager.FinishGame()
		case err != nil:
			s.log.Error().Err(err).Int("target", req.TargetLevel).Msg("Level change failed")
		}
	})
}
