package system

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/milk9111/evescroller/ecs"
	"github.com/milk9111/evescroller/ecs/component"
)

// CollectibleSystem picks up collectibles by horizontal proximity.
type CollectibleSystem struct {
	collector Collector
}

func NewCollectibleSystem(collector Collector) *CollectibleSystem {
	return &CollectibleSystem{collector: collector}
}

func (s *CollectibleSystem) Update(w *ecs.World) {
	player, ok := w.First(component.PlayerTagComponent.Kind(), component.TransformComponent.Kind())
	if !ok || s.collector == nil {
		return
	}
	pt, _ := ecs.Get(w, player, component.TransformComponent.Kind())

	ecs.ForEach2(w, component.CollectibleComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.Collectible, t *component.Transform) {
		if c.Collected || math.Abs(pt.X-t.X) > c.XThreshold {
			return
		}
		if !s.collector.Collect(c.ID) {
			return
		}
		c.Collected = true
		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			sprite.Hidden = true
		}
		w.Events().Push(ecs.Event{Kind: ecs.EventCollected, Entity: e, Position: t.Vec2()})
	})
}

// CollectibleHoverSystem bobs uncollected collectibles around their rest
// height.
type CollectibleHoverSystem struct{}

func NewCollectibleHoverSystem() *CollectibleHoverSystem { return &CollectibleHoverSystem{} }

func (s *CollectibleHoverSystem) Update(w *ecs.World) {
	dt := w.Clock().Delta
	ecs.ForEach2(w, component.CollectibleComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, c *component.Collectible, t *component.Transform) {
		if !c.Initialized {
			c.BaseY = t.Y
			c.Initialized = true
			if c.BobAmplitude == 0 {
				c.BobAmplitude = 0.15
			}
			if c.BobSpeed == 0 {
				c.BobSpeed = 3
			}
		}
		if c.Collected {
			return
		}
		c.BobPhase += c.BobSpeed * dt
		t.Y = c.BaseY + math.Sin(c.BobPhase)*c.BobAmplitude
	})
}

// ProgressRecorder stores collectible progress in the save slot.
type ProgressRecorder interface {
	SetCollected(n int, ids []string)
	Save() error
}

// Counter reports which collectibles have been picked up.
type Counter interface {
	Count() int
	IDs() []string
}

// ProgressSystem saves the collected count whenever something was collected
// this frame.
type ProgressSystem struct {
	log      zerolog.Logger
	recorder ProgressRecorder
	counter  Counter
}

func NewProgressSystem(log zerolog.Logger, recorder ProgressRecorder, counter Counter) *ProgressSystem {
	return &ProgressSystem{log: log.With().Str("component", "progress").Logger(), recorder: recorder, counter: counter}
}

func (s *ProgressSystem) Update(w *ecs.World) {
	if s.recorder == nil || s.counter == nil {
		return
	}
	for _, ev := range w.Events().All() {
		if ev.Kind != ecs.EventCollected {
			continue
		}
		s.recorder.SetCollected(s.counter.Count(), s.counter.IDs())
		if err := s.recorder.Save(); err != nil {
			s.log.Error().Err(err).Msg("Failed to save progress")
		}
		return
	}
}
