package system

import (
	"github.com/milk9111/evescroller/ecs"
	"github.com/milk9111/evescroller/ecs/component"
	"github.com/milk9111/evescroller/sound"
)

// eventSFX names the effect played for each gameplay event. Checkpoint and
// collect sounds are played by their services.
var eventSFX = map[ecs.EventKind]string{
	ecs.EventJumped:        "jump",
	ecs.EventLanded:        "land",
	ecs.EventMaxSpeed:      "speed_max",
	ecs.EventRespawned:     "respawn",
	ecs.EventTuningSwapped: "tuning",
}

// AudioSystem plays effects for the frame's events, applies music requests
// and drives the ambient proximity fader.
type AudioSystem struct {
	sound *sound.Manager
	fader *sound.ProximityFader
}

func NewAudioSystem(m *sound.Manager, fader *sound.ProximityFader) *AudioSystem {
	return &AudioSystem{sound: m, fader: fader}
}

// RequestMusic queues a track change. An empty track stops all music.
func RequestMusic(w *ecs.World, track string) {
	ent := ecs.CreateEntity(w)
	_ = ecs.Add(w, ent, component.MusicRequestComponent.Kind(), &component.MusicRequest{Track: track})
}

func (a *AudioSystem) Update(w *ecs.World) {
	if a.sound == nil {
		return
	}

	for _, ev := range w.Events().All() {
		if name, ok := eventSFX[ev.Kind]; ok {
			a.sound.PlaySFX(name)
		}
	}

	ecs.ForEach(w, component.MusicRequestComponent.Kind(), func(e ecs.Entity, req *component.MusicRequest) {
		a.sound.StopAllMusic()
		if req.Track != "" {
			a.sound.PlayMusic(req.Track)
		}
		ecs.DestroyEntity(w, e)
	})

	if a.fader == nil {
		return
	}
	player, ok := w.First(component.PlayerTagComponent.Kind(), component.TransformComponent.Kind())
	if !ok {
		return
	}
	listener, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	ecs.ForEach2(w, component.AmbientSourceComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, src *component.AmbientSource, t *component.Transform) {
		if src.Track != a.fader.Track {
			return
		}
		a.fader.Apply(a.sound, listener.Vec2(), t.Vec2(), w.Clock().Unscaled)
	})
}
