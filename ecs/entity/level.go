package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/evescroller/common"
	"github.com/milk9111/evescroller/ecs"
	"github.com/milk9111/evescroller/ecs/component"
	"github.com/milk9111/evescroller/levels"
	"github.com/milk9111/evescroller/movement"
	"github.com/milk9111/evescroller/prefabs"
)

// Draw order, back to front.
const (
	LayerBackground = iota
	LayerGround
	LayerProps
	LayerActors
)

var (
	checkpointColor  = color.RGBA{R: 0x5f, G: 0xa8, B: 0xd3, A: 0xff}
	collectibleColor = color.RGBA{R: 0xf2, G: 0xc1, B: 0x4e, A: 0xff}
	exitColor        = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x40}
	triggerColor     = color.RGBA{R: 0xb4, G: 0x6a, B: 0xe0, A: 0x80}
)

const (
	defaultCheckpointRadius = 1.0
	defaultXThreshold       = 0.5
	defaultTuningThreshold  = 1.5
)

// LevelInfo is what the game services need to know about a loaded level.
type LevelInfo struct {
	Name         string
	Spawn        common.Vec2
	Checkpoints  []common.Vec2
	Collectibles []string
	Music        string
}

// Evolution is what a tuning trigger turns the player into. A nil Sprite
// keeps the current look.
type Evolution struct {
	Movement movement.Config
	Sprite   *prefabs.SpriteSpec
}

// EvolutionFor picks the evolved tuning and look from the player prefab,
// falling back to the base tuning.
func EvolutionFor(spec *prefabs.PlayerSpec) Evolution {
	evo := Evolution{Movement: spec.Movement, Sprite: spec.EvolvedSprite}
	if spec.Evolved != nil {
		evo.Movement = *spec.Evolved
	}
	return evo
}

// LoadLevelToWorld creates the level's entities and static ground shapes.
// The world and its physics world should be empty. evolved is what tuning
// triggers apply.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level, evolved Evolution) (LevelInfo, error) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return LevelInfo{}, fmt.Errorf("level %s: %w", lvl.Name, ErrNoPhysicsWorld)
	}
	info := LevelInfo{Name: lvl.Name, Spawn: lvl.Spawn, Music: lvl.Music}

	bounds := ecs.CreateEntity(w)
	if err := ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Rect: lvl.Bounds, KillY: lvl.KillPlane()}); err != nil {
		return info, err
	}

	for i, bg := range lvl.Backgrounds {
		c, err := prefabs.ParseHexColor(bg.Color)
		if err != nil {
			return info, fmt.Errorf("level %s: background %d: %w", lvl.Name, i, err)
		}
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Y: bg.Y + bg.Height/2, ScaleX: 1, ScaleY: 1}); err != nil {
			return info, err
		}
		if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Height: bg.Height, Color: c}); err != nil {
			return info, err
		}
		if err := ecs.Add(w, e, component.ParallaxComponent.Kind(), &component.Parallax{Weight: bg.Weight}); err != nil {
			return info, err
		}
		if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: LayerBackground}); err != nil {
			return info, err
		}
	}

	for i, g := range lvl.Ground {
		c := color.RGBA{R: 0x4d, G: 0x5b, B: 0x3a, A: 0xff}
		if g.Color != "" {
			var err error
			if c, err = prefabs.ParseHexColor(g.Color); err != nil {
				return info, fmt.Errorf("level %s: ground %d: %w", lvl.Name, i, err)
			}
		}
		if _, err := newGround(w, pw, g.Rect, c); err != nil {
			return info, fmt.Errorf("level %s: ground %d: %w", lvl.Name, i, err)
		}
	}

	for _, ck := range lvl.Checkpoints {
		radius := ck.Radius
		if radius <= 0 {
			radius = defaultCheckpointRadius
		}
		e, err := newProp(w, ck.Vec2, 0.2, 1.2, checkpointColor)
		if err != nil {
			return info, err
		}
		if err := ecs.Add(w, e, component.CheckpointComponent.Kind(), &component.Checkpoint{Radius: radius}); err != nil {
			return info, err
		}
		info.Checkpoints = append(info.Checkpoints, ck.Vec2)
	}

	for _, c := range lvl.Collectibles {
		threshold := c.XThreshold
		if threshold <= 0 {
			threshold = defaultXThreshold
		}
		e, err := newProp(w, c.Vec2, 0.4, 0.4, collectibleColor)
		if err != nil {
			return info, err
		}
		if err := ecs.Add(w, e, component.CollectibleComponent.Kind(), &component.Collectible{ID: c.ID, XThreshold: threshold}); err != nil {
			return info, err
		}
		info.Collectibles = append(info.Collectibles, c.ID)
	}

	var swap *component.SpriteSwap
	if evolved.Sprite != nil {
		s := SpriteSwapFromSpec(*evolved.Sprite)
		swap = &s
	}
	for _, t := range lvl.TuningTriggers {
		threshold := t.Threshold
		if threshold <= 0 {
			threshold = defaultTuningThreshold
		}
		e, err := newProp(w, t.Vec2, 0.6, 0.6, triggerColor)
		if err != nil {
			return info, err
		}
		if err := ecs.Add(w, e, component.TuningTriggerComponent.Kind(), &component.TuningTrigger{
			Config:    evolved.Movement,
			Sprite:    swap,
			Threshold: threshold,
			Trauma:    t.Trauma,
		}); err != nil {
			return info, err
		}
	}

	if x := lvl.Exit; x != nil {
		e, err := newProp(w, x.Vec2, x.Width, x.Height, exitColor)
		if err != nil {
			return info, err
		}
		if err := ecs.Add(w, e, component.LevelExitComponent.Kind(), &component.LevelExit{
			TargetLevel: x.Target,
			Bounds:      component.AABB{W: x.Width, H: x.Height},
		}); err != nil {
			return info, err
		}
	}

	for _, a := range lvl.Ambient {
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: a.X, Y: a.Y, ScaleX: 1, ScaleY: 1}); err != nil {
			return info, err
		}
		if err := ecs.Add(w, e, component.AmbientSourceComponent.Kind(), &component.AmbientSource{Track: a.Track}); err != nil {
			return info, err
		}
	}

	return info, nil
}

func newGround(w *ecs.World, pw *ecs.PhysicsWorld, r common.Rect, c color.RGBA) (ecs.Entity, error) {
	shape := pw.AddStatic(r)
	e, err := newSprite(w, r.Center(), r.Width(), r.Height(), c, LayerGround)
	if err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.GroundTagComponent.Kind(), &component.GroundTag{}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Body:   shape.Body(),
		Shape:  shape,
		Width:  r.Width(),
		Height: r.Height(),
		Static: true,
	}); err != nil {
		return 0, err
	}
	return e, nil
}

func newProp(w *ecs.World, pos common.Vec2, width, height float64, c color.RGBA) (ecs.Entity, error) {
	return newSprite(w, pos, width, height, c, LayerProps)
}

func newSprite(w *ecs.World, pos common.Vec2, width, height float64, c color.RGBA, layer int) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Width: width, Height: height, Color: c}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layer}); err != nil {
		return 0, err
	}
	return e, nil
}
