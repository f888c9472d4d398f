package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/milk9111/evescroller/config"
	"github.com/milk9111/evescroller/cutscene"
	"github.com/milk9111/evescroller/ecs"
	"github.com/milk9111/evescroller/ecs/component"
	"github.com/milk9111/evescroller/ecs/entity"
	"github.com/milk9111/evescroller/ecs/render"
	"github.com/milk9111/evescroller/ecs/system"
	"github.com/milk9111/evescroller/game"
	"github.com/milk9111/evescroller/levels"
	"github.com/milk9111/evescroller/logging"
	"github.com/milk9111/evescroller/prefabs"
	"github.com/milk9111/evescroller/save"
	"github.com/milk9111/evescroller/sound"
)

type Game struct {
	log      zerolog.Logger
	settings config.Settings

	world   *ecs.World
	physics *ecs.PhysicsWorld
	sched   *ecs.Scheduler

	store        save.Store
	manager      *game.Manager
	loader       *game.Loader
	checkpoints  *game.Checkpoints
	collectibles *game.Collectibles
	sound        *sound.Manager
	director     *cutscene.Director

	input    *system.InputSystem
	feedback *system.FeedbackSystem

	renderer *render.Renderer
	hud      *render.HUD
	pause    *render.PauseMenu
	watcher  *prefabs.Watcher

	playerSpec  *prefabs.PlayerSpec
	cameraSpec  *prefabs.CameraSpec
	cutsceneCfg cutscene.Config

	levelName   string
	introPlayed bool
	loadErr     error
}

// playGate lets gameplay run only while playing and no scene load is
// pending.
type playGate struct {
	manager *game.Manager
	loader  *game.Loader
}

func (g playGate) IsPlaying() bool {
	return g.manager.IsPlaying() && !g.loader.Active()
}

func NewGame(log zerolog.Logger, settings config.Settings) (*Game, error) {
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	cameraSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return nil, err
	}
	cutsceneCfg, err := prefabs.LoadCutsceneSpec()
	if err != nil {
		return nil, err
	}
	audioCfg, err := prefabs.LoadAudioSpec()
	if err != nil {
		return nil, err
	}

	store, err := save.Open(settings.Save.Backend, settings.Save.Path, logging.For(log, "save"))
	if err != nil {
		// play on without persistence
		log.Error().Err(err).Str("backend", settings.Save.Backend).Msg("Failed to open save store")
		store = nil
	}

	g := &Game{
		log:         log,
		settings:    settings,
		world:       ecs.NewWorld(),
		physics:     ecs.NewPhysicsWorld(playerSpec.Movement.Gravity),
		store:       store,
		renderer:    render.NewRenderer(),
		playerSpec:  playerSpec,
		cameraSpec:  cameraSpec,
		cutsceneCfg: cutsceneCfg,
	}
	g.world.SetPhysicsWorld(g.physics)

	g.sound = sound.NewManager(logging.For(log, "audio"))
	if err := loadSounds(logging.For(log, "audio"), audioCfg, g.sound); err != nil {
		log.Error().Err(err).Msg("Audio disabled")
	}
	g.sound.SetMusicVolume(settings.Audio.MusicVolume)
	g.sound.SetSFXVolume(settings.Audio.SFXVolume)

	g.loader = game.NewLoader(logging.For(log, "loader"))
	g.manager = game.NewManager(logging.For(log, "game"), store, g, g.world.Clock())
	g.checkpoints = game.NewCheckpoints(g.manager, g.sound)
	g.collectibles = game.NewCollectibles(logging.For(log, "collectibles"), g.manager, g.sound)
	g.director = cutscene.NewDirector(logging.For(log, "cutscene"), g.manager, system.NewCameraToggle(g.world), system.NewPlayerActor(g.world))

	g.hud, err = render.NewHUD()
	if err != nil {
		return nil, err
	}
	g.pause = g.hud.NewPauseMenu(settings.Window.Width, settings.Window.Height,
		func() { g.manager.Resume() },
		func() {
			g.manager.Resume()
			g.manager.SetState(game.StateTitleScreen)
		},
	)

	g.buildScheduler(audioCfg.Proximity)

	if settings.Debug {
		w, err := prefabs.NewWatcher(prefabs.Dir, prefabs.Dir+"/scripts")
		if err != nil {
			log.Warn().Err(err).Msg("Prefab hot reload disabled")
		} else {
			g.watcher = w
		}
	}

	g.manager.Boot()
	g.collectibles.LoadProgress(g.manager.Data())
	if n := settings.Game.StartLevel; n > 1 {
		if err := g.manager.StartAt(n); err != nil {
			log.Error().Err(err).Int("level", n).Msg("Bad start level")
		}
	}
	return g, nil
}

func (g *Game) buildScheduler(fader *sound.ProximityFader) {
	gate := playGate{manager: g.manager, loader: g.loader}
	fb := g.cameraSpec.Feedback

	g.input = system.NewInputSystem(NewInput())
	g.feedback = system.NewFeedbackSystem(system.FeedbackConfig{
		LandingTraumaSpeed: fb.LandingTraumaSpeed,
		LandingTraumaScale: fb.LandingTraumaScale,
		SpeedBoostTrauma:   fb.SpeedBoostTrauma,
	})

	g.sched = ecs.NewScheduler(g.settings.TickRate)
	g.sched.Add(ecs.PhasePre,
		g.input,
		system.NewGameFlowSystem(g.log, g.manager, g.loader, g.input),
	)
	g.sched.Add(ecs.PhaseFixed,
		system.NewMovementSystem(logging.For(g.log, "movement"), gate),
		system.NewPhysicsSystem(),
		system.NewKillPlaneSystem(),
		system.NewRespawnSystem(g.checkpoints),
		system.NewCheckpointSystem(g.checkpoints),
		system.NewCollectibleSystem(g.collectibles),
		system.NewTuningTriggerSystem(g.log),
		system.NewLevelExitSystem(),
	)
	g.sched.Add(ecs.PhaseFrame,
		system.NewLevelChangeSystem(g.log, g.manager),
		system.NewCutsceneSystem(g.director, g.input, g.cutsceneCfg.SkipWithInput),
		system.NewCollectibleHoverSystem(),
		system.NewAnimationSystem(),
		g.feedback,
		system.NewCameraSystem(gate),
		system.NewAudioSystem(g.sound, fader),
		system.NewProgressSystem(g.log, g.manager, g.collectibles),
	)
}

// LoadLevel starts a scene load; the level is built when the loader
// activates it.
func (g *Game) LoadLevel(n int) error {
	if g.loader.Active() {
		g.loader.Cancel()
	}
	return g.loader.Begin(n, nil, func() error { return g.buildLevel(n) })
}

func (g *Game) buildLevel(n int) error {
	lvl, err := levels.Load(n)
	if err != nil {
		return fmt.Errorf("game: level %d: %w", n, err)
	}

	if g.director.Active() {
		g.director.End()
	}
	g.world.Clear()
	g.physics.Reset()

	info, err := entity.LoadLevelToWorld(g.world, lvl, entity.EvolutionFor(g.playerSpec))
	if err != nil {
		return err
	}

	spawn := info.Spawn
	g.checkpoints.Reset(&spawn, info.Checkpoints)
	start := spawn
	if pos, ok := g.manager.Checkpoint(); ok && g.checkpoints.Restore(pos) {
		start = pos
	}

	if _, err := entity.NewPlayer(g.world, g.playerSpec, start); err != nil {
		return err
	}
	if _, err := entity.NewCamera(g.world, g.cameraSpec, start); err != nil {
		return err
	}

	for _, id := range info.Collectibles {
		g.collectibles.Register(id)
	}
	g.markCollected()

	if info.Music != "" {
		system.RequestMusic(g.world, info.Music)
	}
	g.levelName = fmt.Sprintf("%d. %s", n, info.Name)

	if err := g.manager.Save(); err != nil {
		g.log.Error().Err(err).Msg("Failed to save level")
	}

	if n == 1 && start == spawn && !g.introPlayed && !g.settings.Game.SkipIntro {
		g.introPlayed = true
		g.director.Start(g.introSequence())
	}
	return nil
}

// markCollected hides collectibles picked up in an earlier visit.
func (g *Game) markCollected() {
	ecs.ForEach(g.world, component.CollectibleComponent.Kind(), func(e ecs.Entity, c *component.Collectible) {
		if !g.collectibles.Collected(c.ID) {
			return
		}
		c.Collected = true
		if s, ok := ecs.Get(g.world, e, component.SpriteComponent.Kind()); ok {
			s.Hidden = true
		}
	})
}

func (g *Game) introSequence() cutscene.Sequence {
	if g.cutsceneCfg.Script != "" {
		src, err := prefabs.LoadScript(g.cutsceneCfg.Script)
		if err == nil {
			var seq *cutscene.ScriptSequence
			if seq, err = cutscene.NewScriptSequence(g.cutsceneCfg.Script, src); err == nil {
				return seq
			}
		}
		g.log.Error().Err(err).Str("script", g.cutsceneCfg.Script).Msg("Cutscene script unusable, walking instead")
	}
	return cutscene.NewIntroWalk(g.cutsceneCfg)
}

func (g *Game) Update() error {
	g.reloadPrefabs()

	if g.manager.State() == game.StatePaused {
		g.pause.Update()
	}

	dt := 1.0 / float64(ebiten.TPS())
	g.sched.Update(g.world, dt)

	if err := g.loader.Err(); err != nil && err != g.loadErr && !g.loader.Active() {
		g.loadErr = err
		g.manager.SetState(game.StateTitleScreen)
	}
	return nil
}

func (g *Game) reloadPrefabs() {
	if g.watcher == nil {
		return
	}
	for _, name := range g.watcher.Drain() {
		log := g.log.With().Str("prefab", name).Logger()
		switch name {
		case "player.yaml":
			spec, err := prefabs.LoadPlayerSpec()
			if err == nil {
				err = system.ApplyMovementConfig(g.world, spec.Movement)
			}
			if err != nil {
				log.Error().Err(err).Msg("Reload rejected")
				continue
			}
			g.playerSpec = spec
			anim := entity.AnimationFromSpec(spec.Sprite)
			system.ApplyAnimation(g.world, anim)
		case "camera.yaml":
			spec, err := prefabs.LoadCameraSpec()
			if err == nil {
				err = system.ApplyCameraConfig(g.world, spec.Follow)
			}
			if err != nil {
				log.Error().Err(err).Msg("Reload rejected")
				continue
			}
			g.cameraSpec = spec
			g.feedback.SetConfig(system.FeedbackConfig{
				LandingTraumaSpeed: spec.Feedback.LandingTraumaSpeed,
				LandingTraumaScale: spec.Feedback.LandingTraumaScale,
				SpeedBoostTrauma:   spec.Feedback.SpeedBoostTrauma,
			})
		case "cutscene.yaml":
			cfg, err := prefabs.LoadCutsceneSpec()
			if err != nil {
				log.Error().Err(err).Msg("Reload rejected")
				continue
			}
			g.cutsceneCfg = cfg
		default:
			if !strings.HasPrefix(name, "scripts/") {
				continue
			}
		}
		log.Info().Msg("Prefab reloaded")
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.world, screen)

	s := render.HUDState{State: g.manager.State(), Level: g.levelName}
	if g.loader.Active() {
		s.Loading = g.loader.Text()
		s.Progress = g.loader.Progress()
	}
	if g.collectibles.Visible() {
		s.Collected = g.collectibles.Label()
	}
	if g.settings.Debug {
		s.Debug = g.debugLines()
	}
	g.hud.Draw(screen, s)

	if g.manager.State() == game.StatePaused {
		g.pause.Draw(screen)
	}
}

func (g *Game) debugLines() []string {
	lines := []string{fmt.Sprintf("FPS %.1f  TPS %.1f  ticks %d", ebiten.ActualFPS(), ebiten.ActualTPS(), g.world.Clock().Ticks)}
	_, mv, ok := ecs.First(g.world, component.MovementComponent.Kind())
	if !ok || mv.Controller == nil {
		return lines
	}
	c := mv.Controller
	return append(lines, fmt.Sprintf("speed %.2f (%.0f%%)  vx %.2f  vy %.2f  grounded %t  max %t",
		c.CurrentMoveSpeed(), c.SpeedPercent()*100, c.VelocityX(), c.VelocityY(), c.Grounded(), c.AtMaxSpeed()))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.settings.Window.Width, g.settings.Window.Height
}

// Close releases the watcher and the save store.
func (g *Game) Close() error {
	var errs []error
	if g.watcher != nil {
		errs = append(errs, g.watcher.Close())
	}
	if c, ok := g.store.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
