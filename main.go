package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/evescroller/config"
	"github.com/milk9111/evescroller/logging"
)

func main() {
	configDir := flag.String("config", ".", "directory holding evescroller.yaml")
	debug := flag.Bool("debug", false, "enable debug overlay and prefab hot reload")
	level := flag.Int("level", 0, "start directly in this level (1-6)")
	skipIntro := flag.Bool("skip-intro", false, "skip the intro cutscene")
	flag.Parse()

	settings, err := config.Load(*configDir)
	if err != nil {
		boot := logging.New("info", true)
		boot.Fatal().Err(err).Msg("Failed to load settings")
	}
	if *debug {
		settings.Debug = true
		settings.LogLevel = "debug"
	}
	if *level > 0 {
		settings.Game.StartLevel = *level
	}
	if *skipIntro {
		settings.Game.SkipIntro = true
	}

	log := logging.New(settings.LogLevel, settings.Debug)

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(settings.Window.Width, settings.Window.Height)
	ebiten.SetWindowTitle("evescroller")
	ebiten.SetTPS(settings.TickRate)

	game, err := NewGame(log, settings)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start")
	}

	runErr := ebiten.RunGame(game)
	if err := game.Close(); err != nil {
		log.Error().Err(err).Msg("Shutdown")
	}
	if runErr != nil {
		log.Error().Err(runErr).Msg("Game loop stopped")
		os.Exit(1)
	}
}
