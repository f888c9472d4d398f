package main

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/rs/zerolog"

	"github.com/milk9111/evescroller/sound"
)

// loadSounds renders every clip in cfg and registers an ebiten player for it.
// A clip that fails to render is logged and skipped.
func loadSounds(log zerolog.Logger, cfg sound.Config, m *sound.Manager) error {
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 44100
	}
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(rate)
	} else if ctx.SampleRate() != rate {
		return fmt.Errorf("audio: context already running at %d Hz, prefab wants %d", ctx.SampleRate(), rate)
	}

	for _, e := range cfg.Music {
		pcm, err := sound.Render(e, rate)
		if err != nil {
			log.Error().Err(err).Str("sound", e.Name).Msg("Failed to render music")
			continue
		}
		var p *audio.Player
		if e.Loop {
			p, err = ctx.NewPlayer(audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm))))
		} else {
			p, err = ctx.NewPlayer(bytes.NewReader(pcm))
		}
		if err != nil {
			log.Error().Err(err).Str("sound", e.Name).Msg("Failed to create music player")
			continue
		}
		m.RegisterMusic(e.Name, p, e.Volume)
	}

	for _, e := range cfg.SFX {
		pcm, err := sound.Render(e, rate)
		if err != nil {
			log.Error().Err(err).Str("sound", e.Name).Msg("Failed to render sound")
			continue
		}
		m.RegisterSFX(e.Name, ctx.NewPlayerFromBytes(pcm), e.Volume)
	}
	return nil
}
