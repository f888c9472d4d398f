// Package sound is the named registry of music tracks and sound effects.
// Playback itself is delegated to Player implementations supplied by the
// host.
package sound

import (
	"github.com/rs/zerolog"

	"github.com/milk9111/evescroller/common"
)

// Player is one playable clip. It matches the method set of an ebiten
// audio player.
type Player interface {
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
	SetVolume(v float64)
}

type track struct {
	player Player
	base   float64
	// gain is an extra per-track multiplier used by faders.
	gain float64
}

type Manager struct {
	log   zerolog.Logger
	music map[string]*track
	sfx   map[string]*track

	musicVolume float64
	sfxVolume   float64
}

func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		log:         log,
		music:       make(map[string]*track),
		sfx:         make(map[string]*track),
		musicVolume: 1,
		sfxVolume:   1,
	}
}

// RegisterMusic adds or replaces a music track with its base volume.
func (m *Manager) RegisterMusic(name string, p Player, volume float64) {
	t := &track{player: p, base: common.Clamp01(volume), gain: 1}
	m.music[name] = t
	m.applyMusic(t)
}

// RegisterSFX adds or replaces a sound effect with its base volume.
func (m *Manager) RegisterSFX(name string, p Player, volume float64) {
	t := &track{player: p, base: common.Clamp01(volume), gain: 1}
	m.sfx[name] = t
	t.player.SetVolume(t.base * m.sfxVolume)
}

// PlayMusic starts a track from where it was paused. Unknown names are
// logged and ignored.
func (m *Manager) PlayMusic(name string) bool {
	t, ok := m.music[name]
	if !ok {
		m.log.Warn().Str("sound", name).Msg("Sound not found")
		return false
	}
	m.applyMusic(t)
	if !t.player.IsPlaying() {
		t.player.Play()
	}
	return true
}

// PlaySFX rewinds and plays an effect.
func (m *Manager) PlaySFX(name string) bool {
	t, ok := m.sfx[name]
	if !ok {
		m.log.Warn().Str("sound", name).Msg("Sound not found")
		return false
	}
	if err := t.player.Rewind(); err != nil {
		m.log.Error().Err(err).Str("sound", name).Msg("Failed to rewind sound")
		return false
	}
	t.player.SetVolume(t.base * m.sfxVolume)
	t.player.Play()
	return true
}

func (m *Manager) StopMusic(name string) {
	t, ok := m.music[name]
	if !ok {
		return
	}
	t.player.Pause()
	if err := t.player.Rewind(); err != nil {
		m.log.Error().Err(err).Str("sound", name).Msg("Failed to rewind music")
	}
}

func (m *Manager) StopAllMusic() {
	for name := range m.music {
		m.StopMusic(name)
	}
}

func (m *Manager) IsPlaying(name string) bool {
	if t, ok := m.music[name]; ok {
		return t.player.IsPlaying()
	}
	if t, ok := m.sfx[name]; ok {
		return t.player.IsPlaying()
	}
	return false
}

func (m *Manager) SetMusicVolume(v float64) {
	m.musicVolume = common.Clamp01(v)
	for _, t := range m.music {
		m.applyMusic(t)
	}
}

func (m *Manager) SetSFXVolume(v float64) {
	m.sfxVolume = common.Clamp01(v)
	for _, t := range m.sfx {
		t.player.SetVolume(t.base * m.sfxVolume)
	}
}

func (m *Manager) MusicVolume() float64 { return m.musicVolume }
func (m *Manager) SFXVolume() float64   { return m.sfxVolume }

// SetMusicGain scales one track on top of its base and the music volume.
func (m *Manager) SetMusicGain(name string, gain float64) {
	t, ok := m.music[name]
	if !ok {
		return
	}
	t.gain = common.Clamp01(gain)
	m.applyMusic(t)
}

func (m *Manager) applyMusic(t *track) {
	t.player.SetVolume(t.base * t.gain * m.musicVolume)
}
