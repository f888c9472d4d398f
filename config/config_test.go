package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", s.LogLevel)
	assert.False(t, s.Debug)
	assert.Equal(t, 60, s.TickRate)
	assert.Equal(t, "file", s.Save.Backend)
	assert.Equal(t, 960, s.Window.Width)
	assert.Equal(t, 540, s.Window.Height)
	assert.Equal(t, 0.6, s.Audio.MusicVolume)
	assert.Equal(t, 1, s.Game.StartLevel)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := `
logLevel: debug
debug: true
tickRate: 120
save:
  backend: sqlite
  path: ./slots.db
game:
  startLevel: 3
  skipIntro: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "evescroller.yaml"), []byte(cfg), 0644))

	s, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", s.LogLevel)
	assert.True(t, s.Debug)
	assert.Equal(t, 120, s.TickRate)
	assert.Equal(t, "sqlite", s.Save.Backend)
	assert.Equal(t, "./slots.db", s.Save.Path)
	assert.Equal(t, 3, s.Game.StartLevel)
	assert.True(t, s.Game.SkipIntro)
	// untouched keys keep their defaults
	assert.Equal(t, 0.8, s.Audio.SFXVolume)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero_tick_rate", "tickRate: 0\n"},
		{"unknown_backend", "save:\n  backend: cloud\n"},
		{"malformed", "tickRate: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "evescroller.yaml"), []byte(tc.body), 0644))
			_, err := Load(dir)
			assert.Error(t, err)
		})
	}
}
