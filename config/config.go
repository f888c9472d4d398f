// Package config loads runtime settings from evescroller.yaml.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

const FileName = "evescroller"

type Settings struct {
	LogLevel string       `mapstructure:"logLevel"`
	Debug    bool         `mapstructure:"debug"`
	TickRate int          `mapstructure:"tickRate"`
	Save     SaveConfig   `mapstructure:"save"`
	Window   WindowConfig `mapstructure:"window"`
	Audio    AudioConfig  `mapstructure:"audio"`
	Game     GameConfig   `mapstructure:"game"`
}

type SaveConfig struct {
	// Backend is "file" or "sqlite".
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

type WindowConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type AudioConfig struct {
	MusicVolume float64 `mapstructure:"musicVolume"`
	SFXVolume   float64 `mapstructure:"sfxVolume"`
}

type GameConfig struct {
	StartLevel int  `mapstructure:"startLevel"`
	SkipIntro  bool `mapstructure:"skipIntro"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("debug", false)
	v.SetDefault("tickRate", 60)

	v.SetDefault("save.backend", "file")
	v.SetDefault("save.path", "./save/evescroller.json")

	v.SetDefault("window.width", 960)
	v.SetDefault("window.height", 540)

	v.SetDefault("audio.musicVolume", 0.6)
	v.SetDefault("audio.sfxVolume", 0.8)

	v.SetDefault("game.startLevel", 1)
	v.SetDefault("game.skipIntro", false)
}

// Load reads evescroller.yaml from dir. A missing file is not an error;
// the defaults are returned instead.
func Load(dir string) (Settings, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("EVESCROLLER")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("config: read %s: %w", dir, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) Validate() error {
	switch {
	case s.TickRate <= 0:
		return fmt.Errorf("config: tickRate must be positive, got %v", s.TickRate)
	case s.Save.Backend != "file" && s.Save.Backend != "sqlite":
		return fmt.Errorf("config: unknown save.backend %q", s.Save.Backend)
	case s.Window.Width <= 0 || s.Window.Height <= 0:
		return fmt.Errorf("config: window size must be positive")
	}
	return nil
}
