package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/evescroller/camera"
	"github.com/milk9111/evescroller/cutscene"
	"github.com/milk9111/evescroller/movement"
	"github.com/milk9111/evescroller/sound"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PlayerSpec struct {
	Name     string          `yaml:"name"`
	Sprite   SpriteSpec      `yaml:"sprite"`
	Collider ColliderSpec    `yaml:"collider"`
	Probe    ProbeSpec       `yaml:"ground_probe"`
	Movement movement.Config `yaml:"movement"`
	// Evolved is the tuning applied by tuning triggers that do not carry
	// their own. EvolvedSprite is the look that comes with it.
	Evolved       *movement.Config `yaml:"evolved"`
	EvolvedSprite *SpriteSpec      `yaml:"evolved_sprite"`
}

// LoadPlayerSpec reads player.yaml over the stock movement tuning, so keys
// the file leaves out keep their defaults.
func LoadPlayerSpec() (*PlayerSpec, error) {
	data, err := Load("player.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: load player.yaml: %w", err)
	}
	spec := PlayerSpec{Movement: movement.DefaultConfig()}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal player.yaml: %w", err)
	}
	return &spec, nil
}

type CameraSpec struct {
	Name          string        `yaml:"name"`
	ViewWidth     float64       `yaml:"view_width"`
	ViewHeight    float64       `yaml:"view_height"`
	PixelsPerUnit float64       `yaml:"pixels_per_unit"`
	Follow        camera.Config `yaml:"follow"`
	Feedback      FeedbackSpec  `yaml:"feedback"`
}

type FeedbackSpec struct {
	LandingTraumaSpeed float64 `yaml:"landing_trauma_speed"`
	LandingTraumaScale float64 `yaml:"landing_trauma_scale"`
	SpeedBoostTrauma   float64 `yaml:"speed_boost_trauma"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	data, err := Load("camera.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: load camera.yaml: %w", err)
	}
	spec := CameraSpec{ViewWidth: 16, ViewHeight: 9, PixelsPerUnit: 80, Follow: camera.DefaultConfig()}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal camera.yaml: %w", err)
	}
	return &spec, nil
}

func LoadAudioSpec() (sound.Config, error) {
	return LoadSpec[sound.Config]("audio.yaml")
}

func LoadCutsceneSpec() (cutscene.Config, error) {
	data, err := Load("cutscene.yaml")
	if err != nil {
		return cutscene.Config{}, fmt.Errorf("prefabs: load cutscene.yaml: %w", err)
	}
	spec := cutscene.DefaultConfig()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return cutscene.Config{}, fmt.Errorf("prefabs: unmarshal cutscene.yaml: %w", err)
	}
	return spec, nil
}

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Mass   float64 `yaml:"mass"`
}

type ProbeSpec struct {
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Radius  float64 `yaml:"radius"`
}

type SpriteSpec struct {
	Width     float64       `yaml:"width"`
	Height    float64       `yaml:"height"`
	Color     YAMLColor     `yaml:"color"`
	Animation AnimationSpec `yaml:"animation"`
}

// AnimationSpec tints the sprite per pose. Unset colors fall back to the
// sprite color.
type AnimationSpec struct {
	Idle        YAMLColor `yaml:"idle"`
	Run         YAMLColor `yaml:"run"`
	Fast        YAMLColor `yaml:"fast"`
	Jump        YAMLColor `yaml:"jump"`
	Fall        YAMLColor `yaml:"fall"`
	Squash      float64   `yaml:"squash"`
	SquashSpeed float64   `yaml:"squash_speed"`
	Recover     float64   `yaml:"recover"`
}

type YAMLColor struct {
	color.RGBA
}

// Or returns fallback when the color was never set.
func (c YAMLColor) Or(fallback color.RGBA) color.RGBA {
	if c.RGBA == (color.RGBA{}) {
		return fallback
	}
	return c.RGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	rgba, err := ParseHexColor(value.Value)
	if err != nil {
		return err
	}
	c.RGBA = rgba
	return nil
}

// ParseHexColor reads #rrggbb or #rrggbbaa.
func ParseHexColor(v string) (color.RGBA, error) {
	s := strings.TrimPrefix(v, "#")

	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}

	r, err := parse(0)
	if err != nil {
		return color.RGBA{}, err
	}
	g, err := parse(2)
	if err != nil {
		return color.RGBA{}, err
	}
	b, err := parse(4)
	if err != nil {
		return color.RGBA{}, err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return color.RGBA{}, err
		}
	}

	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}
