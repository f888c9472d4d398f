// Package levels holds the embedded level files. Coordinates are world units
// with +Y up.
package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/milk9111/evescroller/common"
)

//go:embed *.json
var LevelsFS embed.FS

var ErrInvalidLevel = errors.New("levels: invalid level")

type Level struct {
	Name   string      `json:"name"`
	Spawn  common.Vec2 `json:"spawn"`
	Bounds common.Rect `json:"bounds"`
	// KillY is the height below which the player respawns. It defaults to
	// two units under the bounds.
	KillY *float64 `json:"kill_y,omitempty"`
	Music string   `json:"music,omitempty"`

	Ground         []Ground        `json:"ground"`
	Checkpoints    []Checkpoint    `json:"checkpoints,omitempty"`
	Collectibles   []Collectible   `json:"collectibles,omitempty"`
	TuningTriggers []TuningTrigger `json:"tuning_triggers,omitempty"`
	Exit           *Exit           `json:"exit,omitempty"`
	Ambient        []Ambient       `json:"ambient,omitempty"`
	Backgrounds    []Background    `json:"backgrounds,omitempty"`
}

type Ground struct {
	common.Rect
	Color string `json:"color,omitempty"`
}

type Checkpoint struct {
	common.Vec2
	Radius float64 `json:"radius,omitempty"`
}

type Collectible struct {
	ID string `json:"id"`
	common.Vec2
	XThreshold float64 `json:"x_threshold,omitempty"`
}

type TuningTrigger struct {
	common.Vec2
	Threshold float64 `json:"threshold,omitempty"`
	Trauma    float64 `json:"trauma,omitempty"`
}

type Exit struct {
	common.Vec2
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	// Target is the level to load; zero means the next one.
	Target int `json:"target,omitempty"`
}

type Ambient struct {
	Track string `json:"track"`
	common.Vec2
}

// Background is a full-width parallax band. Weight 0 is pinned to the screen
// and weight 1 scrolls with the world.
type Background struct {
	Color  string  `json:"color"`
	Weight float64 `json:"weight"`
	Y      float64 `json:"y"`
	Height float64 `json:"height"`
}

func (l *Level) KillPlane() float64 {
	if l.KillY != nil {
		return *l.KillY
	}
	return l.Bounds.MinY - 2
}

// Validate reports the first structural problem in the level.
func (l *Level) Validate() error {
	if l.Bounds.Width() <= 0 || l.Bounds.Height() <= 0 {
		return fmt.Errorf("%w: %s: empty bounds", ErrInvalidLevel, l.Name)
	}
	if len(l.Ground) == 0 {
		return fmt.Errorf("%w: %s: no ground", ErrInvalidLevel, l.Name)
	}
	for i, g := range l.Ground {
		if g.Width() <= 0 || g.Height() <= 0 {
			return fmt.Errorf("%w: %s: ground %d is empty", ErrInvalidLevel, l.Name, i)
		}
	}
	if l.KillPlane() >= l.Spawn.Y {
		return fmt.Errorf("%w: %s: spawn is below the kill plane", ErrInvalidLevel, l.Name)
	}
	seen := make(map[string]bool, len(l.Collectibles))
	for _, c := range l.Collectibles {
		if c.ID == "" || seen[c.ID] {
			return fmt.Errorf("%w: %s: collectible id %q missing or repeated", ErrInvalidLevel, l.Name, c.ID)
		}
		seen[c.ID] = true
	}
	for i, b := range l.Backgrounds {
		if b.Weight < 0 || b.Weight > 1 {
			return fmt.Errorf("%w: %s: background %d weight outside [0,1]", ErrInvalidLevel, l.Name, i)
		}
	}
	return nil
}

// FileName is the embedded file for level n.
func FileName(n int) string {
	return fmt.Sprintf("level_%d.json", n)
}

// Load reads and validates level n.
func Load(n int) (*Level, error) {
	return LoadLevelFromFS(LevelsFS, FileName(n))
}

func LoadLevelFromFS(fsys fs.FS, name string) (*Level, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level %s: %w", name, err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}
