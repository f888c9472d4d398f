// Package save persists the single save slot: level, last checkpoint and
// collectible count.
package save

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/milk9111/evescroller/common"
)

// ErrNoSave is returned by Load when nothing has been saved yet.
var ErrNoSave = errors.New("save: no save data")

// Data is the persisted record. CollectedIDs names every collectible picked
// up so far; CollectedCount is kept for saves written before ids were stored.
type Data struct {
	CurrentLevel       int         `json:"currentLevel"`
	CheckpointPosition common.Vec3 `json:"lastCheckpoint"`
	HasCheckpoint      bool        `json:"hasCheckpoint"`
	CollectedCount     int         `json:"collectibles"`
	CollectedIDs       []string    `json:"collectedIds,omitempty"`
}

// NewGame is the record used when no save can be loaded.
func NewGame() Data {
	return Data{CurrentLevel: 1}
}

type Store interface {
	Load() (Data, error)
	Save(Data) error
}

// Open picks a backend by name.
func Open(backend, path string, log zerolog.Logger) (Store, error) {
	switch backend {
	case "", "file":
		return NewFileStore(path), nil
	case "sqlite":
		return NewSQLiteStore(path, log)
	default:
		return nil, fmt.Errorf("save: unknown backend %q", backend)
	}
}

// LoadOrNew loads from store and falls back to NewGame on any error. A
// missing save is silent; anything else is logged.
func LoadOrNew(store Store, log zerolog.Logger) Data {
	if store == nil {
		return NewGame()
	}
	d, err := store.Load()
	if err != nil {
		if !errors.Is(err, ErrNoSave) {
			log.Error().Err(err).Msg("Failed to load save, starting a new game")
		}
		return NewGame()
	}
	return d
}
