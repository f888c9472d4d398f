// Package game holds the explicitly constructed game services: the state
// manager, the scene loader, checkpoints and collectibles.
package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/milk9111/evescroller/common"
	"github.com/milk9111/evescroller/save"
)

var ErrLevelOutOfRange = errors.New("game: level out of range")

type State int

const (
	StateLoading State = iota
	StateTitleScreen
	StatePlaying
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateTitleScreen:
		return "title"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

const (
	LevelCount   = 6
	LoadingDelay = 2.0
)

// LevelLoader builds the world for a level number.
type LevelLoader interface {
	LoadLevel(n int) error
}

// TimeScaler receives the global time scale on pause and resume.
type TimeScaler interface {
	SetTimeScale(scale float64)
}

type Manager struct {
	log    zerolog.Logger
	store  save.Store
	levels LevelLoader
	clock  TimeScaler

	state   State
	booting bool
	timer   float64
	data    save.Data

	listeners []func(from, to State)
}

func NewManager(log zerolog.Logger, store save.Store, levels LevelLoader, clock TimeScaler) *Manager {
	return &Manager{
		log:    log,
		store:  store,
		levels: levels,
		clock:  clock,
		state:  StateLoading,
		data:   save.NewGame(),
	}
}

// Boot enters Loading and restores the save slot. Tick moves on to the
// title screen after LoadingDelay.
func (m *Manager) Boot() {
	m.data = save.LoadOrNew(m.store, m.log)
	if m.data.CurrentLevel < 1 || m.data.CurrentLevel > LevelCount {
		m.data.CurrentLevel = 1
	}
	m.booting = true
	m.timer = 0
	m.SetState(StateLoading)
	m.log.Info().Int("level", m.data.CurrentLevel).Msg("Booting")
}

func (m *Manager) Tick(dt float64) {
	if !m.booting {
		return
	}
	m.timer += dt
	if m.timer >= LoadingDelay {
		m.booting = false
		m.SetState(StateTitleScreen)
	}
}

func (m *Manager) State() State      { return m.state }
func (m *Manager) IsPlaying() bool   { return m.state == StatePlaying }
func (m *Manager) CurrentLevel() int { return m.data.CurrentLevel }
func (m *Manager) Data() save.Data   { return m.data }

// SetState switches state and notifies subscribers when it changes.
func (m *Manager) SetState(s State) {
	from := m.state
	m.state = s
	if from == s {
		return
	}
	m.log.Debug().Stringer("from", from).Stringer("to", s).Msg("Game state changed")
	for _, fn := range m.listeners {
		fn(from, s)
	}
}

func (m *Manager) Subscribe(fn func(from, to State)) {
	if fn != nil {
		m.listeners = append(m.listeners, fn)
	}
}

// StartGame enters Playing and loads the current level.
func (m *Manager) StartGame() error {
	return m.StartAt(m.data.CurrentLevel)
}

// StartAt skips the title screen and plays level n.
func (m *Manager) StartAt(n int) error {
	if n < 1 || n > LevelCount {
		return fmt.Errorf("%w: %d", ErrLevelOutOfRange, n)
	}
	m.booting = false
	m.SetState(StatePlaying)
	return m.LoadLevel(n)
}

// LoadLevel accepts 1..LevelCount. Out of range levels change nothing.
func (m *Manager) LoadLevel(n int) error {
	if n < 1 || n > LevelCount {
		return fmt.Errorf("%w: %d", ErrLevelOutOfRange, n)
	}
	if m.data.CurrentLevel != n {
		m.data.HasCheckpoint = false
	}
	m.data.CurrentLevel = n
	m.log.Info().Int("level", n).Msg("Loading level")
	if m.levels == nil {
		return nil
	}
	if err := m.levels.LoadLevel(n); err != nil {
		return fmt.Errorf("game: load level %d: %w", n, err)
	}
	return nil
}

// NextLevel loads the following level; past the last one it reports
// ErrLevelOutOfRange.
func (m *Manager) NextLevel() error {
	return m.LoadLevel(m.data.CurrentLevel + 1)
}

func (m *Manager) Pause() bool {
	if m.state != StatePlaying {
		return false
	}
	m.SetState(StatePaused)
	m.setTimeScale(0)
	return true
}

func (m *Manager) Resume() bool {
	if m.state != StatePaused {
		return false
	}
	m.SetState(StatePlaying)
	m.setTimeScale(1)
	return true
}

func (m *Manager) TogglePause() bool {
	if m.Pause() {
		return true
	}
	return m.Resume()
}

func (m *Manager) setTimeScale(s float64) {
	if m.clock != nil {
		m.clock.SetTimeScale(s)
	}
}

// FinishGame rewinds progress to the first level after the last one is
// cleared, saves, and returns to the title screen. Collectibles are kept.
func (m *Manager) FinishGame() {
	m.data.CurrentLevel = 1
	m.data.HasCheckpoint = false
	if err := m.Save(); err != nil {
		m.log.Error().Err(err).Msg("Failed to save finished game")
	}
	m.SetState(StateTitleScreen)
}

// SetCheckpoint records pos and saves. A failed save is logged only.
func (m *Manager) SetCheckpoint(pos common.Vec2) {
	m.data.CheckpointPosition = pos.Vec3()
	m.data.HasCheckpoint = true
	if err := m.Save(); err != nil {
		m.log.Error().Err(err).Msg("Failed to save checkpoint")
	}
}

// Checkpoint is the saved checkpoint for the current level, if any.
func (m *Manager) Checkpoint() (common.Vec2, bool) {
	return m.data.CheckpointPosition.Vec2(), m.data.HasCheckpoint
}

// SetCollected records collectible progress for the next save.
func (m *Manager) SetCollected(n int, ids []string) {
	m.data.CollectedCount = n
	m.data.CollectedIDs = ids
}

func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}
	return m.store.Save(m.data)
}
