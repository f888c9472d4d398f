package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/milk9111/evescroller/common"
)

var ErrLoadInProgress = errors.New("game: load already in progress")

// activationThreshold is where displayed progress hands over to activation.
const activationThreshold = 0.9

// Loader drives a scene load one tick at a time. Displayed progress eases
// toward the source progress at one unit per second; once it reaches 0.9
// the activate callback runs and the loading screen hides.
type Loader struct {
	log zerolog.Logger

	active   bool
	scene    int
	progress float64
	source   func() float64
	activate func() error
	err      error
}

func NewLoader(log zerolog.Logger) *Loader {
	return &Loader{log: log}
}

// Begin starts loading scene. A nil source reports the load as ready.
func (l *Loader) Begin(scene int, source func() float64, activate func() error) error {
	if l.active {
		return ErrLoadInProgress
	}
	if source == nil {
		source = func() float64 { return activationThreshold }
	}
	l.active = true
	l.scene = scene
	l.progress = 0
	l.source = source
	l.activate = activate
	l.err = nil
	l.log.Debug().Int("scene", scene).Msg("Load started")
	return nil
}

func (l *Loader) Tick(dt float64) {
	if !l.active {
		return
	}
	target := common.Clamp01(l.source())
	l.progress = common.MoveTowards(l.progress, target, math.Max(0, dt))
	if l.progress < activationThreshold {
		return
	}
	if l.activate != nil {
		if err := l.activate(); err != nil {
			l.err = fmt.Errorf("game: activate scene %d: %w", l.scene, err)
			l.log.Error().Err(err).Int("scene", l.scene).Msg("Scene activation failed")
		}
	}
	l.active = false
	l.log.Info().Int("scene", l.scene).Msg("Load finished")
}

// Cancel abandons the load without activating.
func (l *Loader) Cancel() {
	l.active = false
}

func (l *Loader) Active() bool      { return l.active }
func (l *Loader) Scene() int        { return l.scene }
func (l *Loader) Progress() float64 { return l.progress }
func (l *Loader) Err() error        { return l.err }

func (l *Loader) Text() string {
	return fmt.Sprintf("Loading... %.0f%%", l.progress*100)
}
