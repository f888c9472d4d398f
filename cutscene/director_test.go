package cutscene

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/evescroller/game"
)

type stateLog struct{ states []game.State }

func (s *stateLog) SetState(st game.State) { s.states = append(s.states, st) }

func (s *stateLog) last() game.State { return s.states[len(s.states)-1] }

type followLog struct{ enabled bool }

func (f *followLog) SetFollowingEnabled(enabled bool) { f.enabled = enabled }

type actorLog struct {
	speed    float64
	walks    int
	controls bool
}

func (a *actorLog) Walk(speed float64)              { a.speed = speed; a.walks++ }
func (a *actorLog) StopWalking()                    { a.speed = 0 }
func (a *actorLog) SetControlsEnabled(enabled bool) { a.controls = enabled }

func newDirector() (*Director, *stateLog, *followLog, *actorLog) {
	st := &stateLog{}
	cam := &followLog{enabled: true}
	actor := &actorLog{controls: true}
	return NewDirector(zerolog.Nop(), st, cam, actor), st, cam, actor
}

func TestIntroWalkRunsToCompletion(t *testing.T) {
	d, st, cam, actor := newDirector()
	d.Start(NewIntroWalk(Config{Duration: 1, WalkSpeed: 3}))

	require.True(t, d.Active())
	assert.Equal(t, game.StateLoading, st.last())
	assert.False(t, cam.enabled)
	assert.False(t, actor.controls)

	for i := 0; i < 9; i++ {
		d.Tick(0.1, false)
	}
	assert.True(t, d.Active())
	assert.Equal(t, 3.0, actor.speed)

	d.Tick(0.1, false)
	d.Tick(0.1, false)
	assert.False(t, d.Active())
	assert.Equal(t, game.StatePlaying, st.last())
	assert.True(t, cam.enabled)
	assert.True(t, actor.controls)
	assert.Zero(t, actor.speed)
}

func TestSkipEndsImmediately(t *testing.T) {
	d, st, cam, actor := newDirector()
	d.Start(NewIntroWalk(DefaultConfig()))
	d.Tick(0.016, false)

	d.Tick(0.016, true)

	assert.False(t, d.Active())
	assert.Equal(t, game.StatePlaying, st.last())
	assert.True(t, cam.enabled)
	assert.True(t, actor.controls)
	assert.Equal(t, 1, actor.walks)

	// ticking an idle director is a no-op
	d.Tick(0.016, true)
	assert.Len(t, st.states, 2)
}

func TestStartWhileActiveRestartsCleanly(t *testing.T) {
	d, st, _, _ := newDirector()
	d.Start(NewIntroWalk(DefaultConfig()))
	d.Start(NewIntroWalk(DefaultConfig()))

	assert.True(t, d.Active())
	assert.Equal(t, []game.State{game.StateLoading, game.StatePlaying, game.StateLoading}, st.states)
	assert.Zero(t, d.Elapsed())
}

func TestScriptSequence(t *testing.T) {
	src := []byte(`
if elapsed < 0.25 {
	walk(2)
} else {
	stop()
	finish()
}
`)
	seq, err := NewScriptSequence("intro", src)
	require.NoError(t, err)

	d, st, _, actor := newDirector()
	d.Start(seq)

	d.Tick(0.1, false)
	assert.Equal(t, 2.0, actor.speed)
	d.Tick(0.1, false)
	d.Tick(0.1, false)
	assert.True(t, d.Active())
	d.Tick(0.1, false)

	assert.False(t, d.Active())
	assert.Equal(t, game.StatePlaying, st.last())
	assert.NoError(t, seq.Err())
	assert.Equal(t, 3, actor.walks)
}

func TestScriptSequenceErrors(t *testing.T) {
	_, err := NewScriptSequence("broken", []byte(`walk(`))
	assert.Error(t, err)

	seq, err := NewScriptSequence("runtime", []byte(`x := 1; x()`))
	require.NoError(t, err)
	d, _, _, _ := newDirector()
	d.Start(seq)
	d.Tick(0.1, false)

	assert.False(t, d.Active())
	assert.Error(t, seq.Err())
}
