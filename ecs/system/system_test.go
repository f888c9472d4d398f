package system

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/evescroller/camera"
	"github.com/milk9111/evescroller/common"
	"github.com/milk9111/evescroller/cutscene"
	"github.com/milk9111/evescroller/ecs"
	"github.com/milk9111/evescroller/ecs/component"
	"github.com/milk9111/evescroller/game"
	"github.com/milk9111/evescroller/movement"
)

const step = 1.0 / 60

type scriptedInput struct {
	next component.Input
}

func (s *scriptedInput) Read() component.Input {
	in := s.next
	s.next.JumpPressed = false
	s.next.SkipPressed = false
	s.next.PausePressed = false
	s.next.AnyPressed = false
	return in
}

type playGate struct{ playing bool }

func (g *playGate) IsPlaying() bool { return g.playing }

type eventTap struct{ seen []ecs.Event }

func (t *eventTap) Update(w *ecs.World) {
	t.seen = append(t.seen, w.Events().All()...)
}

func (t *eventTap) count(kind ecs.EventKind) int {
	n := 0
	for _, ev := range t.seen {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

type rig struct {
	w      *ecs.World
	pw     *ecs.PhysicsWorld
	player ecs.Entity
	cam    ecs.Entity
	ctrl   *movement.Controller
	follow *camera.Follow
	input  *scriptedInput
	inputs *InputSystem
	gate   *playGate
	tap    *eventTap
	sched  *ecs.Scheduler
}

func newRig(t *testing.T) *rig {
	t.Helper()
	w := ecs.NewWorld()
	pw := ecs.NewPhysicsWorld(movement.DefaultConfig().Gravity)
	w.SetPhysicsWorld(pw)
	pw.AddStatic(common.Rect{MinX: -50, MinY: -1, MaxX: 50, MaxY: 0})

	ctrl, err := movement.New(movement.DefaultConfig())
	require.NoError(t, err)
	follow, err := camera.New(camera.DefaultConfig())
	require.NoError(t, err)

	r := &rig{w: w, pw: pw, ctrl: ctrl, follow: follow, input: &scriptedInput{}, gate: &playGate{playing: true}, tap: &eventTap{}}

	r.player = w.CreateEntity()
	body, shape := pw.AddActorBody(r.player, common.Vec2{Y: 0.5}, 0.8, 1, 1)
	require.NoError(t, ecs.Add(w, r.player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, r.player, component.TransformComponent.Kind(), &component.Transform{Y: 0.5}))
	require.NoError(t, ecs.Add(w, r.player, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body, Shape: shape, Width: 0.8, Height: 1, Mass: 1}))
	require.NoError(t, ecs.Add(w, r.player, component.GroundProbeComponent.Kind(), &component.GroundProbe{OffsetY: -0.5, Radius: 0.1, Mask: ecs.CategoryGround}))
	require.NoError(t, ecs.Add(w, r.player, component.InputComponent.Kind(), &component.Input{}))
	require.NoError(t, ecs.Add(w, r.player, component.MovementComponent.Kind(), &component.Movement{Controller: ctrl}))
	require.NoError(t, ecs.Add(w, r.player, component.SpriteComponent.Kind(), &component.Sprite{Width: 0.8, Height: 1}))

	r.cam = w.CreateEntity()
	require.NoError(t, ecs.Add(w, r.cam, component.CameraTagComponent.Kind(), &component.CameraTag{}))
	require.NoError(t, ecs.Add(w, r.cam, component.TransformComponent.Kind(), &component.Transform{}))
	require.NoError(t, ecs.Add(w, r.cam, component.CameraComponent.Kind(), &component.Camera{Follow: follow, ViewWidth: 16, ViewHeight: 9, PixelsPerUnit: 60}))

	r.sched = ecs.NewScheduler(60)
	r.inputs = NewInputSystem(r.input)
	r.sched.Add(ecs.PhasePre, r.inputs)
	r.sched.Add(ecs.PhaseFixed, NewMovementSystem(zerolog.Nop(), r.gate), NewPhysicsSystem())
	r.sched.Add(ecs.PhaseFrame, r.tap, NewCameraSystem(r.gate))
	return r
}

func (r *rig) frames(n int) {
	for i := 0; i < n; i++ {
		r.sched.Update(r.w, step)
	}
}

func (r *rig) transform(e ecs.Entity) *component.Transform {
	t, _ := ecs.Get(r.w, e, component.TransformComponent.Kind())
	return t
}

func (r *rig) body() *component.PhysicsBody {
	b, _ := ecs.Get(r.w, r.player, component.PhysicsBodyComponent.Kind())
	return b
}

func TestMovementJumpFromGround(t *testing.T) {
	r := newRig(t)
	r.frames(30)
	require.True(t, r.ctrl.Grounded())

	r.input.next.JumpPressed = true
	r.input.next.JumpHeld = true
	r.frames(1)

	assert.True(t, r.ctrl.Jumping())
	assert.Equal(t, r.ctrl.Config().JumpForce, r.ctrl.VelocityY())
	assert.Equal(t, 1, r.tap.count(ecs.EventJumped))
	in, _ := ecs.Get(r.w, r.player, component.InputComponent.Kind())
	assert.False(t, in.JumpPressed, "press is consumed by the fixed step")

	r.input.next.JumpHeld = false
	r.frames(10)
	assert.Greater(t, r.transform(r.player).Y, 0.6)
}

func TestJumpPressSurvivesFrameWithoutFixedStep(t *testing.T) {
	r := newRig(t)
	r.frames(30)

	r.input.next.JumpPressed = true
	steps := r.sched.Update(r.w, step/4)
	require.Zero(t, steps)
	assert.False(t, r.ctrl.Jumping())

	r.sched.Update(r.w, step)
	assert.True(t, r.ctrl.Jumping())
	assert.Equal(t, 1, r.tap.count(ecs.EventJumped))
}

func TestJumpPressWhileNotPlayingIsDropped(t *testing.T) {
	r := newRig(t)
	r.frames(30)
	r.gate.playing = false

	r.input.next.JumpPressed = true
	r.frames(120)
	in, _ := ecs.Get(r.w, r.player, component.InputComponent.Kind())
	assert.False(t, in.JumpPressed)

	r.gate.playing = true
	r.frames(1)
	assert.False(t, r.ctrl.Jumping())
	assert.Zero(t, r.tap.count(ecs.EventJumped))
}

// gateStates maps cutscene state changes onto the rig's play gate.
type gateStates struct{ gate *playGate }

func (g *gateStates) SetState(s game.State) { g.gate.playing = s == game.StatePlaying }

func TestSkippingCutsceneWithJumpKeyDoesNotJump(t *testing.T) {
	r := newRig(t)
	r.frames(30)

	director := cutscene.NewDirector(zerolog.Nop(), &gateStates{gate: r.gate}, NewCameraToggle(r.w), NewPlayerActor(r.w))
	r.sched.Add(ecs.PhaseFrame, NewCutsceneSystem(director, r.inputs, true))
	director.Start(cutscene.NewIntroWalk(cutscene.DefaultConfig()))
	r.frames(10)
	require.True(t, director.Active())
	require.False(t, r.gate.playing)

	// skip on a frame that runs no fixed step
	r.input.next.JumpPressed = true
	r.input.next.SkipPressed = true
	r.input.next.JumpHeld = true
	steps := r.sched.Update(r.w, step/4)
	require.Zero(t, steps)
	require.False(t, director.Active())
	require.True(t, r.gate.playing)

	r.input.next.JumpHeld = false
	r.frames(5)
	assert.False(t, r.ctrl.Jumping())
	assert.Zero(t, r.tap.count(ecs.EventJumped))
}

func TestMovementGatedByPlayState(t *testing.T) {
	r := newRig(t)
	r.frames(30)
	r.gate.playing = false

	r.input.next.MoveX = 1
	r.frames(20)

	assert.Zero(t, r.ctrl.VelocityX())
	assert.InDelta(t, 0, r.body().Body.Velocity().X, 1e-9)
}

func TestMovementRunsAndFacesLeft(t *testing.T) {
	r := newRig(t)
	r.frames(30)

	r.input.next.MoveX = -1
	r.frames(60)

	assert.Less(t, r.transform(r.player).X, -1.0)
	assert.False(t, r.ctrl.FacingRight())
	sprite, _ := ecs.Get(r.w, r.player, component.SpriteComponent.Kind())
	assert.True(t, sprite.FacingLeft)
	assert.Equal(t, 1, r.tap.count(ecs.EventFlipped))
}

func TestMovementFailsClosedOnMissingCollaborators(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(9.81))
	ctrl, err := movement.New(movement.DefaultConfig())
	require.NoError(t, err)
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.MovementComponent.Kind(), &component.Movement{Controller: ctrl}))
	require.NoError(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))

	s := ecs.NewScheduler(60)
	s.Add(ecs.PhaseFixed, NewMovementSystem(log, nil))
	s.Update(w, step)
	s.Update(w, step)

	mv, _ := ecs.Get(w, e, component.MovementComponent.Kind())
	assert.True(t, mv.Disabled)
	assert.False(t, ctrl.Enabled())
	assert.Equal(t, 1, strings.Count(buf.String(), "Movement disabled"))
	assert.Contains(t, buf.String(), "ground probe")
	assert.Contains(t, buf.String(), "physics body")
}

func TestCameraFollowsPlayerAndAppliesBounds(t *testing.T) {
	r := newRig(t)
	require.NoError(t, ecs.Add(r.w, r.w.CreateEntity(), component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Rect:  common.Rect{MinX: -20, MinY: -5, MaxX: 20, MaxY: 20},
		KillY: -5,
	}))

	r.input.next.MoveX = 1
	r.frames(120)

	cam := r.transform(r.cam)
	assert.Greater(t, cam.X, 0.0)
	require.NotNil(t, r.follow.State().Bounds)
	assert.Equal(t, common.Rect{MinX: -12, MinY: -0.5, MaxX: 12, MaxY: 15.5}, *r.follow.State().Bounds)
	assert.Equal(t, r.follow.Position(), cam.Vec2())
}

func TestCameraConsumesShakeRequests(t *testing.T) {
	r := newRig(t)
	RequestShake(r.w, 0.3)
	RequestShake(r.w, 0.2)
	req, ok := ecs.Get(r.w, r.cam, component.CameraShakeRequestComponent.Kind())
	require.True(t, ok)
	assert.InDelta(t, 0.5, req.Trauma, 1e-9)

	r.frames(1)

	assert.False(t, ecs.Has(r.w, r.cam, component.CameraShakeRequestComponent.Kind()))
	assert.InDelta(t, 0.5-r.follow.Config().TraumaDecay*step, r.follow.Trauma(), 1e-9)
}

func TestCameraFrozenWhenNotPlaying(t *testing.T) {
	r := newRig(t)
	r.frames(5)
	before := r.transform(r.cam).Vec2()

	r.gate.playing = false
	r.body().Body.SetPosition(cp.Vector{X: 30, Y: 0.5})
	r.frames(30)

	assert.InDelta(t, 30, r.transform(r.player).X, 0.1)
	assert.Equal(t, before, r.transform(r.cam).Vec2())
}

func TestFeedbackTurnsEventsIntoTrauma(t *testing.T) {
	tests := []struct {
		name   string
		events []ecs.Event
		want   float64
	}{
		{"soft_landing", []ecs.Event{{Kind: ecs.EventLanded, Value: 5}}, 0},
		{"hard_landing", []ecs.Event{{Kind: ecs.EventLanded, Value: 12}}, 0.2},
		{"huge_landing_saturates", []ecs.Event{{Kind: ecs.EventLanded, Value: 100}}, 1},
		{"max_speed", []ecs.Event{{Kind: ecs.EventMaxSpeed}}, 0.15},
		{"both", []ecs.Event{{Kind: ecs.EventLanded, Value: 12}, {Kind: ecs.EventMaxSpeed}}, 0.35},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newRig(t)
			for _, ev := range tc.events {
				r.w.Events().Push(ev)
			}
			NewFeedbackSystem(DefaultFeedbackConfig()).Update(r.w)

			req, ok := ecs.Get(r.w, r.cam, component.CameraShakeRequestComponent.Kind())
			if tc.want == 0 {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.InDelta(t, tc.want, req.Trauma, 1e-9)
		})
	}
}
