package cutscene

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// ScriptSequence drives the actor from a tengo script. The script runs once
// per frame with `elapsed` and `dt` set and may call walk(speed), stop() and
// finish().
type ScriptSequence struct {
	name     string
	compiled *tengo.Compiled
	elapsed  float64

	actor    Actor
	finished bool
	err      error
}

// NewScriptSequence compiles src. Compilation errors are returned here so a
// broken script never reaches the frame loop.
func NewScriptSequence(name string, src []byte) (*ScriptSequence, error) {
	s := &ScriptSequence{name: name}

	script := tengo.NewScript(src)
	_ = script.Add("elapsed", 0.0)
	_ = script.Add("dt", 0.0)
	_ = script.Add("walk", &tengo.UserFunction{Name: "walk", Value: s.walk})
	_ = script.Add("stop", &tengo.UserFunction{Name: "stop", Value: s.stop})
	_ = script.Add("finish", &tengo.UserFunction{Name: "finish", Value: s.finish})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("cutscene: compile %s: %w", name, err)
	}
	s.compiled = compiled
	return s, nil
}

func (s *ScriptSequence) Start() {
	s.elapsed = 0
	s.finished = false
}

func (s *ScriptSequence) Tick(dt float64, a Actor) bool {
	if s.finished {
		return true
	}
	s.actor = a
	defer func() { s.actor = nil }()

	if err := s.compiled.Set("elapsed", s.elapsed); err != nil {
		return s.fail(err)
	}
	if err := s.compiled.Set("dt", dt); err != nil {
		return s.fail(err)
	}
	if err := s.compiled.Run(); err != nil {
		return s.fail(err)
	}
	s.elapsed += dt
	return s.finished
}

// Err returns the last runtime error, if the script died.
func (s *ScriptSequence) Err() error { return s.err }

func (s *ScriptSequence) fail(err error) bool {
	s.err = fmt.Errorf("cutscene: run %s: %w", s.name, err)
	s.finished = true
	return true
}

func (s *ScriptSequence) walk(args ...tengo.Object) (tengo.Object, error) {
	if s.actor == nil || len(args) < 1 {
		return tengo.FalseValue, nil
	}
	speed, ok := tengo.ToFloat64(args[0])
	if !ok {
		return tengo.FalseValue, nil
	}
	s.actor.Walk(speed)
	return tengo.TrueValue, nil
}

func (s *ScriptSequence) stop(args ...tengo.Object) (tengo.Object, error) {
	if s.actor == nil {
		return tengo.FalseValue, nil
	}
	s.actor.StopWalking()
	return tengo.TrueValue, nil
}

func (s *ScriptSequence) finish(args ...tengo.Object) (tengo.Object, error) {
	s.finished = true
	return tengo.TrueValue, nil
}
