// Command tune runs the movement controller headless on flat ground and
// reports how the player.yaml tuning feels in numbers.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/milk9111/evescroller/common"
	"github.com/milk9111/evescroller/logging"
	"github.com/milk9111/evescroller/movement"
	"github.com/milk9111/evescroller/prefabs"
)

const step = 1.0 / 60

// report is what one simulated tuning produces.
type report struct {
	TimeToMaxSpeed float64
	TopSpeed       float64
	TapApex        float64
	TapAirtime     float64
	HeldApex       float64
	HeldAirtime    float64
}

// sim integrates a controller over flat ground at y = 0. Base gravity is
// applied here the way the physics world would.
type sim struct {
	ctrl *movement.Controller
	cfg  movement.Config
	pos  common.Vec2
	vel  common.Vec2
	now  float64
}

func newSim(cfg movement.Config) (*sim, error) {
	ctrl, err := movement.New(cfg)
	if err != nil {
		return nil, err
	}
	s := &sim{ctrl: ctrl, cfg: cfg}
	// settle so the controller sees ground before the first measurement
	s.tick(movement.Input{})
	return s, nil
}

func (s *sim) grounded() bool { return s.pos.Y <= 0 && s.vel.Y <= 0 }

func (s *sim) tick(in movement.Input) movement.Events {
	res := s.ctrl.Update(movement.Tick{
		Input:    in,
		Grounded: s.grounded(),
		Position: s.pos,
		Velocity: s.vel,
		Dt:       step,
		Now:      s.now,
	})
	s.vel = res.Velocity
	s.vel.Y -= s.cfg.Gravity * step
	s.pos = s.pos.Add(s.vel.Scale(step))
	if s.pos.Y < 0 {
		s.pos.Y = 0
		s.vel.Y = 0
	}
	s.now += step
	return res.Events
}

// run holds right for up to limit seconds and returns the time max speed
// latched, or -1 if it never did.
func (s *sim) run(limit float64) (float64, float64) {
	start := s.now
	top := 0.0
	for s.now-start < limit {
		ev := s.tick(movement.Input{MoveX: 1})
		top = max(top, s.vel.X)
		if ev.MaxSpeedReached {
			return s.now - start, top
		}
	}
	return -1, top
}

// jump presses jump and holds it for hold seconds, then measures the apex
// height and the time until touching down again.
func (s *sim) jump(hold, limit float64) (apex, airtime float64) {
	start := s.now
	first := true
	for s.now-start < limit {
		held := s.now-start < hold
		s.tick(movement.Input{JumpPressed: first, JumpHeld: held || first})
		first = false
		apex = max(apex, s.pos.Y)
		if s.now-start > step && s.grounded() {
			return apex, s.now - start
		}
	}
	return apex, -1
}

func measure(cfg movement.Config, seconds float64) (report, error) {
	var r report

	s, err := newSim(cfg)
	if err != nil {
		return r, err
	}
	r.TimeToMaxSpeed, r.TopSpeed = s.run(seconds)

	s, _ = newSim(cfg)
	r.TapApex, r.TapAirtime = s.jump(0, seconds)

	s, _ = newSim(cfg)
	r.HeldApex, r.HeldAirtime = s.jump(seconds, seconds)
	return r, nil
}

func main() {
	evolved := flag.Bool("evolved", false, "measure the evolved tuning instead of the base tuning")
	seconds := flag.Float64("seconds", 5, "simulation limit per measurement in seconds")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	log := logging.New(*level, true)

	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		log.Fatal().Err(err).Msg("load player spec")
	}
	cfg := spec.Movement
	if *evolved {
		if spec.Evolved == nil {
			log.Fatal().Msg("player.yaml has no evolved tuning")
		}
		cfg = *spec.Evolved
	}

	r, err := measure(cfg, *seconds)
	if err != nil {
		log.Fatal().Err(err).Msg("measure tuning")
	}
	logReport(log, spec.Name, *evolved, r)

	fmt.Fprintf(os.Stdout, "max speed %.2fs (%.2f u/s)  tap apex %.2fu/%.2fs  held apex %.2fu/%.2fs\n",
		r.TimeToMaxSpeed, r.TopSpeed, r.TapApex, r.TapAirtime, r.HeldApex, r.HeldAirtime)
}

func logReport(log zerolog.Logger, name string, evolved bool, r report) {
	ev := log.Info().Str("player", name).Bool("evolved", evolved)
	if r.TimeToMaxSpeed < 0 {
		ev = ev.Str("time_to_max_speed", "never")
	} else {
		ev = ev.Float64("time_to_max_speed", r.TimeToMaxSpeed)
	}
	ev.Float64("top_speed", r.TopSpeed).
		Float64("tap_apex", r.TapApex).
		Float64("tap_airtime", r.TapAirtime).
		Float64("held_apex", r.HeldApex).
		Float64("held_airtime", r.HeldAirtime).
		Msg("tuning report")
}
