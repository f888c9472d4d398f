package ecs

import "math"

// Phase selects when a system runs inside a frame.
type Phase int

const (
	// PhasePre runs once per frame before any fixed step. Input sampling
	// lives here so presses are latched even on frames with no fixed step.
	PhasePre Phase = iota
	// PhaseFixed runs zero or more times per frame at the tick rate.
	PhaseFixed
	// PhaseFrame runs once per frame after every fixed step.
	PhaseFrame
)

// DefaultMaxSteps caps fixed steps per frame so a long stall cannot spiral.
const DefaultMaxSteps = 5

// Clock is the timing systems read. Time only advances in fixed steps and
// is the global elapsed game clock.
type Clock struct {
	// Step is the fixed tick length in seconds.
	Step float64
	// Delta is the scaled length of the current frame.
	Delta float64
	// Unscaled is the wall length of the current frame.
	Unscaled  float64
	Time      float64
	TimeScale float64
	Ticks     uint64
	Frames    uint64

	accumulator float64
}

// Scheduler runs pre, fixed and frame systems in strict order.
type Scheduler struct {
	pre      []System
	fixed    []System
	frame    []System
	maxSteps int
	step     float64
}

func NewScheduler(tickRate int) *Scheduler {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Scheduler{maxSteps: DefaultMaxSteps, step: 1 / float64(tickRate)}
}

func (s *Scheduler) Add(phase Phase, systems ...System) {
	for _, system := range systems {
		if system == nil {
			continue
		}
		switch phase {
		case PhasePre:
			s.pre = append(s.pre, system)
		case PhaseFixed:
			s.fixed = append(s.fixed, system)
		default:
			s.frame = append(s.frame, system)
		}
	}
}

func (s *Scheduler) SetMaxSteps(n int) {
	if n > 0 {
		s.maxSteps = n
	}
}

// Step returns the fixed tick length.
func (s *Scheduler) Step() float64 { return s.step }

// Update runs one frame of frameDt wall seconds and returns how many fixed
// steps ran. Time owed beyond the step cap is dropped.
func (s *Scheduler) Update(w *World, frameDt float64) int {
	c := w.Clock()
	frameDt = math.Max(0, frameDt)
	c.Step = s.step
	c.Unscaled = frameDt
	c.Delta = frameDt * c.TimeScale
	c.Frames++

	for _, system := range s.pre {
		system.Update(w)
	}

	c.accumulator += c.Delta
	steps := 0
	for c.accumulator >= s.step && steps < s.maxSteps {
		for _, system := range s.fixed {
			system.Update(w)
		}
		c.accumulator -= s.step
		c.Time += s.step
		c.Ticks++
		steps++
	}
	if steps == s.maxSteps && c.accumulator >= s.step {
		c.accumulator = math.Mod(c.accumulator, s.step)
	}

	for _, system := range s.frame {
		system.Update(w)
	}
	w.events.flush()
	return steps
}

// SetTimeScale scales simulation time. Zero freezes fixed steps.
func (c *Clock) SetTimeScale(scale float64) {
	c.TimeScale = math.Max(0, scale)
}

// Alpha is how far the accumulator sits into the next fixed step.
func (c *Clock) Alpha() float64 {
	if c.Step <= 0 {
		return 0
	}
	return c.accumulator / c.Step
}
