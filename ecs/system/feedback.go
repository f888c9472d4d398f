package system

import (
	"math"

	"github.com/milk9111/evescroller/ecs"
)

// FeedbackConfig maps movement events to camera trauma.
type FeedbackConfig struct {
	LandingTraumaSpeed float64 `yaml:"landing_trauma_speed"`
	LandingTraumaScale float64 `yaml:"landing_trauma_scale"`
	SpeedBoostTrauma   float64 `yaml:"speed_boost_trauma"`
}

func DefaultFeedbackConfig() FeedbackConfig {
	return FeedbackConfig{LandingTraumaSpeed: 8, LandingTraumaScale: 0.05, SpeedBoostTrauma: 0.15}
}

// FeedbackSystem turns hard landings and max-speed bursts into shake. It
// must run before the CameraSystem in the frame phase.
type FeedbackSystem struct {
	cfg FeedbackConfig
}

func NewFeedbackSystem(cfg FeedbackConfig) *FeedbackSystem {
	return &FeedbackSystem{cfg: cfg}
}

func (s *FeedbackSystem) SetConfig(cfg FeedbackConfig) { s.cfg = cfg }

func (s *FeedbackSystem) Update(w *ecs.World) {
	for _, ev := range w.Events().All() {
		switch ev.Kind {
		case ecs.EventLanded:
			if ev.Value > s.cfg.LandingTraumaSpeed {
				RequestShake(w, math.Min(1, (ev.Value-s.cfg.LandingTraumaSpeed)*s.cfg.LandingTraumaScale))
			}
		case ecs.EventMaxSpeed:
			RequestShake(w, s.cfg.SpeedBoostTrauma)
		}
	}
}
