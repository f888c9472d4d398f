package cutscene

// Config is the cutscene tuning loaded from the cutscene prefab.
type Config struct {
	Duration      float64 `yaml:"duration"`
	WalkSpeed     float64 `yaml:"walk_speed"`
	SkipWithInput bool    `yaml:"skip_with_input"`
	// Script, when set, names a tengo script that replaces the stock walk.
	Script string `yaml:"script"`
}

func DefaultConfig() Config {
	return Config{Duration: 3, WalkSpeed: 3, SkipWithInput: true}
}

// IntroWalk walks the actor right for a fixed time.
type IntroWalk struct {
	Duration  float64
	WalkSpeed float64

	elapsed float64
}

func NewIntroWalk(cfg Config) *IntroWalk {
	return &IntroWalk{Duration: cfg.Duration, WalkSpeed: cfg.WalkSpeed}
}

func (w *IntroWalk) Start() { w.elapsed = 0 }

func (w *IntroWalk) Tick(dt float64, a Actor) bool {
	if w.elapsed >= w.Duration {
		return true
	}
	a.Walk(w.WalkSpeed)
	w.elapsed += dt
	return w.elapsed >= w.Duration
}
