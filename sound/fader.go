package sound

import "github.com/milk9111/evescroller/common"

// ProximityFader raises a track's gain as the listener nears a point of
// interest.
type ProximityFader struct {
	Track       string  `yaml:"track"`
	MaxDistance float64 `yaml:"max_distance"`
	MinVolume   float64 `yaml:"min_volume"`
	MaxVolume   float64 `yaml:"max_volume"`
	FadeSpeed   float64 `yaml:"fade_speed"`

	current float64
	started bool
}

// Target is the gain for a listener at dist from the point of interest.
func (f *ProximityFader) Target(dist float64) float64 {
	if f.MaxDistance <= 0 || dist > f.MaxDistance {
		return f.MinVolume
	}
	return common.Lerp(f.MaxVolume, f.MinVolume, dist/f.MaxDistance)
}

// Update eases the gain toward Target(dist) and returns it.
func (f *ProximityFader) Update(dist, dt float64) float64 {
	if !f.started {
		f.current = f.MinVolume
		f.started = true
	}
	f.current = common.Lerp(f.current, f.Target(dist), common.Clamp01(f.FadeSpeed*dt))
	return f.current
}

func (f *ProximityFader) Current() float64 { return f.current }

// Apply runs Update and pushes the gain into m.
func (f *ProximityFader) Apply(m *Manager, listener, poi common.Vec2, dt float64) {
	g := f.Update(listener.Sub(poi).Len(), dt)
	m.SetMusicGain(f.Track, g)
}
