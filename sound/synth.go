package sound

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Entry describes one synthesized clip.
type Entry struct {
	Name      string  `yaml:"name"`
	Volume    float64 `yaml:"volume"`
	Loop      bool    `yaml:"loop"`
	Wave      string  `yaml:"wave"`
	Frequency float64 `yaml:"frequency"`
	// EndFrequency sweeps the pitch linearly over the clip when set.
	EndFrequency float64 `yaml:"end_frequency"`
	// Harmonic mixes in an octave above at this level.
	Harmonic float64 `yaml:"harmonic"`
	Duration float64 `yaml:"duration"`
	Attack   float64 `yaml:"attack"`
	Release  float64 `yaml:"release"`
}

// Config is the audio prefab.
type Config struct {
	SampleRate int             `yaml:"sample_rate"`
	Music      []Entry         `yaml:"music"`
	SFX        []Entry         `yaml:"sfx"`
	Proximity  *ProximityFader `yaml:"proximity"`
}

type waveType int

const (
	waveSine waveType = iota
	waveSquare
	waveSaw
	waveTriangle
	waveNoise
)

func parseWave(s string) (waveType, error) {
	switch s {
	case "", "sine":
		return waveSine, nil
	case "square":
		return waveSquare, nil
	case "saw":
		return waveSaw, nil
	case "triangle":
		return waveTriangle, nil
	case "noise":
		return waveNoise, nil
	}
	return 0, fmt.Errorf("sound: unknown wave %q", s)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

type oscillator struct {
	from, to float64
	phase    float64
	position int
	total    int
	wave     waveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

func newOscillator(from, to float64, d time.Duration, wave waveType, rate beep.SampleRate) *oscillator {
	if to <= 0 {
		to = from
	}
	return &oscillator{from: from, to: to, total: rate.N(d), wave: wave, rate: rate, rng: rand.New(rand.NewSource(1))}
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if o.position >= o.total {
			return i, i > 0
		}
		var v float64
		switch o.wave {
		case waveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case waveSquare:
			if o.phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		case waveSaw:
			v = 2 * (o.phase - 0.5)
		case waveTriangle:
			v = 4*math.Abs(o.phase-0.5) - 1
		case waveNoise:
			v = o.rng.Float64()*2 - 1
		}
		samples[i][0], samples[i][1] = v, v

		freq := o.from + (o.to-o.from)*float64(o.position)/float64(o.total)
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope is a linear attack/release shape over a fixed length.
type envelope struct {
	s                      beep.Streamer
	position               int
	attack, release, total int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{s: s, total: rate.N(d), attack: rate.N(attack), release: rate.N(release)}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if start := e.total - e.release; e.release > 0 && e.position >= start {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Render synthesizes e as 16-bit little-endian stereo PCM at rate Hz. The
// clip is rendered at full scale; Entry.Volume is applied by the Manager.
func Render(e Entry, rate int) ([]byte, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("sound: %s: sample rate must be positive", e.Name)
	}
	if e.Duration <= 0 {
		return nil, fmt.Errorf("sound: %s: duration must be positive", e.Name)
	}
	wave, err := parseWave(e.Wave)
	if err != nil {
		return nil, err
	}
	sr := beep.SampleRate(rate)
	d := seconds(e.Duration)
	attack, release := seconds(e.Attack), seconds(e.Release)

	var s beep.Streamer = newEnvelope(newOscillator(e.Frequency, e.EndFrequency, d, wave, sr), d, attack, release, sr)
	if e.Harmonic > 0 {
		over := newEnvelope(newOscillator(e.Frequency*2, e.EndFrequency*2, d, wave, sr), d, attack, release, sr)
		s = beep.Mix(withVolume(s, 1-e.Harmonic*0.5), withVolume(over, e.Harmonic*0.5))
	}
	return encodePCM(s, sr.N(d)), nil
}

func encodePCM(s beep.Streamer, total int) []byte {
	out := make([]byte, 0, total*4)
	buf := make([][2]float64, 512)
	var frame [4]byte
	for written := 0; written < total; {
		chunk := buf
		if rest := total - written; rest < len(chunk) {
			chunk = chunk[:rest]
		}
		n, ok := s.Stream(chunk)
		for i := 0; i < n; i++ {
			l := int16(math.Max(-1, math.Min(1, chunk[i][0])) * math.MaxInt16)
			r := int16(math.Max(-1, math.Min(1, chunk[i][1])) * math.MaxInt16)
			binary.LittleEndian.PutUint16(frame[0:], uint16(l))
			binary.LittleEndian.PutUint16(frame[2:], uint16(r))
			out = append(out, frame[:]...)
		}
		written += n
		if !ok || n == 0 {
			break
		}
	}
	return out
}
