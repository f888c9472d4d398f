package camera

import "github.com/milk9111/evescroller/common"

// shake drives the trauma offset from two independent noise channels.
type shake struct {
	x, y   *common.Noise1D
	t      float64
	offset common.Vec2
}

func newShake() shake {
	return shake{x: common.NewNoise1D(0x5eed), y: common.NewNoise1D(0xc0ffee)}
}

// update samples the offset for the current trauma and then decays it.
func (sh *shake) update(f *Follow, dt float64) {
	s := &f.state
	if s.Trauma <= 0 {
		sh.offset = common.Vec2{}
		return
	}
	sh.t += dt
	amp := f.ShakeAmplitude()
	phase := sh.t * f.cfg.NoiseFrequency
	sh.offset = common.Vec2{X: amp * sh.x.Sample(phase), Y: amp * sh.y.Sample(phase)}
	s.Trauma = common.Clamp01(s.Trauma - f.cfg.TraumaDecay*dt)
}
