package common

import "math"

// Noise1D is a seeded 1D gradient noise channel. Sample returns values in
// [-1,1] that vary smoothly with t; two channels with different seeds are
// decorrelated.
type Noise1D struct {
	perm [512]uint8
}

// NewNoise1D builds a channel from seed using a deterministic shuffle.
func NewNoise1D(seed uint64) *Noise1D {
	n := &Noise1D{}
	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}
	s := seed*0x9E3779B97F4A7C15 + 1
	for i := 255; i > 0; i-- {
		// xorshift64*
		s ^= s >> 12
		s ^= s << 25
		s ^= s >> 27
		j := int((s * 0x2545F4914F6CDD1D) % uint64(i+1))
		p[i], p[j] = p[j], p[i]
	}
	for i := range n.perm {
		n.perm[i] = p[i&255]
	}
	return n
}

func (n *Noise1D) grad(i int) float64 {
	// gradients in [-1,1] with a fixed spread of 16 steps
	h := n.perm[i&255] & 15
	return float64(h)/7.5 - 1
}

// Sample evaluates the channel at t.
func (n *Noise1D) Sample(t float64) float64 {
	if n == nil {
		return 0
	}
	i0 := int(math.Floor(t))
	f := t - float64(i0)
	g0 := n.grad(i0) * f
	g1 := n.grad(i0+1) * (f - 1)
	u := f * f * f * (f*(f*6-15) + 10)
	// gradient noise peaks at 0.5 in magnitude
	return Clamp(Lerp(g0, g1, u)*2, -1, 1)
}
