package clearcolor

import "math"

// DefaultRate is the per-frame channel step used when no rate is configured.
const DefaultRate = 0.005

// Color is an RGBA clear color with channels in [0,1].
type Color struct {
	R, G, B, A float64
}

// Black is opaque black, the animator's starting color.
var Black = Color{A: 1}

// Channel returns channel i (0=R, 1=G, 2=B, 3=A). Out-of-range indices return NaN.
func (c Color) Channel(i int) float64 {
	switch i {
	case 0:
		return c.R
	case 1:
		return c.G
	case 2:
		return c.B
	case 3:
		return c.A
	default:
		return math.NaN()
	}
}

// SetChannel sets channel i. Out-of-range indices are ignored.
func (c *Color) SetChannel(i int, v float64) {
	switch i {
	case 0:
		c.R = v
	case 1:
		c.G = v
	case 2:
		c.B = v
	case 3:
		c.A = v
	}
}

// Phased ramps one RGB channel at a time. While growing it raises the channel after the
// current one up to 1 and makes it current; while shrinking it lowers the channel before
// the current one down to 0. Alpha is never touched.
type Phased struct {
	growing bool
	channel int
	color   Color
}

// NewPhased returns an animator at opaque black, growing, on channel 0.
func NewPhased() *Phased {
	return &Phased{growing: true, color: Black}
}

// NewPhasedFrom returns an animator with the given state. RGB channels are clamped to
// [0,1] and channel is wrapped into 0..2.
func NewPhasedFrom(c Color, growing bool, channel int) *Phased {
	for i := 0; i < 3; i++ {
		c.SetChannel(i, clamp(c.Channel(i)))
	}
	return &Phased{growing: growing, channel: ((channel % 3) + 3) % 3, color: c}
}

// Color returns the current color without advancing.
func (p *Phased) Color() Color { return p.color }

// Growing reports whether the next update raises a channel.
func (p *Phased) Growing() bool { return p.growing }

// Channel returns the current reference channel.
func (p *Phased) Channel() int { return p.channel }

// Target returns the channel the next update will change.
func (p *Phased) Target() int {
	if p.growing {
		return (p.channel + 1) % 3
	}
	return (p.channel + 2) % 3
}

// Update advances the animation by one step of rate and returns the new color.
// A target already sitting at its bound flips the mode without consuming the step,
// so every call with rate > 0 changes exactly one channel.
func (p *Phased) Update(rate float64) Color {
	if rate <= 0 || math.IsNaN(rate) {
		return p.color
	}
	// Two modes over three channels: six attempts always reach a movable channel.
	for attempt := 0; attempt < 6; attempt++ {
		idx := p.Target()
		v := p.color.Channel(idx)
		if p.growing {
			if v >= 1 {
				p.growing = false
				p.channel = idx
				continue
			}
			v = clamp(v + rate)
			p.color.SetChannel(idx, v)
			if v >= 1 {
				p.growing = false
				p.channel = idx
			}
			return p.color
		}
		if v <= 0 {
			p.growing = true
			continue
		}
		v = clamp(v - rate)
		p.color.SetChannel(idx, v)
		if v <= 0 {
			p.growing = true
		}
		return p.color
	}
	return p.color
}

func clamp(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
