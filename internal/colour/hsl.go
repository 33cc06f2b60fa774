package colour

import (
	"fmt"
	"math"
)

// HSL is a colour in hue/saturation/lightness form.
// All three components are normalised to [0, 1]; H is a fraction of a turn.
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// String returns the HSL colour as "hsl(240, 100%, 50%)".
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", c.H*360, c.S*100, c.L*100)
}

// HSL converts the colour to HSL.
// Achromatic colours (R == G == B) have hue and saturation 0.
func (rgb RGB) HSL() HSL {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))

	l := (maxVal + minVal) / 2.0

	if maxVal == minVal {
		return HSL{H: 0, S: 0, L: l}
	}

	d := maxVal - minVal

	var s float64
	if l > 0.5 {
		s = d / (2.0 - maxVal - minVal)
	} else {
		s = d / (maxVal + minVal)
	}

	var h float64
	switch maxVal {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}

	return HSL{H: h / 6, S: s, L: l}
}

// RGB converts the colour back to RGB. Channels are rounded to the nearest
// integer and clamped into [0, 255].
func (c HSL) RGB() RGB {
	if c.S == 0 {
		v := toChannel(c.L)
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if c.L < 0.5 {
		q = c.L * (1 + c.S)
	} else {
		q = c.L + c.S - c.L*c.S
	}
	p := 2*c.L - q

	return RGB{
		R: toChannel(hueToRGB(p, q, c.H+1.0/3.0)),
		G: toChannel(hueToRGB(p, q, c.H)),
		B: toChannel(hueToRGB(p, q, c.H-1.0/3.0)),
	}
}

// WithLightness returns a copy with L replaced and clamped into [0, 1].
func (c HSL) WithLightness(l float64) HSL {
	c.L = math.Max(0, math.Min(1, l))
	return c
}

// hueToRGB evaluates one channel of the HSL to RGB conversion.
// t is the hue offset for the channel, as a fraction of a turn.
func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}

func toChannel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v*255))))
}
