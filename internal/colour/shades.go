package colour

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Defaults used when generating shade ramps.
const (
	DefaultShadeCount = 4
	DefaultShadeStep  = 10.0
)

// ErrInvalidShadeParams is returned for a negative count, or a step that is
// negative or not a finite number.
var ErrInvalidShadeParams = errors.New("invalid shade parameters")

// ShadeSet holds the shades generated around a base colour.
//
// Darker runs from the darkest shade to the one nearest the base, and Lighter
// from the one nearest the base to the lightest, so that
// Darker + Base + Lighter reads dark to light.
type ShadeSet struct {
	Base    string   `json:"base"`
	Darker  []string `json:"darker"`
	Lighter []string `json:"lighter"`
}

// Ramp returns the full dark-to-light sequence including the base colour.
func (s *ShadeSet) Ramp() []string {
	ramp := make([]string, 0, len(s.Darker)+1+len(s.Lighter))
	ramp = append(ramp, s.Darker...)
	ramp = append(ramp, s.Base)
	ramp = append(ramp, s.Lighter...)
	return ramp
}

// GenerateShades produces count lighter and count darker variants of hex.
// Shade i (1-based) shifts HSL lightness by i*step percentage points, clamped
// to [0, 1]; hue and saturation are unchanged.
func GenerateShades(hex string, count int, step float64) (*ShadeSet, error) {
	if count < 0 || step < 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return nil, fmt.Errorf("%w: count=%d step=%g", ErrInvalidShadeParams, count, step)
	}

	base, err := ParseHex(hex)
	if err != nil {
		return nil, err
	}

	hsl := base.HSL()
	set := &ShadeSet{
		Base:    base.Hex(),
		Darker:  make([]string, 0, count),
		Lighter: make([]string, 0, count),
	}

	for i := 1; i <= count; i++ {
		offset := float64(i) * step / 100
		set.Lighter = append(set.Lighter, hsl.WithLightness(hsl.L+offset).RGB().Hex())
		set.Darker = append(set.Darker, hsl.WithLightness(hsl.L-offset).RGB().Hex())
	}
	slices.Reverse(set.Darker)

	return set, nil
}
