// Package colour provides the colour model used by Figerout: hex parsing,
// RGB/HSL conversion, nearest-name lookup and shade generation.
package colour

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ErrMalformedColour is returned when a hex string is not exactly six hex
// digits, optionally prefixed with '#'.
var ErrMalformedColour = errors.New("malformed colour")

// RGB represents a colour in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Packed returns the colour packed as R<<16 | G<<8 | B.
func (rgb RGB) Packed() uint32 {
	return uint32(rgb.R)<<16 | uint32(rgb.G)<<8 | uint32(rgb.B)
}

// Hex returns the canonical uppercase hex form (e.g., "#1A2B3C").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%06X", rgb.Packed())
}

// FromPacked unpacks a 24-bit value into RGB. Bits above 24 are ignored.
func FromPacked(v uint32) RGB {
	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// ToRGB converts a color.Color to RGB, discarding alpha.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// Color converts the value to an opaque color.RGBA.
func (rgb RGB) Color() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// ParseHex parses "#RRGGBB" or "RRGGBB" (any case). Surrounding whitespace is
// ignored. Anything else wraps ErrMalformedColour.
func ParseHex(hex string) (RGB, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("%w: %q: expected 6 hex digits, got %d", ErrMalformedColour, hex, len(s))
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q: invalid hex digits", ErrMalformedColour, hex)
	}

	return FromPacked(uint32(v)), nil
}

// MustParseHex is like ParseHex but panics on malformed input. It is meant
// for package-level tables of literal colours.
func MustParseHex(hex string) RGB {
	rgb, err := ParseHex(hex)
	if err != nil {
		panic(err)
	}
	return rgb
}

// NormaliseHex returns hex in canonical "#RRGGBB" uppercase form.
func NormaliseHex(hex string) (string, error) {
	rgb, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	return rgb.Hex(), nil
}
