// Package sampler reads colours from a drawn raster surface.
//
// A Surface is drawn once per loaded image and then read many times while the
// user drags a pointer across it. Sampling never writes to the surface.
package sampler

import (
	"errors"
	"fmt"
	"image"

	"github.com/figerout/figerout/internal/colour"
)

var (
	// ErrSurfaceNotReady is returned when sampling before an image was drawn.
	ErrSurfaceNotReady = errors.New("surface not ready: no image has been drawn")

	// ErrOutOfBounds is returned by Surface.ReadPixel for coordinates outside
	// the surface. Sampler clamps before reading, so callers of Sampler never
	// see it.
	ErrOutOfBounds = errors.New("coordinate outside surface")
)

// Surface is the read capability the sampler needs from a drawing surface.
type Surface interface {
	// Bounds returns the drawable area. It is empty until an image is drawn.
	Bounds() image.Rectangle

	// ReadPixel returns the opaque colour at (x, y).
	ReadPixel(x, y int) (colour.RGB, error)
}

// Point is a coordinate on a surface.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Clamp moves p inside bounds. bounds must not be empty.
func (p Point) Clamp(bounds image.Rectangle) Point {
	return Point{
		X: min(max(p.X, bounds.Min.X), bounds.Max.X-1),
		Y: min(max(p.Y, bounds.Min.Y), bounds.Max.Y-1),
	}
}

// Sample is the result of picking one point.
type Sample struct {
	Point Point      `json:"point"`
	RGB   colour.RGB `json:"rgb"`
	Hex   string     `json:"hex"`
}

// Sampler picks colours from a Surface.
//
// Coordinates outside the surface are clamped to the nearest edge pixel
// rather than rejected; Sample reports the point that was actually read.
type Sampler struct {
	surface Surface
}

// New creates a Sampler over surface.
func New(surface Surface) *Sampler {
	return &Sampler{surface: surface}
}

// Sample reads the pixel at (x, y).
func (s *Sampler) Sample(x, y int) (Sample, error) {
	bounds, err := s.bounds()
	if err != nil {
		return Sample{}, err
	}

	p := Point{X: x, Y: y}.Clamp(bounds)
	rgb, err := s.surface.ReadPixel(p.X, p.Y)
	if err != nil {
		return Sample{}, fmt.Errorf("read pixel (%d, %d): %w", p.X, p.Y, err)
	}

	return Sample{Point: p, RGB: rgb, Hex: rgb.Hex()}, nil
}

// Hex is a convenience wrapper returning only the hex code at (x, y).
func (s *Sampler) Hex(x, y int) (string, error) {
	sample, err := s.Sample(x, y)
	if err != nil {
		return "", err
	}
	return sample.Hex, nil
}

// SampleArea averages the square of side 2*radius+1 centred on (x, y).
// Pixels of the square that fall outside the surface are skipped. A radius
// of zero is the same as Sample.
func (s *Sampler) SampleArea(x, y, radius int) (Sample, error) {
	if radius <= 0 {
		return s.Sample(x, y)
	}

	bounds, err := s.bounds()
	if err != nil {
		return Sample{}, err
	}

	centre := Point{X: x, Y: y}.Clamp(bounds)
	area := image.Rect(centre.X-radius, centre.Y-radius, centre.X+radius+1, centre.Y+radius+1).Intersect(bounds)

	var rSum, gSum, bSum, n int
	for py := area.Min.Y; py < area.Max.Y; py++ {
		for px := area.Min.X; px < area.Max.X; px++ {
			rgb, err := s.surface.ReadPixel(px, py)
			if err != nil {
				return Sample{}, fmt.Errorf("read pixel (%d, %d): %w", px, py, err)
			}
			rSum += int(rgb.R)
			gSum += int(rgb.G)
			bSum += int(rgb.B)
			n++
		}
	}

	avg := colour.RGB{
		R: uint8((rSum + n/2) / n),
		G: uint8((gSum + n/2) / n),
		B: uint8((bSum + n/2) / n),
	}
	return Sample{Point: centre, RGB: avg, Hex: avg.Hex()}, nil
}

func (s *Sampler) bounds() (image.Rectangle, error) {
	if s.surface == nil {
		return image.Rectangle{}, ErrSurfaceNotReady
	}
	bounds := s.surface.Bounds()
	if bounds.Empty() {
		return image.Rectangle{}, ErrSurfaceNotReady
	}
	return bounds, nil
}
