package sampler

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"github.com/figerout/figerout/internal/colour"
)

// ImageSurface is an off-screen RGBA canvas that an image is drawn onto.
//
// Draw must complete before any ReadPixel call; after that the surface is
// read-only and safe for concurrent readers.
type ImageSurface struct {
	canvas    *image.RGBA
	maxWidth  int
	maxHeight int
	backdrop  color.Color
	scale     float64
	source    image.Rectangle
}

// SurfaceOption configures an ImageSurface.
type SurfaceOption func(*ImageSurface)

// WithMaxSize limits the canvas size. Larger images are scaled down to fit,
// keeping their aspect ratio. Zero means no limit on that axis.
func WithMaxSize(width, height int) SurfaceOption {
	return func(s *ImageSurface) {
		s.maxWidth = max(width, 0)
		s.maxHeight = max(height, 0)
	}
}

// WithBackdrop sets the colour transparent areas are composited over.
// The default is opaque white.
func WithBackdrop(c color.Color) SurfaceOption {
	return func(s *ImageSurface) {
		s.backdrop = c
	}
}

// NewImageSurface creates an empty surface. It reports ErrSurfaceNotReady
// until Draw is called.
func NewImageSurface(opts ...SurfaceOption) *ImageSurface {
	s := &ImageSurface{
		backdrop: color.White,
		scale:    1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Draw renders img onto a fresh canvas, replacing anything drawn before.
func (s *ImageSurface) Draw(img image.Image) {
	src := img.Bounds()
	w, h, scale := fitSize(src.Dx(), src.Dy(), s.maxWidth, s.maxHeight)

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(canvas, canvas.Bounds(), image.NewUniform(s.backdrop), image.Point{}, xdraw.Src)

	if scale == 1 {
		xdraw.Draw(canvas, canvas.Bounds(), img, src.Min, xdraw.Over)
	} else {
		xdraw.CatmullRom.Scale(canvas, canvas.Bounds(), img, src, xdraw.Over, nil)
	}

	s.canvas = canvas
	s.scale = scale
	s.source = src
}

// Bounds returns the canvas bounds, or an empty rectangle before Draw.
func (s *ImageSurface) Bounds() image.Rectangle {
	if s.canvas == nil {
		return image.Rectangle{}
	}
	return s.canvas.Bounds()
}

// ReadPixel returns the colour at (x, y) in canvas coordinates.
func (s *ImageSurface) ReadPixel(x, y int) (colour.RGB, error) {
	if s.canvas == nil {
		return colour.RGB{}, ErrSurfaceNotReady
	}
	if !(image.Point{X: x, Y: y}).In(s.canvas.Bounds()) {
		return colour.RGB{}, ErrOutOfBounds
	}
	return colour.ToRGB(s.canvas.RGBAAt(x, y)), nil
}

// Scale is the ratio of canvas size to source image size (1 when the image
// was not resized).
func (s *ImageSurface) Scale() float64 {
	return s.scale
}

// FromSource converts a coordinate in the source image to canvas coordinates.
func (s *ImageSurface) FromSource(p Point) Point {
	return Point{
		X: int(float64(p.X-s.source.Min.X) * s.scale),
		Y: int(float64(p.Y-s.source.Min.Y) * s.scale),
	}
}

// ToSource converts a canvas coordinate back to source image coordinates.
func (s *ImageSurface) ToSource(p Point) Point {
	return Point{
		X: s.source.Min.X + int(float64(p.X)/s.scale),
		Y: s.source.Min.Y + int(float64(p.Y)/s.scale),
	}
}

// fitSize returns the largest size with the aspect ratio of w x h that fits
// within maxW x maxH, never enlarging.
func fitSize(w, h, maxW, maxH int) (int, int, float64) {
	scale := 1.0
	if maxW > 0 && w > maxW {
		scale = float64(maxW) / float64(w)
	}
	if maxH > 0 && h > maxH {
		scale = min(scale, float64(maxH)/float64(h))
	}
	if scale == 1 {
		return w, h, 1
	}
	return max(1, int(float64(w)*scale)), max(1, int(float64(h)*scale)), scale
}
