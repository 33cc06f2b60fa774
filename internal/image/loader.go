// Package image loads photos from files, URLs and uploads for colour picking.
package image

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP format
	_ "golang.org/x/image/tiff" // Register TIFF format
	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/figerout/figerout/internal/util/imagecache"
)

// DefaultMaxPixels is the pixel budget used when none is given: 40
// megapixels, about 160 MB once decoded to RGBA.
const DefaultMaxPixels = 40_000_000

var (
	// ErrUnsupportedFormat is returned when image data cannot be decoded.
	ErrUnsupportedFormat = errors.New("unsupported or invalid image format")

	// ErrImageTooLarge is returned when an image header declares more pixels
	// than the caller allows.
	ErrImageTooLarge = errors.New("image dimensions exceed limit")
)

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path or URL.
	Load(ctx context.Context, path string) (image.Image, error)
}

// Decode decodes image data from r. Supported formats: JPEG, PNG, GIF,
// WebP, BMP, TIFF.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	return img, format, nil
}

// DecodeLimited reads the image header and refuses images with more than
// maxPixels pixels before decoding any pixel data. maxPixels <= 0 selects
// DefaultMaxPixels.
func DecodeLimited(r io.ReadSeeker, maxPixels int) (image.Image, string, error) {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}

	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > int64(maxPixels) {
		return nil, "", fmt.Errorf("%w: %s image is %dx%d, limit is %d pixels",
			ErrImageTooLarge, format, cfg.Width, cfg.Height, maxPixels)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, "", fmt.Errorf("failed to rewind image data: %w", err)
	}
	return Decode(r)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct {
	// MaxPixels bounds image dimensions; zero means DefaultMaxPixels.
	MaxPixels int
}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path.
func (l *FileLoader) Load(_ context.Context, path string) (image.Image, error) {
	if err := ValidateImagePath(path); err != nil {
		return nil, err
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, _, err := DecodeLimited(file, l.MaxPixels)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFormat) && !IsImageFile(path) {
			return nil, fmt.Errorf("failed to decode %s (supported extensions: %s): %w",
				path, strings.Join(SupportedImageExtensions(), ", "), err)
		}
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return img, nil
}

// IsURL reports whether path is an HTTP(S) URL.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// ValidateImagePath checks that path names an existing regular file.
// URLs are accepted without fetching.
func ValidateImagePath(path string) error {
	if path == "" {
		return fmt.Errorf("image path cannot be empty")
	}

	if IsURL(path) {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image file not found: %s", path)
		}
		return fmt.Errorf("failed to stat image file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	return nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff"}
}

// IsImageFile checks if a file has a supported image extension.
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// SmartLoader loads images from both local files and HTTP(S) URLs.
// Remote images go through an on-disk cache.
type SmartLoader struct {
	fileLoader *FileLoader
	cache      *imagecache.Cache
}

// NewSmartLoader creates a new SmartLoader. cache may be nil, in which case
// URLs are rejected.
func NewSmartLoader(cache *imagecache.Cache) *SmartLoader {
	return &SmartLoader{
		fileLoader: NewFileLoader(),
		cache:      cache,
	}
}

// Load loads an image from either a local file path or HTTP(S) URL.
func (l *SmartLoader) Load(ctx context.Context, path string) (image.Image, error) {
	if !IsURL(path) {
		return l.fileLoader.Load(ctx, path)
	}

	if l.cache == nil {
		return nil, fmt.Errorf("remote images are not enabled: %s", path)
	}

	local, err := l.cache.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}

	return l.fileLoader.Load(ctx, local)
}
