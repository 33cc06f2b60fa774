// Package imagecache stores downloaded photos on disk so that repeated picks
// from the same URL do not refetch it.
package imagecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/figerout/figerout/internal/security"
	httputil "github.com/figerout/figerout/internal/util/http"
)

// Cache is a directory of downloaded images keyed by URL.
type Cache struct {
	// Dir is where images are stored. Created on first write.
	Dir string

	// Refresh forces a download even when a cached copy exists.
	Refresh bool

	// Fetch overrides the downloader, mainly for tests.
	Fetch func(ctx context.Context, url string) ([]byte, error)
}

// DefaultDir returns the default cache directory path.
func DefaultDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		// Fall back to the home directory if no cache dir is defined.
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "figerout", "images"), nil
	}
	return filepath.Join(cacheDir, "figerout", "images"), nil
}

// New creates a Cache rooted at dir, or at DefaultDir when dir is empty.
func New(dir string) (*Cache, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return &Cache{Dir: dir}, nil
}

// Filename returns the deterministic cache filename for url: the first 16
// bytes of its SHA-256 in hex plus the URL's extension (".img" if none).
func Filename(url string) string {
	sum := sha256.Sum256([]byte(url))

	ext := filepath.Ext(url)
	if idx := strings.IndexAny(ext, "?#"); idx != -1 {
		ext = ext[:idx]
	}
	if ext == "" || len(ext) > 5 || strings.ContainsRune(ext, '/') {
		ext = ".img"
	}

	return hex.EncodeToString(sum[:16]) + strings.ToLower(ext)
}

// Get returns the local path for url, downloading it first if needed.
func (c *Cache) Get(ctx context.Context, url string) (string, error) {
	if err := security.ValidateImageURL(url); err != nil {
		return "", err
	}

	path := filepath.Join(c.Dir, Filename(url))
	if !c.Refresh {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	fetch := c.Fetch
	if fetch == nil {
		fetch = func(ctx context.Context, url string) ([]byte, error) {
			return httputil.Fetch(ctx, url, httputil.FetchOptions{Headers: map[string]string{"Accept": "image/*"}})
		}
	}

	data, err := fetch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}

	if err := os.MkdirAll(c.Dir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	// Write then rename so a concurrent reader never sees a partial file.
	tmp, err := os.CreateTemp(c.Dir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("failed to create cache file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write cached image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write cached image: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to store cached image: %w", err)
	}

	return path, nil
}
