// Package config resolves Figerout settings from the environment and an
// optional .env file. Command-line flags override these values in the cli
// package.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvDBPath        = "FIGEROUT_DB"
	EnvAddr          = "FIGEROUT_ADDR"
	EnvCacheDir      = "FIGEROUT_CACHE_DIR"
	EnvModel         = "FIGEROUT_MODEL"
	EnvGenAIBackend  = "FIGEROUT_GENAI_BACKEND"
	EnvMaxSurface    = "FIGEROUT_MAX_SURFACE"
	EnvAPIKey        = "GOOGLE_API_KEY"
	EnvGoogleProject = "GOOGLE_CLOUD_PROJECT"
	EnvGoogleRegion  = "GOOGLE_CLOUD_LOCATION"
)

// Defaults.
const (
	DefaultAddr       = ":8080"
	DefaultModel      = "gemini-2.5-flash"
	DefaultBackend    = "gemini-api"
	DefaultMaxSurface = 2048
)

// Config holds resolved settings.
type Config struct {
	// DBPath is the SQLite file for the saved colour collection.
	DBPath string

	// Addr is the listen address for `figerout serve`.
	Addr string

	// CacheDir holds downloaded images. Empty means the user cache dir.
	CacheDir string

	// MaxSurface bounds the longer side of the drawing surface used by the
	// HTTP API, in pixels. Zero selects the server default.
	MaxSurface int

	GenAI GenAIConfig
}

// GenAIConfig configures the colour description client.
type GenAIConfig struct {
	APIKey   string
	Model    string
	Backend  string
	Project  string
	Location string
}

// Enabled reports whether enough is configured to call the API.
func (g GenAIConfig) Enabled() bool {
	if g.Backend == "vertex-ai" {
		return g.Project != ""
	}
	return g.APIKey != ""
}

// Load reads envFile (if it exists) into the process environment without
// overriding variables that are already set, then resolves the Config.
// An empty envFile means ".env" in the working directory.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	return FromEnv()
}

// FromEnv resolves the Config from environment variables only.
func FromEnv() (*Config, error) {
	dbPath := os.Getenv(EnvDBPath)
	if dbPath == "" {
		p, err := defaultDBPath()
		if err != nil {
			return nil, err
		}
		dbPath = p
	}

	maxSurface := DefaultMaxSurface
	if v := os.Getenv(EnvMaxSurface); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%s must be a non-negative integer, got %q", EnvMaxSurface, v)
		}
		maxSurface = n
	}

	return &Config{
		DBPath:     dbPath,
		Addr:       getenv(EnvAddr, DefaultAddr),
		CacheDir:   os.Getenv(EnvCacheDir),
		MaxSurface: maxSurface,
		GenAI: GenAIConfig{
			APIKey:   os.Getenv(EnvAPIKey),
			Model:    getenv(EnvModel, DefaultModel),
			Backend:  getenv(EnvGenAIBackend, DefaultBackend),
			Project:  os.Getenv(EnvGoogleProject),
			Location: os.Getenv(EnvGoogleRegion),
		},
	}, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// defaultDBPath returns $XDG_DATA_HOME-style storage under the user config dir.
func defaultDBPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("failed to determine data directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "figerout", "collection.db"), nil
}
