package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvDBPath, EnvAddr, EnvCacheDir, EnvModel, EnvGenAIBackend, EnvMaxSurface, EnvAPIKey, EnvGoogleProject, EnvGoogleRegion} {
		t.Setenv(k, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want %q", cfg.Addr, DefaultAddr)
	}
	if cfg.GenAI.Model != DefaultModel || cfg.GenAI.Backend != DefaultBackend {
		t.Errorf("GenAI = %+v", cfg.GenAI)
	}
	if cfg.MaxSurface != DefaultMaxSurface {
		t.Errorf("MaxSurface = %d, want %d", cfg.MaxSurface, DefaultMaxSurface)
	}
	if !strings.HasSuffix(cfg.DBPath, filepath.Join("figerout", "collection.db")) {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.GenAI.Enabled() {
		t.Error("GenAI should be disabled without an API key")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDBPath, "/tmp/c.db")
	t.Setenv(EnvAddr, "127.0.0.1:9000")
	t.Setenv(EnvMaxSurface, "0")
	t.Setenv(EnvAPIKey, "key")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.DBPath != "/tmp/c.db" || cfg.Addr != "127.0.0.1:9000" || cfg.MaxSurface != 0 {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.GenAI.Enabled() {
		t.Error("GenAI should be enabled with an API key")
	}
}

func TestFromEnvInvalidMaxSurface(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvMaxSurface, "big")
	if _, err := FromEnv(); err == nil {
		t.Error("expected error for non-numeric max surface")
	}
}

func TestVertexEnabled(t *testing.T) {
	g := GenAIConfig{Backend: "vertex-ai"}
	if g.Enabled() {
		t.Error("vertex-ai without project should be disabled")
	}
	g.Project = "p"
	if !g.Enabled() {
		t.Error("vertex-ai with project should be enabled")
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv(EnvModel)

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte(EnvModel+"=gemini-test\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv(EnvModel) })

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GenAI.Model != "gemini-test" {
		t.Errorf("Model = %q, want gemini-test", cfg.GenAI.Model)
	}
}

func TestLoadMissingEnvFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("Load with missing file: %v", err)
	}
}
