package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithNoFileOrEnv(t *testing.T) {
	cfg := Load("")
	if cfg.ListenAddress != ":8089" || cfg.LogLevel != "info" || cfg.MetricsPath != "/metrics" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadYAMLFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sanitizer.yaml")
	contents := "listenAddress: \":9090\"\nlogLevel: debug\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := Load(path)
	if cfg.ListenAddress != ":9090" {
		t.Errorf("ListenAddress = %q, want :9090", cfg.ListenAddress)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	// Untouched by the file, so the default should survive.
	if cfg.HealthPath != "/healthz" {
		t.Errorf("HealthPath = %q, want /healthz", cfg.HealthPath)
	}
}

func TestEnvVarsWinOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sanitizer.json")
	if err := os.WriteFile(path, []byte(`{"listenAddress": ":9090"}`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	t.Setenv("SANITIZER_LISTEN_ADDRESS", ":7070")
	t.Setenv("SANITIZER_HASH_KEY", "env-key")

	cfg := Load(path)
	if cfg.ListenAddress != ":7070" {
		t.Errorf("ListenAddress = %q, want env var to win (:7070)", cfg.ListenAddress)
	}
	if cfg.DefaultHashKey != "env-key" {
		t.Errorf("DefaultHashKey = %q, want env-key", cfg.DefaultHashKey)
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if cfg.ListenAddress != ":8089" {
		t.Fatalf("expected defaults when file is missing, got %+v", cfg)
	}
}
