// Package config loads and holds the sanitizer service's configuration.
// Settings are layered: defaults → config file (JSON or YAML, by
// extension) → environment variables (env vars win) — the same layering
// the proxy's config package uses, adapted to the sanitizer's own knobs.
package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the sanitizer service's full runtime configuration.
type Config struct {
	ListenAddress string `json:"listenAddress" yaml:"listenAddress"`
	LogLevel      string `json:"logLevel" yaml:"logLevel"`

	// RuleConfigFile points at the JSON rule configuration (spec.md §6)
	// merged over the built-in catalog at startup.
	RuleConfigFile string `json:"ruleConfigFile" yaml:"ruleConfigFile"`

	// DefaultHashKey is used by keyless Hash redactions (rule.ErrMissingHashKey
	// otherwise). Production deployments should set this via the
	// SANITIZER_HASH_KEY env var rather than a committed config file.
	DefaultHashKey string `json:"defaultHashKey" yaml:"defaultHashKey"`

	// MaxPayloadBytes bounds the size of a single POST /sanitize body.
	MaxPayloadBytes int64 `json:"maxPayloadBytes" yaml:"maxPayloadBytes"`

	// MetricsPath and HealthPath name the two ancillary HTTP endpoints.
	MetricsPath string `json:"metricsPath" yaml:"metricsPath"`
	HealthPath  string `json:"healthPath" yaml:"healthPath"`
}

// Load returns a Config with defaults overridden by configPath (if
// non-empty and present — a .yaml/.yml extension is parsed as YAML,
// anything else as JSON) and then by environment variables.
func Load(configPath string) *Config {
	cfg := defaults()
	if configPath != "" {
		loadFile(cfg, configPath)
	}
	loadEnv(cfg)
	return cfg
}

func defaults() *Config {
	return &Config{
		ListenAddress:   ":8089",
		LogLevel:        "info",
		RuleConfigFile:  "",
		DefaultHashKey:  "",
		MaxPayloadBytes: 10 << 20, // 10 MiB
		MetricsPath:     "/metrics",
		HealthPath:      "/healthz",
	}
}

func loadFile(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return // file is optional
	}
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		_ = yaml.Unmarshal(data, cfg)
		return
	}
	_ = json.Unmarshal(data, cfg)
}

func loadEnv(cfg *Config) {
	if v := os.Getenv("SANITIZER_LISTEN_ADDRESS"); v != "" {
		cfg.ListenAddress = v
	}
	if v := os.Getenv("SANITIZER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SANITIZER_RULE_CONFIG_FILE"); v != "" {
		cfg.RuleConfigFile = v
	}
	if v := os.Getenv("SANITIZER_HASH_KEY"); v != "" {
		cfg.DefaultHashKey = v
	}
	if v := os.Getenv("SANITIZER_MAX_PAYLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxPayloadBytes = n
		}
	}
	if v := os.Getenv("SANITIZER_METRICS_PATH"); v != "" {
		cfg.MetricsPath = v
	}
	if v := os.Getenv("SANITIZER_HEALTH_PATH"); v != "" {
		cfg.HealthPath = v
	}
}
