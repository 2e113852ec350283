// Package config provides configuration loading and validation for the service.
// Values come from defaults, then an optional JSON file, then environment
// variables; the merged result is validated before the server starts.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds the service configuration. The Gemini API key is deliberately
// absent: credentials are supplied per request, never from process state.
type Config struct {
	// Port is the HTTP listen port.
	Port int `json:"port" validate:"gte=1,lte=65535"`
	// StaticDir is the directory the prebuilt front-end is served from.
	StaticDir string `json:"static_dir" validate:"required"`
	// Model is the Gemini model used for structured resolution.
	Model string `json:"model" validate:"required"`
	// ResolveTimeoutSeconds bounds a single generation attempt.
	ResolveTimeoutSeconds int `json:"resolve_timeout_seconds" validate:"gte=1"`
	// MaxUploadBytes caps the accepted resume size.
	MaxUploadBytes int64 `json:"max_upload_bytes" validate:"gte=1"`
	// LogLevel is the zerolog level name.
	LogLevel string `json:"log_level" validate:"oneof=trace debug info warn error"`
	// LogFormat selects json or pretty console output.
	LogFormat string `json:"log_format" validate:"oneof=json pretty"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Port:                  8080,
		StaticDir:             "static",
		Model:                 "gemini-2.5-flash",
		ResolveTimeoutSeconds: 60,
		MaxUploadBytes:        10 << 20,
		LogLevel:              "info",
		LogFormat:             "json",
	}
}

// Load builds the configuration: defaults, then the JSON file at path (if
// non-empty), then environment variables. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays environment variables onto the configuration.
func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		c.StaticDir = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("RESOLVE_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.ResolveTimeoutSeconds = secs
		}
	}
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.MaxUploadBytes = n
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
}

// Validate checks the configuration against its declared constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ResolveTimeout returns the per-attempt resolution timeout as a duration.
func (c *Config) ResolveTimeout() time.Duration {
	return time.Duration(c.ResolveTimeoutSeconds) * time.Second
}
