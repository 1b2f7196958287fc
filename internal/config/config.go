// Package config provides environment-driven defaults for zxwitness commands.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Defaults used when the environment does not override them.
const (
	DefaultThreshold = 128
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Environment variable names.
const (
	EnvThreshold = "ZXWITNESS_THRESHOLD"
	EnvLogLevel  = "ZXWITNESS_LOG_LEVEL"
	EnvLogFormat = "ZXWITNESS_LOG_FORMAT"
)

// Config holds command defaults.
type Config struct {
	Threshold uint8
	LogLevel  string
	LogFormat string
}

// FromEnv returns the configuration with environment overrides applied.
// A threshold that is not an integer in [0, 255] is an error.
func FromEnv() (Config, error) {
	cfg := Config{
		Threshold: DefaultThreshold,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
	if v := os.Getenv(EnvThreshold); v != "" {
		t, err := ParseThreshold(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvThreshold, err)
		}
		cfg.Threshold = t
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}
	return cfg, nil
}

// ParseThreshold parses a luminance threshold in [0, 255].
func ParseThreshold(s string) (uint8, error) {
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid threshold %q: must be an integer in [0, 255]", s)
	}
	return uint8(n), nil
}
