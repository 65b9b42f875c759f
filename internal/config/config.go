package config

import (
	"fmt"
	"strings"
)

// Config holds the settings shared by the golden-model tools: where
// artifacts land, which sidecar formats to emit, and how the process
// logs and exposes metrics.
type Config struct {
	OutDir    string
	EmitArrow bool

	ListenAddr  string
	MetricsAddr string

	LogLevel  string
	LogFormat string
}

func (c *Config) Validate() error {
	if c.OutDir == "" {
		return fmt.Errorf("invalid out_dir: must not be empty")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level: %q (must be debug, info, warn or error)", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log_format: %q (must be console or json)", c.LogFormat)
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("invalid listen_addr: must not be empty")
	}
	return nil
}

// MetricsEnabled reports whether a metrics endpoint should be served.
func (c *Config) MetricsEnabled() bool {
	return c.MetricsAddr != ""
}

func Default() Config {
	return Config{
		OutDir:      ".",
		ListenAddr:  "127.0.0.1:8815",
		MetricsAddr: "",
		LogLevel:    "info",
		LogFormat:   "console",
	}
}
