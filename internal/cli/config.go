package cli

import (
	"os"
	"time"
)

// Config holds huntctl's global flags
type Config struct {
	ServerURL string
	Timeout   time.Duration
	Output    string
	Verbose   bool
}

// DefaultConfig reads HUNTCTL_* environment variables, falling back to a
// local server with text output
func DefaultConfig() *Config {
	cfg := &Config{
		ServerURL: "http://localhost:8080",
		Timeout:   30 * time.Second,
		Output:    "text",
	}
	if v := os.Getenv("HUNTCTL_SERVER"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("HUNTCTL_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v, err := time.ParseDuration(os.Getenv("HUNTCTL_TIMEOUT")); err == nil && v > 0 {
		cfg.Timeout = v
	}
	return cfg
}
