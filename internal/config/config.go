// Package config carries the process configuration and build metadata.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Build metadata; overridden at link time via -ldflags.
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

// Config holds the service settings.
type Config struct {
	DataPath    string         // directory scanned for the startup JSON dumps
	Listen      string         // host:port the HTTP server binds
	Env         string         // "dev" enables debug logging and Gin debug mode
	MaxInFlight int64          // concurrent request cap, 0 disables the gate
	Server      ServerTimeouts
}

// ServerTimeouts bounds the HTTP server's per-connection phases.
type ServerTimeouts struct {
	ReadHeader time.Duration
	Read       time.Duration
	Write      time.Duration
	Idle       time.Duration
}

// Dev reports whether the service runs with development settings.
func (c *Config) Dev() bool { return c.Env == "dev" }

// Load reads configuration from environment variables and .env file.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// ── Defaults ────────────────────────────────────────
	viper.SetDefault("DATA_PATH", "/root")
	viper.SetDefault("LISTEN", "0.0.0.0:80")
	viper.SetDefault("ENV", "")
	viper.SetDefault("MAX_IN_FLIGHT", 0)

	viper.SetDefault("SERVER_READ_HEADER_TIMEOUT", "2s")
	viper.SetDefault("SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "15s")
	viper.SetDefault("SERVER_IDLE_TIMEOUT", "60s")

	// Try to read .env file. If it doesn't exist (e.g., inside the container),
	// injected env vars are used instead.
	_ = viper.ReadInConfig()

	return &Config{
		DataPath:    viper.GetString("DATA_PATH"),
		Listen:      viper.GetString("LISTEN"),
		Env:         viper.GetString("ENV"),
		MaxInFlight: viper.GetInt64("MAX_IN_FLIGHT"),
		Server: ServerTimeouts{
			ReadHeader: viper.GetDuration("SERVER_READ_HEADER_TIMEOUT"),
			Read:       viper.GetDuration("SERVER_READ_TIMEOUT"),
			Write:      viper.GetDuration("SERVER_WRITE_TIMEOUT"),
			Idle:       viper.GetDuration("SERVER_IDLE_TIMEOUT"),
		},
	}, nil
}
