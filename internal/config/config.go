// Package config loads runtime settings for the lqip MCP server from the
// environment, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "LQIP"

// Config holds the server settings.
type Config struct {
	// LogLevel is the minimum zap level: debug, info, warn or error.
	// Env: LQIP_LOG_LEVEL. Default "info".
	LogLevel string

	// MaxConcurrency bounds the number of tool calls processed at once.
	// Env: LQIP_MAX_CONCURRENCY. Default 4.
	MaxConcurrency int
}

// Load reads the configuration. Files named in envFiles are loaded into the
// process environment first; a missing file is not an error, and variables
// already set take precedence.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetDefault("log_level", "info")
	v.SetDefault("max_concurrency", 4)
	v.AutomaticEnv()

	cfg := &Config{
		LogLevel:       v.GetString("log_level"),
		MaxConcurrency: v.GetInt("max_concurrency"),
	}
	if cfg.MaxConcurrency < 1 {
		return nil, fmt.Errorf("%s_MAX_CONCURRENCY must be at least 1, got %d", EnvPrefix, cfg.MaxConcurrency)
	}
	return cfg, nil
}
