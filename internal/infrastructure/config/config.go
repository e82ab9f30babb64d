package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ConfigFile = "reqtrack.yaml"
	EnvFile    = ".env"
)

// Environment variables that override the config file.
const (
	EnvLogLevel      = "REQTRACK_LOG_LEVEL"
	EnvLogFormat     = "REQTRACK_LOG_FORMAT"
	EnvOutputFormat  = "REQTRACK_OUTPUT"
	EnvVerifyOnLoad  = "REQTRACK_VERIFY"
	EnvWatchDebounce = "REQTRACK_WATCH_DEBOUNCE"
)

// Config stores CLI defaults. Precedence, lowest first: built-in defaults,
// reqtrack.yaml, .env, process environment, command-line flags.
type Config struct {
	LogLevel      string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat     string        `yaml:"log_format" validate:"oneof=text json"`
	OutputFormat  string        `yaml:"output_format" validate:"oneof=text json yaml"`
	VerifyOnLoad  bool          `yaml:"verify_on_load"`
	VerifyNotes   string        `yaml:"verify_notes"`
	WatchDebounce time.Duration `yaml:"watch_debounce" validate:"gte=0"`
}

func Default() *Config {
	return &Config{
		LogLevel:      "warn",
		LogFormat:     "text",
		OutputFormat:  "text",
		VerifyNotes:   "verified by reqtrack",
		WatchDebounce: 500 * time.Millisecond,
	}
}

// Load builds the configuration for a working directory. A missing
// reqtrack.yaml or .env is not an error.
func Load(dir string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(dir, ConfigFile)
	data, err := os.ReadFile(filepath.Clean(path))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", ConfigFile, err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	envPath := filepath.Join(dir, EnvFile)
	if _, err := os.Stat(envPath); err == nil {
		// godotenv never overrides variables already set in the process.
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", EnvFile, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		c.OutputFormat = v
	}
	if v := os.Getenv(EnvVerifyOnLoad); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvVerifyOnLoad, err)
		}
		c.VerifyOnLoad = b
	}
	if v := os.Getenv(EnvWatchDebounce); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvWatchDebounce, err)
		}
		c.WatchDebounce = d
	}
	return nil
}

// Validate checks field values against their validate tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
