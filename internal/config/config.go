// Package config loads the pirate CLI configuration from TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// EnvVar names the environment variable that points at a config file.
const EnvVar = "PIRATE_CONFIG"

// Config holds the complete CLI configuration
type Config struct {
	Log  LogConfig  `toml:"log"`
	Run  RunConfig  `toml:"run"`
	REPL REPLConfig `toml:"repl"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // text or json
}

// RunConfig holds interpreter settings
type RunConfig struct {
	MaxSteps    int    `toml:"max_steps"`
	Diagnostics string `toml:"diagnostics"` // text or json
}

// REPLConfig holds interactive session settings
type REPLConfig struct {
	Prompt      string `toml:"prompt"`
	HistoryFile string `toml:"history_file"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults(toml.MetaData{})
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults(md)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from PIRATE_CONFIG or the first default
// location that exists. With neither, it returns Default().
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}
	for _, p := range defaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

func defaultPaths() []string {
	paths := []string{"./pirate.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "pirate", "config.toml"))
	}
	return paths
}

// applyDefaults sets default values for missing configuration. md tells an
// explicit max_steps = 0 (unbounded) apart from an absent key.
func (c *Config) applyDefaults(md toml.MetaData) {
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.Run.MaxSteps == 0 && !md.IsDefined("run", "max_steps") {
		c.Run.MaxSteps = 1_000_000
	}
	if c.Run.Diagnostics == "" {
		c.Run.Diagnostics = "text"
	}

	if c.REPL.Prompt == "" {
		c.REPL.Prompt = "pirate> "
	}
	if c.REPL.HistoryFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.REPL.HistoryFile = filepath.Join(home, ".pirate_history")
		}
	}
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q: want debug, info, warn or error", c.Log.Level)
	}
	if err := oneOf("log.format", c.Log.Format, "text", "json"); err != nil {
		return err
	}
	if err := oneOf("run.diagnostics", c.Run.Diagnostics, "text", "json"); err != nil {
		return err
	}
	if c.Run.MaxSteps < 0 {
		return fmt.Errorf("run.max_steps must not be negative, got %d", c.Run.MaxSteps)
	}
	return nil
}

func oneOf(key, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s %q: want one of %s", key, value, strings.Join(allowed, ", "))
}
