package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complgen-dfa configuration file.
//
//	log:
//	  level: debug
//	  format: text
//	minimize: false
//	shell: fish
type Config struct {
	Log LogConfig `yaml:"log"`

	// Minimize runs Hopcroft minimization after construction.
	// Default: true
	Minimize *bool `yaml:"minimize,omitempty"`

	// Shell selects the nonterminal specializations used by the tables
	// command (bash, fish, zsh).
	// Default: bash
	Shell string `yaml:"shell,omitempty"`
}

type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads the YAML file at path. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	c := &Config{}
	if path != "" {
		if err := c.loadFromFile(path); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) loadFromFile(path string) error {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Minimize == nil {
		minimize := true
		c.Minimize = &minimize
	}
	if c.Shell == "" {
		c.Shell = "bash"
	}
	c.Shell = strings.ToLower(c.Shell)
}

// Validate checks the enumerated fields.
func (c *Config) Validate() error {
	switch c.Shell {
	case "bash", "fish", "zsh":
	default:
		return fmt.Errorf("%w: unknown shell %q", ErrInvalidConfig, c.Shell)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "json", "text":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// ShouldMinimize reports the effective minimize setting.
func (c *Config) ShouldMinimize() bool {
	return c.Minimize == nil || *c.Minimize
}
