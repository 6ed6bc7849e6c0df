// Package config loads runtime settings for the pairs CLI from an HCL file
// and PAIRS_* environment variables. Game rules are fixed and not configurable.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultFile is the config file read when none is given
const DefaultFile = "pairs.hcl"

// Config holds the merged settings
type Config struct {
	Players     []string
	Seed        *int64 // nil means seed from entropy
	LogLevel    string
	Games       int
	Concurrency int // zero means one game per CPU
	Timeout     time.Duration
}

// fileConfig is the HCL file layout. Every block is optional.
type fileConfig struct {
	Game       *gameBlock       `hcl:"game,block"`
	Log        *logBlock        `hcl:"log,block"`
	Simulation *simulationBlock `hcl:"simulation,block"`
}

type gameBlock struct {
	Players []string `hcl:"players,optional"`
	Seed    *int64   `hcl:"seed,optional"`
}

type logBlock struct {
	Level string `hcl:"level,optional"`
}

type simulationBlock struct {
	Games       int    `hcl:"games,optional"`
	Concurrency int    `hcl:"concurrency,optional"`
	Timeout     string `hcl:"timeout,optional"`
}

// envConfig holds raw environment overrides
type envConfig struct {
	Players  []string `env:"PAIRS_PLAYERS" envSeparator:","`
	Seed     string   `env:"PAIRS_SEED"`
	LogLevel string   `env:"PAIRS_LOG_LEVEL"`
	Games    int      `env:"PAIRS_GAMES"`
}

// Default returns the default configuration: the two-player roster
func Default() *Config {
	return &Config{
		Players:  []string{"Benjamin", "Nick"},
		LogLevel: "info",
		Games:    1000,
		Timeout:  5 * time.Second,
	}
}

// Load reads filename if it exists, then applies environment overrides
func Load(filename string) (*Config, error) {
	cfg, err := LoadFile(filename)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads configuration from an HCL file. A missing file yields the
// defaults.
func LoadFile(filename string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if fc.Game != nil {
		if len(fc.Game.Players) > 0 {
			cfg.Players = fc.Game.Players
		}
		cfg.Seed = fc.Game.Seed
	}
	if fc.Log != nil && fc.Log.Level != "" {
		cfg.LogLevel = fc.Log.Level
	}
	if fc.Simulation != nil {
		if fc.Simulation.Games != 0 {
			cfg.Games = fc.Simulation.Games
		}
		cfg.Concurrency = fc.Simulation.Concurrency
		if fc.Simulation.Timeout != "" {
			timeout, err := time.ParseDuration(fc.Simulation.Timeout)
			if err != nil {
				return nil, fmt.Errorf("simulation timeout: %w", err)
			}
			cfg.Timeout = timeout
		}
	}

	return cfg, nil
}

// ApplyEnv overrides settings from PAIRS_* environment variables
func (c *Config) ApplyEnv() error {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if len(raw.Players) > 0 {
		c.Players = raw.Players
	}
	if raw.Seed != "" {
		seed, err := strconv.ParseInt(raw.Seed, 10, 64)
		if err != nil {
			return fmt.Errorf("PAIRS_SEED: %w", err)
		}
		c.Seed = &seed
	}
	if raw.LogLevel != "" {
		c.LogLevel = raw.LogLevel
	}
	if raw.Games != 0 {
		c.Games = raw.Games
	}
	return nil
}

// Validate checks the settings are usable
func (c *Config) Validate() error {
	if len(c.Players) == 0 {
		return errors.New("at least one player is required")
	}
	seen := make(map[string]bool, len(c.Players))
	for _, name := range c.Players {
		if name == "" {
			return errors.New("player names must not be empty")
		}
		if seen[name] {
			return fmt.Errorf("duplicate player name %q", name)
		}
		seen[name] = true
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.Games <= 0 {
		return fmt.Errorf("games must be positive, got %d", c.Games)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

// Level returns the parsed log level, falling back to info
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
