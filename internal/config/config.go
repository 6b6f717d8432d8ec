// Package config loads the HCL settings file shared by every holdem command.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultFile is the settings file looked up when none is given.
const DefaultFile = "holdem.hcl"

// MaxPlayers is the largest table one deck can serve: two hole cards each
// plus five community cards.
const MaxPlayers = 23

// Config represents the complete configuration
type Config struct {
	Match  MatchSettings
	Equity EquitySettings
	UI     UISettings
}

// MatchSettings contains the seating and shuffle seed
type MatchSettings struct {
	Players []string `hcl:"players,optional"`
	Seed    int64    `hcl:"seed,optional"` // 0 seeds from the wall clock
}

// EquitySettings controls the Monte Carlo estimator
type EquitySettings struct {
	Trials  int    `hcl:"trials,optional"`
	Workers int    `hcl:"workers,optional"`
	Timeout string `hcl:"timeout,optional"`
}

// UISettings contains terminal and logging settings
type UISettings struct {
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
	NoColor  bool   `hcl:"no_color,optional"`
}

// file mirrors Config with every block optional
type file struct {
	Match  *MatchSettings  `hcl:"match,block"`
	Equity *EquitySettings `hcl:"equity,block"`
	UI     *UISettings     `hcl:"ui,block"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Match: MatchSettings{
			Players: []string{"Player 1", "Player 2"},
		},
		Equity: EquitySettings{
			Trials: 1000,
		},
		UI: UISettings{
			LogLevel: "info",
			LogFile:  "holdem.log",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; values left out of the file are filled from the defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source, applies defaults and validates the result.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()
	if raw.Match != nil {
		if len(raw.Match.Players) > 0 {
			config.Match.Players = raw.Match.Players
		}
		config.Match.Seed = raw.Match.Seed
	}
	if raw.Equity != nil {
		if raw.Equity.Trials != 0 {
			config.Equity.Trials = raw.Equity.Trials
		}
		config.Equity.Workers = raw.Equity.Workers
		config.Equity.Timeout = raw.Equity.Timeout
	}
	if raw.UI != nil {
		if raw.UI.LogLevel != "" {
			config.UI.LogLevel = raw.UI.LogLevel
		}
		if raw.UI.LogFile != "" {
			config.UI.LogFile = raw.UI.LogFile
		}
		config.UI.NoColor = raw.UI.NoColor
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Match.Players) == 0 {
		return fmt.Errorf("at least one player is required")
	}
	if len(c.Match.Players) > MaxPlayers {
		return fmt.Errorf("at most %d players fit one deck, got %d", MaxPlayers, len(c.Match.Players))
	}
	seen := make(map[string]bool, len(c.Match.Players))
	for _, name := range c.Match.Players {
		if name == "" {
			return fmt.Errorf("player names must not be empty")
		}
		if seen[name] {
			return fmt.Errorf("duplicate player name: %s", name)
		}
		seen[name] = true
	}

	if c.Equity.Trials < 1 {
		return fmt.Errorf("equity trials must be at least 1")
	}
	if c.Equity.Workers < 0 {
		return fmt.Errorf("equity workers cannot be negative")
	}
	if _, err := c.EstimateTimeout(); err != nil {
		return err
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.UI.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}
	return nil
}

// EstimateTimeout parses the equity timeout. Empty means no limit.
func (c *Config) EstimateTimeout() (time.Duration, error) {
	if c.Equity.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Equity.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid equity timeout %q: %w", c.Equity.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("equity timeout cannot be negative")
	}
	return d, nil
}
