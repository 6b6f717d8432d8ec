package main

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/tyoon11/holdem/internal/config"
	"github.com/tyoon11/holdem/internal/randutil"
)

// Globals are the flags shared by every command. Flags win over the
// config file.
type Globals struct {
	Config   string `kong:"default='holdem.hcl',help='HCL settings file (ignored when missing)'"`
	LogLevel string `kong:"help='Log level: debug, info, warn or error (overrides config)'"`
	NoColor  bool   `kong:"help='Disable colored output'"`
}

// load reads the config file and applies the global overrides
func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.UI.LogLevel = g.LogLevel
	}
	if g.NoColor {
		cfg.UI.NoColor = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.UI.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return cfg, nil
}

// newLogger builds the shared logger format at the configured level
func newLogger(w io.Writer, cfg *config.Config) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.UI.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	}), nil
}

// newRNG picks the flag seed, then the config seed, then the wall clock
func newRNG(flagSeed *int64, cfg *config.Config, logger *log.Logger) *rand.Rand {
	var seed int64
	switch {
	case flagSeed != nil:
		seed = *flagSeed
		logger.Info("Using deterministic seed", "seed", seed)
	case cfg.Match.Seed != 0:
		seed = cfg.Match.Seed
		logger.Info("Using configured seed", "seed", seed)
	default:
		seed = time.Now().UnixNano()
		logger.Debug("Using random seed", "seed", seed)
	}
	return randutil.New(seed)
}
