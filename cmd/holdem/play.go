package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tyoon11/holdem/internal/game"
	"github.com/tyoon11/holdem/internal/tui"
)

// PlayCmd runs the interactive table
type PlayCmd struct {
	Players []string `arg:"" optional:"" help:"Player names in seat order (defaults to config)"`
	Seed    *int64   `kong:"help='Deterministic RNG seed (optional)'"`
	Trials  int      `kong:"help='Equity trials after every change (overrides config)'"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if len(c.Players) > 0 {
		cfg.Match.Players = c.Players
	}
	if c.Trials > 0 {
		cfg.Equity.Trials = c.Trials
	}

	// The terminal belongs to the TUI, so logs go to a file
	logFile, err := os.OpenFile(cfg.UI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer func() {
		_ = logFile.Close()
	}()

	logger, err := newLogger(logFile, cfg)
	if err != nil {
		return err
	}
	timeout, err := cfg.EstimateTimeout()
	if err != nil {
		return err
	}

	match, err := game.NewMatch(cfg.Match.Players,
		game.WithRNG(newRNG(c.Seed, cfg, logger)),
		game.WithLogger(logger),
		game.WithWorkers(cfg.Equity.Workers),
		game.WithEstimateTimeout(timeout),
	)
	if err != nil {
		return err
	}
	if err := match.Start(); err != nil {
		return err
	}
	logger.Info("Starting interactive match", "players", len(cfg.Match.Players), "trials", cfg.Equity.Trials)

	model := tui.NewModel(match, tui.NewCardFaces(), cfg.Equity.Trials, logger)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
