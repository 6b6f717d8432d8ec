package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tyoon11/holdem/internal/config"
	"github.com/tyoon11/holdem/internal/game"
)

// DealCmd plays one round without interaction
type DealCmd struct {
	Players []string `arg:"" optional:"" help:"Player names in seat order (defaults to config)"`
	Seed    *int64   `kong:"help='Deterministic RNG seed (optional)'"`
	Trials  int      `kong:"help='Equity trials per phase (overrides config)'"`
}

func (c *DealCmd) Run(g *Globals) error {
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
	return c.run(context.Background(), os.Stdout, cfg)
}

func (c *DealCmd) run(ctx context.Context, out io.Writer, cfg *config.Config) error {
	logger, err := newLogger(os.Stderr, cfg)
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

	steps := []func() error{match.Start, match.RevealFlop, match.RevealTurn, match.RevealRiver}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
		if err := printPhase(ctx, out, match, cfg.Equity.Trials); err != nil {
			return err
		}
	}

	sd, err := match.DetermineWinner()
	if err != nil {
		return err
	}
	if len(sd.Tied) > 1 {
		fmt.Fprintf(out, "%s split with %s\n", strings.Join(sd.Tied, ", "), sd.Description)
	} else {
		fmt.Fprintf(out, "%s wins with %s (%s)\n", winStyle.Render(sd.Winner), sd.Description, formatCards(sd.BestHand))
	}
	return nil
}

func printPhase(ctx context.Context, out io.Writer, match *game.Match, trials int) error {
	eq, err := match.EstimateEquity(ctx, trials)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s\n", phaseStyle.Render(strings.ToUpper(match.Phase().String())))
	fmt.Fprintf(out, "table: %s\n\n", formatCards(match.TableCards()))

	var rows []row
	for _, p := range match.Players() {
		best, err := match.DescribeBestHand(p.Name)
		if err != nil {
			return err
		}
		rows = append(rows, row{name: p.Name, cards: p.Hand, best: best, share: eq.Shares[p.Name]})
	}
	if err := writeEquityTable(out, rows); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n")
	return nil
}
