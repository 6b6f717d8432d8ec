package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/tyoon11/holdem/internal/config"
	"github.com/tyoon11/holdem/internal/deck"
	"github.com/tyoon11/holdem/internal/evaluator"
)

// OddsCmd estimates equity for hands given on the command line
type OddsCmd struct {
	Hands         []string `arg:"" help:"Player hands in format 'AcKd QhJs' (space separated, quoted)"`
	Board         string   `short:"b" help:"Community board cards (e.g., 'Td7s8h')"`
	Possibilities bool     `short:"p" help:"Show how often each hand finished in each category"`
	Trials        int      `short:"i" help:"Number of Monte Carlo trials (overrides config)"`
	Workers       int      `kong:"help='Parallel workers, 0 picks automatically (overrides config)'"`
	Seed          *int64   `kong:"help='Random seed for reproducible results'"`
}

func (c *OddsCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if c.Trials > 0 {
		cfg.Equity.Trials = c.Trials
	}
	if c.Workers > 0 {
		cfg.Equity.Workers = c.Workers
	}

	timeout, err := cfg.EstimateTimeout()
	if err != nil {
		return err
	}
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return c.run(ctx, os.Stdout, cfg)
}

func (c *OddsCmd) run(ctx context.Context, out io.Writer, cfg *config.Config) error {
	logger, err := newLogger(os.Stderr, cfg)
	if err != nil {
		return err
	}

	hands, err := parseHands(c.Hands)
	if err != nil {
		return err
	}
	board, err := deck.ParseCards(c.Board)
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}
	if len(board) > 5 {
		return fmt.Errorf("board cannot have more than 5 cards")
	}
	if dup, ok := deck.FindDuplicate(append([][]deck.Card{board}, hands...)...); ok {
		return fmt.Errorf("duplicate card found: %s", dup.Short())
	}

	req := evaluator.EquityRequest{
		Board:   board,
		Trials:  cfg.Equity.Trials,
		Workers: cfg.Equity.Workers,
		RNG:     newRNG(c.Seed, cfg, logger),
	}
	used := make(map[deck.Card]bool)
	for _, card := range board {
		used[card] = true
	}
	names := make([]string, len(hands))
	for i, hand := range hands {
		names[i] = handName(hand)
		req.Players = append(req.Players, evaluator.Holding{Name: names[i], Hole: hand})
		for _, card := range hand {
			used[card] = true
		}
	}
	for _, card := range deck.FullDeck() {
		if !used[card] {
			req.Remaining = append(req.Remaining, card)
		}
	}

	start := time.Now()
	res, err := evaluator.EstimateEquity(ctx, req)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	logger.Debug("Estimated equity", "trials", res.Trials, "duration", duration)

	if len(board) > 0 {
		fmt.Fprintf(out, "%s\n", headerStyle.Render("board"))
		fmt.Fprintf(out, "%s\n\n", formatCards(board))
	}

	rows := make([]row, len(hands))
	for i, hand := range hands {
		best := "-"
		if len(board) >= 3 {
			if h, err := evaluator.Evaluate(append(append([]deck.Card(nil), hand...), board...)); err == nil {
				best = evaluator.DescribeRank(h.Rank)
			}
		}
		rows[i] = row{name: fmt.Sprintf("%d", i+1), cards: hand, best: best, share: res.Shares[names[i]]}
	}
	if err := writeEquityTable(out, rows); err != nil {
		return err
	}

	if c.Possibilities {
		fmt.Fprintf(out, "\n")
		if err := writeCategories(out, names, res); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "\n%d trials in %v\n", res.Trials, duration.Truncate(time.Millisecond))
	return nil
}

func parseHands(handStrings []string) ([][]deck.Card, error) {
	var hands [][]deck.Card
	for i, handStr := range handStrings {
		hand, err := deck.ParseCards(strings.TrimSpace(handStr))
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", i+1, err)
		}
		if len(hand) != 2 {
			return nil, fmt.Errorf("hand %d: must contain exactly 2 cards, got %d", i+1, len(hand))
		}
		hands = append(hands, hand)
	}
	return hands, nil
}

func handName(hand []deck.Card) string {
	return strings.ReplaceAll(deck.Format(hand), " ", "")
}
