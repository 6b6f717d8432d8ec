package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tyoon11/holdem/internal/deck"
	"github.com/tyoon11/holdem/internal/evaluator"
)

// EvalCmd ranks explicit cards
type EvalCmd struct {
	Cards string `arg:"" help:"Five or more cards, e.g. 'AhKh QhJhTh 3s4s'"`
	Vs    string `kong:"help='Second set of cards to compare against'"`
}

func (c *EvalCmd) Run(g *Globals) error {
	if _, err := g.load(); err != nil {
		return err
	}
	return c.run(os.Stdout)
}

func (c *EvalCmd) run(out io.Writer) error {
	first, err := evaluateArg(c.Cards)
	if err != nil {
		return err
	}
	printHand(out, first)

	if c.Vs == "" {
		return nil
	}
	second, err := evaluateArg(c.Vs)
	if err != nil {
		return fmt.Errorf("--vs: %w", err)
	}
	fmt.Fprintf(out, "\n")
	printHand(out, second)

	result, why := evaluator.CompareWithExplanation(first.Rank, second.Rank)
	fmt.Fprintf(out, "\n")
	switch {
	case result > 0:
		fmt.Fprintf(out, "%s first hand wins: %s\n", winStyle.Render(">"), why)
	case result < 0:
		fmt.Fprintf(out, "%s second hand wins: %s\n", winStyle.Render("<"), why)
	default:
		fmt.Fprintf(out, "%s %s\n", winStyle.Render("="), why)
	}
	return nil
}

func evaluateArg(s string) (evaluator.Hand, error) {
	cards, err := deck.ParseCards(s)
	if err != nil {
		return evaluator.Hand{}, err
	}
	if len(cards) < 5 {
		return evaluator.Hand{}, fmt.Errorf("need at least 5 cards, got %d", len(cards))
	}
	if dup, ok := deck.FindDuplicate(cards); ok {
		return evaluator.Hand{}, errors.New("duplicate card: " + dup.Short())
	}
	return evaluator.Evaluate(cards)
}

func printHand(out io.Writer, h evaluator.Hand) {
	fmt.Fprintf(out, "%s %s\n", headerStyle.Render("best:"), formatCards(h.Cards))
	fmt.Fprintf(out, "%s %s\n", headerStyle.Render("hand:"), evaluator.DescribeRank(h.Rank))
	fmt.Fprintf(out, "%s %s\n", headerStyle.Render("rank:"), h.Rank)
}
