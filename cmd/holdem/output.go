package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/tyoon11/holdem/internal/deck"
	"github.com/tyoon11/holdem/internal/evaluator"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	phaseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	redStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	percentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
)

// formatCards renders cards in compact notation, red suits highlighted
func formatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return "-"
	}
	parts := make([]string, len(cards))
	for i, card := range cards {
		if card.IsRed() {
			parts[i] = redStyle.Render(card.Short())
		} else {
			parts[i] = handStyle.Render(card.Short())
		}
	}
	return strings.Join(parts, " ")
}

// row is one line of an equity table
type row struct {
	name  string
	cards []deck.Card
	best  string
	share float64
}

func writeEquityTable(out io.Writer, rows []row) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("player"),
		headerStyle.Render("hand"),
		headerStyle.Render("best"),
		headerStyle.Render("equity"))
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			r.name,
			formatCards(r.cards),
			r.best,
			winStyle.Render(fmt.Sprintf("%.1f%%", r.share)))
	}
	return w.Flush()
}

// writeCategories prints how often each player finished in each category
func writeCategories(out io.Writer, names []string, res evaluator.EquityResult) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s", categoryStyle.Render("hand"))
	for _, name := range names {
		fmt.Fprintf(w, "\t%s", headerStyle.Render(name))
	}
	fmt.Fprintf(w, "\n")

	for c := evaluator.StraightFlush; c >= evaluator.HighCard; c-- {
		seen := false
		for _, name := range names {
			if res.Categories[name][c] > 0 {
				seen = true
			}
		}
		if !seen {
			continue
		}

		fmt.Fprintf(w, "%s", categoryStyle.Render(c.String()))
		for _, name := range names {
			count := res.Categories[name][c]
			if count == 0 {
				fmt.Fprintf(w, "\t%s", percentStyle.Render("."))
				continue
			}
			pct := float64(count) / float64(res.Trials) * 100
			fmt.Fprintf(w, "\t%s", percentStyle.Render(fmt.Sprintf("%.1f%%", pct)))
		}
		fmt.Fprintf(w, "\n")
	}
	return w.Flush()
}
