package deck

import (
	"fmt"
	"strings"
)

// ParseCards parses a string of compact card notation into a slice of cards.
// Format: "AsKsQsJsTs" where each card is [Rank][Suit]; spaces are ignored.
// Ranks: A, K, Q, J, T, 9, 8, 7, 6, 5, 4, 3, 2
// Suits: s (spades), h (hearts), d (diamonds), c (clubs)
func ParseCards(s string) ([]Card, error) {
	s = strings.Join(strings.Fields(s), "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card string length: %d (must be even)", len(s))
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		rank, err := parseRank(s[i])
		if err != nil {
			return nil, fmt.Errorf("invalid rank '%c' at position %d: %w", s[i], i, err)
		}

		suit, err := parseSuit(s[i+1])
		if err != nil {
			return nil, fmt.Errorf("invalid suit '%c' at position %d: %w", s[i+1], i+1, err)
		}

		cards = append(cards, Card{Rank: rank, Suit: suit})
	}

	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

// ParseCanonical parses the "{rank} of {suit}" form produced by Card.String.
func ParseCanonical(s string) (Card, error) {
	rankPart, suitPart, ok := strings.Cut(strings.TrimSpace(s), " of ")
	if !ok {
		return Card{}, fmt.Errorf("invalid card %q: want \"{rank} of {suit}\"", s)
	}

	var card Card
	found := false
	for rank := Two; rank <= Ace; rank++ {
		if strings.EqualFold(rank.String(), rankPart) {
			card.Rank = rank
			found = true
			break
		}
	}
	if !found {
		return Card{}, fmt.Errorf("invalid card %q: unknown rank %q", s, rankPart)
	}

	for _, suit := range Suits {
		if strings.EqualFold(suit.String(), suitPart) {
			card.Suit = suit
			return card, nil
		}
	}
	return Card{}, fmt.Errorf("invalid card %q: unknown suit %q", s, suitPart)
}

// Format joins cards in compact notation separated by spaces
func Format(cards []Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = card.Short()
	}
	return strings.Join(parts, " ")
}

// FindDuplicate returns the first card that appears more than once across groups.
func FindDuplicate(groups ...[]Card) (Card, bool) {
	seen := make(map[Card]bool)
	for _, group := range groups {
		for _, card := range group {
			if seen[card] {
				return card, true
			}
			seen[card] = true
		}
	}
	return Card{}, false
}

func parseRank(c byte) (Rank, error) {
	switch c {
	case 'A', 'a':
		return Ace, nil
	case 'K', 'k':
		return King, nil
	case 'Q', 'q':
		return Queen, nil
	case 'J', 'j':
		return Jack, nil
	case 'T', 't':
		return Ten, nil
	}
	if c >= '2' && c <= '9' {
		return Rank(c - '0'), nil
	}
	return 0, fmt.Errorf("unknown rank '%c'", c)
}

func parseSuit(c byte) (Suit, error) {
	switch c {
	case 's', 'S':
		return Spades, nil
	case 'h', 'H':
		return Hearts, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'c', 'C':
		return Clubs, nil
	default:
		return 0, fmt.Errorf("unknown suit '%c'", c)
	}
}
