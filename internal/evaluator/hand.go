package evaluator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tyoon11/holdem/internal/deck"
)

// ErrInvalidHand is returned when a ranking function is given anything other
// than exactly five cards.
var ErrInvalidHand = errors.New("hand must contain exactly 5 cards")

// Category is the class of a five-card poker hand, ordered weakest to strongest.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// NumCategories is the number of hand categories.
const NumCategories = int(StraightFlush) + 1

// String returns the string representation of a hand category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// HandRank describes the strength of a five-card hand. Category is compared
// first, then Tiebreak element-wise.
type HandRank struct {
	Category Category
	Tiebreak []int // card values, most significant first
}

// Compare returns -1 if h1 is weaker than h2, 0 if they are equal and 1 if
// h1 is stronger.
func (h1 HandRank) Compare(h2 HandRank) int {
	if h1.Category != h2.Category {
		if h1.Category < h2.Category {
			return -1
		}
		return 1
	}

	for i := 0; i < len(h1.Tiebreak) && i < len(h2.Tiebreak); i++ {
		if h1.Tiebreak[i] < h2.Tiebreak[i] {
			return -1
		}
		if h1.Tiebreak[i] > h2.Tiebreak[i] {
			return 1
		}
	}

	switch {
	case len(h1.Tiebreak) < len(h2.Tiebreak):
		return -1
	case len(h1.Tiebreak) > len(h2.Tiebreak):
		return 1
	}
	return 0
}

// IsStrongerThan returns true if this rank beats the other
func (h1 HandRank) IsStrongerThan(h2 HandRank) bool {
	return h1.Compare(h2) > 0
}

// Equals returns true if both ranks are equal in strength
func (h1 HandRank) Equals(h2 HandRank) bool {
	return h1.Compare(h2) == 0
}

// String returns e.g. "Full House (10 7)"
func (h HandRank) String() string {
	vals := make([]string, len(h.Tiebreak))
	for i, v := range h.Tiebreak {
		vals[i] = valueName(v)
	}
	return fmt.Sprintf("%s (%s)", h.Category, strings.Join(vals, " "))
}

// Hand is a chosen five-card hand together with its rank
type Hand struct {
	Cards []deck.Card
	Rank  HandRank
}

// String returns a string representation of the hand
func (h Hand) String() string {
	return fmt.Sprintf("%s [%s]", h.Rank.Category, deck.Format(h.Cards))
}

// CompareWithExplanation compares two hand ranks and returns the result with an explanation
func CompareWithExplanation(h1, h2 HandRank) (int, string) {
	result := h1.Compare(h2)
	if result == 0 {
		return result, fmt.Sprintf("%s ties %s", h1, h2)
	}

	winner, loser := h1, h2
	if result < 0 {
		winner, loser = h2, h1
	}

	if winner.Category != loser.Category {
		return result, fmt.Sprintf("%s beats %s", winner.Category, loser.Category)
	}

	for i := 0; i < len(winner.Tiebreak) && i < len(loser.Tiebreak); i++ {
		if winner.Tiebreak[i] != loser.Tiebreak[i] {
			return result, fmt.Sprintf("%s beats %s on %s (%s vs %s)",
				winner, loser, tiebreakLabel(winner.Category, i),
				valueName(winner.Tiebreak[i]), valueName(loser.Tiebreak[i]))
		}
	}
	return result, fmt.Sprintf("%s beats %s", winner, loser)
}

// tiebreakLabel names the i-th tiebreak slot for a category
func tiebreakLabel(c Category, i int) string {
	switch c {
	case OnePair:
		if i == 0 {
			return "pair"
		}
	case TwoPair:
		switch i {
		case 0:
			return "top pair"
		case 1:
			return "bottom pair"
		}
	case ThreeOfAKind:
		if i == 0 {
			return "trips"
		}
	case FullHouse:
		if i == 0 {
			return "trips"
		}
		return "pair"
	case FourOfAKind:
		if i == 0 {
			return "quads"
		}
	case Straight, StraightFlush:
		return "high card"
	}
	if i == 0 {
		return "high card"
	}
	return "kicker"
}
