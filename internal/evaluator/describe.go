package evaluator

import (
	"fmt"
	"strconv"

	"github.com/tyoon11/holdem/internal/deck"
)

// Describe returns a readable label for exactly five cards, for example
// "Full house, Ks over Qs" or "9 high".
func Describe(hand []deck.Card) (string, error) {
	rank, err := Rank5(hand)
	if err != nil {
		return "", err
	}
	return DescribeRank(rank), nil
}

// DescribeRank labels an already computed rank
func DescribeRank(rank HandRank) string {
	top := "?"
	if len(rank.Tiebreak) > 0 {
		top = valueName(rank.Tiebreak[0])
	}
	second := "?"
	if len(rank.Tiebreak) > 1 {
		second = valueName(rank.Tiebreak[1])
	}

	switch rank.Category {
	case StraightFlush:
		return fmt.Sprintf("Straight flush, %s high", top)
	case FourOfAKind:
		return fmt.Sprintf("Four of a kind, %ss", top)
	case FullHouse:
		return fmt.Sprintf("Full house, %ss over %ss", top, second)
	case Flush:
		return fmt.Sprintf("Flush, %s high", top)
	case Straight:
		return fmt.Sprintf("Straight, %s high", top)
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a kind, %ss", top)
	case TwoPair:
		return fmt.Sprintf("Two pair, %ss and %ss", top, second)
	case OnePair:
		return fmt.Sprintf("One pair, %ss", top)
	default:
		return fmt.Sprintf("%s high", top)
	}
}

// valueName maps 11-14 to J, Q, K, A and prints other values as numbers
func valueName(v int) string {
	switch v {
	case 14:
		return "A"
	case 13:
		return "K"
	case 12:
		return "Q"
	case 11:
		return "J"
	default:
		return strconv.Itoa(v)
	}
}
