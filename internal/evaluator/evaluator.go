package evaluator

import (
	"fmt"
	"slices"

	"github.com/tyoon11/holdem/internal/deck"
)

// Rank5 classifies exactly five cards. Aces are always high, so A-2-3-4-5 is
// not a straight.
func Rank5(hand []deck.Card) (HandRank, error) {
	if len(hand) != 5 {
		return HandRank{}, fmt.Errorf("rank %d cards: %w", len(hand), ErrInvalidHand)
	}
	return rank5(hand), nil
}

// rank5 assumes len(hand) == 5
func rank5(hand []deck.Card) HandRank {
	var values [5]int
	flush := true
	for i, card := range hand {
		values[i] = card.Value()
		if card.Suit != hand[0].Suit {
			flush = false
		}
	}
	slices.SortFunc(values[:], func(a, b int) int { return b - a })

	straight := true
	for i := 1; i < 5; i++ {
		if values[i] != values[0]-i {
			straight = false
			break
		}
	}

	groups := groupByCount(values[:])
	shape := make([]int, len(groups))
	grouped := make([]int, len(groups))
	for i, g := range groups {
		shape[i] = g.count
		grouped[i] = g.value
	}
	raw := values[:]

	switch {
	case flush && straight:
		return HandRank{Category: StraightFlush, Tiebreak: slices.Clone(raw)}
	case slices.Equal(shape, []int{4, 1}):
		return HandRank{Category: FourOfAKind, Tiebreak: grouped}
	case slices.Equal(shape, []int{3, 2}):
		return HandRank{Category: FullHouse, Tiebreak: grouped}
	case flush:
		return HandRank{Category: Flush, Tiebreak: slices.Clone(raw)}
	case straight:
		return HandRank{Category: Straight, Tiebreak: slices.Clone(raw)}
	case slices.Equal(shape, []int{3, 1, 1}):
		return HandRank{Category: ThreeOfAKind, Tiebreak: grouped}
	case slices.Equal(shape, []int{2, 2, 1}):
		return HandRank{Category: TwoPair, Tiebreak: grouped}
	case slices.Equal(shape, []int{2, 1, 1, 1}):
		return HandRank{Category: OnePair, Tiebreak: grouped}
	default:
		return HandRank{Category: HighCard, Tiebreak: slices.Clone(raw)}
	}
}

type valueGroup struct {
	value int
	count int
}

// groupByCount returns the distinct values ordered by multiplicity, then value,
// both descending. values must already be sorted descending.
func groupByCount(values []int) []valueGroup {
	groups := make([]valueGroup, 0, len(values))
	for _, v := range values {
		if n := len(groups); n > 0 && groups[n-1].value == v {
			groups[n-1].count++
			continue
		}
		groups = append(groups, valueGroup{value: v, count: 1})
	}
	slices.SortStableFunc(groups, func(a, b valueGroup) int {
		if a.count != b.count {
			return b.count - a.count
		}
		return b.value - a.value
	})
	return groups
}

// BestHand returns the strongest five-card subset of cards. Subsets are
// enumerated in lexicographic index order and the first of several equal
// subsets wins. Fewer than five cards are returned unchanged.
func BestHand(cards []deck.Card) []deck.Card {
	if len(cards) < 5 {
		return slices.Clone(cards)
	}
	best, _ := bestOf(cards)
	return best
}

// Evaluate finds the best five cards and ranks them
func Evaluate(cards []deck.Card) (Hand, error) {
	if len(cards) < 5 {
		return Hand{}, fmt.Errorf("evaluate %d cards: need at least 5: %w", len(cards), ErrInvalidHand)
	}
	best, rank := bestOf(cards)
	return Hand{Cards: best, Rank: rank}, nil
}

func bestOf(cards []deck.Card) ([]deck.Card, HandRank) {
	n := len(cards)
	var idx [5]int
	for i := range idx {
		idx[i] = i
	}

	combo := make([]deck.Card, 5)
	best := make([]deck.Card, 5)
	var bestRank HandRank
	first := true

	for {
		for i, j := range idx {
			combo[i] = cards[j]
		}
		if rank := rank5(combo); first || rank.Compare(bestRank) > 0 {
			bestRank = rank
			copy(best, combo)
			first = false
		}

		// advance to the next combination
		i := 4
		for i >= 0 && idx[i] == n-5+i {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < 5; j++ {
			idx[j] = idx[j-1] + 1
		}
	}

	return best, bestRank
}
