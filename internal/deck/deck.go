package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/tyoon11/holdem/internal/randutil"
)

// ErrEmptyDeck is returned when a card is requested from a deck with no cards left.
var ErrEmptyDeck = errors.New("deck is empty")

// Deck represents a shuffled pool of cards. Cards are dealt from the end.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// FullDeck returns the 52 distinct cards in canonical, unshuffled order.
func FullDeck() []Card {
	cards := make([]Card, 0, 52)
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// NewDeck creates a standard 52-card deck and shuffles it with rng.
// A nil rng is replaced with a time-seeded generator.
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		rng = randutil.New(time.Now().UnixNano())
	}
	d := &Deck{
		cards: FullDeck(),
		rng:   rng,
	}
	d.Shuffle()
	return d
}

// NewDeckFrom builds a deck holding exactly the given cards, in order.
// The last card is dealt first.
func NewDeckFrom(cards []Card, rng *rand.Rand) *Deck {
	if rng == nil {
		rng = randutil.New(time.Now().UnixNano())
	}
	return &Deck{
		cards: append([]Card(nil), cards...),
		rng:   rng,
	}
}

// Shuffle randomizes the order of the remaining cards using Fisher-Yates
func (d *Deck) Shuffle() {
	Shuffle(d.cards, d.rng)
}

// Shuffle permutes cards in place; every permutation is equally likely.
func Shuffle(cards []Card, rng *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Deal removes and returns the last card in the current ordering
func (d *Deck) Deal() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	last := len(d.cards) - 1
	card := d.cards[last]
	d.cards = d.cards[:last]
	return card, nil
}

// DealN deals n cards. Nothing is removed when fewer than n cards remain.
func (d *Deck) DealN(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, fmt.Errorf("deal %d cards with %d remaining: %w", n, len(d.cards), ErrEmptyDeck)
	}
	cards := make([]Card, 0, n)
	for range n {
		card, err := d.Deal()
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// Len returns the number of cards left in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}

// Remaining returns a copy of the cards still in the deck
func (d *Deck) Remaining() []Card {
	return append([]Card(nil), d.cards...)
}

// Clone returns an independent deck with the same cards and generator
func (d *Deck) Clone() *Deck {
	return &Deck{cards: d.Remaining(), rng: d.rng}
}
