package deck

import "fmt"

// Suit represents a card suit. Suits carry no ordinal weight in hand ranking.
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// Suits lists every suit in construction order.
var Suits = [...]Suit{Hearts, Diamonds, Clubs, Spades}

// String returns the canonical suit name (e.g. "Hearts")
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "Hearts"
	case Diamonds:
		return "Diamonds"
	case Clubs:
		return "Clubs"
	case Spades:
		return "Spades"
	default:
		return "?"
	}
}

// Symbol returns the unicode glyph for the suit
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Letter returns the single lowercase letter used in compact notation
func (s Suit) Letter() byte {
	switch s {
	case Hearts:
		return 'h'
	case Diamonds:
		return 'd'
	case Clubs:
		return 'c'
	case Spades:
		return 's'
	default:
		return '?'
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. The numeric value is the rank's hand value,
// aces are always high.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the canonical rank name used in card lookup keys:
// "2".."10", "jack", "queen", "king", "ace".
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Ten:
		return fmt.Sprintf("%d", int(r))
	case r == Jack:
		return "jack"
	case r == Queen:
		return "queen"
	case r == King:
		return "king"
	case r == Ace:
		return "ace"
	default:
		return "?"
	}
}

// Letter returns the single-character rank used in compact notation ("T" for ten)
func (r Rank) Letter() byte {
	switch r {
	case Ten:
		return 'T'
	case Jack:
		return 'J'
	case Queen:
		return 'Q'
	case King:
		return 'K'
	case Ace:
		return 'A'
	default:
		if r >= Two && r <= Nine {
			return byte('0' + int(r))
		}
		return '?'
	}
}

// Card represents a playing card. Cards are plain values and compare equal
// when rank and suit match.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the canonical "{rank} of {suit}" form, e.g. "10 of Hearts".
// Presentation layers key card images by this string.
func (c Card) String() string {
	return c.Rank.String() + " of " + c.Suit.String()
}

// Short returns compact notation such as "Th" or "As"
func (c Card) Short() string {
	return string([]byte{c.Rank.Letter(), c.Suit.Letter()})
}

// Value returns the numeric value of the card, 2 through 14
func (c Card) Value() int {
	return int(c.Rank)
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// Valid reports whether the card has a known rank and suit
func (c Card) Valid() bool {
	return c.Rank >= Two && c.Rank <= Ace && c.Suit >= Hearts && c.Suit <= Spades
}
