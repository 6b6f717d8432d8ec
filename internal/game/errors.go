package game

import (
	"errors"
	"fmt"

	"github.com/tyoon11/holdem/internal/deck"
	"github.com/tyoon11/holdem/internal/evaluator"
)

var (
	// ErrIllegalTransition matches every *IllegalTransitionError via errors.Is.
	ErrIllegalTransition = errors.New("illegal phase transition")

	// ErrInsufficientCards is returned when a showdown or estimate is
	// requested before a five-card hand can be formed.
	ErrInsufficientCards = evaluator.ErrInsufficientCards

	// ErrEmptyDeck is returned when the deck runs out mid-deal.
	ErrEmptyDeck = deck.ErrEmptyDeck

	ErrNoPlayers       = errors.New("a match needs at least one player")
	ErrTooManyPlayers  = errors.New("too many players for one deck")
	ErrDuplicatePlayer = errors.New("duplicate player name")
	ErrUnknownPlayer   = errors.New("unknown player")
	ErrNothingToUndo   = errors.New("nothing to undo")
	ErrEstimateTimeout = errors.New("equity estimate timed out")
)

// IllegalTransitionError reports a phase method called out of order. The
// match is unchanged when it is returned.
type IllegalTransitionError struct {
	From  Phase
	To    Phase
	Dealt bool // whether hole cards had been dealt
}

func (e *IllegalTransitionError) Error() string {
	switch {
	case e.To == Start:
		return "hole cards have already been dealt; reset the match first"
	case !e.Dealt:
		return fmt.Sprintf("cannot reveal the %s before hole cards are dealt", e.To)
	case e.From >= e.To:
		return fmt.Sprintf("the %s has already been revealed", e.To)
	default:
		return fmt.Sprintf("cannot reveal the %s: reveal the %s first", e.To, e.To-1)
	}
}

// Is makes errors.Is(err, ErrIllegalTransition) hold.
func (e *IllegalTransitionError) Is(target error) bool {
	return target == ErrIllegalTransition
}
