package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyoon11/holdem/internal/deck"
	"github.com/tyoon11/holdem/internal/evaluator"
	"github.com/tyoon11/holdem/internal/randutil"
)

// stackedDeck returns a deck that deals the given cards first, in order,
// followed by the rest of the pack.
func stackedDeck(order string) *deck.Deck {
	top := deck.MustParseCards(order)
	used := make(map[deck.Card]bool, len(top))
	for _, c := range top {
		used[c] = true
	}

	var cards []deck.Card
	for _, c := range deck.FullDeck() {
		if !used[c] {
			cards = append(cards, c)
		}
	}
	for i := len(top) - 1; i >= 0; i-- {
		cards = append(cards, top[i])
	}
	return deck.NewDeckFrom(cards, randutil.New(1))
}

// royalMatch deals Alice AhKh and Bob 2c2d with a QhJhTh3s4s board to come
func royalMatch(t *testing.T, opts ...MatchOption) *Match {
	t.Helper()
	opts = append([]MatchOption{WithDeck(stackedDeck("Ah2cKh2d QhJhTh 3s 4s"))}, opts...)
	m, err := NewMatch([]string{"Alice", "Bob"}, opts...)
	require.NoError(t, err)
	return m
}

func playTo(t *testing.T, m *Match, phase Phase) {
	t.Helper()
	require.NoError(t, m.Start())
	steps := []func() error{m.RevealFlop, m.RevealTurn, m.RevealRiver}
	for p := Flop; p <= phase; p++ {
		require.NoError(t, steps[p-1](), "reveal %s", p)
	}
}

func TestNewMatchValidation(t *testing.T) {
	_, err := NewMatch(nil)
	assert.ErrorIs(t, err, ErrNoPlayers)

	_, err = NewMatch([]string{"Alice", "Bob", "Alice"})
	assert.ErrorIs(t, err, ErrDuplicatePlayer)

	_, err = NewMatch([]string{"Alice", ""})
	assert.Error(t, err)

	names := make([]string, 24)
	for i := range names {
		names[i] = string(rune('A' + i))
	}
	_, err = NewMatch(names)
	assert.ErrorIs(t, err, ErrTooManyPlayers)

	m, err := NewMatch(names[:23])
	require.NoError(t, err)
	require.NoError(t, m.Start())
	assert.Equal(t, 6, m.DeckSize())
}

func TestNewMatchInitialState(t *testing.T) {
	m, err := NewMatch([]string{"Alice", "Bob"}, WithRNG(randutil.New(42)))
	require.NoError(t, err)

	assert.Equal(t, Start, m.Phase())
	assert.Empty(t, m.TableCards())
	assert.Equal(t, 52, m.DeckSize())
	assert.Zero(t, m.HistoryLen())
	for _, p := range m.Players() {
		assert.False(t, p.HasCards(), p.Name)
	}
}

func TestMatchDealsRoundRobin(t *testing.T) {
	m := royalMatch(t)
	require.NoError(t, m.Start())

	alice, err := m.PlayerHand("Alice")
	require.NoError(t, err)
	bob, err := m.PlayerHand("Bob")
	require.NoError(t, err)

	assert.Equal(t, deck.MustParseCards("AhKh"), alice)
	assert.Equal(t, deck.MustParseCards("2c2d"), bob)
	assert.Equal(t, 48, m.DeckSize())
	assert.Equal(t, 1, m.HistoryLen())

	_, err = m.PlayerHand("Carol")
	assert.ErrorIs(t, err, ErrUnknownPlayer)
}

func TestMatchFullRound(t *testing.T) {
	m := royalMatch(t)
	require.NoError(t, m.Start())

	require.NoError(t, m.RevealFlop())
	assert.Equal(t, Flop, m.Phase())
	assert.Equal(t, deck.MustParseCards("QhJhTh"), m.TableCards())

	require.NoError(t, m.RevealTurn())
	assert.Equal(t, Turn, m.Phase())
	assert.Len(t, m.TableCards(), 4)

	require.NoError(t, m.RevealRiver())
	assert.Equal(t, River, m.Phase())
	assert.Equal(t, deck.MustParseCards("QhJhTh3s4s"), m.TableCards())
	assert.Equal(t, 52-4-5, m.DeckSize())
	assert.Equal(t, 4, m.HistoryLen())
}

func TestMatchCardsAreConserved(t *testing.T) {
	m, err := NewMatch([]string{"Alice", "Bob", "Carol"}, WithRNG(randutil.New(3)))
	require.NoError(t, err)
	playTo(t, m, River)

	seen := make(map[deck.Card]bool)
	add := func(cards []deck.Card) {
		for _, c := range cards {
			require.False(t, seen[c], "%s appears twice", c)
			seen[c] = true
		}
	}
	for _, p := range m.Players() {
		add(p.Hand)
	}
	add(m.TableCards())
	assert.Len(t, seen, 11)
	assert.Equal(t, 52-len(seen), m.DeckSize())
}

func TestMatchIllegalTransitions(t *testing.T) {
	m := royalMatch(t)

	err := m.RevealFlop()
	require.ErrorIs(t, err, ErrIllegalTransition)
	assert.Contains(t, err.Error(), "before hole cards are dealt")

	require.NoError(t, m.Start())

	err = m.RevealTurn()
	require.ErrorIs(t, err, ErrIllegalTransition)
	var ite *IllegalTransitionError
	require.ErrorAs(t, err, &ite)
	assert.Equal(t, Start, ite.From)
	assert.Equal(t, Turn, ite.To)
	assert.Equal(t, "cannot reveal the turn: reveal the flop first", err.Error())

	// nothing moved
	assert.Empty(t, m.TableCards())
	assert.Equal(t, Start, m.Phase())
	assert.Equal(t, 1, m.HistoryLen())
	assert.Equal(t, 48, m.DeckSize())

	assert.ErrorIs(t, m.RevealRiver(), ErrIllegalTransition)
	assert.ErrorIs(t, m.Start(), ErrIllegalTransition)

	require.NoError(t, m.RevealFlop())
	err = m.RevealFlop()
	require.ErrorIs(t, err, ErrIllegalTransition)
	assert.Equal(t, "the flop has already been revealed", err.Error())
	assert.Len(t, m.TableCards(), 3)
	assert.Equal(t, 2, m.HistoryLen())
}

func TestMatchUndo(t *testing.T) {
	m := royalMatch(t)
	assert.ErrorIs(t, m.Undo(), ErrNothingToUndo)

	type state struct {
		phase   Phase
		table   []deck.Card
		players []Player
		deck    int
	}
	capture := func() state {
		return state{m.Phase(), m.TableCards(), m.Players(), m.DeckSize()}
	}

	states := []state{capture()}
	require.NoError(t, m.Start())
	states = append(states, capture())
	require.NoError(t, m.RevealFlop())
	states = append(states, capture())
	require.NoError(t, m.RevealTurn())
	states = append(states, capture())
	require.NoError(t, m.RevealRiver())

	for i := len(states) - 1; i >= 0; i-- {
		require.NoError(t, m.Undo())
		assert.Equal(t, states[i], capture(), "after undo to step %d", i)
	}
	assert.ErrorIs(t, m.Undo(), ErrNothingToUndo)
	assert.Zero(t, m.HistoryLen())
}

func TestMatchUndoRestoresDeck(t *testing.T) {
	m := royalMatch(t)
	playTo(t, m, Flop)
	flop := m.TableCards()

	require.NoError(t, m.Undo())
	assert.Equal(t, Start, m.Phase())
	assert.Empty(t, m.TableCards())

	// the undone cards are back on top of the deck
	require.NoError(t, m.RevealFlop())
	assert.Equal(t, flop, m.TableCards())
}

func TestMatchDetermineWinner(t *testing.T) {
	m := royalMatch(t)

	_, err := m.DetermineWinner()
	assert.ErrorIs(t, err, ErrInsufficientCards)
	require.NoError(t, m.Start())
	_, err = m.DetermineWinner()
	assert.ErrorIs(t, err, ErrInsufficientCards)

	require.NoError(t, m.RevealFlop())
	require.NoError(t, m.RevealTurn())
	require.NoError(t, m.RevealRiver())

	history := m.HistoryLen()
	sd, err := m.DetermineWinner()
	require.NoError(t, err)
	assert.Equal(t, "Alice", sd.Winner)
	assert.Equal(t, evaluator.StraightFlush, sd.Rank.Category)
	assert.Equal(t, []int{14, 13, 12, 11, 10}, sd.Rank.Tiebreak)
	assert.Equal(t, "Straight flush, A high", sd.Description)
	assert.ElementsMatch(t, deck.MustParseCards("AhKhQhJhTh"), sd.BestHand)
	assert.Empty(t, sd.Tied)
	assert.Equal(t, history, m.HistoryLen())

	scores := m.Scores()
	assert.Equal(t, evaluator.StraightFlush, scores["Alice"].Category)
	assert.Equal(t, evaluator.OnePair, scores["Bob"].Category)
}

func TestMatchDetermineWinnerOnFlop(t *testing.T) {
	m := royalMatch(t)
	playTo(t, m, Flop)

	sd, err := m.DetermineWinner()
	require.NoError(t, err)
	assert.Equal(t, "Alice", sd.Winner)
	assert.Equal(t, evaluator.StraightFlush, sd.Rank.Category)
}

func TestMatchDetermineWinnerTie(t *testing.T) {
	m, err := NewMatch([]string{"Alice", "Bob"},
		WithDeck(stackedDeck("2c2h3d3s AsKsQs Js Ts")))
	require.NoError(t, err)
	playTo(t, m, River)

	sd, err := m.DetermineWinner()
	require.NoError(t, err)
	assert.Equal(t, "Alice", sd.Winner, "earliest seat takes an exact tie")
	assert.Equal(t, []string{"Alice", "Bob"}, sd.Tied)
}

func TestMatchDescribeBestHand(t *testing.T) {
	m := royalMatch(t)
	require.NoError(t, m.Start())

	desc, err := m.DescribeBestHand("Alice")
	require.NoError(t, err)
	assert.Equal(t, NoTableCards, desc)

	require.NoError(t, m.RevealFlop())
	desc, err = m.DescribeBestHand("Alice")
	require.NoError(t, err)
	assert.Equal(t, "Straight flush, A high", desc)

	desc, err = m.DescribeBestHand("Bob")
	require.NoError(t, err)
	assert.Equal(t, "One pair, 2s", desc)

	_, err = m.DescribeBestHand("Carol")
	assert.ErrorIs(t, err, ErrUnknownPlayer)
}

func TestMatchReset(t *testing.T) {
	m := royalMatch(t, WithRNG(randutil.New(5)))
	playTo(t, m, River)
	_, err := m.DetermineWinner()
	require.NoError(t, err)

	m.Reset()
	assert.Equal(t, Start, m.Phase())
	assert.Empty(t, m.TableCards())
	assert.Equal(t, 52, m.DeckSize())
	assert.Zero(t, m.HistoryLen())
	assert.Empty(t, m.Scores())
	for _, p := range m.Players() {
		assert.False(t, p.HasCards(), p.Name)
	}
	assert.ErrorIs(t, m.Undo(), ErrNothingToUndo)

	require.NoError(t, m.Start())
	assert.Equal(t, 48, m.DeckSize())
}

func TestMatchEstimateEquity(t *testing.T) {
	ctx := context.Background()
	m := royalMatch(t, WithRNG(randutil.New(8)), WithWorkers(2))

	_, err := m.EstimateEquity(ctx, 100)
	assert.ErrorIs(t, err, ErrInsufficientCards)

	require.NoError(t, m.Start())
	for _, step := range []func() error{nil, m.RevealFlop, m.RevealTurn, m.RevealRiver} {
		if step != nil {
			require.NoError(t, step())
		}
		eq, err := m.EstimateEquity(ctx, 200)
		require.NoError(t, err, "phase %s", m.Phase())

		total := 0.0
		for _, share := range eq.Shares {
			total += share
		}
		assert.InDelta(t, 100.0, total, 0.01, "phase %s", m.Phase())
		assert.Equal(t, 200, eq.Trials)
	}

	_, err = m.EstimateEquity(ctx, 0)
	assert.ErrorIs(t, err, evaluator.ErrInvalidTrials)
}

func TestMatchEstimateEquityRiver(t *testing.T) {
	mClock := quartz.NewMock(t)
	m := royalMatch(t, WithClock(mClock), WithRNG(randutil.New(1)))
	playTo(t, m, River)
	before := m.DeckSize()

	eq, err := m.EstimateEquity(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 800, eq.Scores["Alice"])
	assert.Equal(t, 100, eq.Scores["Bob"])
	assert.Zero(t, eq.Elapsed, "mock clock does not move on its own")

	// the estimate never touches the real deck
	assert.Equal(t, before, m.DeckSize())
	assert.Equal(t, 4, m.HistoryLen())
}

func TestWithClockTimeout(t *testing.T) {
	testCtx, cancelTest := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelTest()

	t.Run("fires after the deadline", func(t *testing.T) {
		mClock := quartz.NewMock(t)
		ctx, cancel := withClockTimeout(context.Background(), mClock, time.Second)
		defer cancel()

		mClock.Advance(500 * time.Millisecond).MustWait(testCtx)
		assert.NoError(t, ctx.Err())

		mClock.Advance(500 * time.Millisecond).MustWait(testCtx)
		<-ctx.Done()
		assert.ErrorIs(t, context.Cause(ctx), ErrEstimateTimeout)
	})

	t.Run("cancel stops the timer", func(t *testing.T) {
		mClock := quartz.NewMock(t)
		ctx, cancel := withClockTimeout(context.Background(), mClock, time.Second)
		cancel()

		<-ctx.Done()
		assert.ErrorIs(t, context.Cause(ctx), context.Canceled)
	})
}

func TestMatchConcurrentAccess(t *testing.T) {
	m, err := NewMatch([]string{"Alice", "Bob", "Carol"}, WithRNG(randutil.New(12)))
	require.NoError(t, err)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				_ = m.Phase()
				_ = m.TableCards()
				_ = m.Players()
				_, _ = m.DescribeBestHand("Bob")
			}
		}()
	}

	for range 20 {
		require.NoError(t, m.Start())
		require.NoError(t, m.RevealFlop())
		require.NoError(t, m.RevealTurn())
		require.NoError(t, m.Undo())
		require.NoError(t, m.RevealTurn())
		require.NoError(t, m.RevealRiver())
		_, err := m.DetermineWinner()
		require.NoError(t, err)
		m.Reset()
	}
	close(stop)
	wg.Wait()
}
