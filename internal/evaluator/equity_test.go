package evaluator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyoon11/holdem/internal/deck"
	"github.com/tyoon11/holdem/internal/randutil"
)

// unseen returns every card not in known
func unseen(known ...[]deck.Card) []deck.Card {
	used := make(map[deck.Card]bool)
	for _, group := range known {
		for _, c := range group {
			used[c] = true
		}
	}
	var out []deck.Card
	for _, c := range deck.FullDeck() {
		if !used[c] {
			out = append(out, c)
		}
	}
	return out
}

func headsUp(hole1, hole2, board string, trials int, seed int64) EquityRequest {
	h1 := deck.MustParseCards(hole1)
	h2 := deck.MustParseCards(hole2)
	b := deck.MustParseCards(board)
	return EquityRequest{
		Players: []Holding{
			{Name: "Alice", Hole: h1},
			{Name: "Bob", Hole: h2},
		},
		Board:     b,
		Remaining: unseen(h1, h2, b),
		Trials:    trials,
		Workers:   4,
		RNG:       randutil.New(seed),
	}
}

func TestEstimateEquitySumsToHundred(t *testing.T) {
	tests := []struct {
		name  string
		hole1 string
		hole2 string
		board string
	}{
		{"preflop", "AsAd", "7h2c", ""},
		{"flop", "AhKh", "2c2d", "QhJh3s"},
		{"turn", "9c9d", "AsKd", "9h5s2c8d"},
		{"river", "AhKh", "2c2d", "QhJhTh3s4s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := EstimateEquity(context.Background(), headsUp(tt.hole1, tt.hole2, tt.board, 1000, 42))
			require.NoError(t, err)

			total := 0.0
			for name, share := range res.Shares {
				assert.GreaterOrEqual(t, share, 0.0, name)
				assert.LessOrEqual(t, share, 100.0, name)
				total += share
			}
			assert.InDelta(t, 100.0, total, 0.01)
			assert.Equal(t, 1000, res.Trials)

			for name, hist := range res.Categories {
				n := 0
				for _, count := range hist {
					n += count
				}
				assert.Equal(t, 1000, n, "histogram for %s", name)
			}
		})
	}
}

func TestEstimateEquityMadeFlushOutweighsHighCard(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		res, err := EstimateEquity(context.Background(), headsUp("AhKh", "2c7d", "QhJh3h", 500, seed))
		require.NoError(t, err)
		assert.Greater(t, res.Shares["Alice"], res.Shares["Bob"], "seed %d", seed)
		assert.Zero(t, res.Categories["Alice"][HighCard], "flush is already made")
	}
}

func TestEstimateEquityRiverIsExact(t *testing.T) {
	// No cards left to draw: every trial sees the same hands.
	res, err := EstimateEquity(context.Background(), headsUp("AhKh", "2c2d", "QhJhTh3s4s", 100, 1))
	require.NoError(t, err)

	assert.Equal(t, 800, res.Scores["Alice"])
	assert.Equal(t, 100, res.Scores["Bob"])
	assert.InDelta(t, 800.0/9.0, res.Shares["Alice"], 1e-9)
	assert.InDelta(t, 100.0/9.0, res.Shares["Bob"], 1e-9)
	assert.Equal(t, 100, res.Categories["Alice"][StraightFlush])
	assert.Equal(t, 100, res.Categories["Bob"][OnePair])
}

func TestEstimateEquityAllHighCardSplitsEvenly(t *testing.T) {
	res, err := EstimateEquity(context.Background(), headsUp("3d4h", "7c8d", "2c5d9hJsKc", 10, 1))
	require.NoError(t, err)

	assert.Zero(t, res.Scores["Alice"])
	assert.Zero(t, res.Scores["Bob"])
	assert.Equal(t, 50.0, res.Shares["Alice"])
	assert.Equal(t, 50.0, res.Shares["Bob"])
}

func TestEstimateEquityDeterministicWithSeed(t *testing.T) {
	a, err := EstimateEquity(context.Background(), headsUp("AsKd", "QcQh", "", 2000, 77))
	require.NoError(t, err)
	b, err := EstimateEquity(context.Background(), headsUp("AsKd", "QcQh", "", 2000, 77))
	require.NoError(t, err)

	assert.Equal(t, a.Scores, b.Scores)
	assert.Equal(t, a.Shares, b.Shares)
}

func TestEstimateEquityWorkerCounts(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 16} {
		req := headsUp("AsKd", "QcQh", "Qs7d2h", 101, 9)
		req.Workers = workers
		res, err := EstimateEquity(context.Background(), req)
		require.NoError(t, err, "workers %d", workers)
		assert.Equal(t, 101, res.Trials)

		n := 0
		for _, count := range res.Categories["Bob"] {
			n += count
		}
		assert.Equal(t, 101, n, "workers %d", workers)
		// Bob holds a set on every runout
		assert.GreaterOrEqual(t, res.Scores["Bob"], 101*int(ThreeOfAKind))
	}
}

func TestEstimateEquityInvalidInputs(t *testing.T) {
	ctx := context.Background()

	req := headsUp("AsKd", "QcQh", "", 0, 1)
	_, err := EstimateEquity(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidTrials)

	req = headsUp("AsKd", "QcQh", "", 10, 1)
	req.Players = nil
	_, err = EstimateEquity(ctx, req)
	assert.Error(t, err)

	req = headsUp("AsKd", "QcQh", "Qs7d2h", 10, 1)
	req.Remaining = req.Remaining[:1]
	_, err = EstimateEquity(ctx, req)
	assert.ErrorIs(t, err, ErrInsufficientCards)

	req = headsUp("AsKd", "QcQh", "2c3c4c5c6c7c", 10, 1)
	_, err = EstimateEquity(ctx, req)
	assert.Error(t, err)
}

func TestEstimateEquityCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := EstimateEquity(ctx, headsUp("AsKd", "QcQh", "", 1000, 1))
	assert.ErrorIs(t, err, context.Canceled)
}
