package evaluator

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tyoon11/holdem/internal/deck"
	"github.com/tyoon11/holdem/internal/randutil"
)

// DefaultTrials is the number of simulated runouts used when none is given.
const DefaultTrials = 1000

var (
	// ErrInsufficientCards is returned when the known cards plus the deck
	// cannot form a five-card hand.
	ErrInsufficientCards = errors.New("not enough cards to form a 5-card hand")

	// ErrInvalidTrials is returned for a trial count below one.
	ErrInvalidTrials = errors.New("trials must be at least 1")
)

// Holding is one player's hole cards
type Holding struct {
	Name string
	Hole []deck.Card
}

// EquityRequest describes a Monte Carlo estimation
type EquityRequest struct {
	Players   []Holding
	Board     []deck.Card // community cards already revealed
	Remaining []deck.Card // unseen cards the runout is drawn from
	Trials    int
	Workers   int        // 0 picks min(NumCPU, 8)
	RNG       *rand.Rand // nil seeds from the wall clock
}

// EquityResult holds the aggregated estimate.
//
// Shares is a strength-weighted share, not a win frequency: every trial adds
// the index (0-8) of each player's best category to that player's score, and
// each share is the player's score over the grand total, as a percentage.
// Shares are non-negative and sum to 100.
type EquityResult struct {
	Shares     map[string]float64
	Scores     map[string]int
	Categories map[string][NumCategories]int // per-player histogram of best categories
	Trials     int
}

// workerResult holds the partial sums from one Monte Carlo worker
type workerResult struct {
	scores     []int
	categories [][NumCategories]int
}

// EstimateEquity completes the board from a shuffled copy of the remaining
// cards Trials times, ranks every player's best hand on each runout and
// aggregates the category indices. All players share the same runout within a
// trial. Trials are split across workers, each with its own generator and deck
// copy; the partial sums are added at the end.
func EstimateEquity(ctx context.Context, req EquityRequest) (EquityResult, error) {
	if req.Trials < 1 {
		return EquityResult{}, fmt.Errorf("%d trials: %w", req.Trials, ErrInvalidTrials)
	}
	if len(req.Players) == 0 {
		return EquityResult{}, errors.New("no players to estimate")
	}
	if len(req.Board) > 5 {
		return EquityResult{}, fmt.Errorf("board has %d cards, at most 5 allowed", len(req.Board))
	}

	needed := 5 - len(req.Board)
	if needed > len(req.Remaining) {
		return EquityResult{}, fmt.Errorf("board needs %d more cards, deck has %d: %w",
			needed, len(req.Remaining), ErrInsufficientCards)
	}
	for _, p := range req.Players {
		if len(p.Hole)+len(req.Board)+needed < 5 {
			return EquityResult{}, fmt.Errorf("player %s: %w", p.Name, ErrInsufficientCards)
		}
	}
	if err := ctx.Err(); err != nil {
		return EquityResult{}, err
	}

	workers := req.Workers
	if workers <= 0 {
		workers = min(runtime.NumCPU(), 8)
	}
	workers = min(workers, req.Trials)

	rng := req.RNG
	if rng == nil {
		rng = randutil.New(time.Now().UnixNano())
	}
	rngs := randutil.Split(rng, workers)

	perWorker := req.Trials / workers
	remainder := req.Trials % workers

	results := make([]workerResult, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		trials := perWorker
		if w < remainder {
			trials++
		}
		g.Go(func() error {
			res, err := runEquityWorker(gctx, req, trials, rngs[w])
			if err != nil {
				return err
			}
			results[w] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return EquityResult{}, err
	}

	out := EquityResult{
		Shares:     make(map[string]float64, len(req.Players)),
		Scores:     make(map[string]int, len(req.Players)),
		Categories: make(map[string][NumCategories]int, len(req.Players)),
		Trials:     req.Trials,
	}
	total := 0
	for i, p := range req.Players {
		var hist [NumCategories]int
		score := 0
		for _, res := range results {
			score += res.scores[i]
			for c, n := range res.categories[i] {
				hist[c] += n
			}
		}
		out.Scores[p.Name] = score
		out.Categories[p.Name] = hist
		total += score
	}

	for _, p := range req.Players {
		if total == 0 {
			// every simulated hand was high card
			out.Shares[p.Name] = 100 / float64(len(req.Players))
			continue
		}
		out.Shares[p.Name] = float64(out.Scores[p.Name]) / float64(total) * 100
	}
	return out, nil
}

// runEquityWorker runs trials simulations for one worker
func runEquityWorker(ctx context.Context, req EquityRequest, trials int, rng *rand.Rand) (workerResult, error) {
	res := workerResult{
		scores:     make([]int, len(req.Players)),
		categories: make([][NumCategories]int, len(req.Players)),
	}

	needed := 5 - len(req.Board)
	pool := make([]deck.Card, len(req.Remaining))

	// Pre-allocate one hand buffer per player: hole + board + runout
	hands := make([][]deck.Card, len(req.Players))
	for i, p := range req.Players {
		hands[i] = make([]deck.Card, 0, len(p.Hole)+5)
	}

	for t := range trials {
		if t%64 == 0 {
			if err := ctx.Err(); err != nil {
				return workerResult{}, err
			}
		}

		copy(pool, req.Remaining)
		deck.Shuffle(pool, rng)
		runout := pool[:needed]

		for i, p := range req.Players {
			hand := append(hands[i][:0], p.Hole...)
			hand = append(hand, req.Board...)
			hand = append(hand, runout...)
			_, rank := bestOf(hand)
			res.scores[i] += int(rank.Category)
			res.categories[i][rank.Category]++
		}
	}
	return res, nil
}
