package game

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/tyoon11/holdem/internal/deck"
	"github.com/tyoon11/holdem/internal/evaluator"
	"github.com/tyoon11/holdem/internal/randutil"
)

// NoTableCards is the description given before any community card is shown.
const NoTableCards = "No table cards yet"

// Match is one table of named players playing successive rounds from a
// single deck. All methods are safe for concurrent use.
type Match struct {
	mu sync.Mutex

	rng             *rand.Rand
	logger          *log.Logger
	clock           quartz.Clock
	workers         int
	estimateTimeout time.Duration

	players []Player
	deck    *deck.Deck
	table   []deck.Card
	phase   Phase
	scores  map[string]evaluator.HandRank
	history []snapshot
}

// snapshot is an independent copy of everything a mutator can change
type snapshot struct {
	players []Player
	table   []deck.Card
	phase   Phase
	deck    []deck.Card
}

// Showdown is the outcome of DetermineWinner
type Showdown struct {
	Winner      string
	Rank        evaluator.HandRank
	BestHand    []deck.Card
	Description string
	Tied        []string // every player sharing the winning rank, when more than one
}

// Equity is an equity estimate plus the time it took
type Equity struct {
	evaluator.EquityResult
	Elapsed time.Duration
}

// NewMatch creates a match for the given players in seat order. Names must be
// unique and non-empty. The match starts in the Start phase with no cards dealt.
func NewMatch(names []string, opts ...MatchOption) (*Match, error) {
	if len(names) == 0 {
		return nil, ErrNoPlayers
	}
	if 2*len(names)+5 > 52 {
		return nil, fmt.Errorf("%d players: %w", len(names), ErrTooManyPlayers)
	}

	seen := make(map[string]bool, len(names))
	players := make([]Player, 0, len(names))
	for _, name := range names {
		if name == "" {
			return nil, errors.New("player name must not be empty")
		}
		if seen[name] {
			return nil, fmt.Errorf("%q: %w", name, ErrDuplicatePlayer)
		}
		seen[name] = true
		players = append(players, Player{Name: name})
	}

	cfg := newMatchConfig(opts)
	m := &Match{
		rng:             cfg.rng,
		logger:          cfg.logger.WithPrefix("match"),
		clock:           cfg.clock,
		workers:         cfg.workers,
		estimateTimeout: cfg.estimateTimeout,
		players:         players,
	}
	m.resetLocked()
	if cfg.deck != nil {
		m.deck = cfg.deck
	}
	return m, nil
}

// Start deals two hole cards to every player, one card each per pass.
// It is legal on a fresh or reset match only.
func (m *Match) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dealtLocked() {
		return &IllegalTransitionError{From: m.phase, To: Start, Dealt: true}
	}
	if need := 2 * len(m.players); m.deck.Len() < need {
		return fmt.Errorf("deal %d hole cards with %d remaining: %w", need, m.deck.Len(), ErrEmptyDeck)
	}

	m.pushLocked()
	for range 2 {
		for i := range m.players {
			card, err := m.deck.Deal()
			if err != nil {
				return err
			}
			m.players[i].Hand = append(m.players[i].Hand, card)
		}
	}
	m.phase = Start

	for _, p := range m.players {
		m.logger.Debug("Dealt hole cards", "player", p.Name, "hand", deck.Format(p.Hand))
	}
	return nil
}

// RevealFlop deals three community cards. Legal only from Start.
func (m *Match) RevealFlop() error {
	return m.advance(Flop)
}

// RevealTurn deals the fourth community card. Legal only from Flop.
func (m *Match) RevealTurn() error {
	return m.advance(Turn)
}

// RevealRiver deals the fifth community card. Legal only from Turn.
func (m *Match) RevealRiver() error {
	return m.advance(River)
}

// advance moves to the next phase. Preconditions are checked before
// anything is recorded, so a failed call leaves no trace.
func (m *Match) advance(to Phase) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	dealt := m.dealtLocked()
	if !dealt || m.phase != to-1 {
		return &IllegalTransitionError{From: m.phase, To: to, Dealt: dealt}
	}

	// DealN removes nothing on failure
	snap := m.snapshotLocked()
	cards, err := m.deck.DealN(to.dealCount())
	if err != nil {
		return err
	}
	m.history = append(m.history, snap)
	m.table = append(m.table, cards...)
	m.phase = to

	m.logger.Debug("Revealed community cards", "phase", to, "table", deck.Format(m.table))
	return nil
}

// Undo restores the hands, community cards, phase and deck recorded before
// the most recent successful mutation. It returns ErrNothingToUndo when the
// history is empty.
func (m *Match) Undo() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.history)
	if n == 0 {
		return ErrNothingToUndo
	}
	snap := m.history[n-1]
	m.history = m.history[:n-1]

	m.players = clonePlayers(snap.players)
	m.table = append([]deck.Card(nil), snap.table...)
	m.phase = snap.phase
	m.deck = deck.NewDeckFrom(snap.deck, m.rng)
	m.scores = make(map[string]evaluator.HandRank)

	m.logger.Debug("Undo", "phase", m.phase, "table", deck.Format(m.table), "history", len(m.history))
	return nil
}

// Reset shuffles a fresh deck and clears hands, community cards, scores and
// history. Players keep their seats. No cards are dealt.
func (m *Match) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked()
	m.logger.Debug("Reset match", "players", len(m.players))
}

func (m *Match) resetLocked() {
	m.deck = deck.NewDeck(m.rng)
	m.table = nil
	m.phase = Start
	m.scores = make(map[string]evaluator.HandRank)
	m.history = nil
	for i := range m.players {
		m.players[i].Hand = nil
	}
}

// Phase returns the current phase
func (m *Match) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// TableCards returns a copy of the community cards
func (m *Match) TableCards() []deck.Card {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]deck.Card(nil), m.table...)
}

// PlayerHand returns a copy of a player's hole cards
func (m *Match) PlayerHand(name string) ([]deck.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.playerLocked(name)
	if err != nil {
		return nil, err
	}
	return append([]deck.Card(nil), p.Hand...), nil
}

// Players returns copies of all players in seat order
func (m *Match) Players() []Player {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clonePlayers(m.players)
}

// HistoryLen returns how many steps Undo can walk back
func (m *Match) HistoryLen() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.history)
}

// DeckSize returns the number of undealt cards
func (m *Match) DeckSize() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deck.Len()
}

// Scores returns the ranks computed by the last DetermineWinner call
func (m *Match) Scores() map[string]evaluator.HandRank {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]evaluator.HandRank, len(m.scores))
	for name, rank := range m.scores {
		out[name] = rank
	}
	return out
}

// DetermineWinner ranks every player's best five cards from hole plus
// community cards. Exact ties go to the earliest seat; Tied lists everyone
// sharing the winning rank. At least the flop must be showing.
func (m *Match) DetermineWinner() (Showdown, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.dealtLocked() || m.phase < Flop {
		return Showdown{}, fmt.Errorf("showdown with %d community cards: %w", len(m.table), ErrInsufficientCards)
	}

	var sd Showdown
	hands := make([]evaluator.Hand, len(m.players))
	for i, p := range m.players {
		h, err := evaluator.Evaluate(m.combinedLocked(p))
		if err != nil {
			return Showdown{}, fmt.Errorf("player %s: %w", p.Name, err)
		}
		hands[i] = h
		if i == 0 || h.Rank.Compare(sd.Rank) > 0 {
			sd.Winner = p.Name
			sd.Rank = h.Rank
			sd.BestHand = h.Cards
		}
	}

	m.scores = make(map[string]evaluator.HandRank, len(m.players))
	for i, p := range m.players {
		m.scores[p.Name] = hands[i].Rank
		if hands[i].Rank.Equals(sd.Rank) {
			sd.Tied = append(sd.Tied, p.Name)
		}
	}
	if len(sd.Tied) < 2 {
		sd.Tied = nil
	}
	sd.Description = evaluator.DescribeRank(sd.Rank)

	m.logger.Debug("Showdown", "winner", sd.Winner, "hand", sd.Description)
	return sd, nil
}

// DescribeBestHand labels a player's best hand from hole plus community
// cards, or NoTableCards before the flop.
func (m *Match) DescribeBestHand(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.playerLocked(name)
	if err != nil {
		return "", err
	}
	if len(m.table) == 0 {
		return NoTableCards, nil
	}

	h, err := evaluator.Evaluate(m.combinedLocked(*p))
	if err != nil {
		return "", fmt.Errorf("player %s: %w", name, ErrInsufficientCards)
	}
	return evaluator.DescribeRank(h.Rank), nil
}

// EstimateEquity runs the Monte Carlo estimator over the undealt cards.
// State is copied under the lock and the simulation runs without it.
func (m *Match) EstimateEquity(ctx context.Context, trials int) (Equity, error) {
	m.mu.Lock()
	if !m.dealtLocked() {
		m.mu.Unlock()
		return Equity{}, fmt.Errorf("no hole cards dealt: %w", ErrInsufficientCards)
	}
	req := evaluator.EquityRequest{
		Players:   make([]evaluator.Holding, len(m.players)),
		Board:     append([]deck.Card(nil), m.table...),
		Remaining: m.deck.Remaining(),
		Trials:    trials,
		Workers:   m.workers,
		RNG:       randutil.Split(m.rng, 1)[0],
	}
	for i, p := range m.players {
		req.Players[i] = evaluator.Holding{Name: p.Name, Hole: append([]deck.Card(nil), p.Hand...)}
	}
	m.mu.Unlock()

	if m.estimateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = withClockTimeout(ctx, m.clock, m.estimateTimeout)
		defer cancel()
	}

	start := m.clock.Now()
	res, err := evaluator.EstimateEquity(ctx, req)
	if err != nil {
		if errors.Is(context.Cause(ctx), ErrEstimateTimeout) {
			return Equity{}, fmt.Errorf("%d trials after %s: %w", trials, m.estimateTimeout, ErrEstimateTimeout)
		}
		return Equity{}, err
	}
	elapsed := m.clock.Since(start)

	m.logger.Debug("Estimated equity", "trials", trials, "elapsed", elapsed)
	return Equity{EquityResult: res, Elapsed: elapsed}, nil
}

func (m *Match) dealtLocked() bool {
	return len(m.players) > 0 && m.players[0].HasCards()
}

func (m *Match) playerLocked(name string) (*Player, error) {
	for i := range m.players {
		if m.players[i].Name == name {
			return &m.players[i], nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownPlayer)
}

// combinedLocked returns hole cards followed by community cards
func (m *Match) combinedLocked(p Player) []deck.Card {
	cards := make([]deck.Card, 0, len(p.Hand)+len(m.table))
	cards = append(cards, p.Hand...)
	return append(cards, m.table...)
}

func (m *Match) snapshotLocked() snapshot {
	return snapshot{
		players: clonePlayers(m.players),
		table:   append([]deck.Card(nil), m.table...),
		phase:   m.phase,
		deck:    m.deck.Remaining(),
	}
}

func (m *Match) pushLocked() {
	m.history = append(m.history, m.snapshotLocked())
}
