package game

import (
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/tyoon11/holdem/internal/deck"
	"github.com/tyoon11/holdem/internal/randutil"
)

// MatchOption configures a Match during creation.
type MatchOption func(*matchConfig)

type matchConfig struct {
	rng             *rand.Rand
	logger          *log.Logger
	clock           quartz.Clock
	workers         int
	estimateTimeout time.Duration
	deck            *deck.Deck // first round only; Reset always shuffles a fresh deck
}

// WithRNG sets the generator used for shuffling and equity sampling.
func WithRNG(rng *rand.Rand) MatchOption {
	return func(c *matchConfig) {
		c.rng = rng
	}
}

// WithLogger sets the logger for phase transitions.
func WithLogger(logger *log.Logger) MatchOption {
	return func(c *matchConfig) {
		c.logger = logger
	}
}

// WithClock replaces the wall clock used to time and bound estimates.
func WithClock(clock quartz.Clock) MatchOption {
	return func(c *matchConfig) {
		c.clock = clock
	}
}

// WithDeck deals the first round from d instead of a freshly shuffled deck.
func WithDeck(d *deck.Deck) MatchOption {
	return func(c *matchConfig) {
		c.deck = d
	}
}

// WithWorkers sets the number of equity workers (0 = automatic).
func WithWorkers(n int) MatchOption {
	return func(c *matchConfig) {
		c.workers = n
	}
}

// WithEstimateTimeout bounds each EstimateEquity call. Zero means no bound.
func WithEstimateTimeout(d time.Duration) MatchOption {
	return func(c *matchConfig) {
		c.estimateTimeout = d
	}
}

func newMatchConfig(opts []MatchOption) *matchConfig {
	cfg := &matchConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.rng == nil {
		cfg.rng = randutil.New(time.Now().UnixNano())
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.clock == nil {
		cfg.clock = quartz.NewReal()
	}
	return cfg
}
