// Package game implements a single Texas Hold'em match: hole-card dealing,
// community-card revelation through the Start, Flop, Turn and River phases,
// step-by-step undo, showdown and equity estimation.
//
// # Basic Usage
//
//	m, err := game.NewMatch([]string{"Alice", "Bob"})
//	if err != nil {
//	    return err
//	}
//	_ = m.Start()      // two hole cards each, round-robin
//	_ = m.RevealFlop() // three community cards
//	sd, err := m.DetermineWinner()
//
// Phase methods return *IllegalTransitionError when called out of order and
// leave the match untouched. Every successful mutation first records a
// snapshot, so Undo walks back one step at a time to the start of the match.
//
// # Deterministic Testing
//
// Inject a seeded generator so dealing and equity sampling are reproducible:
//
//	m, _ := game.NewMatch(names, game.WithRNG(randutil.New(42)))
//
// A Match serializes its own mutators; the evaluator and estimator it calls
// work on copies and are safe to run concurrently.
package game
