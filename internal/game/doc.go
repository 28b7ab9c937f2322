// Package game implements the core Hanabi game logic.
//
// The main type is Game, which holds the authoritative state of a single
// game: the deck, player hands, firework piles, discard pile, hint and
// strike counters, and the append-only move log. One action is applied
// per turn through Apply, which validates the move, mutates state and
// returns the resolved Record.
//
// # Basic Usage
//
// Create and drive a game:
//
//	g, err := game.NewGame(game.Config{Players: 3, Seed: 42}, logger)
//	// Pick from the legal moves for the player to act...
//	moves := g.LegalMoves(g.CurrentPlayer())
//	rec, err := g.Apply(moves[0])
//	// Check for termination
//	if g.Status().Terminal() {
//	    score := g.Score()
//	}
//
// The same seed always produces the same shuffle, so games are exactly
// reproducible from their Config.
//
// # Visibility
//
// A player may query any hand except their own: Hand(p, p) fails with an
// IllegalMoveError for every p. All self-knowledge flows through clue
// outcomes recorded in the move log.
//
// # Concurrency
//
// A Game is not safe for concurrent use. Each game is self-contained and
// shares nothing with other instances, so independent games may be
// simulated in parallel as long as each is driven by a single caller.
package game
