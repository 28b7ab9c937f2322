// Package bot implements strategy agents for the Hanabi engine.
//
// Bots consume the engine strictly through its public query interface:
// LegalMoves, Hand (which refuses self-queries) and the resolved Records
// broadcast after every move. No bot ever sees its own cards.
package bot

import (
	"fmt"

	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/hanabibots/hanasim/internal/game"
)

// Bot selects moves for one seat
type Bot interface {
	// Name returns the strategy name for logs and reports
	Name() string

	// Observe is invoked with every resolved move in the game, the bot's
	// own included. Clue records carry the touched indices bots use to
	// build belief state.
	Observe(rec game.Record)

	// Act returns the move to apply for the bot's seat. It must be the
	// player's turn.
	Act(g *game.Game, seat int) (game.Move, error)
}

// Strategy names accepted by New
const (
	StrategyRandom   = "random"
	StrategyCautious = "cautious"
	StrategyTracker  = "tracker"
)

// Strategies returns the known strategy names
func Strategies() []string {
	return []string{StrategyRandom, StrategyCautious, StrategyTracker}
}

// New builds a bot for the named strategy
func New(strategy string, seat int, rng *rand.Rand, logger *log.Logger) (Bot, error) {
	switch strategy {
	case StrategyRandom:
		return NewRandBot(rng, logger), nil
	case StrategyCautious:
		return NewCautiousBot(logger), nil
	case StrategyTracker:
		return NewTrackerBot(seat, logger), nil
	default:
		return nil, fmt.Errorf("unknown bot strategy %q", strategy)
	}
}
