package bot

import (
	"fmt"

	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/hanabibots/hanasim/internal/game"
)

// RandBot picks uniformly from the legal moves. It is the baseline other
// strategies are measured against.
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

// Name returns the strategy name
func (b *RandBot) Name() string { return StrategyRandom }

// Observe ignores the move log; RandBot carries no state
func (b *RandBot) Observe(rec game.Record) {}

// Act picks a uniform random legal move
func (b *RandBot) Act(g *game.Game, seat int) (game.Move, error) {
	moves := g.LegalMoves(seat)
	if len(moves) == 0 {
		return game.Move{}, fmt.Errorf("no legal moves for seat %d", seat)
	}
	return moves[b.rng.IntN(len(moves))], nil
}
