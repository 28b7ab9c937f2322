package bot

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hanabibots/hanasim/internal/game"
)

// CautiousBot never risks a strike. It clues teammates' playable cards
// while hints last, preferring critical ones, and otherwise discards its
// oldest card. It relies entirely on visible hands and public state.
type CautiousBot struct {
	logger *log.Logger
}

// NewCautiousBot creates a new CautiousBot instance
func NewCautiousBot(logger *log.Logger) *CautiousBot {
	return &CautiousBot{logger: logger}
}

// Name returns the strategy name
func (b *CautiousBot) Name() string { return StrategyCautious }

// Observe ignores the move log; CautiousBot decides from visible state only
func (b *CautiousBot) Observe(rec game.Record) {}

// Act clues a playable card in another hand when hints allow, otherwise
// discards its oldest card.
func (b *CautiousBot) Act(g *game.Game, seat int) (game.Move, error) {
	if g.Hints() > 0 {
		if move, ok := b.findClue(g, seat); ok {
			return move, nil
		}
	}

	if g.Hints() < game.MaxHints && g.HandLen(seat) > 0 {
		return game.DiscardMove(seat, 0), nil
	}

	// At max hints with nothing worth cluing: any clue keeps us safe.
	moves := g.LegalMoves(seat)
	for _, move := range moves {
		if move.Action == game.ActionClue {
			return move, nil
		}
	}
	if len(moves) == 0 {
		return game.Move{}, fmt.Errorf("no legal moves for seat %d", seat)
	}
	return moves[0], nil
}

func (b *CautiousBot) findClue(g *game.Game, seat int) (game.Move, bool) {
	var fallback game.Move
	found := false

	for target := 0; target < g.Players(); target++ {
		if target == seat {
			continue
		}
		hand, err := g.Hand(seat, target)
		if err != nil {
			continue
		}
		for _, card := range hand {
			if card.Rank != g.PileHeight(card.Colour)+1 {
				continue
			}
			move := game.RankClue(seat, target, card.Rank)
			if g.IsCritical(card) {
				return move, true
			}
			if !found {
				fallback, found = move, true
			}
		}
	}
	return fallback, found
}
