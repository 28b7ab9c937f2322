package bot

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hanabibots/hanasim/internal/deck"
	"github.com/hanabibots/hanasim/internal/game"
)

// slotInfo accumulates what clues have revealed about one hand slot
type slotInfo struct {
	rank      deck.Rank
	colour    deck.Colour
	hasRank   bool
	hasColour bool
}

// TrackerBot maintains belief state from the public move log: it tracks
// what every clue revealed about every hand, including its own, plays
// cards it knows to be needed, clues teammates' playable cards they do
// not already know about, and discards its least-informed slot.
type TrackerBot struct {
	seat   int
	logger *log.Logger

	// know[player][slot] mirrors each hand in draw order. Clues are
	// public, so tracking every player is fair game.
	know [][]slotInfo
}

// NewTrackerBot creates a new TrackerBot for the given seat
func NewTrackerBot(seat int, logger *log.Logger) *TrackerBot {
	return &TrackerBot{seat: seat, logger: logger}
}

// Name returns the strategy name
func (b *TrackerBot) Name() string { return StrategyTracker }

// Observe folds a resolved move into the belief state
func (b *TrackerBot) Observe(rec game.Record) {
	move := rec.Move

	switch move.Action {
	case game.ActionClue:
		b.ensure(move.Receiver, maxTouched(rec.Touched)+1)
		for _, i := range rec.Touched {
			if move.Kind == game.ClueColour {
				b.know[move.Receiver][i].colour = move.Colour
				b.know[move.Receiver][i].hasColour = true
			} else {
				b.know[move.Receiver][i].rank = move.Rank
				b.know[move.Receiver][i].hasRank = true
			}
		}
	case game.ActionPlay, game.ActionDiscard:
		b.ensure(move.Player, move.Index+1)
		// The slot is vacated and any replacement draw is unknown.
		slots := b.know[move.Player]
		b.know[move.Player] = append(slots[:move.Index], slots[move.Index+1:]...)
	}
}

func maxTouched(touched []int) int {
	max := -1
	for _, i := range touched {
		if i > max {
			max = i
		}
	}
	return max
}

func (b *TrackerBot) ensure(player, slots int) {
	for len(b.know) <= player {
		b.know = append(b.know, nil)
	}
	for len(b.know[player]) < slots {
		b.know[player] = append(b.know[player], slotInfo{})
	}
}

// Act plays a known-needed card, then clues, then discards
func (b *TrackerBot) Act(g *game.Game, seat int) (game.Move, error) {
	b.sync(g)

	if index, ok := b.playableSlot(g); ok {
		return game.PlayMove(seat, index), nil
	}

	if g.Hints() > 0 {
		if move, ok := b.findClue(g, seat); ok {
			return move, nil
		}
	}

	if g.Hints() < game.MaxHints && g.HandLen(seat) > 0 {
		return game.DiscardMove(seat, b.discardSlot(g)), nil
	}

	// At max hints with nothing worth cluing, burn any clue rather than
	// risk a blind play.
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

// sync grows or clamps belief rows to the actual hand sizes, covering
// drawn replacements and the short hands of the final round.
func (b *TrackerBot) sync(g *game.Game) {
	for player := 0; player < g.Players(); player++ {
		b.ensure(player, g.HandLen(player))
		if len(b.know[player]) > g.HandLen(player) {
			b.know[player] = b.know[player][:g.HandLen(player)]
		}
	}
}

// playableSlot returns a slot in the bot's own hand that is certainly
// playable: fully identified and next on its pile, or rank-identified
// while every pile needs exactly that rank.
func (b *TrackerBot) playableSlot(g *game.Game) (int, bool) {
	for i, info := range b.know[b.seat] {
		if info.hasRank && info.hasColour {
			if info.rank == g.PileHeight(info.colour)+1 {
				return i, true
			}
			continue
		}
		if info.hasRank && b.everyPileNeeds(g, info.rank) {
			return i, true
		}
	}
	return 0, false
}

func (b *TrackerBot) everyPileNeeds(g *game.Game, rank deck.Rank) bool {
	for _, colour := range g.Colours() {
		if g.PileHeight(colour) != rank-1 {
			return false
		}
	}
	return true
}

// findClue rank-clues a playable card the holder does not already know
// the rank of, preferring critical cards.
func (b *TrackerBot) findClue(g *game.Game, seat int) (game.Move, bool) {
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
		for i, card := range hand {
			if card.Rank != g.PileHeight(card.Colour)+1 {
				continue
			}
			if i < len(b.know[target]) && b.know[target][i].hasRank {
				// Already clued; repeating it wastes the hint.
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

// discardSlot prefers a slot known to be dead, then the oldest slot no
// clue has touched, then the oldest slot outright.
func (b *TrackerBot) discardSlot(g *game.Game) int {
	for i, info := range b.know[b.seat] {
		if info.hasRank && info.hasColour && g.IsDead(deck.NewCard(info.colour, info.rank)) {
			return i
		}
	}
	for i, info := range b.know[b.seat] {
		if !info.hasRank && !info.hasColour {
			return i
		}
	}
	return 0
}
