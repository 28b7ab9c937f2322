package game

import (
	"fmt"

	"github.com/hanabibots/hanasim/internal/deck"
)

// Apply validates and applies one action, advances the turn, appends the
// resolved Record to the move log and re-evaluates terminal conditions.
// A rejected action returns an error and leaves the state unchanged.
func (g *Game) Apply(move Move) (Record, error) {
	if g.status.Terminal() {
		return Record{}, &TerminalStateError{Status: g.status}
	}
	if move.Player != g.current {
		return Record{}, &IllegalMoveError{Reason: fmt.Sprintf("player %d acted on player %d's turn", move.Player, g.current)}
	}

	rec := Record{Turn: g.turn, Move: move}

	var err error
	switch move.Action {
	case ActionPlay:
		err = g.applyPlay(&rec)
	case ActionDiscard:
		err = g.applyDiscard(&rec)
	case ActionClue:
		err = g.applyClue(&rec)
	default:
		err = &IllegalMoveError{Reason: fmt.Sprintf("unknown action %d", move.Action)}
	}
	if err != nil {
		return Record{}, err
	}

	g.finishTurn(&rec)
	return rec, nil
}

func (g *Game) applyPlay(rec *Record) error {
	move := rec.Move
	if move.Index < 0 || move.Index >= len(g.hands[move.Player]) {
		return &IllegalMoveError{Reason: fmt.Sprintf("player %d has no card at index %d", move.Player, move.Index)}
	}

	card := g.removeFromHand(move.Player, move.Index)
	rec.Card = card

	if card.Rank == g.piles[card.Colour]+1 {
		g.piles[card.Colour] = card.Rank
		rec.Success = true
		if card.Rank == g.maxRank {
			// Completing a colour refunds a hint.
			g.addHint()
		}
		g.logger.Debug("play succeeded", "turn", g.turn, "player", move.Player, "card", card)
	} else {
		g.discards[card]++
		g.strikes++
		g.logger.Debug("play failed", "turn", g.turn, "player", move.Player, "card", card, "strikes", g.strikes)
	}

	g.drawReplacement(move.Player)
	return nil
}

func (g *Game) applyDiscard(rec *Record) error {
	move := rec.Move
	if g.hints == MaxHints {
		return &IllegalMoveError{Reason: "cannot discard at maximum hints"}
	}
	if move.Index < 0 || move.Index >= len(g.hands[move.Player]) {
		return &IllegalMoveError{Reason: fmt.Sprintf("player %d has no card at index %d", move.Player, move.Index)}
	}

	card := g.removeFromHand(move.Player, move.Index)
	rec.Card = card
	g.discards[card]++
	g.addHint()
	g.logger.Debug("discard", "turn", g.turn, "player", move.Player, "card", card, "hints", g.hints)

	g.drawReplacement(move.Player)
	return nil
}

func (g *Game) applyClue(rec *Record) error {
	move := rec.Move
	if g.hints == 0 {
		return &IllegalMoveError{Reason: "no hints available"}
	}
	if move.Receiver == move.Player {
		return &IllegalMoveError{Reason: fmt.Sprintf("player %d may not clue themselves", move.Player)}
	}
	if move.Receiver < 0 || move.Receiver >= g.cfg.Players {
		return &IllegalMoveError{Reason: fmt.Sprintf("no such player %d", move.Receiver)}
	}
	switch move.Kind {
	case ClueColour:
		if int(move.Colour) < 0 || int(move.Colour) >= g.cfg.Colours {
			return &IllegalMoveError{Reason: fmt.Sprintf("colour %s is not in play", move.Colour)}
		}
	case ClueRank:
		if move.Rank < 1 || move.Rank > g.maxRank {
			return &IllegalMoveError{Reason: fmt.Sprintf("rank %s is not in play", move.Rank)}
		}
	default:
		return &IllegalMoveError{Reason: fmt.Sprintf("unknown clue kind %d", move.Kind)}
	}

	touched := g.touchedIndices(move)
	if len(touched) == 0 {
		return &IllegalMoveError{Reason: "clue touches no cards"}
	}

	g.hints--
	rec.Touched = touched
	g.logger.Debug("clue", "turn", g.turn, "player", move.Player, "receiver", move.Receiver, "kind", move.Kind, "touched", len(touched))
	return nil
}

// touchedIndices returns the indices in the receiver's hand matching the
// clue. Purely informational: clues never mutate cards.
func (g *Game) touchedIndices(move Move) []int {
	var touched []int
	for i, card := range g.hands[move.Receiver] {
		if move.Kind == ClueColour && card.Colour == move.Colour {
			touched = append(touched, i)
		}
		if move.Kind == ClueRank && card.Rank == move.Rank {
			touched = append(touched, i)
		}
	}
	return touched
}

func (g *Game) removeFromHand(player, index int) deck.Card {
	hand := g.hands[player]
	card := hand[index]
	g.hands[player] = append(hand[:index], hand[index+1:]...)
	return card
}

func (g *Game) drawReplacement(player int) {
	card, ok := g.deck.Draw()
	if !ok {
		// Deck is empty: the hand stays one card short.
		return
	}
	g.hands[player] = append(g.hands[player], card)
}

// finishTurn records the outcome, advances the turn order, runs the
// end-game countdown and re-evaluates terminal conditions.
func (g *Game) finishTurn(rec *Record) {
	rec.Hints = g.hints
	rec.Strikes = g.strikes
	g.log = append(g.log, *rec)

	g.turn++
	g.current = g.turn % g.cfg.Players

	// The turn that draws the last card starts the countdown but does not
	// consume it: exactly Players further turns are permitted.
	if g.deck.Empty() {
		if g.countdown < 0 {
			g.countdown = g.cfg.Players
			g.logger.Debug("deck exhausted", "turn", g.turn, "turnsLeft", g.countdown)
		} else {
			g.countdown--
		}
	}

	switch {
	case g.strikes >= MaxStrikes:
		g.status = LostByStrikes
	case g.won():
		g.status = Won
	case g.countdown == 0:
		g.status = LostByDeckExhaustion
	}

	if g.status.Terminal() {
		g.logger.Debug("game over", "status", g.status, "score", g.Score(), "turns", g.turn)
	}
}

func (g *Game) won() bool {
	for _, colour := range g.Colours() {
		if g.piles[colour] < g.maxRank {
			return false
		}
	}
	return true
}

// ApplyRecorded applies a logged move by trusting its recorded outcome
// instead of re-validating it. Replay tooling uses this to re-derive the
// state at any log prefix. Outcomes are trusted but structure is not:
// an unknown player or an out-of-range card index is an IllegalMoveError,
// so a corrupt transcript reports instead of panicking.
func (g *Game) ApplyRecorded(rec Record) error {
	if g.status.Terminal() {
		return &TerminalStateError{Status: g.status}
	}

	move := rec.Move
	if move.Player < 0 || move.Player >= g.cfg.Players {
		return &IllegalMoveError{Reason: fmt.Sprintf("no such player %d", move.Player)}
	}

	applied := Record{Turn: g.turn, Move: move, Touched: rec.Touched}

	switch move.Action {
	case ActionPlay:
		if move.Index < 0 || move.Index >= len(g.hands[move.Player]) {
			return &IllegalMoveError{Reason: fmt.Sprintf("player %d has no card at index %d", move.Player, move.Index)}
		}
		card := g.removeFromHand(move.Player, move.Index)
		applied.Card = card
		if rec.Success {
			g.piles[card.Colour] = card.Rank
			applied.Success = true
			if card.Rank == g.maxRank {
				g.addHint()
			}
		} else {
			g.discards[card]++
			g.strikes++
		}
		g.drawReplacement(move.Player)
	case ActionDiscard:
		if move.Index < 0 || move.Index >= len(g.hands[move.Player]) {
			return &IllegalMoveError{Reason: fmt.Sprintf("player %d has no card at index %d", move.Player, move.Index)}
		}
		card := g.removeFromHand(move.Player, move.Index)
		applied.Card = card
		g.discards[card]++
		g.addHint()
		g.drawReplacement(move.Player)
	case ActionClue:
		if g.hints == 0 {
			return &IllegalMoveError{Reason: "no hints available"}
		}
		g.hints--
	default:
		return &IllegalMoveError{Reason: fmt.Sprintf("unknown action %d", move.Action)}
	}

	g.finishTurn(&applied)
	return nil
}
