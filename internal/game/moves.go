package game

import (
	"fmt"

	"github.com/hanabibots/hanasim/internal/deck"
)

// Action represents the kind of move a player takes on their turn
type Action int

const (
	// ActionPlay attempts to put a hand card on its firework pile
	ActionPlay Action = iota
	// ActionDiscard moves a hand card to the discard pile for a hint
	ActionDiscard
	// ActionClue spends a hint to reveal a colour or rank in another hand
	ActionClue
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case ActionPlay:
		return "play"
	case ActionDiscard:
		return "discard"
	case ActionClue:
		return "clue"
	default:
		return "unknown"
	}
}

// ClueKind distinguishes colour clues from rank clues
type ClueKind int

const (
	ClueColour ClueKind = iota
	ClueRank
)

// String returns the string representation of a clue kind
func (k ClueKind) String() string {
	switch k {
	case ClueColour:
		return "colour"
	case ClueRank:
		return "rank"
	default:
		return "unknown"
	}
}

// Move represents a single player action. Exactly one variant applies per
// Action: Index for plays and discards, Receiver/Kind/Colour/Rank for clues.
type Move struct {
	Player int
	Action Action

	// Play and Discard
	Index int

	// Clue
	Receiver int
	Kind     ClueKind
	Colour   deck.Colour
	Rank     deck.Rank
}

// PlayMove builds a play of the card at index in player's own hand
func PlayMove(player, index int) Move {
	return Move{Player: player, Action: ActionPlay, Index: index}
}

// DiscardMove builds a discard of the card at index in player's own hand
func DiscardMove(player, index int) Move {
	return Move{Player: player, Action: ActionDiscard, Index: index}
}

// ColourClue builds a colour clue from player to receiver
func ColourClue(player, receiver int, colour deck.Colour) Move {
	return Move{Player: player, Action: ActionClue, Receiver: receiver, Kind: ClueColour, Colour: colour}
}

// RankClue builds a rank clue from player to receiver
func RankClue(player, receiver int, rank deck.Rank) Move {
	return Move{Player: player, Action: ActionClue, Receiver: receiver, Kind: ClueRank, Rank: rank}
}

// String returns a short human-readable form of the move
func (m Move) String() string {
	switch m.Action {
	case ActionPlay:
		return fmt.Sprintf("p%d plays slot %d", m.Player, m.Index)
	case ActionDiscard:
		return fmt.Sprintf("p%d discards slot %d", m.Player, m.Index)
	case ActionClue:
		if m.Kind == ClueColour {
			return fmt.Sprintf("p%d clues %s to p%d", m.Player, m.Colour, m.Receiver)
		}
		return fmt.Sprintf("p%d clues %s to p%d", m.Player, m.Rank, m.Receiver)
	default:
		return fmt.Sprintf("p%d unknown action", m.Player)
	}
}

// Record is a resolved move as stored in the move log. It carries the
// outcome, not just the intent, so replaying a log never requires
// re-simulating the decision: the card that left a hand, whether a play
// landed, the clue's touched indices, and the counters after the move.
type Record struct {
	Turn int
	Move Move

	// Play and Discard outcomes
	Card    deck.Card
	Success bool

	// Clue outcome: indices in the receiver's hand matching the clue
	Touched []int

	// Counters after the move resolved
	Hints   int
	Strikes int
}
