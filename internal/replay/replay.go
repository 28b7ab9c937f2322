// Package replay serialises finished games to JSON and reconstructs
// engine state from them.
//
// A transcript stores the game configuration plus the resolved move log.
// Because records carry outcomes (the card that left a hand, whether a
// play landed, which slots a clue touched), reconstruction replays the
// log mechanically and never re-simulates a decision.
package replay

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hanabibots/hanasim/internal/deck"
	"github.com/hanabibots/hanasim/internal/game"
)

// Header identifies the variant and deal of a recorded game
type Header struct {
	Players int    `json:"players"`
	Colours int    `json:"colours"`
	Copies  []int  `json:"copies,omitempty"`
	Seed    int64  `json:"seed"`
	Version string `json:"version,omitempty"`
}

// Entry is one resolved move in wire form. Cards and clue values use
// the compact text encoding ("R1", colour "G", rank "3").
type Entry struct {
	Turn   int    `json:"turn"`
	Player int    `json:"player"`
	Action string `json:"action"`

	// Play and discard
	Index   int    `json:"index,omitempty"`
	Card    string `json:"card,omitempty"`
	Success bool   `json:"success,omitempty"`

	// Clue
	Receiver int    `json:"receiver,omitempty"`
	Clue     string `json:"clue,omitempty"`
	Touched  []int  `json:"touched,omitempty"`

	// Counters after the move resolved
	Hints   int `json:"hints"`
	Strikes int `json:"strikes"`
}

// Transcript is a full recorded game
type Transcript struct {
	Header  Header  `json:"header"`
	Status  string  `json:"status"`
	Score   int     `json:"score"`
	Entries []Entry `json:"entries"`
}

// FromGame captures a game's configuration and move log as a transcript.
// The game does not need to be terminal; a partial log replays as far as
// it goes.
func FromGame(g *game.Game) *Transcript {
	cfg := g.Config()
	t := &Transcript{
		Header: Header{
			Players: cfg.Players,
			Colours: cfg.Colours,
			Copies:  cfg.Copies,
			Seed:    cfg.Seed,
		},
		Status: g.Status().String(),
		Score:  g.Score(),
	}
	for _, rec := range g.Log() {
		t.Entries = append(t.Entries, encodeRecord(rec))
	}
	return t
}

func encodeRecord(rec game.Record) Entry {
	move := rec.Move
	entry := Entry{
		Turn:    rec.Turn,
		Player:  move.Player,
		Action:  move.Action.String(),
		Hints:   rec.Hints,
		Strikes: rec.Strikes,
	}

	switch move.Action {
	case game.ActionPlay, game.ActionDiscard:
		entry.Index = move.Index
		entry.Card = rec.Card.String()
		entry.Success = rec.Success
	case game.ActionClue:
		entry.Receiver = move.Receiver
		entry.Touched = rec.Touched
		if move.Kind == game.ClueColour {
			entry.Clue = move.Colour.String()
		} else {
			entry.Clue = move.Rank.String()
		}
	}
	return entry
}

func decodeEntry(entry Entry) (game.Record, error) {
	rec := game.Record{
		Turn:    entry.Turn,
		Hints:   entry.Hints,
		Strikes: entry.Strikes,
		Success: entry.Success,
		Touched: entry.Touched,
	}

	switch entry.Action {
	case "play":
		rec.Move = game.PlayMove(entry.Player, entry.Index)
	case "discard":
		rec.Move = game.DiscardMove(entry.Player, entry.Index)
	case "clue":
		if len(entry.Clue) == 1 && entry.Clue[0] >= '1' && entry.Clue[0] <= '9' {
			rec.Move = game.RankClue(entry.Player, entry.Receiver, deck.Rank(entry.Clue[0]-'0'))
			break
		}
		colour, err := deck.ParseColour(entry.Clue)
		if err != nil {
			return game.Record{}, fmt.Errorf("turn %d: invalid clue %q", entry.Turn, entry.Clue)
		}
		rec.Move = game.ColourClue(entry.Player, entry.Receiver, colour)
	default:
		return game.Record{}, fmt.Errorf("turn %d: unknown action %q", entry.Turn, entry.Action)
	}

	if entry.Card != "" {
		card, err := deck.ParseCard(entry.Card)
		if err != nil {
			return game.Record{}, fmt.Errorf("turn %d: %w", entry.Turn, err)
		}
		rec.Card = card
	}
	return rec, nil
}

// Write serialises the transcript as indented JSON
func (t *Transcript) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

// Read deserialises a transcript from JSON
func Read(r io.Reader) (*Transcript, error) {
	var t Transcript
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("failed to decode transcript: %w", err)
	}
	return &t, nil
}

// StateAt reconstructs the game as it stood after the first n recorded
// moves. The seed in the header reproduces the deal, then each record is
// replayed by its recorded outcome.
func (t *Transcript) StateAt(n int) (*game.Game, error) {
	if n < 0 || n > len(t.Entries) {
		return nil, fmt.Errorf("turn %d out of range, transcript has %d moves", n, len(t.Entries))
	}

	g, err := game.NewGame(game.Config{
		Players: t.Header.Players,
		Colours: t.Header.Colours,
		Copies:  t.Header.Copies,
		Seed:    t.Header.Seed,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild game: %w", err)
	}

	for _, entry := range t.Entries[:n] {
		rec, err := decodeEntry(entry)
		if err != nil {
			return nil, err
		}
		if err := g.ApplyRecorded(rec); err != nil {
			return nil, fmt.Errorf("turn %d: %w", entry.Turn, err)
		}
	}
	return g, nil
}

// Game reconstructs the final recorded state
func (t *Transcript) Game() (*game.Game, error) {
	return t.StateAt(len(t.Entries))
}
