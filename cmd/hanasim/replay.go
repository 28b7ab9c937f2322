package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/hanabibots/hanasim/cmd/hanasim/shared"
	"github.com/hanabibots/hanasim/internal/bot"
	"github.com/hanabibots/hanasim/internal/game"
	"github.com/hanabibots/hanasim/internal/randutil"
	"github.com/hanabibots/hanasim/internal/replay"
)

// ReplayCmd groups transcript recording and inspection
type ReplayCmd struct {
	Record ReplayRecordCmd `cmd:"" help:"Play one seeded game and write its transcript as JSON"`
	Show   ReplayShowCmd   `cmd:"" help:"Reconstruct and print state from a transcript"`
}

// ReplayRecordCmd plays one bot game and writes the transcript
type ReplayRecordCmd struct {
	Seed     int64  `default:"1" help:"RNG seed for the deal and the bots"`
	Players  int    `default:"2" help:"Players in the game, 2-5"`
	Strategy string `default:"tracker" help:"Bot strategy: random, cautious, tracker"`
	Out      string `short:"o" type:"path" help:"Output file (defaults to stdout)"`
	Debug    bool   `help:"Debug logging"`
}

// Run executes the replay record command
func (c *ReplayRecordCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	g, err := game.NewGame(game.Config{Players: c.Players, Seed: c.Seed}, logger)
	if err != nil {
		return err
	}

	rng := randutil.New(c.Seed)
	bots := make([]bot.Bot, g.Players())
	for seat := range bots {
		bots[seat], err = bot.New(c.Strategy, seat, rng, logger)
		if err != nil {
			return err
		}
	}

	for g.Status() == game.InProgress {
		seat := g.CurrentPlayer()
		move, err := bots[seat].Act(g, seat)
		if err != nil {
			return fmt.Errorf("seat %d: %w", seat, err)
		}
		rec, err := g.Apply(move)
		if err != nil {
			return fmt.Errorf("seat %d move %v: %w", seat, move, err)
		}
		for _, b := range bots {
			b.Observe(rec)
		}
	}

	logger.Info("game finished",
		"status", g.Status(),
		"score", g.Score(),
		"turns", g.Turn())

	out := os.Stdout
	if c.Out != "" {
		out, err = os.Create(c.Out)
		if err != nil {
			return err
		}
		defer out.Close()
	}
	return replay.FromGame(g).Write(out)
}

// ReplayShowCmd reconstructs state from a transcript file
type ReplayShowCmd struct {
	File  string `arg:"" type:"existingfile" help:"Transcript file written by replay record"`
	Turn  int    `default:"-1" help:"Reconstruct state after this many moves (default: all)"`
	Moves bool   `help:"Also print the move log"`
}

// Run executes the replay show command
func (c *ReplayShowCmd) Run() error {
	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer f.Close()

	transcript, err := replay.Read(f)
	if err != nil {
		return err
	}

	n := c.Turn
	if n < 0 || n > len(transcript.Entries) {
		n = len(transcript.Entries)
	}
	g, err := transcript.StateAt(n)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("=== seed %d, %d players, after move %d/%d ===",
		transcript.Header.Seed, transcript.Header.Players, n, len(transcript.Entries))))
	fmt.Printf("%s %s   %s %d/%d\n",
		labelStyle.Render("Status:"), g.Status(),
		labelStyle.Render("Score:"), g.Score(), g.MaxScore())
	fmt.Printf("%s %d   %s %d   %s %d\n",
		labelStyle.Render("Hints:"), g.Hints(),
		labelStyle.Render("Strikes:"), g.Strikes(),
		labelStyle.Render("Deck:"), g.DeckLen())

	piles := make([]string, 0, len(g.Colours()))
	for _, colour := range g.Colours() {
		piles = append(piles, fmt.Sprintf("%s=%d", colour, g.PileHeight(colour)))
	}
	fmt.Printf("%s %s\n", labelStyle.Render("Piles:"), strings.Join(piles, " "))

	if c.Moves {
		fmt.Println()
		for _, entry := range transcript.Entries[:n] {
			fmt.Printf("%3d  %s\n", entry.Turn, describeEntry(entry))
		}
	}
	return nil
}

func describeEntry(entry replay.Entry) string {
	switch entry.Action {
	case "play":
		outcome := lossStyle.Render("strike")
		if entry.Success {
			outcome = winStyle.Render("ok")
		}
		return fmt.Sprintf("p%d plays %s (%s)", entry.Player, entry.Card, outcome)
	case "discard":
		return fmt.Sprintf("p%d discards %s", entry.Player, entry.Card)
	case "clue":
		return fmt.Sprintf("p%d clues %s to p%d, touching %v",
			entry.Player, entry.Clue, entry.Receiver, entry.Touched)
	default:
		return fmt.Sprintf("p%d %s", entry.Player, entry.Action)
	}
}
