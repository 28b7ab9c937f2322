package game

import (
	"errors"
	"testing"

	"github.com/hanabibots/hanasim/internal/deck"
)

// buildGame creates a two-player, two-colour game dealt from an exact deck
// order. The deal is round-robin, so player 0 receives the even indices
// and player 1 the odd indices of the first ten cards.
func buildGame(t *testing.T, cards string) *Game {
	t.Helper()
	parsed, err := deck.ParseCards(cards)
	if err != nil {
		t.Fatalf("ParseCards() error = %v", err)
	}
	g, err := NewGameWithDeck(Config{Players: 2, Colours: 2}, deck.FromCards(parsed), nil)
	if err != nil {
		t.Fatalf("NewGameWithDeck() error = %v", err)
	}
	return g
}

// winnableDeck deals R1..R5 to player 0 and G1..G5 to player 1, leaving
// the ten spare cards in the deck.
const winnableDeck = "R1G1R2G2R3G3R4G4R5G5" + "R1R1R2R3R4G1G1G2G3G4"

// strikeDeck deals only ranks 2 and up, so any opening play misfires.
const strikeDeck = "R2R2R3G2G2G3G3R3R4G4" + "R1R1R1R4R5G1G1G1G4G5"

func TestPlaySuccess(t *testing.T) {
	g := buildGame(t, winnableDeck)

	rec, err := g.Apply(PlayMove(0, 0))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if !rec.Success {
		t.Errorf("playing R1 on an empty pile should succeed")
	}
	if rec.Card != deck.NewCard(deck.Red, 1) {
		t.Errorf("record card = %s, want R1", rec.Card)
	}
	if g.PileHeight(deck.Red) != 1 {
		t.Errorf("red pile height = %d, want 1", g.PileHeight(deck.Red))
	}
	if g.Strikes() != 0 {
		t.Errorf("Strikes() = %d, want 0", g.Strikes())
	}
	if g.HandLen(0) != 5 {
		t.Errorf("hand not refilled after play: %d cards, want 5", g.HandLen(0))
	}
	if g.CurrentPlayer() != 1 {
		t.Errorf("CurrentPlayer() = %d, want 1", g.CurrentPlayer())
	}
	checkConservation(t, g)
}

func TestPlayFailureStrikesAndDiscards(t *testing.T) {
	g := buildGame(t, strikeDeck)

	rec, err := g.Apply(PlayMove(0, 0))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if rec.Success {
		t.Errorf("playing R2 on an empty pile should fail")
	}
	if g.Strikes() != 1 {
		t.Errorf("Strikes() = %d, want 1", g.Strikes())
	}
	if g.PileHeight(deck.Red) != 0 {
		t.Errorf("red pile height = %d, want 0", g.PileHeight(deck.Red))
	}
	if got := g.Discards()[deck.NewCard(deck.Red, 2)]; got != 1 {
		t.Errorf("misplayed R2 not in discard pile: count = %d, want 1", got)
	}
	if g.HandLen(0) != 5 {
		t.Errorf("hand not refilled after misplay: %d cards, want 5", g.HandLen(0))
	}
	checkConservation(t, g)
}

func TestCompletingColourAwardsHint(t *testing.T) {
	g := buildGame(t, winnableDeck)

	// Burn two hints so the rank-5 refund is observable below the cap.
	if _, err := g.Apply(RankClue(0, 1, 1)); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if _, err := g.Apply(RankClue(1, 0, 1)); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if g.Hints() != MaxHints-2 {
		t.Fatalf("Hints() = %d, want %d", g.Hints(), MaxHints-2)
	}

	// Player 0 runs out R1..R5; each play leaves the next rank at slot 0.
	for i := 0; i < 5; i++ {
		rec, err := g.Apply(PlayMove(0, 0))
		if err != nil {
			t.Fatalf("Apply() play %d error = %v", i, err)
		}
		if !rec.Success {
			t.Fatalf("play %d should succeed, got misplay of %s", i, rec.Card)
		}
		if g.Status().Terminal() {
			t.Fatalf("game ended early with status %v", g.Status())
		}
		if _, err := g.Apply(RankClue(1, 0, 1)); err != nil {
			t.Fatalf("Apply() clue %d error = %v", i, err)
		}
	}

	// Five clues spent, one hint refunded by completing red.
	if g.PileHeight(deck.Red) != 5 {
		t.Fatalf("red pile height = %d, want 5", g.PileHeight(deck.Red))
	}
	if want := MaxHints - 7 + 1; g.Hints() != want {
		t.Errorf("Hints() = %d, want %d after rank-5 refund", g.Hints(), want)
	}
}

func TestDiscardAtMaxHintsIllegal(t *testing.T) {
	g := buildGame(t, winnableDeck)

	before := struct {
		hints, strikes, turn, handLen, deckLen, logLen int
	}{g.Hints(), g.Strikes(), g.Turn(), g.HandLen(0), g.DeckLen(), len(g.Log())}

	_, err := g.Apply(DiscardMove(0, 0))
	var illegal *IllegalMoveError
	if !errors.As(err, &illegal) {
		t.Fatalf("discard at max hints error = %v, want IllegalMoveError", err)
	}

	after := struct {
		hints, strikes, turn, handLen, deckLen, logLen int
	}{g.Hints(), g.Strikes(), g.Turn(), g.HandLen(0), g.DeckLen(), len(g.Log())}
	if before != after {
		t.Errorf("rejected discard mutated state: before %+v, after %+v", before, after)
	}
	if g.CurrentPlayer() != 0 {
		t.Errorf("rejected discard advanced the turn")
	}
}

func TestDiscardGainsHintAndDraws(t *testing.T) {
	g := buildGame(t, winnableDeck)

	if _, err := g.Apply(RankClue(0, 1, 1)); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	deckBefore := g.DeckLen()
	rec, err := g.Apply(DiscardMove(1, 0))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if g.Hints() != MaxHints {
		t.Errorf("Hints() = %d, want %d after discard", g.Hints(), MaxHints)
	}
	if rec.Card != deck.NewCard(deck.Green, 1) {
		t.Errorf("record card = %s, want G1", rec.Card)
	}
	if got := g.Discards()[deck.NewCard(deck.Green, 1)]; got != 1 {
		t.Errorf("discarded G1 count = %d, want 1", got)
	}
	if g.DeckLen() != deckBefore-1 {
		t.Errorf("discard did not draw a replacement")
	}
	checkConservation(t, g)
}

func TestClueBookkeeping(t *testing.T) {
	g := buildGame(t, winnableDeck)

	// Player 1 holds G1..G5: a green colour clue touches every slot, a
	// rank clue exactly one.
	rec, err := g.Apply(ColourClue(0, 1, deck.Green))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(rec.Touched) != 5 {
		t.Errorf("colour clue touched %v, want all 5 slots", rec.Touched)
	}
	if g.Hints() != MaxHints-1 {
		t.Errorf("Hints() = %d, want %d", g.Hints(), MaxHints-1)
	}

	rec, err = g.Apply(RankClue(1, 0, 3))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(rec.Touched) != 1 || rec.Touched[0] != 2 {
		t.Errorf("rank 3 clue touched %v, want [2]", rec.Touched)
	}

	// Clues never move cards.
	if g.HandLen(0) != 5 || g.HandLen(1) != 5 {
		t.Errorf("clue changed hand sizes: %d and %d", g.HandLen(0), g.HandLen(1))
	}
	checkConservation(t, g)
}

func TestIllegalClues(t *testing.T) {
	g := buildGame(t, winnableDeck)

	tests := []struct {
		name string
		move Move
	}{
		{"self clue", RankClue(0, 0, 1)},
		{"unknown receiver", RankClue(0, 7, 1)},
		{"colour not in play", ColourClue(0, 1, deck.Purple)},
		{"rank out of range", RankClue(0, 1, 9)},
		{"touches nothing", ColourClue(0, 1, deck.Red)}, // player 1 holds only green
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Apply(tt.move)
			var illegal *IllegalMoveError
			if !errors.As(err, &illegal) {
				t.Errorf("Apply(%v) error = %v, want IllegalMoveError", tt.move, err)
			}
			if g.Hints() != MaxHints {
				t.Errorf("rejected clue consumed a hint")
			}
		})
	}
}

func TestClueWithNoHintsIllegal(t *testing.T) {
	g := buildGame(t, winnableDeck)

	// Burn all eight hints with alternating clues.
	for i := 0; i < MaxHints; i++ {
		player := g.CurrentPlayer()
		receiver := (player + 1) % 2
		if _, err := g.Apply(ColourClue(player, receiver, g.hands[receiver][0].Colour)); err != nil {
			t.Fatalf("Apply() clue %d error = %v", i, err)
		}
	}
	if g.Hints() != 0 {
		t.Fatalf("Hints() = %d, want 0", g.Hints())
	}

	player := g.CurrentPlayer()
	_, err := g.Apply(ColourClue(player, (player+1)%2, deck.Red))
	var illegal *IllegalMoveError
	if !errors.As(err, &illegal) {
		t.Errorf("clue with zero hints error = %v, want IllegalMoveError", err)
	}
}

func TestOutOfTurnAndBadIndexIllegal(t *testing.T) {
	g := buildGame(t, winnableDeck)

	var illegal *IllegalMoveError
	if _, err := g.Apply(PlayMove(1, 0)); !errors.As(err, &illegal) {
		t.Errorf("out-of-turn play error = %v, want IllegalMoveError", err)
	}
	if _, err := g.Apply(PlayMove(0, 9)); !errors.As(err, &illegal) {
		t.Errorf("out-of-range index error = %v, want IllegalMoveError", err)
	}
	if g.Turn() != 0 {
		t.Errorf("rejected moves advanced the turn counter")
	}
}

func TestWinningGame(t *testing.T) {
	g := buildGame(t, winnableDeck)

	// Each player runs out their colour; ten successful plays empty the
	// deck on the final turn and complete both piles.
	for g.Status() == InProgress {
		rec, err := g.Apply(PlayMove(g.CurrentPlayer(), 0))
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if !rec.Success {
			t.Fatalf("unexpected misplay of %s on turn %d", rec.Card, rec.Turn)
		}
	}

	if g.Status() != Won {
		t.Fatalf("Status() = %v, want Won", g.Status())
	}
	if g.Score() != 10 {
		t.Errorf("Score() = %d, want 10", g.Score())
	}

	var terminal *TerminalStateError
	if _, err := g.Apply(PlayMove(g.CurrentPlayer(), 0)); !errors.As(err, &terminal) {
		t.Errorf("action after win error = %v, want TerminalStateError", err)
	}
}

func TestLostByStrikes(t *testing.T) {
	g := buildGame(t, strikeDeck)

	// Both opening hands hold only ranks 2+, so slot-0 plays misfire
	// until three strikes end the game.
	strikes := 0
	for g.Status() == InProgress {
		rec, err := g.Apply(PlayMove(g.CurrentPlayer(), 0))
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if rec.Success {
			t.Fatalf("unexpected successful play of %s", rec.Card)
		}
		strikes++
		if strikes > MaxStrikes {
			t.Fatalf("game did not end after %d strikes", MaxStrikes)
		}
	}

	if g.Status() != LostByStrikes {
		t.Fatalf("Status() = %v, want LostByStrikes", g.Status())
	}
	if g.Strikes() != MaxStrikes {
		t.Errorf("Strikes() = %d, want %d", g.Strikes(), MaxStrikes)
	}

	var terminal *TerminalStateError
	if _, err := g.Apply(DiscardMove(g.CurrentPlayer(), 0)); !errors.As(err, &terminal) {
		t.Errorf("action after loss error = %v, want TerminalStateError", err)
	}
	checkConservation(t, g)
}

// driveWithoutPlaying clues at max hints and discards otherwise, so the
// deck drains without any pile progress.
func driveWithoutPlaying(t *testing.T, g *Game) Record {
	t.Helper()
	player := g.CurrentPlayer()
	var move Move
	if g.Hints() == MaxHints {
		receiver := (player + 1) % g.Players()
		move = RankClue(player, receiver, g.hands[receiver][0].Rank)
	} else {
		move = DiscardMove(player, 0)
	}
	rec, err := g.Apply(move)
	if err != nil {
		t.Fatalf("Apply(%v) error = %v", move, err)
	}
	return rec
}

func TestLostByDeckExhaustion(t *testing.T) {
	g := newTestGame(t, 2, 0)

	exhaustedAt := -1
	for g.Status() == InProgress {
		driveWithoutPlaying(t, g)
		if exhaustedAt < 0 && g.DeckLen() == 0 {
			exhaustedAt = g.Turn()
		}
		if g.Turn() > 200 {
			t.Fatalf("game did not terminate")
		}
	}

	if g.Status() != LostByDeckExhaustion {
		t.Fatalf("Status() = %v, want LostByDeckExhaustion", g.Status())
	}
	// Exactly nPlayers turns follow the turn that drew the last card.
	if got := g.Turn() - exhaustedAt; got != g.Players() {
		t.Errorf("%d turns after deck exhaustion, want %d", got, g.Players())
	}
	if g.Strikes() != 0 {
		t.Errorf("Strikes() = %d, want 0", g.Strikes())
	}
	checkConservation(t, g)
}

func TestSeededGamePlaysOpeningCards(t *testing.T) {
	g := newTestGame(t, 2, 0)

	// Drive a short opening: play a card whenever the current player holds
	// one that some pile needs, otherwise clue or discard. Plays chosen
	// this way must always succeed and never strike.
	successes := 0
	for turn := 0; turn < 20 && g.Status() == InProgress; turn++ {
		player := g.CurrentPlayer()

		played := false
		for i, card := range g.hands[player] {
			if card.Rank == g.PileHeight(card.Colour)+1 {
				rec, err := g.Apply(PlayMove(player, i))
				if err != nil {
					t.Fatalf("Apply() error = %v", err)
				}
				if !rec.Success {
					t.Fatalf("play of next-needed card %s failed", rec.Card)
				}
				successes++
				played = true
				break
			}
		}
		if !played {
			driveWithoutPlaying(t, g)
		}
	}

	if g.Strikes() != 0 {
		t.Errorf("Strikes() = %d, want 0", g.Strikes())
	}
	if g.Score() != successes {
		t.Errorf("Score() = %d, want %d successful plays", g.Score(), successes)
	}
	checkConservation(t, g)
}

func TestHintsAndStrikesStayBounded(t *testing.T) {
	g := newTestGame(t, 3, 11)

	for turn := 0; turn < 60 && g.Status() == InProgress; turn++ {
		player := g.CurrentPlayer()
		// Rotate through play, clue, discard to exercise every counter.
		var err error
		switch turn % 3 {
		case 0:
			_, err = g.Apply(PlayMove(player, 0))
		case 1:
			receiver := (player + 1) % g.Players()
			_, err = g.Apply(RankClue(player, receiver, g.hands[receiver][0].Rank))
		default:
			if g.Hints() == MaxHints {
				receiver := (player + 1) % g.Players()
				_, err = g.Apply(RankClue(player, receiver, g.hands[receiver][0].Rank))
			} else {
				_, err = g.Apply(DiscardMove(player, 0))
			}
		}
		if err != nil {
			var illegal *IllegalMoveError
			if !errors.As(err, &illegal) {
				t.Fatalf("Apply() error = %v", err)
			}
			// A rejected move is fine here; pick any legal one instead.
			moves := g.LegalMoves(player)
			if len(moves) == 0 {
				t.Fatalf("no legal moves while in progress")
			}
			if _, err := g.Apply(moves[0]); err != nil {
				t.Fatalf("Apply() legal move error = %v", err)
			}
		}

		if g.Hints() < 0 || g.Hints() > MaxHints {
			t.Fatalf("hints out of bounds: %d", g.Hints())
		}
		if g.Strikes() < 0 || g.Strikes() > MaxStrikes {
			t.Fatalf("strikes out of bounds: %d", g.Strikes())
		}
		checkConservation(t, g)
	}
}

func TestReplayFromLog(t *testing.T) {
	g := newTestGame(t, 3, 99)

	// Generate a varied log: misplays, discards and clues.
	for turn := 0; g.Status() == InProgress && turn < 100; turn++ {
		moves := g.LegalMoves(g.CurrentPlayer())
		if len(moves) == 0 {
			t.Fatalf("no legal moves while in progress")
		}
		if _, err := g.Apply(moves[turn%len(moves)]); err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
	}

	// Re-derive the final state by applying recorded outcomes.
	replayed, err := NewGame(g.Config(), nil)
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}
	for _, rec := range g.Log() {
		if err := replayed.ApplyRecorded(rec); err != nil {
			t.Fatalf("ApplyRecorded(turn %d) error = %v", rec.Turn, err)
		}
	}

	if replayed.Status() != g.Status() {
		t.Errorf("replayed status = %v, want %v", replayed.Status(), g.Status())
	}
	if replayed.Score() != g.Score() {
		t.Errorf("replayed score = %d, want %d", replayed.Score(), g.Score())
	}
	if replayed.Hints() != g.Hints() || replayed.Strikes() != g.Strikes() {
		t.Errorf("replayed counters = %d/%d, want %d/%d", replayed.Hints(), replayed.Strikes(), g.Hints(), g.Strikes())
	}
	for _, colour := range g.Colours() {
		if replayed.PileHeight(colour) != g.PileHeight(colour) {
			t.Errorf("replayed %s pile = %d, want %d", colour, replayed.PileHeight(colour), g.PileHeight(colour))
		}
	}
}

func TestApplyRecordedRejectsCorruptRecords(t *testing.T) {
	records := []Record{
		{Move: Move{Player: 7, Action: ActionDiscard}},
		{Move: Move{Player: -1, Action: ActionPlay}},
		{Move: PlayMove(0, 99), Success: true},
		{Move: DiscardMove(0, -1)},
	}

	for _, rec := range records {
		g := newTestGame(t, 2, 0)
		err := g.ApplyRecorded(rec)

		var illegal *IllegalMoveError
		if !errors.As(err, &illegal) {
			t.Errorf("ApplyRecorded(%+v) error = %v, want IllegalMoveError", rec.Move, err)
		}
		if g.Turn() != 0 || g.HandLen(0) != 5 || g.HandLen(1) != 5 {
			t.Errorf("ApplyRecorded(%+v) mutated state on rejection", rec.Move)
		}
	}
}

func TestApplyRecordedClueNeedsHints(t *testing.T) {
	g := newTestGame(t, 2, 0)
	clue := RankClue(0, 1, 1)
	for i := 0; i < MaxHints; i++ {
		if err := g.ApplyRecorded(Record{Move: clue, Touched: []int{0}}); err != nil {
			t.Fatalf("ApplyRecorded() clue %d error = %v", i, err)
		}
	}

	err := g.ApplyRecorded(Record{Move: clue, Touched: []int{0}})
	var illegal *IllegalMoveError
	if !errors.As(err, &illegal) {
		t.Errorf("ApplyRecorded() with no hints error = %v, want IllegalMoveError", err)
	}
	if g.Hints() != 0 {
		t.Errorf("Hints() = %d, want 0", g.Hints())
	}
}
