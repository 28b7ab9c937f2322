package game

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hanabibots/hanasim/internal/deck"
	"github.com/hanabibots/hanasim/internal/randutil"
)

const (
	// MinPlayers is the minimum supported player count
	MinPlayers = 2
	// MaxPlayers is the maximum supported player count
	MaxPlayers = 5
	// MaxHints is the hint token ceiling
	MaxHints = 8
	// MaxStrikes is the number of misplays that loses the game
	MaxStrikes = 3
)

// HandSizeFor returns the hand size for a player count: 5 cards for 2-3
// players, 4 cards for 4-5 players.
func HandSizeFor(players int) (int, error) {
	switch players {
	case 2, 3:
		return 5, nil
	case 4, 5:
		return 4, nil
	default:
		return 0, &ConfigError{Reason: fmt.Sprintf("unsupported player count %d, want %d-%d", players, MinPlayers, MaxPlayers)}
	}
}

// Config describes a game at creation time. The zero values of Colours and
// Copies select the standard five-colour deck with the canonical 3/2/2/2/1
// multiplicity table.
type Config struct {
	Players int
	Colours int
	Copies  []int
	Seed    int64
}

// Game holds the authoritative state of a single Hanabi game. It is
// constructed once via NewGame and mutated turn by turn through Apply.
type Game struct {
	cfg      Config
	maxRank  deck.Rank
	handSize int
	logger   *log.Logger

	deck     *deck.Deck
	hands    [][]deck.Card
	piles    map[deck.Colour]deck.Rank
	discards map[deck.Card]int

	hints     int
	strikes   int
	turn      int
	current   int
	countdown int // -1 until the deck empties, then counts down to 0
	status    Status
	log       []Record
}

// NewGame validates the configuration, builds and shuffles the deck from
// the seed, and deals the opening hands in round order (one card to each
// player per round). A nil logger discards log output.
func NewGame(cfg Config, logger *log.Logger) (*Game, error) {
	if cfg.Colours == 0 {
		cfg.Colours = deck.NumColours
	}
	if cfg.Colours < 1 || cfg.Colours > deck.NumColours {
		return nil, &ConfigError{Reason: fmt.Sprintf("unsupported colour count %d, want 1-%d", cfg.Colours, deck.NumColours)}
	}
	if cfg.Copies == nil {
		cfg.Copies = deck.StandardCopies()
	}

	d, err := deck.New(deck.Colours(cfg.Colours), cfg.Copies)
	if err != nil {
		return nil, &ConfigError{Reason: err.Error()}
	}
	d.Shuffle(randutil.New(cfg.Seed))

	return NewGameWithDeck(cfg, d, logger)
}

// NewGameWithDeck creates a game dealing from a caller-provided deck in
// its existing order, for deterministic fixtures and replay. The deck
// must match the configuration's colour count and multiplicity table.
func NewGameWithDeck(cfg Config, d *deck.Deck, logger *log.Logger) (*Game, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	handSize, err := HandSizeFor(cfg.Players)
	if err != nil {
		return nil, err
	}

	if cfg.Colours == 0 {
		cfg.Colours = deck.NumColours
	}
	if cfg.Colours < 1 || cfg.Colours > deck.NumColours {
		return nil, &ConfigError{Reason: fmt.Sprintf("unsupported colour count %d, want 1-%d", cfg.Colours, deck.NumColours)}
	}
	if cfg.Copies == nil {
		cfg.Copies = deck.StandardCopies()
	}
	for rank, n := range cfg.Copies {
		if n < 1 {
			return nil, &ConfigError{Reason: fmt.Sprintf("rank %d has multiplicity %d, want at least 1", rank+1, n)}
		}
	}
	if d.Len() < cfg.Players*handSize {
		return nil, &ConfigError{Reason: fmt.Sprintf("deck of %d cards cannot deal %d hands of %d", d.Len(), cfg.Players, handSize)}
	}

	g := &Game{
		cfg:       cfg,
		maxRank:   deck.Rank(len(cfg.Copies)),
		handSize:  handSize,
		logger:    logger,
		deck:      d,
		hands:     make([][]deck.Card, cfg.Players),
		piles:     make(map[deck.Colour]deck.Rank, cfg.Colours),
		discards:  make(map[deck.Card]int),
		hints:     MaxHints,
		countdown: -1,
		status:    InProgress,
	}
	for p := range g.hands {
		g.hands[p] = make([]deck.Card, 0, handSize)
	}
	for _, colour := range g.Colours() {
		g.piles[colour] = 0
	}

	// One card to each player per round, not full hands one player at a time.
	for i := 0; i < handSize; i++ {
		for p := 0; p < cfg.Players; p++ {
			card, ok := d.Draw()
			if !ok {
				return nil, &ConfigError{Reason: "deck exhausted during deal"}
			}
			g.hands[p] = append(g.hands[p], card)
		}
	}

	logger.Debug("game created",
		"players", cfg.Players,
		"colours", cfg.Colours,
		"handSize", handSize,
		"seed", cfg.Seed,
		"deck", d.Len())

	return g, nil
}

// Config returns the configuration the game was created with
func (g *Game) Config() Config {
	return g.cfg
}

// Players returns the number of players
func (g *Game) Players() int {
	return g.cfg.Players
}

// Colours returns the colours in play in canonical order
func (g *Game) Colours() []deck.Colour {
	return deck.Colours(g.cfg.Colours)
}

// MaxRank returns the highest rank in the deck
func (g *Game) MaxRank() deck.Rank {
	return g.maxRank
}

// Hints returns the current hint token count
func (g *Game) Hints() int {
	return g.hints
}

// Strikes returns the current strike count
func (g *Game) Strikes() int {
	return g.strikes
}

// Turn returns the number of moves applied so far
func (g *Game) Turn() int {
	return g.turn
}

// CurrentPlayer returns the player whose turn it is
func (g *Game) CurrentPlayer() int {
	return g.current
}

// Status returns the game's lifecycle status
func (g *Game) Status() Status {
	return g.status
}

// DeckLen returns the number of cards left in the deck
func (g *Game) DeckLen() int {
	return g.deck.Len()
}

// TurnsLeft returns the number of turns remaining once the deck has
// emptied, or -1 while cards remain to be drawn.
func (g *Game) TurnsLeft() int {
	return g.countdown
}

// Hand returns a copy of target's hand in draw order. It fails with an
// IllegalMoveError when requester == target: a player may never observe
// their own hand, all self-knowledge comes from clues and public state.
func (g *Game) Hand(requester, target int) ([]deck.Card, error) {
	if target < 0 || target >= g.cfg.Players {
		return nil, &IllegalMoveError{Reason: fmt.Sprintf("no such player %d", target)}
	}
	if requester == target {
		return nil, &IllegalMoveError{Reason: fmt.Sprintf("player %d may not view their own hand", requester)}
	}

	hand := make([]deck.Card, len(g.hands[target]))
	copy(hand, g.hands[target])
	return hand, nil
}

// HandLen returns the number of cards in a player's hand. Hand sizes are
// public information, unlike the cards themselves.
func (g *Game) HandLen(player int) int {
	if player < 0 || player >= g.cfg.Players {
		return 0
	}
	return len(g.hands[player])
}

// PileHeight returns the top rank of a colour's firework pile. A height of
// k means ranks 1..k have been played with no gaps; the next legal play
// for that colour is exactly k+1.
func (g *Game) PileHeight(colour deck.Colour) deck.Rank {
	return g.piles[colour]
}

// Pile returns the cards on a colour's firework pile in play order
func (g *Game) Pile(colour deck.Colour) []deck.Card {
	height := g.piles[colour]
	pile := make([]deck.Card, 0, height)
	for rank := deck.Rank(1); rank <= height; rank++ {
		pile = append(pile, deck.NewCard(colour, rank))
	}
	return pile
}

// Discards returns a copy of the discard pile as a card-value multiset.
// Misplayed cards count as discarded.
func (g *Game) Discards() map[deck.Card]int {
	out := make(map[deck.Card]int, len(g.discards))
	for card, n := range g.discards {
		out[card] = n
	}
	return out
}

// Log returns the move log: every applied action in order, with outcomes
func (g *Game) Log() []Record {
	out := make([]Record, len(g.log))
	copy(out, g.log)
	return out
}

func (g *Game) addHint() {
	if g.hints < MaxHints {
		g.hints++
	}
}
