package deck

import (
	"fmt"

	rand "math/rand/v2"
)

// StandardCopies returns the canonical per-rank multiplicity table:
// three 1s, two each of 2 through 4, and a single 5 per colour.
func StandardCopies() []int {
	return []int{3, 2, 2, 2, 1}
}

// Deck represents an ordered deck of Hanabi cards
type Deck struct {
	cards []Card
}

// New builds a deck in deterministic colour-major, rank-minor order.
// copies[i] gives the multiplicity of rank i+1; its length fixes the
// number of ranks per colour.
func New(colours []Colour, copies []int) (*Deck, error) {
	if len(colours) == 0 {
		return nil, fmt.Errorf("deck needs at least one colour")
	}
	if len(copies) == 0 {
		return nil, fmt.Errorf("deck needs at least one rank")
	}

	total := 0
	for rank, n := range copies {
		if n < 1 {
			return nil, fmt.Errorf("rank %d has multiplicity %d, want at least 1", rank+1, n)
		}
		total += n
	}

	d := &Deck{cards: make([]Card, 0, total*len(colours))}
	for _, colour := range colours {
		for rank, n := range copies {
			for i := 0; i < n; i++ {
				d.cards = append(d.cards, NewCard(colour, Rank(rank+1)))
			}
		}
	}
	return d, nil
}

// FromCards builds a deck with exactly the given draw order, for tests
// and replay tooling that need full control over the shuffle.
func FromCards(cards []Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// Shuffle permutes the deck using the provided RNG. The same RNG state
// always produces the same permutation, which test fixtures rely on.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card from the deck
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}

	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// Len returns the number of cards left in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}

// Empty returns true if the deck has no cards left
func (d *Deck) Empty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the remaining cards in draw order
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
