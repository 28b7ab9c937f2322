package deck

import (
	"fmt"
	"strings"
)

// Colour represents a firework colour
type Colour int

const (
	Red Colour = iota
	Green
	Blue
	Yellow
	Purple
)

// NumColours is the number of colours in a standard game
const NumColours = 5

// String returns the single-letter representation of a colour
func (c Colour) String() string {
	switch c {
	case Red:
		return "R"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Yellow:
		return "Y"
	case Purple:
		return "P"
	default:
		return "?"
	}
}

// Colours returns the first n colours in canonical order
func Colours(n int) []Colour {
	colours := make([]Colour, n)
	for i := range colours {
		colours[i] = Colour(i)
	}
	return colours
}

// Rank represents a card rank, 1 through 5 in a standard game
type Rank int

// MaxRank is the highest rank in a standard game
const MaxRank Rank = 5

// String returns the string representation of a rank
func (r Rank) String() string {
	if r < 1 || r > 9 {
		return "?"
	}
	return string(rune('0' + r))
}

// Card represents a Hanabi card as an immutable (colour, rank) value.
// Physical copies of the same value are indistinguishable, so Card
// equality and map keys work by value.
type Card struct {
	Colour Colour
	Rank   Rank
}

// NewCard creates a new card
func NewCard(colour Colour, rank Rank) Card {
	return Card{Colour: colour, Rank: rank}
}

// String returns the string representation of a card (e.g., "R1")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Colour, c.Rank)
}

// ParseColour parses a single-letter colour like "R" or "p"
func ParseColour(s string) (Colour, error) {
	switch strings.ToUpper(s) {
	case "R":
		return Red, nil
	case "G":
		return Green, nil
	case "B":
		return Blue, nil
	case "Y":
		return Yellow, nil
	case "P":
		return Purple, nil
	default:
		return 0, fmt.Errorf("invalid colour %q", s)
	}
}

// ParseCard parses a two-character card like "R1" or "p5"
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card %q: want colour letter and rank digit", s)
	}

	colour, err := ParseColour(s[:1])
	if err != nil {
		return Card{}, fmt.Errorf("invalid colour %q in card %q", s[:1], s)
	}

	if s[1] < '1' || s[1] > '9' {
		return Card{}, fmt.Errorf("invalid rank %q in card %q", s[1:], s)
	}

	return Card{Colour: colour, Rank: Rank(s[1] - '0')}, nil
}

// ParseCards parses a compact card string like "R1G2B3" into cards
func ParseCards(s string) ([]Card, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card string %q: odd length", s)
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		card, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}
