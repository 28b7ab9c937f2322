package game

import "github.com/hanabibots/hanasim/internal/deck"

// Scarcity is derived state: how many copies of each card value are still
// in the deck, hands or piles, i.e. not yet discarded or misplayed. The
// critical/dead queries below are pure functions over this and the piles,
// re-derivable at any point, so they can never go stale.

// Remaining returns the number of copies of a card value not yet
// discarded or misplayed.
func (g *Game) Remaining(card deck.Card) int {
	if card.Rank < 1 || card.Rank > g.maxRank {
		return 0
	}
	return g.cfg.Copies[card.Rank-1] - g.discards[card]
}

// ScarcityMap returns the remaining-copy count for every card value in play
func (g *Game) ScarcityMap() map[deck.Card]int {
	out := make(map[deck.Card]int, g.cfg.Colours*int(g.maxRank))
	for _, colour := range g.Colours() {
		for rank := deck.Rank(1); rank <= g.maxRank; rank++ {
			card := deck.NewCard(colour, rank)
			out[card] = g.Remaining(card)
		}
	}
	return out
}

// IsDead reports whether a card value can never be played again: either
// its rank is already on the pile, or the last copy of some lower rank it
// depends on is gone. Dead cards may still sit in hands and the deck.
func (g *Game) IsDead(card deck.Card) bool {
	height := g.piles[card.Colour]
	if card.Rank <= height {
		return true
	}
	for rank := height + 1; rank <= card.Rank; rank++ {
		if g.Remaining(deck.NewCard(card.Colour, rank)) == 0 {
			return true
		}
	}
	return false
}

// IsCritical reports whether a card value is down to its last copy while
// still needed: losing it would leave the colour permanently stuck below
// the top rank.
func (g *Game) IsCritical(card deck.Card) bool {
	return !g.IsDead(card) && g.Remaining(card) == 1
}

// CriticalCards returns every card value that is currently critical, in
// canonical colour/rank order.
func (g *Game) CriticalCards() []deck.Card {
	var critical []deck.Card
	for _, colour := range g.Colours() {
		for rank := deck.Rank(1); rank <= g.maxRank; rank++ {
			card := deck.NewCard(colour, rank)
			if g.IsCritical(card) {
				critical = append(critical, card)
			}
		}
	}
	return critical
}

// PlayableCards returns the next needed card for each colour that has not
// finished, in canonical colour order.
func (g *Game) PlayableCards() []deck.Card {
	var playable []deck.Card
	for _, colour := range g.Colours() {
		if height := g.piles[colour]; height < g.maxRank {
			playable = append(playable, deck.NewCard(colour, height+1))
		}
	}
	return playable
}

// Score returns the number of successfully played cards
func (g *Game) Score() int {
	score := 0
	for _, colour := range g.Colours() {
		score += int(g.piles[colour])
	}
	return score
}

// MaxScore returns the highest score still reachable given what has been
// discarded: each pile counts up from its height until the first rank
// with no copies left.
func (g *Game) MaxScore() int {
	max := 0
	for _, colour := range g.Colours() {
		height := int(g.piles[colour])
		for rank := deck.Rank(height + 1); rank <= g.maxRank; rank++ {
			if g.Remaining(deck.NewCard(colour, rank)) == 0 {
				break
			}
			height++
		}
		max += height
	}
	return max
}

// Pace returns the discard headroom before the maximum score becomes
// unreachable: score + cards left to draw + one final turn per player,
// minus the maximum score.
func (g *Game) Pace() int {
	return g.Score() + g.deck.Len() + g.cfg.Players - g.MaxScore()
}
