package game

import "github.com/hanabibots/hanasim/internal/deck"

// LegalMoves enumerates every move the player could legally apply right
// now: nil when the game is over or it is not the player's turn. Clues
// that would touch no cards are not legal.
func (g *Game) LegalMoves(player int) []Move {
	if g.status.Terminal() || player != g.current {
		return nil
	}

	var moves []Move

	for i := range g.hands[player] {
		moves = append(moves, PlayMove(player, i))
	}

	if g.hints < MaxHints {
		for i := range g.hands[player] {
			moves = append(moves, DiscardMove(player, i))
		}
	}

	if g.hints > 0 {
		for receiver := 0; receiver < g.cfg.Players; receiver++ {
			if receiver == player {
				continue
			}
			colours := make(map[deck.Colour]bool)
			ranks := make(map[deck.Rank]bool)
			for _, card := range g.hands[receiver] {
				colours[card.Colour] = true
				ranks[card.Rank] = true
			}
			for _, colour := range g.Colours() {
				if colours[colour] {
					moves = append(moves, ColourClue(player, receiver, colour))
				}
			}
			for rank := deck.Rank(1); rank <= g.maxRank; rank++ {
				if ranks[rank] {
					moves = append(moves, RankClue(player, receiver, rank))
				}
			}
		}
	}

	return moves
}
