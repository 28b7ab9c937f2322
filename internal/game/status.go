package game

// Status represents the lifecycle state of a game
type Status int

const (
	// InProgress means the game is accepting actions
	InProgress Status = iota
	// Won means every pile reached the top rank
	Won
	// LostByStrikes means three misplays ended the game
	LostByStrikes
	// LostByDeckExhaustion means the final round after the deck emptied
	// completed without a win
	LostByDeckExhaustion
)

// String returns the string representation of a status
func (s Status) String() string {
	switch s {
	case InProgress:
		return "in-progress"
	case Won:
		return "won"
	case LostByStrikes:
		return "lost-by-strikes"
	case LostByDeckExhaustion:
		return "lost-by-deck-exhaustion"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further actions may be applied
func (s Status) Terminal() bool {
	return s != InProgress
}
