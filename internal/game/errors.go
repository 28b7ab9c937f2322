package game

import "fmt"

// ConfigError reports an invalid game configuration. It is returned at
// construction time only; a constructed Game never fails this way.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

// IllegalMoveError reports a rejected action: a clue with zero hints, a
// discard at maximum hints, a self-clue, a self-hand query, a bad card
// index or an out-of-turn move. A rejected action leaves the game state
// unchanged; callers that consult LegalMoves first never see this error.
type IllegalMoveError struct {
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move: %s", e.Reason)
}

// TerminalStateError reports an action requested after the game reached a
// terminal status.
type TerminalStateError struct {
	Status Status
}

func (e *TerminalStateError) Error() string {
	return fmt.Sprintf("game is over: %s", e.Status)
}
