package core

import "errors"

var (
	// ErrOutOfBounds indicates a position outside the board.
	ErrOutOfBounds = errors.New("lines: position out of bounds")
	// ErrBusy indicates a turn is resolving; the call was ignored.
	ErrBusy = errors.New("lines: turn in progress")
	// ErrGameOver indicates the game has ended; only NewGame is accepted.
	ErrGameOver = errors.New("lines: game over")
	// ErrNoPendingPlan indicates Commit was called with a plan that is not pending.
	ErrNoPendingPlan = errors.New("lines: no pending plan")
	// ErrInvalidRules indicates rules or a layout that cannot start a game.
	ErrInvalidRules = errors.New("lines: invalid rules")
)
