package game

import "errors"

var (
	// ErrInvalidState is returned when a heap vector cannot form a game state.
	ErrInvalidState = errors.New("game: invalid state")

	// ErrIllegalMove is returned when a move breaks the transfer rules.
	ErrIllegalMove = errors.New("game: illegal move")

	// ErrInvalidHeap is returned for heap indexes outside the state.
	ErrInvalidHeap = errors.New("game: invalid heap")

	// ErrNoLegalMove is returned when a strategy is asked to move on an empty table.
	ErrNoLegalMove = errors.New("game: no legal move")

	// ErrInvalidSetup is returned when players, heaps or engine options do not form a playable game.
	ErrInvalidSetup = errors.New("game: invalid setup")

	// ErrGameOver is returned by Engine.Step once a winner has been decided.
	ErrGameOver = errors.New("game: game is over")
)
