package apperror

import "errors"

var (
	ErrInvalidMove      = errors.New("invalid move")
	ErrNoMovesAvailable = errors.New("no moves available")
	ErrGameFinished     = errors.New("game is already finished")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell id")
	ErrUnknownMode      = errors.New("unknown game mode")
	ErrSessionNotFound  = errors.New("session not found")
)
