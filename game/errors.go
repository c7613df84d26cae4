package game

import "errors"

// Validation and arbitration errors surfaced to callers. These never
// mutate session state and are local to one session.
var (
	ErrSessionNotFound     = errors.New("game not found")
	ErrInvalidStake        = errors.New("unsupported stake tier")
	ErrNotJoinable         = errors.New("game is not accepting players")
	ErrAlreadySeated       = errors.New("player already holds a seat in this game")
	ErrCardTaken           = errors.New("card is already taken in this game")
	ErrUnknownCard         = errors.New("card not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNotActive           = errors.New("game is not active")
	ErrNoSeat              = errors.New("player not in game")
	ErrNumberNotDrawn      = errors.New("number has not been drawn")
	ErrAlreadyFinished     = errors.New("game already finished")
	ErrInvalidBingo        = errors.New("invalid bingo, continue playing")
)
