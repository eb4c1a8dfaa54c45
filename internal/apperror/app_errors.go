package apperror

import "errors"

var (
	ErrInvalidMove             = errors.New("invalid move")
	ErrNoLegalMove             = errors.New("no legal move available")
	ErrIllegalStateTransition  = errors.New("illegal state transition")
	ErrInvalidDifficulty       = errors.New("invalid difficulty")
	ErrInvalidMode             = errors.New("invalid game mode")
	ErrNotFound                = errors.New("not found")
	ErrOpponentMoveOutstanding = errors.New("opponent move already pending")
)
