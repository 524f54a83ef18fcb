package engine

import "errors"

var (
	// ErrNoLegalMove is returned when the position is finished or awaiting a promotion choice.
	ErrNoLegalMove   = errors.New("no legal move")
	ErrInvalidConfig = errors.New("invalid engine config")
)
