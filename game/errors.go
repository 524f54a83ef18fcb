package game

import (
	"errors"

	"cellchess/engine"
)

var (
	ErrThinking    = errors.New("engine is thinking")
	ErrNotThinking = errors.New("engine is not thinking")
	ErrGameOver    = errors.New("game is over")
	// ErrNoLegalMove matches engine.ErrNoLegalMove so callers need only one check.
	ErrNoLegalMove = engine.ErrNoLegalMove
)
