package engine

import (
	"golang.org/x/exp/slices"

	"cellchess/rules"
)

type KillerStruct struct {
	KillerMoves [MaxDepth + 1][2]rules.Move
}

func (k *KillerStruct) InsertKiller(move rules.Move, ply int) {
	if ply > MaxDepth {
		return
	}
	if move != k.KillerMoves[ply][0] {
		k.KillerMoves[ply][1] = k.KillerMoves[ply][0]
		k.KillerMoves[ply][0] = move
	}
}

// IsKiller reports whether move caused a cutoff at ply in a sibling line.
func (k *KillerStruct) IsKiller(move rules.Move, ply int) bool {
	if ply > MaxDepth || move.IsNull() {
		return false
	}
	return slices.Contains(k.KillerMoves[ply][:], move)
}

// Clear the killer moves table.
func (k *KillerStruct) ClearKillers() {
	for depth := 0; depth < MaxDepth+1; depth++ {
		k.KillerMoves[depth][0] = rules.NullMove
		k.KillerMoves[depth][1] = rules.NullMove
	}
}
