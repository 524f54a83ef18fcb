package engine

import (
	"cellchess/rules"
)

type move struct {
	move  rules.Move
	score uint16
}

type moveList struct {
	moves []move
}

// Most Valuable Victim - Least Valuable Aggressor; used to score & sort captures
var mvvLva = [7][7]uint16{
	{0, 0, 0, 0, 0, 0, 0},
	{0, 15, 14, 13, 12, 11, 10}, // victim Pawn
	{0, 25, 24, 23, 22, 21, 20}, // victim Knight
	{0, 35, 34, 33, 32, 31, 30}, // victim Bishop
	{0, 45, 44, 43, 42, 41, 40}, // victim Rook
	{0, 55, 54, 53, 52, 51, 50}, // victim Queen
	{0, 0, 0, 0, 0, 0, 0},       // victim King
}

// promotionRank orders underpromotions below a queen.
var promotionRank = [7]uint16{
	rules.PieceTypeKnight: 2,
	rules.PieceTypeBishop: 1,
	rules.PieceTypeRook:   3,
	rules.PieceTypeQueen:  4,
}

// Score offset, keeps every tactical move above quiet ones.
const scoreOffset uint16 = 20000

const (
	pvBonus        uint16 = 1000
	promotionBonus uint16 = 500
	killerBonus    uint16 = 10
)

// Ordering the moves one at a time, at index given
func orderNextMove(currIndex int, moves *moveList) {
	bestIndex := currIndex
	bestScore := moves.moves[bestIndex].score

	for index := bestIndex + 1; index < len(moves.moves); index++ {
		if moves.moves[index].score > bestScore {
			bestIndex = index
			bestScore = moves.moves[index].score
		}
	}

	moves.moves[currIndex], moves.moves[bestIndex] = moves.moves[bestIndex], moves.moves[currIndex]
}

// scoreMovesList ranks the previous iteration's best move first, then
// promotions, then captures by MVV-LVA, then killers for this ply.
func scoreMovesList(b *rules.Board, moves []rules.Move, ply int, pvMove rules.Move, killers *KillerStruct) (movesList moveList) {
	movesList.moves = make([]move, len(moves))
	for i, m := range moves {
		var moveEval uint16
		switch {
		case !pvMove.IsNull() && m == pvMove:
			moveEval = scoreOffset + pvBonus
		case m.Promotion != rules.PieceTypeNone:
			moveEval = scoreOffset + promotionBonus + promotionRank[m.Promotion]
		case b.IsCapture(m):
			victim := b.CapturedPiece(m).Type
			attacker := b.PieceAt(m.From).Type
			moveEval = scoreOffset + mvvLva[victim][attacker]
		case killers.IsKiller(m, ply):
			moveEval = scoreOffset - killerBonus
		}
		movesList.moves[i].move = m
		movesList.moves[i].score = moveEval
	}
	return movesList
}
