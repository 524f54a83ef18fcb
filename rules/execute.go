package rules

import "fmt"

// execute plays a legal move from -> to and updates every piece of derived
// state. A pawn reaching its last rank leaves the board waiting for Promote;
// the analyzer runs only once the promotion is resolved.
func (b *Board) execute(from, to Square) {
	if !from.Valid() || !to.Valid() {
		panic(fmt.Sprintf("rules: execute %s -> %s off the board", from, to))
	}
	mover := b.cells[from].Piece
	if mover.Empty() {
		panic(fmt.Sprintf("rules: execute from empty square %s", from))
	}

	b.clearSelection()
	captured := b.relocate(from, to)
	b.updateCastlingRights(from, to, mover)

	if mover.Type == PieceTypePawn || !captured.Empty() {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}
	if mover.Color == Black {
		b.fullmoveNumber++
	}
	if mover.Type == PieceTypePawn && abs(to.Rank()-from.Rank()) == 2 {
		b.enPassant = SquareAt(from.File(), (from.Rank()+to.Rank())/2)
	} else {
		b.enPassant = NoSquare
	}

	b.moveCount++
	b.lastFrom, b.lastTo = from, to
	b.turn = mover.Color.Opposite()

	if mover.Type == PieceTypePawn && to.Rank() == lastRank(mover.Color) {
		b.promotionPending = true
		b.promoting = to
		return
	}
	b.analyze()
}

// updateCastlingRights clears rights lost by a king move, a rook leaving its
// home corner or a capture on that corner. Rights are never restored.
func (b *Board) updateCastlingRights(from, to Square, mover Piece) {
	if mover.Type == PieceTypeKing {
		b.castlingRights &^= castlingFlag(mover.Color, KingSide) | castlingFlag(mover.Color, QueenSide)
	}
	for c := White; c <= Black; c++ {
		for _, lane := range castlingLanes[c] {
			if from == lane.rook || to == lane.rook {
				b.castlingRights &^= castlingFlag(c, lane.side)
			}
		}
	}
}

// Promote replaces the pawn awaiting promotion with pt and completes the
// move. It is a no-op unless a promotion is pending and pt is a queen, rook,
// knight or bishop.
func (b *Board) Promote(pt PieceType) bool {
	if !b.promotionPending || !CanPromoteTo(pt) {
		return false
	}
	sq := b.promoting
	b.setPiece(sq, NewPiece(b.cells[sq].Piece.Color, pt))
	b.promotionPending = false
	b.promoting = NoSquare
	b.analyze()
	return true
}
