package rules

import "fmt"

// offset is a (file, rank) step.
type offset struct{ df, dr int }

var (
	knightOffsets = [8]offset{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets   = [8]offset{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
	bishopRays    = [4]offset{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	rookRays      = [4]offset{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	queenRays     = [8]offset{{0, 1}, {1, 0}, {0, -1}, {-1, 0}, {1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
)

// step returns sq shifted by o, or false when that leaves the board.
func step(sq Square, o offset) (Square, bool) {
	return SquareFromCoords(sq.File()+o.df, sq.Rank()+o.dr)
}

// rangeOf returns the raw destinations of the piece on src, ignoring whose
// turn it is and whether the move would leave its own king attacked.
// Castling destinations are only produced when withCastling is set.
func rangeOf(b *Board, src Square, withCastling bool) SquareSet {
	p := b.PieceAt(src)
	switch p.Type {
	case PieceTypePawn:
		return pawnRange(b, src, p.Color)
	case PieceTypeKnight:
		return stepRange(src, knightOffsets[:])
	case PieceTypeBishop, PieceTypeRook, PieceTypeQueen:
		return sliderRange(b, src)
	case PieceTypeKing:
		r := stepRange(src, kingOffsets[:])
		if withCastling {
			r |= castlingRange(b, src)
		}
		return r
	default:
		return 0
	}
}

func pawnRange(b *Board, src Square, c Color) SquareSet {
	var r SquareSet
	fwd := pawnForward(c)
	if one, ok := step(src, offset{0, fwd}); ok && b.PieceAt(one).Empty() {
		r = r.With(one)
		if src.Rank() == pawnStartRank(c) {
			if two, ok := step(src, offset{0, 2 * fwd}); ok && b.PieceAt(two).Empty() {
				r = r.With(two)
			}
		}
	}
	for _, df := range [2]int{-1, 1} {
		dst, ok := step(src, offset{df, fwd})
		if !ok {
			continue
		}
		target := b.PieceAt(dst)
		switch {
		case !target.Empty() && target.Color != c:
			r = r.With(dst)
		case target.Empty() && dst == b.enPassant && dst.Rank() == enPassantRank(c):
			r = r.With(dst)
		}
	}
	return r
}

// pawnAttacks returns the two forward diagonals of a pawn whatever occupies them.
func pawnAttacks(src Square, c Color) SquareSet {
	var r SquareSet
	for _, df := range [2]int{-1, 1} {
		if dst, ok := step(src, offset{df, pawnForward(c)}); ok {
			r = r.With(dst)
		}
	}
	return r
}

func stepRange(src Square, offsets []offset) SquareSet {
	var r SquareSet
	for _, o := range offsets {
		if dst, ok := step(src, o); ok {
			r = r.With(dst)
		}
	}
	return r
}

// sliderRange walks every ray of the bishop, rook or queen on src up to and
// including the first occupied square.
func sliderRange(b *Board, src Square) SquareSet {
	p := b.PieceAt(src)
	var rays []offset
	switch p.Type {
	case PieceTypeBishop:
		rays = bishopRays[:]
	case PieceTypeRook:
		rays = rookRays[:]
	case PieceTypeQueen:
		rays = queenRays[:]
	default:
		panic(fmt.Sprintf("rules: slider range requested for %s on %s", p, src))
	}
	var r SquareSet
	for _, o := range rays {
		for sq, ok := step(src, o); ok; sq, ok = step(sq, o) {
			r = r.With(sq)
			if !b.PieceAt(sq).Empty() {
				break
			}
		}
	}
	return r
}

// castlingLane describes the squares involved in one castling move.
type castlingLane struct {
	side    CastlingSide
	king    Square
	rook    Square
	kingTo  Square
	rookTo  Square
	empty   []Square // between king and rook
	transit []Square // king path, must not be attacked
}

var castlingLanes = [2][2]castlingLane{
	White: {
		{side: KingSide, king: E1, rook: H1, kingTo: G1, rookTo: F1, empty: []Square{F1, G1}, transit: []Square{F1, G1}},
		{side: QueenSide, king: E1, rook: A1, kingTo: C1, rookTo: D1, empty: []Square{D1, C1, B1}, transit: []Square{D1, C1}},
	},
	Black: {
		{side: KingSide, king: E8, rook: H8, kingTo: G8, rookTo: F8, empty: []Square{F8, G8}, transit: []Square{F8, G8}},
		{side: QueenSide, king: E8, rook: A8, kingTo: C8, rookTo: D8, empty: []Square{D8, C8, B8}, transit: []Square{D8, C8}},
	},
}

// castlingRange returns the castling destinations of the king on src. The
// danger map must be current: the king may not castle out of or through check.
func castlingRange(b *Board, src Square) SquareSet {
	p := b.PieceAt(src)
	if p.Type != PieceTypeKing {
		panic(fmt.Sprintf("rules: castling range requested for %s on %s", p, src))
	}
	var r SquareSet
	for _, lane := range castlingLanes[p.Color] {
		if canCastleVia(b, p.Color, src, lane) {
			r = r.With(lane.kingTo)
		}
	}
	return r
}

func canCastleVia(b *Board, c Color, src Square, lane castlingLane) bool {
	if src != lane.king || !b.CanCastle(c, lane.side) {
		return false
	}
	if !b.PieceAt(lane.rook).Is(c, PieceTypeRook) {
		return false
	}
	for _, sq := range lane.empty {
		if !b.PieceAt(sq).Empty() {
			return false
		}
	}
	if b.cells[src].Dangerous[c] {
		return false
	}
	for _, sq := range lane.transit {
		if b.cells[sq].Dangerous[c] {
			return false
		}
	}
	return true
}

// castlingLaneFor returns the lane whose king move is from -> to.
func castlingLaneFor(c Color, from, to Square) (castlingLane, bool) {
	if c != White && c != Black {
		return castlingLane{}, false
	}
	for _, lane := range castlingLanes[c] {
		if lane.king == from && lane.kingTo == to {
			return lane, true
		}
	}
	return castlingLane{}, false
}

// InRange returns the raw destinations of the piece on src, castling included.
func (b *Board) InRange(src Square) SquareSet {
	if !src.Valid() {
		return 0
	}
	return rangeOf(b, src, true)
}
