package rules

import (
	"fmt"
	"strings"
)

// Move is a complete move: source, destination and, for pawns reaching
// their last rank, the promotion choice.
type Move struct {
	From      Square
	To        Square
	Promotion PieceType
}

// NullMove is the zero-information move used when no move is available.
var NullMove = Move{From: NoSquare, To: NoSquare}

// IsNull reports whether m is NullMove.
func (m Move) IsNull() bool { return m.From == NoSquare || m.To == NoSquare }

// String produces the coordinate form of the move (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.Promotion != PieceTypeNone {
		s += string(rune(NewPiece(Black, m.Promotion).Char()))
	}
	return s
}

// ParseMove converts a coordinate string (e2e4, e7e8q, 0000) into a Move.
// Legality is not checked.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "0000" {
		return NullMove, nil
	}
	if len(s) < 4 || len(s) > 5 {
		return NullMove, fmt.Errorf("%w: %q has invalid length", ErrInvalidMove, s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NullMove, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NullMove, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			m.Promotion = PieceTypeQueen
		case 'r':
			m.Promotion = PieceTypeRook
		case 'b':
			m.Promotion = PieceTypeBishop
		case 'n':
			m.Promotion = PieceTypeKnight
		default:
			return NullMove, fmt.Errorf("%w: invalid promotion piece %q", ErrInvalidMove, s[4])
		}
	}
	return m, nil
}

// LegalMoves lists every legal move for the side to move. Pawn moves onto
// the last rank are expanded into one move per promotion choice. A finished
// game or a pending promotion yields no moves.
func (b *Board) LegalMoves() []Move {
	if b.GameOver() || b.promotionPending {
		return nil
	}
	moves := make([]Move, 0, 48)
	for src := Square(0); src < 64; src++ {
		p := b.cells[src].Piece
		if p.Empty() || p.Color != b.turn {
			continue
		}
		promotes := p.Type == PieceTypePawn
		for m := b.filterCellsInRange(src, FullFilter); m != 0; m &= m - 1 {
			dst := lowest(m)
			if promotes && dst.Rank() == lastRank(p.Color) {
				for _, pt := range PromotionTypes {
					moves = append(moves, Move{From: src, To: dst, Promotion: pt})
				}
				continue
			}
			moves = append(moves, Move{From: src, To: dst})
		}
	}
	return moves
}

// IsCapture reports whether m captures a piece, en passant included.
func (b *Board) IsCapture(m Move) bool {
	if m.IsNull() {
		return false
	}
	if !b.PieceAt(m.To).Empty() {
		return true
	}
	p := b.PieceAt(m.From)
	return p.Type == PieceTypePawn && m.From.File() != m.To.File()
}

// CapturedPiece returns the piece m would capture, en passant included.
func (b *Board) CapturedPiece(m Move) Piece {
	if m.IsNull() {
		return NoPiece
	}
	if t := b.PieceAt(m.To); !t.Empty() {
		return t
	}
	if b.IsCapture(m) {
		return b.PieceAt(SquareAt(m.To.File(), m.From.Rank()))
	}
	return NoPiece
}

// IsCastling reports whether m is a castling king move.
func (b *Board) IsCastling(m Move) bool {
	p := b.PieceAt(m.From)
	if p.Type != PieceTypeKing {
		return false
	}
	_, ok := castlingLaneFor(p.Color, m.From, m.To)
	return ok
}

// ApplyMove validates m against the fully filtered moves of the side to move
// and plays it, promotion included. Illegal moves leave the board untouched.
func (b *Board) ApplyMove(m Move) bool {
	if b.promotionPending || b.GameOver() || !m.From.Valid() || !m.To.Valid() {
		return false
	}
	p := b.cells[m.From].Piece
	if p.Empty() || p.Color != b.turn {
		return false
	}
	if !b.filterCellsInRange(m.From, FullFilter).Has(m.To) {
		return false
	}
	promotes := p.Type == PieceTypePawn && m.To.Rank() == lastRank(p.Color)
	if promotes && !CanPromoteTo(m.Promotion) || !promotes && m.Promotion != PieceTypeNone {
		return false
	}
	b.execute(m.From, m.To)
	if promotes {
		b.Promote(m.Promotion)
	}
	return true
}
