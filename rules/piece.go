package rules

// Color is the side owning a piece. White and Black double as indexes into
// per-color arrays such as Cell.Dangerous.
type Color uint8

const (
	White   Color = 0
	Black   Color = 1
	NoColor Color = 2
)

// Opposite returns the other side. NoColor stays NoColor.
func (c Color) Opposite() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColor
	}
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// PieceType is a colorless representation of a chess piece.
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeKnight PieceType = 2
	PieceTypeBishop PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

// PromotionTypes lists the piece types a pawn may promote to, in menu order.
var PromotionTypes = [4]PieceType{PieceTypeQueen, PieceTypeRook, PieceTypeKnight, PieceTypeBishop}

// CanPromoteTo reports whether pt is a valid promotion choice.
func CanPromoteTo(pt PieceType) bool {
	for _, p := range PromotionTypes {
		if p == pt {
			return true
		}
	}
	return false
}

// Slides reports whether the piece type moves along rays.
func (pt PieceType) Slides() bool {
	return pt == PieceTypeBishop || pt == PieceTypeRook || pt == PieceTypeQueen
}

func (pt PieceType) String() string {
	switch pt {
	case PieceTypePawn:
		return "pawn"
	case PieceTypeKnight:
		return "knight"
	case PieceTypeBishop:
		return "bishop"
	case PieceTypeRook:
		return "rook"
	case PieceTypeQueen:
		return "queen"
	case PieceTypeKing:
		return "king"
	default:
		return "none"
	}
}

// Piece is an immutable (type, color) pair.
type Piece struct {
	Type  PieceType
	Color Color
}

// NoPiece occupies every empty cell.
var NoPiece = Piece{Type: PieceTypeNone, Color: NoColor}

// NewPiece combines a side and a colorless type.
func NewPiece(c Color, pt PieceType) Piece {
	if pt == PieceTypeNone {
		return NoPiece
	}
	return Piece{Type: pt, Color: c}
}

// Empty reports whether p is NoPiece.
func (p Piece) Empty() bool { return p.Type == PieceTypeNone }

// Is reports whether p has the given color and type.
func (p Piece) Is(c Color, pt PieceType) bool { return p.Type == pt && p.Color == c }

// Char returns the FEN letter of the piece, uppercase for White.
func (p Piece) Char() byte {
	var ch byte
	switch p.Type {
	case PieceTypePawn:
		ch = 'p'
	case PieceTypeKnight:
		ch = 'n'
	case PieceTypeBishop:
		ch = 'b'
	case PieceTypeRook:
		ch = 'r'
	case PieceTypeQueen:
		ch = 'q'
	case PieceTypeKing:
		ch = 'k'
	default:
		return '.'
	}
	if p.Color == White {
		ch -= 'a' - 'A'
	}
	return ch
}

func (p Piece) String() string {
	if p.Empty() {
		return "empty"
	}
	return p.Color.String() + " " + p.Type.String()
}

// MarshalText encodes the piece as its FEN letter, or an empty string.
func (p Piece) MarshalText() ([]byte, error) {
	if p.Empty() {
		return []byte{}, nil
	}
	return []byte{p.Char()}, nil
}

// pieceFromChar converts a FEN letter to a piece. ok is false for anything else.
func pieceFromChar(ch rune) (p Piece, ok bool) {
	switch ch {
	case 'P':
		return NewPiece(White, PieceTypePawn), true
	case 'N':
		return NewPiece(White, PieceTypeKnight), true
	case 'B':
		return NewPiece(White, PieceTypeBishop), true
	case 'R':
		return NewPiece(White, PieceTypeRook), true
	case 'Q':
		return NewPiece(White, PieceTypeQueen), true
	case 'K':
		return NewPiece(White, PieceTypeKing), true
	case 'p':
		return NewPiece(Black, PieceTypePawn), true
	case 'n':
		return NewPiece(Black, PieceTypeKnight), true
	case 'b':
		return NewPiece(Black, PieceTypeBishop), true
	case 'r':
		return NewPiece(Black, PieceTypeRook), true
	case 'q':
		return NewPiece(Black, PieceTypeQueen), true
	case 'k':
		return NewPiece(Black, PieceTypeKing), true
	default:
		return NoPiece, false
	}
}
