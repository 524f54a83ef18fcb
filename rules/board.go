package rules

import "fmt"

// Castling rights bit flags
type CastlingRights uint8

const (
	// White king-side (short) castling
	CastlingWhiteK CastlingRights = 1 << iota
	// White queen-side (long) castling
	CastlingWhiteQ
	// Black king-side castling
	CastlingBlackK
	// Black queen-side castling
	CastlingBlackQ
)

// CastlingSide selects king-side or queen-side castling.
type CastlingSide uint8

const (
	KingSide CastlingSide = iota
	QueenSide
)

func castlingFlag(c Color, side CastlingSide) CastlingRights {
	switch {
	case c == White && side == KingSide:
		return CastlingWhiteK
	case c == White && side == QueenSide:
		return CastlingWhiteQ
	case c == Black && side == KingSide:
		return CastlingBlackK
	case c == Black && side == QueenSide:
		return CastlingBlackQ
	}
	return 0
}

// Cell is one square of the board together with the per-turn state the
// analyzer derives for it.
type Cell struct {
	Square Square
	Piece  Piece

	// Dangerous[c] marks the cell as attacked by the side opposite to c.
	Dangerous [2]bool

	InRange     bool
	Movable     bool
	BlocksCheck bool
	OpensCheck  bool

	// Destinations that resolve the current check, or that would expose
	// the own king, if this cell's piece moved there.
	CheckBlocking SquareSet
	CheckOpening  SquareSet
}

// Board is the full game state. It holds no pointers, so assigning a Board
// produces an independent copy that can be mutated freely.
type Board struct {
	cells [64]Cell

	turn           Color
	moveCount      int
	halfmoveClock  int
	fullmoveNumber int

	active      Square
	checkedKing Square
	promoting   Square
	lastFrom    Square
	lastTo      Square

	castlingRights CastlingRights
	enPassant      Square

	movePending      bool
	promotionPending bool
	kingChecked      bool
	checkmate        bool
	drawByFiftyMove  bool
	drawByStalemate  bool
}

// emptyBoard returns a board with no pieces and every reference cleared.
func emptyBoard() Board {
	var b Board
	for sq := Square(0); sq < 64; sq++ {
		b.cells[sq] = Cell{Square: sq, Piece: NoPiece}
	}
	b.fullmoveNumber = 1
	b.active = NoSquare
	b.checkedKing = NoSquare
	b.promoting = NoSquare
	b.lastFrom = NoSquare
	b.lastTo = NoSquare
	b.enPassant = NoSquare
	return b
}

// NewBoard returns the standard starting position, analyzed and ready to play.
func NewBoard() *Board {
	b, err := ParseFEN(FENStartPos)
	if err != nil {
		panic(err)
	}
	return b
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Cell returns a copy of the cell at sq.
func (b *Board) Cell(sq Square) Cell {
	if !sq.Valid() {
		panic(fmt.Sprintf("rules: cell %d is off the board", sq))
	}
	return b.cells[sq]
}

// PieceAt returns the piece on sq, or NoPiece for empty and off-board squares.
func (b *Board) PieceAt(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return b.cells[sq].Piece
}

// Turn reports which side is to play.
func (b *Board) Turn() Color { return b.turn }

// MoveCount is the number of half-moves played on this board.
func (b *Board) MoveCount() int { return b.moveCount }

// HalfmoveClock counts half-moves since the last capture or pawn move.
func (b *Board) HalfmoveClock() int { return b.halfmoveClock }

// FullmoveNumber starts at 1 and is incremented after Black's move.
func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }

// EnPassantSquare returns the current en-passant target square or NoSquare.
func (b *Board) EnPassantSquare() Square { return b.enPassant }

func (b *Board) CastlingRights() CastlingRights { return b.castlingRights }

// CanCastle reports whether c still holds the right to castle on side.
func (b *Board) CanCastle(c Color, side CastlingSide) bool {
	return b.castlingRights&castlingFlag(c, side) != 0
}

// ActiveSquare is the selected cell, or NoSquare.
func (b *Board) ActiveSquare() Square { return b.active }

// CheckedKing is the square of the side to move's king while it is in check.
func (b *Board) CheckedKing() Square { return b.checkedKing }

// PromotingSquare is the square of the pawn awaiting promotion, or NoSquare.
func (b *Board) PromotingSquare() Square { return b.promoting }

// LastMove returns the source and destination of the previous move.
func (b *Board) LastMove() (from, to Square) { return b.lastFrom, b.lastTo }

func (b *Board) MovePending() bool      { return b.movePending }
func (b *Board) PromotionPending() bool { return b.promotionPending }
func (b *Board) KingChecked() bool      { return b.kingChecked }
func (b *Board) Checkmate() bool        { return b.checkmate }
func (b *Board) DrawByFiftyMove() bool  { return b.drawByFiftyMove }
func (b *Board) DrawByStalemate() bool  { return b.drawByStalemate }

// Checkmated returns the color of the mated side.
func (b *Board) Checkmated() (Color, bool) {
	if !b.checkmate {
		return NoColor, false
	}
	return b.turn, true
}

// Draw reports a fifty-move or stalemate draw.
func (b *Board) Draw() bool { return b.drawByFiftyMove || b.drawByStalemate }

// GameOver reports whether no further moves will be accepted.
func (b *Board) GameOver() bool { return b.checkmate || b.Draw() }

// KingSquare returns the square of c's king, or NoSquare if it has none.
func (b *Board) KingSquare(c Color) Square {
	for sq := Square(0); sq < 64; sq++ {
		if b.cells[sq].Piece.Is(c, PieceTypeKing) {
			return sq
		}
	}
	return NoSquare
}

// Pieces returns the squares occupied by c, in ascending order.
func (b *Board) Pieces(c Color) []Square {
	out := make([]Square, 0, 16)
	for sq := Square(0); sq < 64; sq++ {
		if p := b.cells[sq].Piece; !p.Empty() && p.Color == c {
			out = append(out, sq)
		}
	}
	return out
}

func (b *Board) setPiece(sq Square, p Piece) { b.cells[sq].Piece = p }

// clearSelection drops the active cell and every per-selection flag.
func (b *Board) clearSelection() {
	for sq := range b.cells {
		b.cells[sq].InRange = false
		b.cells[sq].Movable = false
	}
	b.active = NoSquare
	b.movePending = false
}

// Validate checks the board invariants and reports the first violation.
func (b *Board) Validate() error {
	var kings [2]int
	for sq := Square(0); sq < 64; sq++ {
		c := b.cells[sq]
		if c.Square != sq {
			return fmt.Errorf("%w: cell %d records square %d", ErrInvalidBoard, sq, c.Square)
		}
		if c.Piece.Type == PieceTypeKing && c.Piece.Color != NoColor {
			kings[c.Piece.Color]++
		}
		if c.Piece.Type == PieceTypePawn {
			if r := sq.Rank(); r == 0 && c.Piece.Color == White || r == 7 && c.Piece.Color == Black {
				return fmt.Errorf("%w: %s pawn on its own back rank at %s", ErrInvalidBoard, c.Piece.Color, sq)
			}
		}
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return fmt.Errorf("%w: expected one king per side, have white=%d black=%d", ErrInvalidBoard, kings[White], kings[Black])
	}

	movable := false
	for _, c := range b.cells {
		if c.Movable {
			movable = true
			break
		}
	}
	if movable != b.movePending {
		return fmt.Errorf("%w: move pending is %v but movable cells present is %v", ErrInvalidBoard, b.movePending, movable)
	}

	if b.promotionPending {
		p := b.PieceAt(b.promoting)
		if p.Type != PieceTypePawn || b.promoting.Rank() != lastRank(p.Color) {
			return fmt.Errorf("%w: promotion pending on %s which holds %s", ErrInvalidBoard, b.promoting, p)
		}
	} else if b.promoting != NoSquare {
		return fmt.Errorf("%w: promoting square %s set without a pending promotion", ErrInvalidBoard, b.promoting)
	}
	return nil
}

// lastRank is the rank on which c's pawns promote.
func lastRank(c Color) int {
	if c == White {
		return 7
	}
	return 0
}

// pawnStartRank is the rank from which c's pawns may advance two squares.
func pawnStartRank(c Color) int {
	if c == White {
		return 1
	}
	return 6
}

// pawnForward is the rank delta of a forward pawn step.
func pawnForward(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
