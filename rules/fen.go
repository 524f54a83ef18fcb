package rules

import (
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN builds an analyzed board from a FEN string. The halfmove clock and
// fullmove number may be omitted, in which case they default to 0 and 1.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return nil, fmt.Errorf("%w: expected 6 fields, got %d", ErrInvalidFEN, len(fields))
	}

	b := emptyBoard()

	// 1. Piece placement
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: expected 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	var kings [2]int
	for i, rankStr := range ranks {
		if rankStr == "" {
			return nil, fmt.Errorf("%w: empty rank %d", ErrInvalidFEN, 8-i)
		}
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				if file > 8 {
					return nil, fmt.Errorf("%w: rank %d overflows", ErrInvalidFEN, rank+1)
				}
				continue
			}
			p, ok := pieceFromChar(ch)
			if !ok {
				return nil, fmt.Errorf("%w: unrecognized piece character %q", ErrInvalidFEN, ch)
			}
			if file >= 8 {
				return nil, fmt.Errorf("%w: rank %d overflows", ErrInvalidFEN, rank+1)
			}
			if p.Type == PieceTypePawn && (rank == 0 || rank == 7) {
				return nil, fmt.Errorf("%w: pawn on rank %d", ErrInvalidFEN, rank+1)
			}
			if p.Type == PieceTypeKing {
				kings[p.Color]++
			}
			b.setPiece(SquareAt(file, rank), p)
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, rank+1, file)
		}
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return nil, fmt.Errorf("%w: need exactly one king per side, have white=%d black=%d", ErrInvalidFEN, kings[White], kings[Black])
	}

	// 2. Side to move
	switch fields[1] {
	case "w":
		b.turn = White
	case "b":
		b.turn = Black
	default:
		return nil, fmt.Errorf("%w: side to move must be 'w' or 'b', got %q", ErrInvalidFEN, fields[1])
	}

	// 3. Castling rights
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			var flag CastlingRights
			switch ch {
			case 'K':
				flag = CastlingWhiteK
			case 'Q':
				flag = CastlingWhiteQ
			case 'k':
				flag = CastlingBlackK
			case 'q':
				flag = CastlingBlackQ
			default:
				return nil, fmt.Errorf("%w: invalid castling rights character %q", ErrInvalidFEN, ch)
			}
			if b.castlingRights&flag != 0 {
				return nil, fmt.Errorf("%w: repeated castling right %q", ErrInvalidFEN, ch)
			}
			b.castlingRights |= flag
		}
	}

	// 4. En passant target square
	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: en passant: %v", ErrInvalidFEN, err)
		}
		if sq.Rank() != enPassantRank(b.turn) {
			return nil, fmt.Errorf("%w: en passant square %s impossible with %s to move", ErrInvalidFEN, sq, b.turn)
		}
		b.enPassant = sq
	}

	// 5. Halfmove clock
	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: halfmove clock %q", ErrInvalidFEN, fields[4])
		}
		b.halfmoveClock = n
	}

	// 6. Fullmove number
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: fullmove number %q", ErrInvalidFEN, fields[5])
		}
		b.fullmoveNumber = n
	}

	b.analyze()
	return &b, nil
}

// MustParseFEN is ParseFEN for positions known to be valid. It panics on error.
func MustParseFEN(fen string) *Board {
	b, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return b
}

// enPassantRank is the rank of a capturable en-passant target when c is to move.
func enPassantRank(c Color) int {
	if c == White {
		return 5
	}
	return 2
}

// FEN produces the FEN string representation of the board's current state.
func (b *Board) FEN() string {
	var sb strings.Builder

	// 1. Piece placement
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.cells[SquareAt(file, rank)].Piece
			if p.Empty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(p.Char())
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')

	// 2. Side to move
	if b.turn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')

	// 3. Castling rights
	if b.castlingRights == 0 {
		sb.WriteByte('-')
	} else {
		for _, r := range []struct {
			flag CastlingRights
			ch   byte
		}{{CastlingWhiteK, 'K'}, {CastlingWhiteQ, 'Q'}, {CastlingBlackK, 'k'}, {CastlingBlackQ, 'q'}} {
			if b.castlingRights&r.flag != 0 {
				sb.WriteByte(r.ch)
			}
		}
	}
	sb.WriteByte(' ')

	// 4. En passant square
	sb.WriteString(b.enPassant.String())
	sb.WriteByte(' ')

	// 5. Halfmove clock
	sb.WriteString(strconv.Itoa(b.halfmoveClock))
	sb.WriteByte(' ')

	// 6. Fullmove number
	sb.WriteString(strconv.Itoa(b.fullmoveNumber))
	return sb.String()
}

func (b *Board) String() string { return b.FEN() }
