package rules

import (
	"fmt"
	"math/bits"
)

// Square is a board index 0-63, rank*8 + file, with a1 = 0 and h8 = 63.
type Square int8

const NoSquare Square = -1

// Named squares used by castling and tests.
const (
	A1 Square = 0
	B1 Square = 1
	C1 Square = 2
	D1 Square = 3
	E1 Square = 4
	F1 Square = 5
	G1 Square = 6
	H1 Square = 7
	A8 Square = 56
	B8 Square = 57
	C8 Square = 58
	D8 Square = 59
	E8 Square = 60
	F8 Square = 61
	G8 Square = 62
	H8 Square = 63
)

// SquareAt returns the square on the given file and rank (both 0-7).
func SquareAt(file, rank int) Square { return Square(rank*8 + file) }

// SquareFromCoords is SquareAt with bounds checking.
func SquareFromCoords(file, rank int) (Square, bool) {
	if !validCoords(file, rank) {
		return NoSquare, false
	}
	return SquareAt(file, rank), true
}

func validCoords(file, rank int) bool {
	return 0 <= file && file < 8 && 0 <= rank && rank < 8
}

// Valid reports whether sq lies on the board.
func (sq Square) Valid() bool { return sq >= 0 && sq < 64 }

// File returns the file index, 0 for the a-file.
func (sq Square) File() int { return int(sq) % 8 }

// Rank returns the rank index, 0 for the first rank.
func (sq Square) Rank() int { return int(sq) / 8 }

func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// MarshalText encodes the square in algebraic form, "-" for NoSquare.
func (sq Square) MarshalText() ([]byte, error) { return []byte(sq.String()), nil }

// ParseSquare converts algebraic coordinates like "e4" into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	file := s[0]
	rank := s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return SquareAt(int(file-'a'), int(rank-'1')), nil
}

// SquareSet is a bitboard of squares.
type SquareSet uint64

func bb(sq Square) SquareSet { return 1 << uint64(sq) }

// Has reports whether sq is in the set.
func (s SquareSet) Has(sq Square) bool { return sq.Valid() && s&bb(sq) != 0 }

// With returns the set plus sq.
func (s SquareSet) With(sq Square) SquareSet { return s | bb(sq) }

// Count returns the number of squares in the set.
func (s SquareSet) Count() int { return bits.OnesCount64(uint64(s)) }

// lowest returns the least significant member of a non-empty set.
func lowest(s SquareSet) Square { return Square(bits.TrailingZeros64(uint64(s))) }

// Squares lists the set's members in ascending order.
func (s SquareSet) Squares() []Square {
	out := make([]Square, 0, s.Count())
	for m := uint64(s); m != 0; m &= m - 1 {
		out = append(out, Square(bits.TrailingZeros64(m)))
	}
	return out
}
