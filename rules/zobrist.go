package rules

import "math/rand"

// Zobrist hashing tables for pieces, castling, en passant, and side to move.
var zobristPiece [2][7][64]uint64 // indexed by color, piece type, square
var zobristCastle [16]uint64      // one key per castling rights state
var zobristEnPassant [8]uint64    // one key per en passant file
var zobristSide uint64            // XORed in when Black is to move

func init() {
	// Fixed seed so hashes are stable across runs.
	rnd := rand.New(rand.NewSource(0xC0DE))
	for c := 0; c < 2; c++ {
		for pt := 1; pt < 7; pt++ {
			for sq := 0; sq < 64; sq++ {
				zobristPiece[c][pt][sq] = rnd.Uint64()
			}
		}
	}
	for cr := range zobristCastle {
		zobristCastle[cr] = rnd.Uint64()
	}
	for f := range zobristEnPassant {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
}

// Hash returns the Zobrist key of the position: placement, side to move,
// castling rights and en passant file. Transient analyzer state is ignored.
func (b *Board) Hash() uint64 {
	var key uint64
	for sq := Square(0); sq < 64; sq++ {
		p := b.cells[sq].Piece
		if !p.Empty() {
			key ^= zobristPiece[p.Color][p.Type][sq]
		}
	}
	if b.turn == Black {
		key ^= zobristSide
	}
	key ^= zobristCastle[b.castlingRights&0xF]
	if b.enPassant != NoSquare {
		key ^= zobristEnPassant[b.enPassant.File()]
	}
	return key
}
