package engine

import (
	"math/bits"

	"cellchess/rules"
)

// adjacentFilesTable[f] covers the files either side of f.
var adjacentFilesTable = [8]uint64{
	0x0202020202020202, 0x0505050505050505, 0x0a0a0a0a0a0a0a0a, 0x1414141414141414,
	0x2828282828282828, 0x5050505050505050, 0xa0a0a0a0a0a0a0a0, 0x4040404040404040,
}

// pawnBitboards holds the pawn placement and total occupancy of a board.
type pawnBitboards struct {
	pawns    [2]uint64
	occupied uint64
}

func getPawnBitboards(b *rules.Board) (pb pawnBitboards) {
	for sq := rules.Square(0); sq < 64; sq++ {
		p := b.PieceAt(sq)
		if p.Empty() {
			continue
		}
		bit := uint64(1) << uint(sq)
		pb.occupied |= bit
		if p.Type == rules.PieceTypePawn {
			pb.pawns[p.Color] |= bit
		}
	}
	return pb
}

// getIsolatedPawnsBitboards: a pawn is isolated if no friendly pawns exist on adjacent files.
func getIsolatedPawnsBitboards(pb pawnBitboards) (wIsolated uint64, bIsolated uint64) {
	isolated := func(pawns uint64) (out uint64) {
		for x := pawns; x != 0; x &= x - 1 {
			idx := bits.TrailingZeros64(x)
			if adjacentFilesTable[idx%8]&pawns == 0 {
				out |= 1 << uint(idx)
			}
		}
		return out
	}
	return isolated(pb.pawns[rules.White]), isolated(pb.pawns[rules.Black])
}

// getDoubledPawnsBitboards marks every pawn with a friendly pawn behind it on
// the same file, so a file holding n pawns contributes n-1.
func getDoubledPawnsBitboards(pb pawnBitboards) (wDoubled uint64, bDoubled uint64) {
	wDoubled = pb.pawns[rules.White] & calculatePawnNorthFill(pb.pawns[rules.White])
	bDoubled = pb.pawns[rules.Black] & calculatePawnSouthFill(pb.pawns[rules.Black])
	return wDoubled, bDoubled
}

// getBlockedPawnsBitboards marks pawns whose push square is occupied by any piece.
func getBlockedPawnsBitboards(pb pawnBitboards) (wBlocked uint64, bBlocked uint64) {
	wBlocked = pb.pawns[rules.White] & (pb.occupied >> 8)
	bBlocked = pb.pawns[rules.Black] & (pb.occupied << 8)
	return wBlocked, bBlocked
}

func calculatePawnNorthFill(pawnBitboard uint64) uint64 {
	pawnBitboard = (pawnBitboard << 8)
	pawnBitboard |= (pawnBitboard << 8)
	pawnBitboard |= (pawnBitboard << 16)
	pawnBitboard |= (pawnBitboard << 32)
	return pawnBitboard
}

func calculatePawnSouthFill(pawnBitboard uint64) uint64 {
	pawnBitboard = (pawnBitboard >> 8)
	pawnBitboard |= (pawnBitboard >> 8)
	pawnBitboard |= (pawnBitboard >> 16)
	pawnBitboard |= (pawnBitboard >> 32)
	return pawnBitboard
}

// mobility counts pseudo-legal destinations for every piece of color c.
func mobility(b *rules.Board, c rules.Color) int32 {
	var n int
	for _, sq := range b.Pieces(c) {
		n += b.Destinations(sq, rules.PseudoLegal).Count()
	}
	return int32(n)
}
