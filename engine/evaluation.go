package engine

import (
	"math/bits"

	"cellchess/rules"
)

const (
	// MateScore is the static value of a checkmate. Search adds the
	// remaining depth so that shorter mates score higher.
	MateScore int32 = 1_000_000
	DrawScore int32 = 0

	infinity int32 = 2 * MateScore
)

func (w Weights) pieceValue(pt rules.PieceType) int32 {
	switch pt {
	case rules.PieceTypePawn:
		return w.Pawn
	case rules.PieceTypeKnight:
		return w.Knight
	case rules.PieceTypeBishop:
		return w.Bishop
	case rules.PieceTypeRook:
		return w.Rook
	case rules.PieceTypeQueen:
		return w.Queen
	case rules.PieceTypeKing:
		return w.King
	}
	return 0
}

// Evaluate scores b from white's point of view: +MateScore when black is
// checkmated, -MateScore when white is, DrawScore for a drawn position, and
// otherwise material, pawn structure and mobility.
func Evaluate(b *rules.Board, w Weights) int32 {
	if loser, ok := b.Checkmated(); ok {
		if loser == rules.White {
			return -MateScore
		}
		return MateScore
	}
	if b.Draw() {
		return DrawScore
	}
	return evaluateMaterial(b, w) + evaluatePawnStructure(b, w) + evaluateMobility(b, w)
}

func evaluateMaterial(b *rules.Board, w Weights) (score int32) {
	for sq := rules.Square(0); sq < 64; sq++ {
		p := b.PieceAt(sq)
		if p.Empty() {
			continue
		}
		if p.Color == rules.White {
			score += w.pieceValue(p.Type)
		} else {
			score -= w.pieceValue(p.Type)
		}
	}
	return score
}

func evaluatePawnStructure(b *rules.Board, w Weights) int32 {
	pb := getPawnBitboards(b)
	wBlocked, bBlocked := getBlockedPawnsBitboards(pb)
	wDoubled, bDoubled := getDoubledPawnsBitboards(pb)
	wIsolated, bIsolated := getIsolatedPawnsBitboards(pb)

	blocked := int32(bits.OnesCount64(wBlocked) - bits.OnesCount64(bBlocked))
	doubled := int32(bits.OnesCount64(wDoubled) - bits.OnesCount64(bDoubled))
	isolated := int32(bits.OnesCount64(wIsolated) - bits.OnesCount64(bIsolated))

	return -(w.BlockedPawn*blocked + w.DoubledPawn*doubled + w.IsolatedPawn*isolated)
}

func evaluateMobility(b *rules.Board, w Weights) int32 {
	if w.Mobility == 0 {
		return 0
	}
	return w.Mobility * (mobility(b, rules.White) - mobility(b, rules.Black))
}
