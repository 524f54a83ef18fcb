package rules_test

import (
	"testing"

	"cellchess/rules"
)

func benchLegalMoves(b *testing.B, fen string) {
	board, err := rules.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = board.LegalMoves()
	}
}

func BenchmarkLegalMoves_Initial(b *testing.B) { benchLegalMoves(b, rules.FENStartPos) }

func BenchmarkLegalMoves_Kiwipete(b *testing.B) {
	benchLegalMoves(b, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
}

// ApplyMove carries the full analyzer pass, which dominates search cost.
func BenchmarkApplyMove_Kiwipete(b *testing.B) {
	board := rules.MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	moves := board.LegalMoves()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		child := *board
		child.ApplyMove(moves[i%len(moves)])
	}
}

func BenchmarkPerft3_Initial(b *testing.B) {
	board := rules.NewBoard()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = rules.Perft(board, 3)
	}
}
