package engine

import (
	"math/bits"
	"testing"

	"cellchess/rules"
)

func TestEvaluateStartPositionIsBalanced(t *testing.T) {
	if got := Evaluate(rules.NewBoard(), DefaultWeights()); got != 0 {
		t.Fatalf("start position: got %d want 0", got)
	}
}

func TestEvaluateMirrorSymmetry(t *testing.T) {
	cases := []struct{ fen, mirrored string }{
		{
			"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
			"rnbqkb1r/pppp1ppp/5n2/4p3/4P3/2N5/PPPP1PPP/R1BQKBNR b KQkq - 2 3",
		},
		{
			"4k3/pp6/8/8/8/P7/P4PPP/4K2R w K - 0 1",
			"4k2r/p4ppp/p7/8/8/8/PP6/4K3 b k - 0 1",
		},
	}
	for _, c := range cases {
		a := Evaluate(rules.MustParseFEN(c.fen), DefaultWeights())
		b := Evaluate(rules.MustParseFEN(c.mirrored), DefaultWeights())
		if a != -b {
			t.Errorf("%s: %d vs mirrored %d", c.fen, a, b)
		}
	}
}

func TestEvaluateTerminalPositions(t *testing.T) {
	mated := rules.MustParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if got := Evaluate(mated, DefaultWeights()); got != -MateScore {
		t.Fatalf("white mated: got %d want %d", got, -MateScore)
	}
	stalemate := rules.MustParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if got := Evaluate(stalemate, DefaultWeights()); got != DrawScore {
		t.Fatalf("stalemate: got %d want %d", got, DrawScore)
	}
	fifty := rules.MustParseFEN("4k3/8/8/8/8/8/8/Q3K3 w - - 100 80")
	if got := Evaluate(fifty, DefaultWeights()); got != DrawScore {
		t.Fatalf("fifty-move draw: got %d want %d", got, DrawScore)
	}
}

func TestPawnStructureBitboards(t *testing.T) {
	b := rules.MustParseFEN("4k3/3p4/3p4/8/8/P7/P3P3/4K3 w - - 0 1")
	pb := getPawnBitboards(b)

	wDoubled, bDoubled := getDoubledPawnsBitboards(pb)
	if got := bits.OnesCount64(wDoubled); got != 1 {
		t.Errorf("white doubled: got %d want 1", got)
	}
	if got := bits.OnesCount64(bDoubled); got != 1 {
		t.Errorf("black doubled: got %d want 1", got)
	}

	wIsolated, bIsolated := getIsolatedPawnsBitboards(pb)
	if got := bits.OnesCount64(wIsolated); got != 3 {
		t.Errorf("white isolated: got %d want 3", got)
	}
	if got := bits.OnesCount64(bIsolated); got != 2 {
		t.Errorf("black isolated: got %d want 2", got)
	}

	// a2 is blocked by a3, e2 by nothing, d7 by d6.
	wBlocked, bBlocked := getBlockedPawnsBitboards(pb)
	if wBlocked != 1<<uint(rules.SquareAt(0, 1)) {
		t.Errorf("white blocked: got %#x", wBlocked)
	}
	if bBlocked != 1<<uint(rules.SquareAt(3, 6)) {
		t.Errorf("black blocked: got %#x", bBlocked)
	}
}

func TestEvaluateWithoutMobility(t *testing.T) {
	w := DefaultWeights()
	w.Mobility = 0
	b := rules.MustParseFEN("4k3/8/8/8/8/P7/P7/4K3 w - - 0 1")
	// Two pawns up, one doubled, one blocked, two isolated.
	want := 2*w.Pawn - w.DoubledPawn - w.BlockedPawn - 2*w.IsolatedPawn
	if got := Evaluate(b, w); got != want {
		t.Fatalf("got %d want %d", got, want)
	}
}

func TestMobilityFavoursActiveSide(t *testing.T) {
	b := rules.NewBoard()
	if w, bl := mobility(b, rules.White), mobility(b, rules.Black); w != 20 || bl != 20 {
		t.Fatalf("start mobility: white %d black %d", w, bl)
	}
	// Same material; white's queen is out.
	b = rules.MustParseFEN("rnbqkbnr/pppppppp/8/8/3Q4/8/PPPPPPPP/RNB1KBNR w KQkq - 0 1")
	if evaluateMobility(b, DefaultWeights()) <= 0 {
		t.Fatalf("centralised queen should add mobility")
	}
}
