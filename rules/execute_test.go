package rules_test

import (
	"testing"

	"cellchess/rules"
)

func TestEnPassantCapture(t *testing.T) {
	b := rules.NewBoard()
	play(t, b, "e2e4", "a7a6", "e4e5", "d7d5")
	if got := b.EnPassantSquare(); got != mustSquare(t, "d6") {
		t.Fatalf("en passant target: got %s want d6", got)
	}
	if b.Touch(mustSquare(t, "e5")) != rules.TouchSelected {
		t.Fatalf("expected e5 to be selected")
	}
	if !b.Cell(mustSquare(t, "d6")).Movable {
		t.Fatalf("en passant destination d6 should be movable")
	}
	if b.Touch(mustSquare(t, "d6")) != rules.TouchMoved {
		t.Fatalf("expected en passant capture to be played")
	}
	if !b.PieceAt(mustSquare(t, "d5")).Empty() {
		t.Fatalf("captured pawn on d5 should be removed")
	}
	if got := b.PieceAt(mustSquare(t, "d6")); !got.Is(rules.White, rules.PieceTypePawn) {
		t.Fatalf("d6 holds %s, want white pawn", got)
	}
	if b.HalfmoveClock() != 0 || b.EnPassantSquare() != rules.NoSquare {
		t.Fatalf("after en passant: halfmove=%d ep=%s", b.HalfmoveClock(), b.EnPassantSquare())
	}
}

func TestEnPassantExpiresAfterOneMove(t *testing.T) {
	b := rules.NewBoard()
	play(t, b, "e2e4", "a7a6", "e4e5", "d7d5", "g1f3", "a6a5")
	m, _ := rules.ParseMove("e5d6")
	if b.ApplyMove(m) {
		t.Fatalf("en passant must only be available immediately")
	}
}

func TestCastlingRelocatesRook(t *testing.T) {
	b := rules.MustParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	play(t, b, "e1g1", "e8c8")
	checks := map[string]rules.Piece{
		"g1": rules.NewPiece(rules.White, rules.PieceTypeKing),
		"f1": rules.NewPiece(rules.White, rules.PieceTypeRook),
		"h1": rules.NoPiece,
		"c8": rules.NewPiece(rules.Black, rules.PieceTypeKing),
		"d8": rules.NewPiece(rules.Black, rules.PieceTypeRook),
		"a8": rules.NoPiece,
	}
	for s, want := range checks {
		if got := b.PieceAt(mustSquare(t, s)); got != want {
			t.Fatalf("%s: got %s want %s", s, got, want)
		}
	}
	if b.CastlingRights() != 0 {
		t.Fatalf("castling rights should be gone, have %v", b.CastlingRights())
	}
	if got := b.FEN(); got != "2kr3r/8/8/8/8/8/8/R4RK1 w - - 2 2" {
		t.Fatalf("fen after castling: %s", got)
	}
}

func TestCastlingRightsNeverRestored(t *testing.T) {
	b := rules.MustParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	play(t, b, "h1h2", "h8h7", "h2h1", "h7h8")
	if b.CanCastle(rules.White, rules.KingSide) || b.CanCastle(rules.Black, rules.KingSide) {
		t.Fatalf("king-side rights must stay lost after the rook returns")
	}
	if !b.CanCastle(rules.White, rules.QueenSide) || !b.CanCastle(rules.Black, rules.QueenSide) {
		t.Fatalf("queen-side rights must be untouched")
	}
	play(t, b, "e1d1", "e8d8", "d1e1", "d8e8")
	if b.CastlingRights() != 0 {
		t.Fatalf("a king move clears both rights, have %v", b.CastlingRights())
	}
}

func TestCapturingHomeRookClearsRight(t *testing.T) {
	b := rules.MustParseFEN("r3k2r/8/8/8/8/8/6B1/R3K2R w KQkq - 0 1")
	play(t, b, "g2a8")
	if b.CanCastle(rules.Black, rules.QueenSide) {
		t.Fatalf("black lost the a8 rook; queen-side right must be cleared")
	}
	if !b.CanCastle(rules.Black, rules.KingSide) {
		t.Fatalf("black king-side right should remain")
	}
}

func TestCountersAndTurn(t *testing.T) {
	b := rules.NewBoard()
	play(t, b, "g1f3")
	if b.Turn() != rules.Black || b.HalfmoveClock() != 1 || b.FullmoveNumber() != 1 {
		t.Fatalf("after Nf3: turn=%s half=%d full=%d", b.Turn(), b.HalfmoveClock(), b.FullmoveNumber())
	}
	play(t, b, "g8f6")
	if b.Turn() != rules.White || b.HalfmoveClock() != 2 || b.FullmoveNumber() != 2 {
		t.Fatalf("after Nf6: turn=%s half=%d full=%d", b.Turn(), b.HalfmoveClock(), b.FullmoveNumber())
	}
	play(t, b, "e2e4")
	if b.HalfmoveClock() != 0 || b.EnPassantSquare() != mustSquare(t, "e3") {
		t.Fatalf("pawn move: half=%d ep=%s", b.HalfmoveClock(), b.EnPassantSquare())
	}
	if b.MoveCount() != 3 {
		t.Fatalf("move count: got %d want 3", b.MoveCount())
	}
	if from, to := b.LastMove(); from != mustSquare(t, "e2") || to != mustSquare(t, "e4") {
		t.Fatalf("last move: %s%s", from, to)
	}
}

func TestFiftyMoveDraw(t *testing.T) {
	b := rules.NewBoard()
	cycle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	for i := 0; i < 25; i++ {
		if b.DrawByFiftyMove() {
			t.Fatalf("draw declared early at halfmove %d", b.HalfmoveClock())
		}
		play(t, b, cycle...)
	}
	if b.HalfmoveClock() != 100 {
		t.Fatalf("halfmove clock: got %d want 100", b.HalfmoveClock())
	}
	if !b.DrawByFiftyMove() || !b.GameOver() {
		t.Fatalf("expected fifty-move draw")
	}
	if len(b.LegalMoves()) != 0 {
		t.Fatalf("no moves after a draw")
	}
}

func TestFiftyMoveClockCountsHalfmoves(t *testing.T) {
	b := rules.MustParseFEN("4k3/8/8/8/8/8/8/4K2R w - - 49 30")
	play(t, b, "h1h2")
	if b.HalfmoveClock() != 50 || b.DrawByFiftyMove() || b.GameOver() {
		t.Fatalf("50 halfmoves (%d) must not draw", b.HalfmoveClock())
	}
}

func TestFiftyMoveDrawFromFEN(t *testing.T) {
	b := rules.MustParseFEN("4k3/8/8/8/8/8/8/4K2R w - - 99 80")
	if b.DrawByFiftyMove() {
		t.Fatalf("99 halfmoves is not yet a draw")
	}
	play(t, b, "h1h2")
	if !b.DrawByFiftyMove() {
		t.Fatalf("100th quiet halfmove should draw")
	}
}

func TestPromotionIsDeferred(t *testing.T) {
	b := rules.MustParseFEN("7k/P7/8/8/8/8/8/K7 w - - 0 1")
	b.Touch(mustSquare(t, "a7"))
	if b.Touch(mustSquare(t, "a8")) != rules.TouchMoved {
		t.Fatalf("a7a8 should be played")
	}
	if !b.PromotionPending() || b.PromotingSquare() != mustSquare(t, "a8") {
		t.Fatalf("promotion should be pending on a8")
	}
	if b.KingChecked() {
		t.Fatalf("analysis must wait for the promotion choice")
	}
	if b.Touch(mustSquare(t, "h8")) != rules.TouchIgnored {
		t.Fatalf("touch during promotion must be ignored")
	}
	if len(b.LegalMoves()) != 0 {
		t.Fatalf("no moves while a promotion is pending")
	}
	if b.Promote(rules.PieceTypeKing) || b.Promote(rules.PieceTypePawn) {
		t.Fatalf("only queen, rook, knight and bishop are valid choices")
	}
	if !b.Promote(rules.PieceTypeQueen) {
		t.Fatalf("queen promotion rejected")
	}
	if got := b.PieceAt(mustSquare(t, "a8")); !got.Is(rules.White, rules.PieceTypeQueen) {
		t.Fatalf("a8 holds %s", got)
	}
	if !b.KingChecked() || b.CheckedKing() != mustSquare(t, "h8") {
		t.Fatalf("new queen should check the black king")
	}
	if b.Promote(rules.PieceTypeQueen) {
		t.Fatalf("second promotion must be a no-op")
	}
}

func TestApplyMovePromotionChoice(t *testing.T) {
	b := rules.MustParseFEN("7k/P7/8/8/8/8/8/K7 w - - 0 1")
	before := b.FEN()
	for _, s := range []string{"a7a8", "a7a8k"} {
		m, err := rules.ParseMove(s)
		if err == nil && b.ApplyMove(m) {
			t.Fatalf("%s must be rejected", s)
		}
	}
	if b.FEN() != before {
		t.Fatalf("rejected moves mutated the board")
	}
	play(t, b, "a7a8n")
	if got := b.PieceAt(mustSquare(t, "a8")); !got.Is(rules.White, rules.PieceTypeKnight) {
		t.Fatalf("a8 holds %s", got)
	}
}

func TestApplyMoveFromEmptySquareRejected(t *testing.T) {
	b := rules.NewBoard()
	if b.ApplyMove(rules.Move{From: mustSquare(t, "e4"), To: mustSquare(t, "e5")}) {
		t.Fatalf("moving from an empty square must be rejected")
	}
}
