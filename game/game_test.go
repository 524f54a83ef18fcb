package game_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"

	"cellchess/engine"
	"cellchess/game"
	"cellchess/rules"
)

func newSession(t *testing.T, depth int) (*game.Session, *memory.Handler) {
	t.Helper()
	h := memory.New()
	logger := &log.Logger{Handler: h, Level: log.DebugLevel}
	cfg := engine.NewConfig(engine.WithDepth(depth), engine.WithLogger(logger))
	return game.New(game.WithEngineConfig(cfg), game.WithLogger(logger)), h
}

func sq(t *testing.T, s string) rules.Square {
	t.Helper()
	v, err := rules.ParseSquare(s)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", s, err)
	}
	return v
}

func touch(t *testing.T, s *game.Session, squares ...string) rules.TouchResult {
	t.Helper()
	var res rules.TouchResult
	for _, name := range squares {
		var err error
		if res, err = s.Touch(sq(t, name)); err != nil {
			t.Fatalf("touch %s: %v", name, err)
		}
	}
	return res
}

func await(t *testing.T, s *game.Session) engine.Result {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	res, err := s.AwaitEngine(ctx)
	if err != nil {
		t.Fatalf("AwaitEngine: %v", err)
	}
	return res
}

func TestTouchRecordsSAN(t *testing.T) {
	s, _ := newSession(t, 1)
	if res := touch(t, s, "g1", "f3"); res != rules.TouchMoved {
		t.Fatalf("touch result: %s", res)
	}
	touch(t, s, "e7", "e5")
	moves := s.Moves()
	if len(moves) != 2 {
		t.Fatalf("recorded %d moves", len(moves))
	}
	if moves[0].SAN != "Nf3" || moves[0].UCI != "g1f3" || moves[0].Color != "white" {
		t.Fatalf("first record: %+v", moves[0])
	}
	if got := s.MoveText(); got != "1. Nf3 e5" {
		t.Fatalf("movetext: %q", got)
	}
}

func TestEngineRepliesThroughExecutor(t *testing.T) {
	s, h := newSession(t, 2)
	if err := s.LoadFEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1"); err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	if err := s.StartEngine(context.Background()); err != nil {
		t.Fatalf("StartEngine: %v", err)
	}
	if !s.Thinking() {
		t.Fatalf("session should be thinking")
	}
	res := await(t, s)
	if res.Move.String() != "a1a8" {
		t.Fatalf("engine move: %s", res.Move)
	}
	if s.Thinking() {
		t.Fatalf("thinking flag not cleared")
	}
	st := s.Status()
	if !st.Checkmate || st.Winner != rules.White || st.Result() != "1-0" {
		t.Fatalf("status: %+v", st)
	}
	moves := s.Moves()
	if len(moves) != 1 || moves[0].SAN != "Ra8#" || !moves[0].Engine {
		t.Fatalf("record: %+v", moves)
	}
	var sawGameOver bool
	for _, e := range h.Entries {
		sawGameOver = sawGameOver || e.Message == "game over"
	}
	if !sawGameOver {
		t.Fatalf("game over not logged")
	}
}

func TestInputRejectedWhileThinking(t *testing.T) {
	s, _ := newSession(t, 3)
	if err := s.StartEngine(context.Background()); err != nil {
		t.Fatalf("StartEngine: %v", err)
	}
	before := s.FEN()

	if _, err := s.Touch(sq(t, "e2")); !errors.Is(err, game.ErrThinking) {
		t.Fatalf("Touch: got %v want ErrThinking", err)
	}
	if _, err := s.Promote(rules.PieceTypeQueen); !errors.Is(err, game.ErrThinking) {
		t.Fatalf("Promote: got %v want ErrThinking", err)
	}
	m, _ := rules.ParseMove("e2e4")
	if err := s.Play(m); !errors.Is(err, game.ErrThinking) {
		t.Fatalf("Play: got %v want ErrThinking", err)
	}
	if err := s.StartEngine(context.Background()); !errors.Is(err, game.ErrThinking) {
		t.Fatalf("StartEngine twice: got %v want ErrThinking", err)
	}
	if err := s.Reset(); !errors.Is(err, game.ErrThinking) {
		t.Fatalf("Reset: got %v want ErrThinking", err)
	}
	if s.FEN() != before {
		t.Fatalf("live board changed while thinking")
	}

	s.StopEngine()
	res := await(t, s)
	if res.Depth < 1 {
		t.Fatalf("stopped search kept no iteration: %+v", res)
	}
	if _, err := s.AwaitEngine(context.Background()); !errors.Is(err, game.ErrNotThinking) {
		t.Fatalf("second AwaitEngine: got %v want ErrNotThinking", err)
	}
	if b := s.Board(); b.Turn() != rules.Black {
		t.Fatalf("engine move not applied")
	}
}

func TestPollEngine(t *testing.T) {
	s, _ := newSession(t, 1)
	if _, _, err := s.PollEngine(); !errors.Is(err, game.ErrNotThinking) {
		t.Fatalf("PollEngine idle: got %v", err)
	}
	if err := s.StartEngine(context.Background()); err != nil {
		t.Fatalf("StartEngine: %v", err)
	}
	deadline := time.Now().Add(30 * time.Second)
	for {
		res, ready, err := s.PollEngine()
		if err != nil {
			t.Fatalf("PollEngine: %v", err)
		}
		if ready {
			if res.Move.IsNull() {
				t.Fatalf("null engine move")
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("engine never finished")
		}
		time.Sleep(time.Millisecond)
	}
	if len(s.Moves()) != 1 {
		t.Fatalf("engine move not recorded")
	}
}

func TestStartEngineOnFinishedGame(t *testing.T) {
	s, _ := newSession(t, 1)
	if err := s.LoadFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"); err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	if err := s.StartEngine(context.Background()); !errors.Is(err, game.ErrGameOver) {
		t.Fatalf("got %v want ErrGameOver", err)
	}
	st := s.Status()
	if !st.Stalemate || st.Result() != "1/2-1/2" || st.Reason() != "stalemate" {
		t.Fatalf("status: %+v", st)
	}
	m, _ := rules.ParseMove("h8h7")
	if err := s.Play(m); !errors.Is(err, game.ErrGameOver) {
		t.Fatalf("Play: got %v want ErrGameOver", err)
	}
}

func TestPromotionByTouch(t *testing.T) {
	s, _ := newSession(t, 1)
	if err := s.LoadFEN("4k3/1P6/8/8/8/8/8/4K3 w - - 0 1"); err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	touch(t, s, "b7", "b8")
	if !s.Status().PromotionPending {
		t.Fatalf("promotion should be pending")
	}
	if err := s.StartEngine(context.Background()); !errors.Is(err, game.ErrNoLegalMove) {
		t.Fatalf("StartEngine during promotion: got %v", err)
	}
	if ok, _ := s.Promote(rules.PieceTypeKing); ok {
		t.Fatalf("king is not a promotion choice")
	}
	if ok, err := s.Promote(rules.PieceTypeKnight); !ok || err != nil {
		t.Fatalf("Promote: %v %v", ok, err)
	}
	moves := s.Moves()
	if len(moves) != 1 || moves[0].SAN != "b8=N" || moves[0].UCI != "b7b8n" {
		t.Fatalf("record: %+v", moves)
	}
}

func TestPlayRejectsIllegalMove(t *testing.T) {
	s, _ := newSession(t, 1)
	m, _ := rules.ParseMove("e2e5")
	if err := s.Play(m); !errors.Is(err, rules.ErrInvalidMove) {
		t.Fatalf("got %v want ErrInvalidMove", err)
	}
	if len(s.Moves()) != 0 {
		t.Fatalf("illegal move recorded")
	}
}

func TestLoadFENAndReset(t *testing.T) {
	s, _ := newSession(t, 1)
	if err := s.LoadFEN("not a fen"); !errors.Is(err, rules.ErrInvalidFEN) {
		t.Fatalf("got %v want ErrInvalidFEN", err)
	}
	fen := "4k3/8/8/8/8/8/4P3/4K3 b - - 0 12"
	if err := s.LoadFEN(fen); err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	m, _ := rules.ParseMove("e8d7")
	if err := s.Play(m); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if s.StartFEN() != fen {
		t.Fatalf("start fen: %s", s.StartFEN())
	}
	if got := s.MoveText(); got != "12... Kd7" {
		t.Fatalf("movetext: %q", got)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if s.FEN() != rules.FENStartPos || len(s.Moves()) != 0 {
		t.Fatalf("reset left %s with %d moves", s.FEN(), len(s.Moves()))
	}
}
