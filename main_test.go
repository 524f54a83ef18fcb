package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/fatih/color"

	"cellchess/engine"
	"cellchess/game"
	"cellchess/rules"
)

func runScript(t *testing.T, engineColor rules.Color, fen, script string) string {
	t.Helper()
	color.NoColor = true
	logger := &log.Logger{Handler: discard.New(), Level: log.ErrorLevel}
	cfg := engine.NewConfig(engine.WithDepth(2), engine.WithLogger(logger))
	session := game.New(game.WithEngineConfig(cfg), game.WithLogger(logger))
	if fen != "" {
		if err := session.LoadFEN(fen); err != nil {
			t.Fatalf("LoadFEN: %v", err)
		}
	}
	var out bytes.Buffer
	if err := newFrontEnd(session, engineColor, &out).run(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("run: %v", err)
	}
	return out.String()
}

func TestFrontEndTouchMove(t *testing.T) {
	out := runScript(t, rules.NoColor, "", "touch e2\ntouch e4\nfen\nmoves\nquit\n")
	for _, want := range []string{
		"selected",
		"moved",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"1. e4",
		"black to move",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "thinking") {
		t.Fatalf("engine must stay idle with no side assigned")
	}
}

func TestFrontEndEngineReplies(t *testing.T) {
	out := runScript(t, rules.Black, "", "move e2e4\nmoves\nquit\n")
	if !strings.Contains(out, "engine plays ") {
		t.Fatalf("engine did not reply:\n%s", out)
	}
	if !strings.Contains(out, "1. e4 ") {
		t.Fatalf("move list missing human move:\n%s", out)
	}
}

func TestFrontEndEngineMates(t *testing.T) {
	out := runScript(t, rules.White, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", "quit\n")
	for _, want := range []string{"engine plays Ra8#", "mate 1", "game over: 1-0 (checkmate)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFrontEndPromotion(t *testing.T) {
	out := runScript(t, rules.NoColor, "4k3/1P6/8/8/8/8/8/4K3 w - - 0 1",
		"promote q\ntouch b7\ntouch b8\nstatus\npromote n\nfen\nquit\n")
	for _, want := range []string{
		"no promotion pending",
		"promotion true",
		"1N2k3/8/8/8/8/8/8/4K3 b - - 0 1",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFrontEndErrors(t *testing.T) {
	out := runScript(t, rules.NoColor, "", "dance\nmove e2e5\ntouch\nposition nonsense\nhelp\nquit\nfen\n")
	for _, want := range []string{
		`unknown command "dance"`,
		"error: ",
		"usage: touch <square>",
		"commands:",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, rules.FENStartPos) != 0 {
		t.Fatalf("commands after quit must not run:\n%s", out)
	}
}

func TestFrontEndFinishedGame(t *testing.T) {
	out := runScript(t, rules.NoColor, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", "ai\nmove h8g8\nquit\n")
	if !strings.Contains(out, "stalemate") {
		t.Fatalf("stalemate not reported:\n%s", out)
	}
	if !strings.Contains(out, "the game is over") {
		t.Fatalf("play after the end must be refused:\n%s", out)
	}
}

func TestRenderBoardPlain(t *testing.T) {
	color.NoColor = true
	b, err := rules.ParseFEN(rules.FENStartPos)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	renderBoard(&out, b.View())
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 9 {
		t.Fatalf("got %d lines", len(lines))
	}
	if lines[0] != "8  r  n  b  q  k  b  n  r " || lines[4] != "4  .  .  .  .  .  .  .  . " {
		t.Fatalf("unexpected rows:\n%s", out.String())
	}
}
