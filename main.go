package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/fatih/color"

	"cellchess/engine"
	"cellchess/game"
	"cellchess/internal/cliutil"
	"cellchess/rules"
)

const helpText = `commands:
  touch <sq>        tap a cell (select, deselect or move)
  promote <q|r|b|n> finish a pending promotion
  move <uci>        play a coordinate move, e.g. e2e4 or e7e8q
  ai                let the engine play the side to move
  board             print the board
  moves             print the move list
  status            print check, mate and draw state
  eval              print the static evaluation
  fen               print the position as FEN
  position <fen>    load a position
  new               start a new game
  quit              leave`

func main() {
	engineSide := flag.String("engine", cliutil.Getenv("CELLCHESS_ENGINE", "black"), "side the engine plays: white, black or none")
	fen := flag.String("fen", cliutil.Getenv("CELLCHESS_FEN", ""), "starting position (empty = initial position)")
	noColor := flag.Bool("no-color", cliutil.GetenvBool("NO_COLOR", false), "disable coloured output")
	logLevel := flag.String("log-level", cliutil.Getenv("CELLCHESS_LOG_LEVEL", "warn"), "log level")
	engineConfig := cliutil.EngineFlags(flag.CommandLine)
	flag.Parse()

	if err := cliutil.SetupLogging(os.Stderr, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "log level: %v\n", err)
		os.Exit(2)
	}
	color.NoColor = color.NoColor || *noColor

	cfg, err := engineConfig()
	if err != nil {
		log.WithError(err).Fatal("engine config")
	}
	side, err := cliutil.ParseSide(*engineSide)
	if err != nil {
		log.WithError(err).Fatal("engine side")
	}

	fe := newFrontEnd(game.New(game.WithEngineConfig(cfg), game.WithLogger(log.Log)), side, os.Stdout)
	if *fen != "" {
		if err := fe.session.LoadFEN(*fen); err != nil {
			log.WithError(err).Fatal("load position")
		}
	}
	if err := fe.run(context.Background(), os.Stdin); err != nil {
		log.WithError(err).Fatal("input")
	}
}

// frontEnd is the line-oriented terminal interface over a game session.
type frontEnd struct {
	session     *game.Session
	engineColor rules.Color
	out         io.Writer
}

func newFrontEnd(s *game.Session, engineColor rules.Color, out io.Writer) *frontEnd {
	return &frontEnd{session: s, engineColor: engineColor, out: out}
}

func (f *frontEnd) run(ctx context.Context, in io.Reader) error {
	f.printBoard()
	f.engineTurn(ctx)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}
		if quit := f.handle(ctx, strings.ToLower(tokens[0]), tokens[1:]); quit {
			return nil
		}
	}
	return scanner.Err()
}

// handle runs one command and reports whether the loop should end.
func (f *frontEnd) handle(ctx context.Context, cmd string, args []string) bool {
	switch cmd {
	case "quit", "exit":
		return true
	case "help", "?":
		fmt.Fprintln(f.out, helpText)
	case "board":
		f.printBoard()
	case "fen":
		fmt.Fprintln(f.out, f.session.FEN())
	case "moves":
		fmt.Fprintln(f.out, f.session.MoveText())
	case "status":
		f.printStatus()
	case "eval":
		fmt.Fprintf(f.out, "eval %s\n", engine.FormatScore(f.session.Evaluate(), 0))
	case "new":
		f.report(f.session.Reset())
		f.printBoard()
		f.engineTurn(ctx)
	case "position":
		if err := f.session.LoadFEN(strings.Join(args, " ")); err != nil {
			f.report(err)
			return false
		}
		f.printBoard()
		f.engineTurn(ctx)
	case "touch", "t":
		f.touch(ctx, args)
	case "promote", "p":
		f.promote(ctx, args)
	case "move", "m":
		f.move(ctx, args)
	case "ai", "go":
		f.think(ctx)
	default:
		fmt.Fprintf(f.out, "unknown command %q, try help\n", cmd)
	}
	return false
}

func (f *frontEnd) touch(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(f.out, "usage: touch <square>")
		return
	}
	sq, err := rules.ParseSquare(args[0])
	if err != nil {
		f.report(err)
		return
	}
	res, err := f.session.Touch(sq)
	if err != nil {
		f.report(err)
		return
	}
	fmt.Fprintln(f.out, res)
	if res == rules.TouchIgnored {
		return
	}
	f.printBoard()
	if res == rules.TouchMoved {
		f.afterHumanMove(ctx)
	}
}

func (f *frontEnd) promote(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(f.out, "usage: promote <q|r|b|n>")
		return
	}
	pt, ok := map[string]rules.PieceType{
		"q": rules.PieceTypeQueen, "r": rules.PieceTypeRook,
		"b": rules.PieceTypeBishop, "n": rules.PieceTypeKnight,
	}[strings.ToLower(args[0])]
	if !ok {
		fmt.Fprintln(f.out, "usage: promote <q|r|b|n>")
		return
	}
	done, err := f.session.Promote(pt)
	if err != nil {
		f.report(err)
		return
	}
	if !done {
		fmt.Fprintln(f.out, "no promotion pending")
		return
	}
	f.printBoard()
	f.afterHumanMove(ctx)
}

func (f *frontEnd) move(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(f.out, "usage: move <uci>")
		return
	}
	m, err := rules.ParseMove(args[0])
	if err != nil {
		f.report(err)
		return
	}
	if err := f.session.Play(m); err != nil {
		f.report(err)
		return
	}
	f.printBoard()
	f.afterHumanMove(ctx)
}

func (f *frontEnd) afterHumanMove(ctx context.Context) {
	if f.announceEnd() {
		return
	}
	f.engineTurn(ctx)
}

// engineTurn lets the engine move when it owns the side to move.
func (f *frontEnd) engineTurn(ctx context.Context) {
	st := f.session.Status()
	if f.engineColor == rules.NoColor || st.Turn != f.engineColor || st.Over() || st.PromotionPending {
		return
	}
	f.think(ctx)
}

func (f *frontEnd) think(ctx context.Context) {
	if err := f.session.StartEngine(ctx); err != nil {
		f.report(err)
		return
	}
	fmt.Fprintln(f.out, "thinking...")
	res, err := f.session.AwaitEngine(ctx)
	if err != nil {
		f.report(err)
		return
	}
	moves := f.session.Moves()
	fmt.Fprintf(f.out, "engine plays %s (%s, depth %d)\n",
		moves[len(moves)-1].SAN, engine.FormatScore(res.Score, res.MateIn), res.Depth)
	f.printBoard()
	f.announceEnd()
}

func (f *frontEnd) announceEnd() bool {
	st := f.session.Status()
	if !st.Over() {
		return false
	}
	fmt.Fprintf(f.out, "game over: %s (%s)\n", st.Result(), st.Reason())
	return true
}

func (f *frontEnd) printBoard() {
	renderBoard(f.out, f.session.View())
	st := f.session.Status()
	line := st.Turn.String() + " to move"
	if reason := st.Reason(); reason != "" {
		line += ", " + reason
	}
	fmt.Fprintln(f.out, line)
}

func (f *frontEnd) printStatus() {
	st := f.session.Status()
	fmt.Fprintf(f.out, "turn %s check %v checkmate %v stalemate %v fifty-move %v promotion %v result %s\n",
		st.Turn, st.Check, st.Checkmate, st.Stalemate, st.FiftyMove, st.PromotionPending, st.Result())
}

func (f *frontEnd) report(err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, game.ErrGameOver):
		fmt.Fprintln(f.out, "the game is over; use new or position")
	default:
		fmt.Fprintf(f.out, "error: %v\n", err)
	}
}
