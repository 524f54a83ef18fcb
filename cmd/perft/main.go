package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/slices"

	"cellchess/internal/cliutil"
	"cellchess/rules"
)

func main() {
	fen := flag.String("fen", rules.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	verify := flag.Bool("verify", false, "Cross-check the divide counts against dragontoothmg")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	logLevel := flag.String("log-level", cliutil.Getenv("CELLCHESS_LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	flag.Parse()

	if err := cliutil.SetupLogging(os.Stderr, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "log level: %v\n", err)
		os.Exit(2)
	}

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	board, err := rules.ParseFEN(*fen)
	if err != nil {
		log.WithError(err).Fatal("parse FEN")
	}

	if *divide || *verify {
		div := rules.Divide(board, *depth)
		if *verify {
			if bad := verifyDivide(*fen, *depth, div); bad > 0 {
				log.WithField("mismatches", bad).Error("divide differs from dragontoothmg")
				os.Exit(1)
			}
			log.WithField("moves", len(div)).Info("divide matches dragontoothmg")
		}
		if *divide {
			printDivide(div)
		}
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			log.WithError(err).Fatal("create cpu profile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.WithError(err).Fatal("start cpu profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += rules.Perft(board, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)
}

func printDivide(div map[string]uint64) {
	moves := make([]string, 0, len(div))
	var sum uint64
	for m, n := range div {
		moves = append(moves, m)
		sum += n
	}
	slices.Sort(moves)
	for _, m := range moves {
		fmt.Printf("%s: %d\n", m, div[m])
	}
	fmt.Printf("Total: %d\n", sum)
}

// verifyDivide compares div with an independent generator and logs every
// differing root move. It returns the number of mismatches.
func verifyDivide(fen string, depth int, div map[string]uint64) int {
	oracle := dragontoothmg.ParseFen(fen)
	want := map[string]uint64{}
	for _, m := range oracle.GenerateLegalMoves() {
		undo := oracle.Apply(m)
		want[strings.ToLower(m.String())] = oraclePerft(&oracle, depth-1)
		undo()
	}

	bad := 0
	for m, n := range want {
		if got, ok := div[m]; !ok || got != n {
			log.WithFields(log.Fields{"move": m, "got": got, "want": n}).Warn("divide mismatch")
			bad++
		}
	}
	for m, n := range div {
		if _, ok := want[m]; !ok {
			log.WithFields(log.Fields{"move": m, "got": n}).Warn("extra root move")
			bad++
		}
	}
	return bad
}

func oraclePerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		undo := b.Apply(m)
		nodes += oraclePerft(b, depth-1)
		undo()
	}
	return nodes
}
