package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/apex/log"

	"cellchess/internal/cliutil"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

// step is one go invocation; required steps abort the run on failure.
type step struct {
	title    string
	args     []string
	required bool
}

var steps = []step{
	{"Benchmarks: rules (BENCHMARK  N  ns/op  B/op  allocs/op)", []string{"test", "./rules", "-run", "^$", "-bench", ".", "-benchmem"}, true},
	{"Benchmarks: engine", []string{"test", "./engine", "-run", "^$", "-bench", ".", "-benchmem"}, true},
	{"Perft: initial depth 4", []string{"run", "./cmd/perft", "-depth", "4", "-label", "Initial"}, false},
	{"Perft: initial depth 5", []string{"run", "./cmd/perft", "-depth", "5", "-label", "Initial"}, false},
	{"Perft: kiwipete depth 3", []string{"run", "./cmd/perft", "-fen", kiwipete, "-depth", "3", "-label", "Kiwipete"}, false},
	{"Search: initial depth 4", []string{"run", "./cmd/searchbench", "-depth", "4", "-log-level", "warn"}, false},
}

func main() {
	// Usage: go run ./cmd/benchrun
	if err := cliutil.SetupLogging(os.Stderr, cliutil.Getenv("CELLCHESS_LOG_LEVEL", "info")); err != nil {
		fmt.Fprintf(os.Stderr, "log level: %v\n", err)
		os.Exit(2)
	}
	for _, s := range steps {
		fmt.Printf("\n== %s\n", s.title)
		cmd := exec.Command("go", s.args...)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		err := cmd.Run()
		if err == nil {
			continue
		}
		ctx := log.WithError(err).WithField("step", s.title)
		if !s.required {
			ctx.Warn("step failed")
			continue
		}
		code := 1
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			code = ee.ExitCode()
		}
		ctx.Error("required step failed")
		os.Exit(code)
	}
}
