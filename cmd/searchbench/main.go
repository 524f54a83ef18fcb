package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/apex/log"

	"cellchess/engine"
	"cellchess/internal/cliutil"
	"cellchess/rules"
)

func main() {
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", "", "FEN to search (empty = startpos)")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	logLevel := flag.String("log-level", cliutil.Getenv("CELLCHESS_LOG_LEVEL", "info"), "log level")
	engineConfig := cliutil.EngineFlags(flag.CommandLine)
	flag.Parse()

	if err := cliutil.SetupLogging(os.Stderr, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "log level: %v\n", err)
		os.Exit(2)
	}
	cfg, err := engineConfig()
	if err != nil {
		log.WithError(err).Fatal("engine config")
	}

	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.WithError(err).Fatal("could not create CPU profile")
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.WithError(err).Fatal("could not start CPU profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fen := rules.FENStartPos
	if *fenFlag != "" {
		fen = *fenFlag
	}
	board, err := rules.ParseFEN(fen)
	if err != nil {
		log.WithError(err).Fatal("parse FEN")
	}

	fmt.Printf("searchbench: fen=%q depth=%d repeat=%d\n", fen, cfg.Depth, *repeatFlag)

	var totalNodes uint64
	startAll := time.Now()
	for i := 0; i < *repeatFlag; i++ {
		// Fresh searcher, so the evaluation cache starts cold each run.
		res, err := engine.NewSearcher(cfg).Search(context.Background(), *board)
		if err != nil {
			log.WithError(err).Fatal("search")
		}
		totalNodes += res.Nodes
		fmt.Printf("iteration %d: bestmove %s  score=%s depth=%d nodes=%d time=%v\n",
			i+1, res.Move, engine.FormatScore(res.Score, res.MateIn), res.Depth, res.Nodes, res.Elapsed)
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total time: %v  nodes=%d  nps=%.0f\n", totalElapsed, totalNodes, float64(totalNodes)/totalElapsed.Seconds())

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.WithError(err).Fatal("could not create memory profile")
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.WithError(err).Fatal("could not write memory profile")
		}
	}
}
