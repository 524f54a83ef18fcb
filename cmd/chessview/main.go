package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/apex/log"

	"cellchess/game"
	"cellchess/internal/cliutil"
)

func main() {
	addr := flag.String("addr", cliutil.Getenv("CELLCHESS_ADDR", "127.0.0.1:8080"), "listen address")
	engineSide := flag.String("engine", cliutil.Getenv("CELLCHESS_ENGINE", "black"), "side the engine plays: white, black or none")
	fen := flag.String("fen", cliutil.Getenv("CELLCHESS_FEN", ""), "starting position (empty = initial position)")
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
	side, err := cliutil.ParseSide(*engineSide)
	if err != nil {
		log.WithError(err).Fatal("engine side")
	}

	session := game.New(game.WithEngineConfig(cfg), game.WithLogger(log.Log))
	if *fen != "" {
		if err := session.LoadFEN(*fen); err != nil {
			log.WithError(err).Fatal("load position")
		}
	}

	app := NewApplication(session, side, log.Log, os.Stderr)
	app.maybeStartEngine()

	log.WithFields(log.Fields{"addr": *addr, "engine": *engineSide}).Info("serving renderer")
	if err := http.ListenAndServe(*addr, app); err != nil {
		log.WithError(err).Fatal("listen")
	}
}
