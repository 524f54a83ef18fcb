// Package cliutil holds the flag, environment and logging setup shared by
// the command line front ends.
package cliutil

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"

	"cellchess/engine"
	"cellchess/rules"
)

// EngineFlags registers the engine flags on fs, each with a CELLCHESS_*
// environment fallback. The returned func builds the Config after fs.Parse.
// Values layer as defaults, then the -engine-config file, then the
// environment, then flags set on the command line.
func EngineFlags(fs *flag.FlagSet) func() (engine.Config, error) {
	def := engine.DefaultConfig()
	path := fs.String("engine-config", Getenv("CELLCHESS_ENGINE_CONFIG", ""), "JSON engine config file")
	depth := fs.Int("depth", GetenvInt("CELLCHESS_DEPTH", def.Depth), "search depth in plies")
	movetime := fs.Duration("movetime", GetenvDuration("CELLCHESS_MOVETIME", def.MoveTime), "search time limit per move (0 = none)")
	stats := fs.Bool("search-stats", GetenvBool("CELLCHESS_SEARCH_STATS", def.LogStats), "log search statistics")

	return func() (engine.Config, error) {
		cfg := def
		if *path != "" {
			var err error
			if cfg, err = engine.LoadConfig(*path); err != nil {
				return cfg, err
			}
		}
		// Flag values already hold any usable env value, so they win over the
		// file when set explicitly or when their env variable parsed.
		set := map[string]bool{}
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
		override := func(name, key string, parse func(string) error) bool {
			return *path == "" || set[name] || parse(os.Getenv(key)) == nil
		}
		if override("depth", "CELLCHESS_DEPTH", func(v string) error { _, err := strconv.Atoi(v); return err }) {
			cfg.Depth = *depth
		}
		if override("movetime", "CELLCHESS_MOVETIME", func(v string) error { _, err := time.ParseDuration(v); return err }) {
			cfg.MoveTime = *movetime
		}
		if override("search-stats", "CELLCHESS_SEARCH_STATS", func(v string) error { _, err := strconv.ParseBool(v); return err }) {
			cfg.LogStats = *stats
		}
		cfg.Logger = log.Log
		return cfg, cfg.Validate()
	}
}

// SetupLogging installs the cli handler on w at the named level.
func SetupLogging(w io.Writer, level string) error {
	log.SetHandler(cli.New(w))
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	return nil
}

func Getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func GetenvInt(key string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return def
}

func GetenvBool(key string, def bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return def
}

func GetenvDuration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return def
}

// ParseSide reads the engine side flag: white, black or none.
func ParseSide(s string) (rules.Color, error) {
	switch strings.ToLower(s) {
	case "white", "w":
		return rules.White, nil
	case "black", "b":
		return rules.Black, nil
	case "none", "":
		return rules.NoColor, nil
	}
	return rules.NoColor, fmt.Errorf("unknown side %q", s)
}
