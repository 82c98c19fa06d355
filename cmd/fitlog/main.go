package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/meltforce/fitlog/internal/cli"
	"github.com/meltforce/fitlog/internal/config"
	"github.com/meltforce/fitlog/internal/store"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fitlog", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to config file (optional)")
	version := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *version {
		fmt.Fprintln(stdout, "fitlog", Version)
		return 0
	}

	// Load config
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}

	log := newLogger(cfg.Log, stderr).With("session", uuid.NewString())
	log.Info("fitlog starting", "version", Version, "config", *configPath)

	st, err := store.New(cfg.Store.Options(), log)
	if err != nil {
		log.Error("store initialization failed", "error", err)
		fmt.Fprintln(stdout, "Failed to initialize workout list. Exiting.")
		return 1
	}
	defer st.Release()

	if err := cli.New(st, stdin, stdout, log).Run(); err != nil {
		log.Error("menu stopped", "error", err)
		return 1
	}
	log.Info("fitlog stopped", "workouts", st.Len())
	return 0
}

func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
