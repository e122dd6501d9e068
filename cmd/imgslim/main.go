// Command imgslim is the CLI entrypoint for the web image optimizer.
//
// It parses flags, validates configuration and paths, and either runs codec
// diagnostics (--check) or the optimization pipeline, printing the savings
// report when the batch finishes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/imgtools/imgslim/internal/check"
	"github.com/imgtools/imgslim/internal/config"
	"github.com/imgtools/imgslim/internal/display"
	"github.com/imgtools/imgslim/internal/logging"
	"github.com/imgtools/imgslim/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

// Invocation errors (missing source, conflicting flags) exit with 2.
// Per-file errors are recorded in the report and never change the exit code.
const exitUsage = 2

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "imgslim: %v\n", err)
		return exitUsage
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "imgslim: %v\n", err)
		return exitUsage
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "imgslim: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available — all output goes through log from here on.
	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(log) {
			return 1
		}
		return 0
	}

	// The source must exist before any file is touched.
	fi, err := os.Stat(cfg.SrcDir)
	if err != nil || !fi.IsDir() {
		log.Error("Source folder not found: %s", cfg.SrcDir)
		return exitUsage
	}

	// Fail fast if the linked libvips cannot write a required format.
	if err := check.CheckDeps(); err != nil {
		log.Error("%v", err)
		return 1
	}

	if !cfg.InPlace && !cfg.DryRun {
		if err := os.MkdirAll(cfg.DestRoot(), 0o755); err != nil {
			log.Error("Cannot create output directory: %s", cfg.DestRoot())
			return 1
		}
	}

	log.Info("=== imgslim v%s (%s) ===", version, commit)
	log.Info("In:  %s", cfg.SrcDir)
	if cfg.InPlace {
		log.Warn("Out: in-place (originals are overwritten)")
	} else {
		log.Info("Out: %s", cfg.DestRoot())
	}
	log.Info("")

	// Phase 3: Signal handling — cancel context on SIGINT/SIGTERM so the
	// pipeline can stop between files without leaving partial output.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current file…")
		cancel()
	}()

	// Phase 4: Run the batch and print the savings report. Individual file
	// failures are part of the report, not of the exit code.
	sum := pipeline.Run(ctx, &cfg, log)
	pipeline.WriteReport(os.Stdout, &sum)
	return 0
}
