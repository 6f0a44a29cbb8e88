// Package main is the entry point for the runpad editor shell.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/runpad/internal/app"
	"github.com/dshills/runpad/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, writeConfig, ok := parseFlags()
	if !ok {
		return 1
	}

	if writeConfig != "" {
		if err := config.WriteFile(writeConfig, config.Default()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("Wrote default configuration to %s\n", writeConfig)
		return 0
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer func() {
		if err := application.Shutdown(app.DefaultShutdownTimeout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}()

	// Interrupts cancel a running program; a second one quits.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	sh := newShell(application, os.Stdin, os.Stdout)
	if err := sh.Run(signals); err != nil && !errors.Is(err, app.ErrQuit) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() (opts app.Options, writeConfig string, ok bool) {
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml or .yaml)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config")
	flag.BoolVar(&opts.WatchConfig, "watch", true, "Reload the configuration file when it changes")
	flag.BoolVar(&opts.SystemClipboard, "system-clipboard", true, "Use the desktop clipboard when available")
	flag.StringVar(&writeConfig, "write-config", "", "Write the default configuration to `path` and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "runpad - a small editor that runs what you write\n\n")
		fmt.Fprintf(os.Stderr, "Usage: runpad [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  runpad                           Start with an empty document\n")
		fmt.Fprintf(os.Stderr, "  runpad hello.py                  Open a file\n")
		fmt.Fprintf(os.Stderr, "  runpad -write-config runpad.toml Write the defaults\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("runpad %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		return opts, "", false
	}

	opts.Files = flag.Args()
	return opts, writeConfig, true
}
