// ManorQuest is a turn-based text adventure set in the Smith manor.
// Usage: manorquest [--version] [--plain] [--script <file>] [--fast] [--seed <n>] [game_directory]
package main

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/nathoo/manorquest/cli"
	"github.com/nathoo/manorquest/config"
	"github.com/nathoo/manorquest/engine"
	"github.com/nathoo/manorquest/engine/state"
	"github.com/nathoo/manorquest/loader"
	"github.com/nathoo/manorquest/logging"
	"github.com/nathoo/manorquest/prompt"
	"github.com/nathoo/manorquest/telemetry"
	"github.com/nathoo/manorquest/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Not fatal: settings may come from the real environment.
	envErr := godotenv.Load()

	opts, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
		}
		return 2
	}
	if opts.version {
		fmt.Printf("manorquest %s (commit %s, built %s)\n", version, commit, date)
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading configuration: %v\n", err)
		return 1
	}
	applyFlags(&cfg, opts)

	interactive := opts.script == "" && !opts.plain && isTerminal()

	// The TUI owns the screen; only a log file can take logs then.
	var logOut io.Writer = os.Stderr
	if interactive {
		logOut = io.Discard
	}
	logger, closeLog, err := logging.Setup(cfg, logOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()
	if envErr != nil {
		logger.Debug(".env file not loaded", "error", envErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tracer := telemetry.NoopTracer()
	if cfg.Tracing {
		shutdown, err := telemetry.Setup(ctx, version)
		if err != nil {
			logging.WithError(logger, err).Warn("telemetry setup failed, running without tracing")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logging.WithError(logger, err).Warn("telemetry shutdown")
				}
			}()
			tracer = telemetry.Tracer("engine")
		}
	}

	defs, err := loader.Load(cfg.GameDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game: %v\n", err)
		return 1
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = randomSeed()
	}
	logger.Info("starting", "game", defs.Game.Title, "dir", cfg.GameDir, "seed", seed, "delay", cfg.Delay())

	session := func(in io.Reader, out io.Writer) *cli.CLI {
		console := prompt.NewConsole(in, out)
		console.Echo = opts.script != ""
		eng := engine.New(defs, console, out, seed)
		eng.Delay = cfg.Delay()
		eng.Logger = logger
		eng.Tracer = tracer
		c := cli.New(eng, console)
		c.Out = out
		return c
	}

	if interactive {
		if err := tui.Run(ctx, defs.Game.Title, session); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	in := io.Reader(os.Stdin)
	if opts.script != "" {
		f, err := os.Open(opts.script)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			return 1
		}
		defer f.Close()
		in = f
	}
	printBanner(os.Stdout, defs)
	session(in, os.Stdout).Run(ctx)
	return 0
}

// applyFlags lets command-line flags override the environment.
func applyFlags(cfg *config.Config, opts options) {
	if opts.gameDir != "" {
		cfg.GameDir = opts.gameDir
	}
	if opts.seedSet {
		cfg.Seed = opts.seed
	}
	if opts.fast {
		cfg.Fast = true
	}
}

func printBanner(w io.Writer, defs *state.Defs) {
	banner := defs.Game.Title
	if defs.Game.Version != "" {
		banner += " v" + defs.Game.Version
	}
	if defs.Game.Author != "" {
		banner += " by " + defs.Game.Author
	}
	fmt.Fprintf(w, "%s\n\n", banner)
}

// randomSeed draws a positive seed from the OS.
func randomSeed() int64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		slog.Warn("random seed unavailable, using 1", "error", err)
		return 1
	}
	return int64(binary.BigEndian.Uint64(b[:])&math.MaxInt64) | 1
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
