package main

import (
	"errors"
	"fmt"
	"strconv"
)

const usage = "Usage: manorquest [--version] [--plain] [--script <file>] [--fast] [--seed <n>] [game_directory]"

// options are the command-line flags. Zero values mean "not given".
type options struct {
	version bool
	plain   bool
	fast    bool
	script  string
	seed    int64
	seedSet bool
	gameDir string
}

var errUsage = errors.New(usage)

func parseArgs(args []string) (options, error) {
	var opts options
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			opts.version = true
		case "--plain":
			opts.plain = true
		case "--fast":
			opts.fast = true
		case "--script":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("--script requires a file path: %w", errUsage)
			}
			i++
			opts.script = args[i]
		case "--seed":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("--seed requires a number: %w", errUsage)
			}
			i++
			n, err := strconv.ParseInt(args[i], 10, 64)
			if err != nil {
				return opts, fmt.Errorf("--seed %q: %w", args[i], err)
			}
			opts.seed = n
			opts.seedSet = true
		default:
			if len(args[i]) > 1 && args[i][0] == '-' {
				return opts, fmt.Errorf("unknown flag %s: %w", args[i], errUsage)
			}
			if opts.gameDir == "" {
				opts.gameDir = args[i]
			}
		}
	}
	return opts, nil
}
