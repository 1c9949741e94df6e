package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/alnah/md2pdf-angebot/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain runs the CLI and returns the process exit code.
func runMain(args []string, env *Environment) int {
	flags, positional, err := parseFlags(args[1:])
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		fmt.Fprintln(env.Stderr, "Run 'md2pdf --help' for usage.")
		return ExitUsage
	}

	if flags.version {
		fmt.Fprintf(env.Stdout, "md2pdf %s\n", Version)
		return ExitSuccess
	}
	if flags.help || len(positional) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	logger := env.Logger
	if logger == nil {
		logger = logging.New(env.Stderr, logging.Config{
			Level:  logging.LevelFor(flags.quiet, flags.verbose),
			Format: "console",
		})
		defer func() { _ = logger.Sync() }()
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	err = run(ctx, flags, positional, env, logger)
	if err != nil && !errors.Is(err, errBatchFailed) {
		logger.Error("md2pdf failed", zap.Error(err))
	}
	return exitCodeFor(err)
}
