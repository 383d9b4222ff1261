// Command snapstore runs an in-memory snapshot store interactively or
// replays YAML scenarios against it.
//
// Usage:
//
//	snapstore repl
//	snapstore run [-out results.msgpack] scenario.yaml
//	snapstore decode results.msgpack
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

var errUsage = errors.New("usage: snapstore [-verbose] repl | run [-out file] scenario.yaml | decode file")

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)

	return cfg.Build()
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	flags := flag.NewFlagSet("snapstore", flag.ContinueOnError)
	flags.SetOutput(stdout)
	verbose := flags.Bool("verbose", false, "enable debug logging")

	err := flags.Parse(args)
	if err != nil {
		return err
	}

	if flags.NArg() == 0 {
		return errUsage
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	defer func() { _ = logger.Sync() }()

	switch cmd, rest := flags.Arg(0), flags.Args()[1:]; cmd {
	case "repl":
		return newREPL(logger, stdout).Serve(stdin)
	case "run":
		return runScenario(logger, rest, stdout)
	case "decode":
		return decodeResults(rest, stdout)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
