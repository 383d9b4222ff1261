package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	snapstore "github.com/tarantool/go-snapstore"
	"github.com/tarantool/go-snapstore/codec"
	"github.com/tarantool/go-snapstore/scenario"
)

var errScenarioFailed = errors.New("scenario failed")

func runScenario(logger *zap.Logger, args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("run", flag.ContinueOnError)
	flags.SetOutput(stdout)
	out := flags.String("out", "", "write msgpack-encoded results to this file")

	err := flags.Parse(args)
	if err != nil {
		return err
	}

	if flags.NArg() != 1 {
		return errUsage
	}

	data, err := os.ReadFile(flags.Arg(0))
	if err != nil {
		return fmt.Errorf("failed to read scenario: %w", err)
	}

	sc, err := scenario.Load(data)
	if err != nil {
		return err
	}

	logger.Info("running scenario", zap.String("name", sc.Name), zap.Int("steps", len(sc.Steps)))

	report, err := scenario.Run(snapstore.New(snapstore.WithLogger(logger)), sc)
	if err != nil {
		return err
	}

	for i, result := range report.Results {
		fmt.Fprintf(stdout, "%3d %s\n", i, formatResult(result))
	}

	if *out != "" {
		encoded, err := codec.EncodeResults(report.Results)
		if err != nil {
			return err
		}

		err = os.WriteFile(*out, encoded, 0o600)
		if err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
	}

	if err := report.Err(); err != nil {
		fmt.Fprintln(stdout, err)
		return fmt.Errorf("%w: %d mismatches", errScenarioFailed, len(report.Mismatches))
	}

	fmt.Fprintf(stdout, "ok: %d steps\n", len(report.Results))

	return nil
}

func decodeResults(args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return errUsage
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read results: %w", err)
	}

	results, err := codec.DecodeResults(data)
	if err != nil {
		return err
	}

	for i, result := range results {
		fmt.Fprintf(stdout, "%3d %s\n", i, formatResult(result))
	}

	return nil
}

func formatResult(result snapstore.Result) string {
	line := result.Type.String()

	if id, ok := result.Snapshot.Get(); ok {
		line += fmt.Sprintf(" snapshot=%d", id)
	}

	if value, ok := result.Value.Get(); ok {
		line += fmt.Sprintf(" value=%q", value)
	}

	if result.Err != nil {
		line += fmt.Sprintf(" error=%s", result.Kind())
	}

	return line
}
