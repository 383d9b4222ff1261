package scenario

import (
	"errors"
	"fmt"
	"strconv"

	snapstore "github.com/tarantool/go-snapstore"
	"github.com/tarantool/go-snapstore/operation"
)

// StepError reports a step that could not be executed.
type StepError struct {
	Step   int
	parent error
}

// Error returns a string representation of the step error.
func (e StepError) Error() string {
	return fmt.Sprintf("step %d: %s", e.Step, e.parent)
}

// Unwrap returns the underlying error.
func (e StepError) Unwrap() error {
	return e.parent
}

// MismatchError reports a step whose outcome differs from its expectation.
type MismatchError struct {
	Step     int
	Field    string
	Expected string
	Actual   string
}

// Error returns a string representation of the mismatch.
func (e MismatchError) Error() string {
	return fmt.Sprintf("step %d: %s: expected %s, got %s", e.Step, e.Field, e.Expected, e.Actual)
}

// Report is the outcome of a scenario run.
type Report struct {
	Operations []operation.Operation
	Results    []snapstore.Result
	Mismatches []MismatchError
}

// Err joins all mismatches, nil when the run matched every expectation.
func (r Report) Err() error {
	errs := make([]error, 0, len(r.Mismatches))
	for _, m := range r.Mismatches {
		errs = append(errs, m)
	}

	return errors.Join(errs...)
}

// Run executes the scenario on store step by step. Unexpected outcomes are
// collected in the report; only steps that cannot be executed at all abort
// the run.
func Run(store *snapstore.Store, sc Scenario) (Report, error) {
	report := Report{
		Operations: make([]operation.Operation, 0, len(sc.Steps)),
		Results:    make([]snapstore.Result, 0, len(sc.Steps)),
		Mismatches: nil,
	}

	bound := make(map[string]snapstore.SnapshotID)

	for i, step := range sc.Steps {
		op, err := step.operation(bound)
		if err != nil {
			return report, StepError{Step: i, parent: err}
		}

		result := store.Execute(op)[0]

		if id, ok := result.Snapshot.Get(); ok && step.As != "" && result.Err == nil {
			bound[step.As] = id
		}

		report.Operations = append(report.Operations, op)
		report.Results = append(report.Results, result)
		report.Mismatches = append(report.Mismatches, check(i, step.Expect, result)...)
	}

	return report, nil
}

func check(step int, expect *Expect, result snapstore.Result) []MismatchError {
	var mismatches []MismatchError

	wantKind := snapstore.KindNone
	if expect != nil && expect.Error != "" {
		wantKind, _ = snapstore.ParseErrorKind(expect.Error)
	}

	if gotKind := result.Kind(); gotKind != wantKind {
		mismatches = append(mismatches, MismatchError{
			Step:     step,
			Field:    "error",
			Expected: wantKind.String(),
			Actual:   gotKind.String(),
		})
	}

	if expect == nil {
		return mismatches
	}

	if expect.Value != nil {
		actual := "<none>"
		if value, ok := result.Value.Get(); ok {
			actual = strconv.Quote(string(value))
		}

		if expected := strconv.Quote(*expect.Value); expected != actual {
			mismatches = append(mismatches, MismatchError{
				Step:     step,
				Field:    "value",
				Expected: expected,
				Actual:   actual,
			})
		}
	}

	if expect.Snapshot != nil {
		actual := "<none>"
		if id, ok := result.Snapshot.Get(); ok {
			actual = strconv.FormatUint(uint64(id), 10)
		}

		if expected := strconv.FormatUint(*expect.Snapshot, 10); expected != actual {
			mismatches = append(mismatches, MismatchError{
				Step:     step,
				Field:    "snapshot",
				Expected: expected,
				Actual:   actual,
			})
		}
	}

	return mismatches
}
