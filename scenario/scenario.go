// Package scenario loads scripted store sessions from YAML and replays them,
// checking each step against its expected outcome.
//
// A scenario looks like:
//
//	name: basic
//	steps:
//	  - {op: put, key: a, value: apple}
//	  - {op: snapshot, as: first, expect: {snapshot: 0}}
//	  - {op: get, key: a, snapshot: first, expect: {value: apple}}
//	  - {op: get, key: b, snapshot: "0", expect: {error: KeyNotFound}}
//
// Snapshot references are either numeric ids or non-numeric names bound with "as".
package scenario

import (
	"errors"
	"fmt"
	"strconv"

	snapstore "github.com/tarantool/go-snapstore"
	"github.com/tarantool/go-snapstore/marshaller"
	"github.com/tarantool/go-snapstore/operation"
)

var (
	// ErrInvalidStep is returned for steps missing required fields.
	ErrInvalidStep = errors.New("invalid step")
	// ErrUnknownOp is returned for steps with an unsupported op.
	ErrUnknownOp = errors.New("unknown op")
	// ErrUnknownSnapshotName is returned when a step references an unbound name.
	ErrUnknownSnapshotName = errors.New("unknown snapshot name")
)

// Scenario is a named list of steps.
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is a single store operation with an optional expectation.
type Step struct {
	Op       string  `yaml:"op"`
	Key      string  `yaml:"key,omitempty"`
	Value    *string `yaml:"value,omitempty"`
	Snapshot string  `yaml:"snapshot,omitempty"`
	As       string  `yaml:"as,omitempty"`
	Expect   *Expect `yaml:"expect,omitempty"`
}

// Expect describes the outcome of a step. Steps without an error
// expectation must succeed.
type Expect struct {
	Value    *string `yaml:"value,omitempty"`
	Snapshot *uint64 `yaml:"snapshot,omitempty"`
	Error    string  `yaml:"error,omitempty"`
}

// Load parses a YAML scenario. Unknown fields are rejected.
func Load(data []byte) (Scenario, error) {
	sc, err := marshaller.NewStrictYAMLMarshaller[Scenario]().Unmarshal(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to load scenario: %w", err)
	}

	for i, step := range sc.Steps {
		err = step.validate()
		if err != nil {
			return Scenario{}, StepError{Step: i, parent: err}
		}
	}

	return sc, nil
}

func (s Step) validate() error {
	switch s.Op {
	case "put":
		if s.Value == nil {
			return fmt.Errorf("%w: put requires value", ErrInvalidStep)
		}
	case "get":
		if s.Snapshot == "" {
			return fmt.Errorf("%w: get requires snapshot", ErrInvalidStep)
		}
	case "delete_snapshot":
		if s.Snapshot == "" {
			return fmt.Errorf("%w: delete_snapshot requires snapshot", ErrInvalidStep)
		}
	case "delete", "snapshot":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, s.Op)
	}

	if _, err := strconv.ParseUint(s.As, 10, 64); err == nil {
		return fmt.Errorf("%w: snapshot name %q is a numeric id", ErrInvalidStep, s.As)
	}

	if s.Expect != nil && s.Expect.Error != "" {
		if _, ok := snapstore.ParseErrorKind(s.Expect.Error); !ok {
			return fmt.Errorf("%w: unknown error kind %q", ErrInvalidStep, s.Expect.Error)
		}
	}

	return nil
}

// operation converts the step, resolving snapshot names through bound.
func (s Step) operation(bound map[string]snapstore.SnapshotID) (operation.Operation, error) {
	switch s.Op {
	case "put":
		var value []byte
		if s.Value != nil {
			value = []byte(*s.Value)
		}

		return operation.Put(s.Key, value), nil
	case "delete":
		return operation.Delete(s.Key), nil
	case "snapshot":
		return operation.TakeSnapshot(), nil
	case "get":
		id, err := resolveSnapshot(s.Snapshot, bound)
		if err != nil {
			return operation.Operation{}, err
		}

		return operation.Get(s.Key, uint64(id)), nil
	case "delete_snapshot":
		id, err := resolveSnapshot(s.Snapshot, bound)
		if err != nil {
			return operation.Operation{}, err
		}

		return operation.DeleteSnapshot(uint64(id)), nil
	default:
		return operation.Operation{}, fmt.Errorf("%w: %q", ErrUnknownOp, s.Op)
	}
}

func resolveSnapshot(ref string, bound map[string]snapstore.SnapshotID) (snapstore.SnapshotID, error) {
	if id, ok := bound[ref]; ok {
		return id, nil
	}

	raw, err := strconv.ParseUint(ref, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSnapshotName, ref)
	}

	return snapstore.SnapshotID(raw), nil
}
