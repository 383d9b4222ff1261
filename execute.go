package snapstore

import (
	"errors"
	"fmt"

	"github.com/tarantool/go-option"

	"github.com/tarantool/go-snapstore/operation"
)

// ErrUnknownOperation is returned for operations of an unsupported type.
var ErrUnknownOperation = errors.New("unknown operation")

// Result is the outcome of a single executed operation.
type Result struct {
	// Type is the type of the executed operation.
	Type operation.Type
	// Value is set for successful Get operations.
	Value option.Generic[[]byte]
	// Snapshot is the issued id for TakeSnapshot and the target id for
	// Get and DeleteSnapshot.
	Snapshot option.Generic[SnapshotID]
	// Err is the operation error, nil on success.
	Err error
}

// Kind returns the error kind of the result.
func (r Result) Kind() ErrorKind {
	return KindOf(r.Err)
}

// Execute applies ops in order and returns one result per operation.
// A failed operation leaves the store unchanged and does not stop the batch.
func (s *Store) Execute(ops ...operation.Operation) []Result {
	results := make([]Result, 0, len(ops))

	for _, op := range ops {
		results = append(results, s.execute(op))
	}

	return results
}

func (s *Store) execute(op operation.Operation) Result {
	result := Result{
		Type:     op.Type(),
		Value:    option.None[[]byte](),
		Snapshot: option.None[SnapshotID](),
		Err:      nil,
	}

	switch op.Type() {
	case operation.TypePut:
		result.Err = s.Put(op.Key(), op.Value())
	case operation.TypeDelete:
		result.Err = s.Delete(op.Key())
	case operation.TypeGet:
		id := SnapshotID(op.Snapshot())
		result.Snapshot = option.Some(id)

		value, err := s.Get(op.Key(), id)
		if err == nil {
			result.Value = option.Some(value)
		}

		result.Err = err
	case operation.TypeTakeSnapshot:
		result.Snapshot = option.Some(s.TakeSnapshot())
	case operation.TypeDeleteSnapshot:
		id := SnapshotID(op.Snapshot())
		result.Snapshot = option.Some(id)
		result.Err = s.DeleteSnapshot(id)
	default:
		result.Err = fmt.Errorf("%w: %s", ErrUnknownOperation, op.Type())
	}

	return result
}
