package codec

import (
	"fmt"

	"github.com/tarantool/go-option"
	"github.com/vmihailenco/msgpack/v5"

	snapstore "github.com/tarantool/go-snapstore"
)

type wireResult struct {
	_msgpack struct{} `msgpack:",omitempty"` //nolint:unused

	Op       string  `msgpack:"op"`
	OK       bool    `msgpack:"ok"`
	Value    []byte  `msgpack:"value,omitempty"`
	HasValue bool    `msgpack:"has_value,omitempty"`
	Snapshot *uint64 `msgpack:"snapshot,omitempty"`
	Error    string  `msgpack:"error,omitempty"`
	Message  string  `msgpack:"message,omitempty"`
}

func newWireResult(result snapstore.Result) (wireResult, error) {
	name, ok := opNames[result.Type]
	if !ok {
		return wireResult{}, errEncodeResult(result.Type.String(), ErrUnknownOperation)
	}

	wire := wireResult{
		_msgpack: struct{}{},
		Op:       name,
		OK:       result.Err == nil,
		Value:    nil,
		HasValue: false,
		Snapshot: nil,
		Error:    "",
		Message:  "",
	}

	if value, ok := result.Value.Get(); ok {
		wire.Value = value
		wire.HasValue = true
	}

	if id, ok := result.Snapshot.Get(); ok {
		raw := uint64(id)
		wire.Snapshot = &raw
	}

	if result.Err != nil {
		wire.Error = snapstore.KindOf(result.Err).String()
		wire.Message = result.Err.Error()
	}

	return wire, nil
}

func (w wireResult) asResult() (snapstore.Result, error) {
	opType, ok := opTypes[w.Op]
	if !ok {
		return snapstore.Result{}, errDecodeResult(w.Op, ErrUnknownOperation)
	}

	result := snapstore.Result{
		Type:     opType,
		Value:    option.None[[]byte](),
		Snapshot: option.None[snapstore.SnapshotID](),
		Err:      nil,
	}

	if w.HasValue {
		value := w.Value
		if value == nil {
			value = []byte{}
		}

		result.Value = option.Some(value)
	}

	if w.Snapshot != nil {
		result.Snapshot = option.Some(snapstore.SnapshotID(*w.Snapshot))
	}

	if !w.OK {
		kind, ok := snapstore.ParseErrorKind(w.Error)
		if !ok {
			return snapstore.Result{}, errDecodeResult(w.Error, ErrUnknownErrorKind)
		}

		result.Err = ResultError{Kind: kind, Message: w.Message}
	}

	return result, nil
}

// EncodeResults serializes results as a msgpack array of maps. Errors are
// reduced to their kind and message.
func EncodeResults(results []snapstore.Result) ([]byte, error) {
	wire := make([]wireResult, 0, len(results))

	for _, result := range results {
		w, err := newWireResult(result)
		if err != nil {
			return nil, err
		}

		wire = append(wire, w)
	}

	data, err := msgpack.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("failed to encode results: %w", err)
	}

	return data, nil
}

// DecodeResults is the inverse of EncodeResults. Decoded errors are
// ResultError values.
func DecodeResults(data []byte) ([]snapstore.Result, error) {
	var wire []wireResult

	err := msgpack.Unmarshal(data, &wire)
	if err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}

	results := make([]snapstore.Result, 0, len(wire))

	for _, w := range wire {
		result, err := w.asResult()
		if err != nil {
			return nil, err
		}

		results = append(results, result)
	}

	return results, nil
}
