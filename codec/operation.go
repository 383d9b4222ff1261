package codec

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/tarantool/go-snapstore/operation"
)

const (
	// keyedOperationArrayLen is the array length of put and get operations.
	keyedOperationArrayLen = 3
	// shortOperationArrayLen is the array length of delete and delete_snapshot operations.
	shortOperationArrayLen = 2
	// snapshotOperationArrayLen is the array length of a snapshot operation.
	snapshotOperationArrayLen = 1
)

//nolint:gochecknoglobals
var (
	opNames = map[operation.Type]string{
		operation.TypeGet:            "get",
		operation.TypePut:            "put",
		operation.TypeDelete:         "delete",
		operation.TypeTakeSnapshot:   "snapshot",
		operation.TypeDeleteSnapshot: "delete_snapshot",
	}
	opTypes = map[string]operation.Type{
		"get":             operation.TypeGet,
		"put":             operation.TypePut,
		"delete":          operation.TypeDelete,
		"snapshot":        operation.TypeTakeSnapshot,
		"delete_snapshot": operation.TypeDeleteSnapshot,
	}
)

func arrayLen(opType operation.Type) int {
	switch opType {
	case operation.TypePut, operation.TypeGet:
		return keyedOperationArrayLen
	case operation.TypeTakeSnapshot:
		return snapshotOperationArrayLen
	default:
		return shortOperationArrayLen
	}
}

// wireOperation encodes an operation as [name, args...].
type wireOperation struct {
	operation.Operation
}

func (o wireOperation) EncodeMsgpack(encoder *msgpack.Encoder) error {
	name, ok := opNames[o.Type()]
	if !ok {
		return errEncodeOperation(o.Type().String(), ErrUnknownOperation)
	}

	err := encoder.EncodeArrayLen(arrayLen(o.Type()))
	if err != nil {
		return errEncodeOperation("array length", err)
	}

	err = encoder.EncodeString(name)
	if err != nil {
		return errEncodeOperation("name", err)
	}

	switch o.Type() {
	case operation.TypePut:
		err = encoder.EncodeString(o.Key())
		if err != nil {
			return errEncodeOperation("put key", err)
		}

		err = encoder.EncodeBytes(o.Value())
		if err != nil {
			return errEncodeOperation("put value", err)
		}
	case operation.TypeGet:
		err = encoder.EncodeString(o.Key())
		if err != nil {
			return errEncodeOperation("get key", err)
		}

		err = encoder.EncodeUint(o.Snapshot())
		if err != nil {
			return errEncodeOperation("get snapshot", err)
		}
	case operation.TypeDelete:
		err = encoder.EncodeString(o.Key())
		if err != nil {
			return errEncodeOperation("delete key", err)
		}
	case operation.TypeDeleteSnapshot:
		err = encoder.EncodeUint(o.Snapshot())
		if err != nil {
			return errEncodeOperation("delete_snapshot id", err)
		}
	case operation.TypeTakeSnapshot:
	}

	return nil
}

func (o *wireOperation) DecodeMsgpack(decoder *msgpack.Decoder) error {
	length, err := decoder.DecodeArrayLen()
	if err != nil {
		return errDecodeOperation("array length", err)
	}

	name, err := decoder.DecodeString()
	if err != nil {
		return errDecodeOperation("name", err)
	}

	opType, ok := opTypes[name]
	if !ok {
		return errDecodeOperation(name, ErrUnknownOperation)
	}

	if length != arrayLen(opType) {
		return errDecodeOperation(name, fmt.Errorf("%w: %d", ErrInvalidArrayLength, length))
	}

	var (
		key      string
		value    []byte
		snapshot uint64
	)

	if opType == operation.TypePut || opType == operation.TypeGet || opType == operation.TypeDelete {
		key, err = decoder.DecodeString()
		if err != nil {
			return errDecodeOperation(name+" key", err)
		}
	}

	switch opType {
	case operation.TypePut:
		value, err = decoder.DecodeBytes()
		if err != nil {
			return errDecodeOperation("put value", err)
		}

		o.Operation = operation.Put(key, value)
	case operation.TypeGet:
		snapshot, err = decoder.DecodeUint64()
		if err != nil {
			return errDecodeOperation("get snapshot", err)
		}

		o.Operation = operation.Get(key, snapshot)
	case operation.TypeDelete:
		o.Operation = operation.Delete(key)
	case operation.TypeDeleteSnapshot:
		snapshot, err = decoder.DecodeUint64()
		if err != nil {
			return errDecodeOperation("delete_snapshot id", err)
		}

		o.Operation = operation.DeleteSnapshot(snapshot)
	case operation.TypeTakeSnapshot:
		o.Operation = operation.TakeSnapshot()
	}

	return nil
}

// EncodeOperations serializes ops as a msgpack array.
func EncodeOperations(ops []operation.Operation) ([]byte, error) {
	wire := make([]wireOperation, 0, len(ops))
	for _, op := range ops {
		wire = append(wire, wireOperation{op})
	}

	data, err := msgpack.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("failed to encode operations: %w", err)
	}

	return data, nil
}

// DecodeOperations is the inverse of EncodeOperations.
func DecodeOperations(data []byte) ([]operation.Operation, error) {
	var wire []wireOperation

	err := msgpack.Unmarshal(data, &wire)
	if err != nil {
		return nil, fmt.Errorf("failed to decode operations: %w", err)
	}

	ops := make([]operation.Operation, 0, len(wire))
	for _, w := range wire {
		ops = append(ops, w.Operation)
	}

	return ops, nil
}
