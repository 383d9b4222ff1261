// Package operation describes the five store operations as values,
// so they can be batched, serialized and replayed.
package operation

// Operation represents a single store operation.
type Operation struct {
	typ      Type
	key      string
	value    []byte
	snapshot uint64
}

// Get returns an operation reading key as of snapshot.
func Get(key string, snapshot uint64) Operation {
	return Operation{typ: TypeGet, key: key, value: nil, snapshot: snapshot}
}

// Put returns an operation writing value to key.
func Put(key string, value []byte) Operation {
	return Operation{typ: TypePut, key: key, value: value, snapshot: 0}
}

// Delete returns an operation deleting key.
func Delete(key string) Operation {
	return Operation{typ: TypeDelete, key: key, value: nil, snapshot: 0}
}

// TakeSnapshot returns an operation capturing a new snapshot.
func TakeSnapshot() Operation {
	return Operation{typ: TypeTakeSnapshot, key: "", value: nil, snapshot: 0}
}

// DeleteSnapshot returns an operation deleting snapshot.
func DeleteSnapshot(snapshot uint64) Operation {
	return Operation{typ: TypeDeleteSnapshot, key: "", value: nil, snapshot: snapshot}
}

// Type returns the operation type.
func (o Operation) Type() Type {
	return o.typ
}

// Key returns the target key, empty for snapshot operations.
func (o Operation) Key() string {
	return o.key
}

// Value returns the value of a put, nil otherwise.
func (o Operation) Value() []byte {
	return o.value
}

// Snapshot returns the snapshot id of a get or delete-snapshot.
func (o Operation) Snapshot() uint64 {
	return o.snapshot
}
