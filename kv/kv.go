// Package kv provides the key-value pair returned by snapshot reads.
package kv

// KeyValue is a key as seen through a snapshot.
type KeyValue struct {
	// Key is the key name.
	Key string
	// Value is the value visible at the snapshot.
	Value []byte

	// Epoch is the epoch the visible value was written in.
	Epoch uint64
}
