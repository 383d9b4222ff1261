// Package watch provides change notifications for store writes.
package watch

// Event represents a committed write to a watched key.
type Event struct {
	// Key is the written key.
	Key string
	// Epoch is the epoch the write was tagged with.
	Epoch uint64
	// Deleted is true for tombstone writes.
	Deleted bool
}
