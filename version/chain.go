// Package version implements per-key version chains: the ordered history
// of values and tombstones written to a single key, one entry per epoch.
package version

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tarantool/go-option"
)

// Epoch is a generation of writes. All writes between two consecutive
// snapshots share the same epoch.
type Epoch uint64

// ErrOutOfOrder is returned when a write is attributed to an epoch older
// than the newest entry of the chain.
var ErrOutOfOrder = errors.New("write epoch is older than chain tail")

// Entry is a single version of a key. An entry without a value is a tombstone.
type Entry struct {
	// Epoch is the generation the value was written in.
	Epoch Epoch
	// Value holds the written bytes, None marks a deletion.
	Value option.Generic[[]byte]
}

// IsTombstone reports whether the entry marks a deletion.
func (e Entry) IsTombstone() bool {
	return !e.Value.IsSome()
}

// OutOfOrderError describes a rejected write.
type OutOfOrderError struct {
	Epoch Epoch
	Tail  Epoch
}

func (e OutOfOrderError) Error() string {
	return fmt.Sprintf("%s: epoch %d, tail %d", ErrOutOfOrder, e.Epoch, e.Tail)
}

// Unwrap returns ErrOutOfOrder.
func (e OutOfOrderError) Unwrap() error {
	return ErrOutOfOrder
}

// Chain is the version history of a single key. Entries are kept sorted
// by epoch with no two entries sharing one. It is safe for concurrent use.
type Chain struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewChain returns an empty chain.
func NewChain() *Chain {
	return &Chain{
		mu:      sync.RWMutex{},
		entries: nil,
	}
}

// Write records value at epoch. A write into the epoch of the tail entry
// replaces the tail value, any newer epoch appends a new entry.
func (c *Chain) Write(epoch Epoch, value option.Generic[[]byte]) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	last := len(c.entries) - 1

	switch {
	case last < 0 || c.entries[last].Epoch < epoch:
		c.entries = append(c.entries, Entry{Epoch: epoch, Value: value})
	case c.entries[last].Epoch == epoch:
		c.entries[last].Value = value
	default:
		return OutOfOrderError{Epoch: epoch, Tail: c.entries[last].Epoch}
	}

	return nil
}

// Resolve returns the newest entry written at or before epoch.
func (c *Chain) Resolve(epoch Epoch) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	idx, ok := Locate(c.entries, epoch)
	if !ok {
		return Entry{}, false
	}

	return c.entries[idx], true
}

// Len returns the number of entries in the chain.
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Entries returns a copy of the chain, oldest first.
func (c *Chain) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Entry, len(c.entries))
	copy(out, c.entries)

	return out
}

// Trim drops every entry older than the one visible at epoch, so that
// reads at epoch or later resolve exactly as before. It returns the
// number of dropped entries.
func (c *Chain) Trim(epoch Epoch) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx, ok := Locate(c.entries, epoch)
	if !ok || idx == 0 {
		return 0
	}

	kept := make([]Entry, len(c.entries)-idx)
	copy(kept, c.entries[idx:])
	c.entries = kept

	return idx
}
