// Package registry tracks the write epoch and the liveness of issued snapshots.
package registry

import (
	"errors"
	"sync"

	"github.com/tarantool/go-snapstore/version"
)

var (
	// ErrNotFound is returned for a snapshot id that was never issued.
	ErrNotFound = errors.New("snapshot not found")
	// ErrAlreadyDeleted is returned when deleting a snapshot twice.
	ErrAlreadyDeleted = errors.New("snapshot already deleted")
	// ErrDeleted is returned when reading through a deleted snapshot.
	ErrDeleted = errors.New("snapshot deleted")
)

// Registry is the epoch counter plus the liveness table of snapshot ids.
// Snapshot ids are the epochs frozen by Take, issued from 0 without gaps.
type Registry struct {
	mu      sync.RWMutex
	current version.Epoch
	live    []bool
}

// New returns a registry positioned at epoch 0 with no snapshots.
func New() *Registry {
	return &Registry{
		mu:      sync.RWMutex{},
		current: 0,
		live:    nil,
	}
}

// Current returns the epoch new writes are tagged with.
func (r *Registry) Current() version.Epoch {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.current
}

// Take freezes the current epoch as a live snapshot and advances the epoch.
func (r *Registry) Take() version.Epoch {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.current
	r.live = append(r.live, true)
	r.current++

	return id
}

// Delete marks the snapshot as no longer readable. It is irreversible.
func (r *Registry) Delete(id version.Epoch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.issued(id) {
		return ErrNotFound
	}

	if !r.live[id] {
		return ErrAlreadyDeleted
	}

	r.live[id] = false

	return nil
}

// Check returns nil when id refers to a live snapshot.
func (r *Registry) Check(id version.Epoch) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	switch {
	case !r.issued(id):
		return ErrNotFound
	case !r.live[id]:
		return ErrDeleted
	default:
		return nil
	}
}

// Live returns the ids of all live snapshots in ascending order.
func (r *Registry) Live() []version.Epoch {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]version.Epoch, 0, len(r.live))

	for id, alive := range r.live {
		if alive {
			ids = append(ids, version.Epoch(id))
		}
	}

	return ids
}

// OldestLive returns the smallest live snapshot id.
func (r *Registry) OldestLive() (version.Epoch, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, alive := range r.live {
		if alive {
			return version.Epoch(id), true
		}
	}

	return 0, false
}

func (r *Registry) issued(id version.Epoch) bool {
	return id < r.current && id < version.Epoch(len(r.live))
}
