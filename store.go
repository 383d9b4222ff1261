package snapstore

import (
	"strings"
	"sync"

	"github.com/tarantool/go-option"
	"github.com/tidwall/btree"
	"go.uber.org/zap"

	"github.com/tarantool/go-snapstore/internal/options"
	"github.com/tarantool/go-snapstore/kv"
	"github.com/tarantool/go-snapstore/registry"
	"github.com/tarantool/go-snapstore/version"
	"github.com/tarantool/go-snapstore/watch"
)

// SnapshotID identifies a snapshot. It equals the epoch frozen when the
// snapshot was taken.
type SnapshotID = version.Epoch

// Store is a versioned key-value store with point-in-time reads through
// snapshots. It is safe for concurrent use.
//
// Writes to different keys proceed in parallel. Taking a snapshot waits for
// in-flight writes so that every write lands on exactly one side of it.
// Reads never wait for the epoch.
type Store struct {
	cfg      config
	logger   *zap.Logger
	registry *registry.Registry
	watchers *watchHub

	// epochGate is held shared by writers and exclusively by TakeSnapshot.
	epochGate sync.RWMutex
	// history is held shared by readers and exclusively by Compact.
	history sync.RWMutex

	mu   sync.RWMutex // Guards keys.
	keys *btree.Map[string, *version.Chain]
}

// New creates an empty store positioned at epoch 0.
func New(opts ...Option) *Store {
	cfg := options.Apply(defaultConfig(), opts...)

	return &Store{
		cfg:       cfg,
		logger:    cfg.logger,
		registry:  registry.New(),
		watchers:  newWatchHub(cfg.watchBuffer),
		epochGate: sync.RWMutex{},
		history:   sync.RWMutex{},
		mu:        sync.RWMutex{},
		keys:      btree.NewMap[string, *version.Chain](0),
	}
}

// Put writes value to key at the current epoch. Repeated writes to a key
// within one epoch keep only the last value.
func (s *Store) Put(key string, value []byte) error {
	if key == "" {
		return errKey(key, ErrInvalidKey)
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	if chain, ok := s.lookup(key); ok {
		return s.write(key, chain, option.Some(stored))
	}

	return s.insert(key, option.Some(stored))
}

// Delete writes a tombstone for key at the current epoch. Only keys that
// have been written before can be deleted.
func (s *Store) Delete(key string) error {
	if key == "" {
		return errKey(key, ErrInvalidKey)
	}

	chain, ok := s.lookup(key)
	if !ok {
		return errKey(key, ErrKeyNotFound)
	}

	return s.write(key, chain, option.None[[]byte]())
}

// Get returns the value of key as of snapshot id.
func (s *Store) Get(key string, id SnapshotID) ([]byte, error) {
	if key == "" {
		return nil, errKey(key, ErrInvalidKey)
	}

	s.history.RLock()
	defer s.history.RUnlock()

	if err := s.registry.Check(id); err != nil {
		return nil, errKeyAt(key, id, err)
	}

	chain, ok := s.lookup(key)
	if !ok {
		return nil, errKeyAt(key, id, ErrKeyNotFound)
	}

	entry, ok := chain.Resolve(id)
	if !ok {
		return nil, errKeyAt(key, id, ErrKeyNotFoundAtSnapshot)
	}

	value, ok := entry.Value.Get()
	if !ok {
		return nil, errKeyAt(key, id, ErrKeyDeletedAtSnapshot)
	}

	out := make([]byte, len(value))
	copy(out, value)

	return out, nil
}

// TakeSnapshot freezes the current epoch as a readable snapshot and moves
// subsequent writes into the next epoch.
func (s *Store) TakeSnapshot() SnapshotID {
	s.epochGate.Lock()
	id := s.registry.Take()
	s.epochGate.Unlock()

	s.logger.Debug("snapshot taken", zap.Uint64("snapshot", uint64(id)))

	return id
}

// DeleteSnapshot makes snapshot id permanently unreadable. Version history
// is left untouched unless the store was created with
// WithCompactOnSnapshotDelete.
func (s *Store) DeleteSnapshot(id SnapshotID) error {
	if err := s.registry.Delete(id); err != nil {
		return errSnapshot(id, err)
	}

	s.logger.Debug("snapshot deleted", zap.Uint64("snapshot", uint64(id)))

	if s.cfg.compactOnDelete {
		s.Compact()
	}

	return nil
}

// Range returns every key visible at snapshot id in key order. Keys that
// were deleted or did not exist yet at the snapshot are skipped.
func (s *Store) Range(id SnapshotID, opts ...RangeOption) ([]kv.KeyValue, error) {
	rangeOpts := rangeOptions{Prefix: "", Limit: 0}
	for _, opt := range opts {
		opt(&rangeOpts)
	}

	s.history.RLock()
	defer s.history.RUnlock()

	if err := s.registry.Check(id); err != nil {
		return nil, errSnapshot(id, err)
	}

	var result []kv.KeyValue

	s.mu.RLock()
	defer s.mu.RUnlock()

	s.keys.Ascend(rangeOpts.Prefix, func(key string, chain *version.Chain) bool {
		if !strings.HasPrefix(key, rangeOpts.Prefix) {
			return false
		}

		entry, ok := chain.Resolve(id)
		if !ok {
			return true
		}

		value, ok := entry.Value.Get()
		if !ok {
			return true
		}

		out := make([]byte, len(value))
		copy(out, value)

		result = append(result, kv.KeyValue{
			Key:   key,
			Value: out,
			Epoch: uint64(entry.Epoch),
		})

		return rangeOpts.Limit <= 0 || len(result) < rangeOpts.Limit
	})

	return result, nil
}

// Versions returns a copy of the version history of key, oldest first.
func (s *Store) Versions(key string) ([]version.Entry, error) {
	if key == "" {
		return nil, errKey(key, ErrInvalidKey)
	}

	chain, ok := s.lookup(key)
	if !ok {
		return nil, errKey(key, ErrKeyNotFound)
	}

	return chain.Entries(), nil
}

// CurrentEpoch returns the epoch new writes are tagged with.
func (s *Store) CurrentEpoch() version.Epoch {
	return s.registry.Current()
}

// Snapshots returns the ids of all live snapshots in ascending order.
func (s *Store) Snapshots() []SnapshotID {
	return s.registry.Live()
}

// Len returns the number of keys ever written, deleted ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.keys.Len()
}

func (s *Store) write(key string, chain *version.Chain, value option.Generic[[]byte]) error {
	s.epochGate.RLock()

	epoch := s.registry.Current()
	err := chain.Write(epoch, value)

	s.epochGate.RUnlock()

	if err != nil {
		return errKey(key, err)
	}

	s.notify(key, epoch, value)

	return nil
}

// insert writes the first version of key. The chain is published together
// with its first entry, so no reader sees an empty chain.
func (s *Store) insert(key string, value option.Generic[[]byte]) error {
	s.epochGate.RLock()
	s.mu.Lock()

	epoch := s.registry.Current()

	chain, ok := s.keys.Get(key)
	if !ok {
		chain = version.NewChain()
	}

	err := chain.Write(epoch, value)
	if err == nil && !ok {
		s.keys.Set(key, chain)
	}

	s.mu.Unlock()
	s.epochGate.RUnlock()

	if err != nil {
		return errKey(key, err)
	}

	s.notify(key, epoch, value)

	return nil
}

func (s *Store) notify(key string, epoch version.Epoch, value option.Generic[[]byte]) {
	s.watchers.notify(watch.Event{
		Key:     key,
		Epoch:   uint64(epoch),
		Deleted: !value.IsSome(),
	})
}

func (s *Store) lookup(key string) (*version.Chain, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.keys.Get(key)
}

// chains returns every chain in key order.
func (s *Store) chains() []*version.Chain {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*version.Chain, 0, s.keys.Len())

	s.keys.Scan(func(_ string, chain *version.Chain) bool {
		out = append(out, chain)
		return true
	})

	return out
}
