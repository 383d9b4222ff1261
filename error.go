package snapstore

import (
	"errors"
	"fmt"

	"github.com/tarantool/go-option"

	"github.com/tarantool/go-snapstore/registry"
)

var (
	// ErrInvalidKey is returned for an empty key.
	ErrInvalidKey = errors.New("invalid key")
	// ErrKeyNotFound is returned for a key that was never written.
	ErrKeyNotFound = errors.New("key not found")
	// ErrKeyNotFoundAtSnapshot is returned when the key was first written
	// after the requested snapshot.
	ErrKeyNotFoundAtSnapshot = errors.New("key not found at snapshot")
	// ErrKeyDeletedAtSnapshot is returned when the key was deleted as of
	// the requested snapshot.
	ErrKeyDeletedAtSnapshot = errors.New("key deleted at snapshot")

	// ErrSnapshotNotFound is returned for a snapshot id that was never issued.
	ErrSnapshotNotFound = registry.ErrNotFound
	// ErrSnapshotAlreadyDeleted is returned when deleting a snapshot twice.
	ErrSnapshotAlreadyDeleted = registry.ErrAlreadyDeleted
	// ErrSnapshotDeleted is returned when reading through a deleted snapshot.
	ErrSnapshotDeleted = registry.ErrDeleted
)

// ErrorKind classifies store errors.
type ErrorKind int

const (
	// KindNone means no error.
	KindNone ErrorKind = iota
	// KindInvalidKey matches ErrInvalidKey.
	KindInvalidKey
	// KindKeyNotFound matches ErrKeyNotFound.
	KindKeyNotFound
	// KindKeyNotFoundAtSnapshot matches ErrKeyNotFoundAtSnapshot.
	KindKeyNotFoundAtSnapshot
	// KindKeyDeletedAtSnapshot matches ErrKeyDeletedAtSnapshot.
	KindKeyDeletedAtSnapshot
	// KindSnapshotNotFound matches ErrSnapshotNotFound.
	KindSnapshotNotFound
	// KindSnapshotAlreadyDeleted matches ErrSnapshotAlreadyDeleted.
	KindSnapshotAlreadyDeleted
	// KindSnapshotDeleted matches ErrSnapshotDeleted.
	KindSnapshotDeleted
	// KindUnknown is any error outside the store taxonomy.
	KindUnknown
)

//nolint:gochecknoglobals
var kindErrors = []struct {
	kind ErrorKind
	err  error
	name string
}{
	{KindInvalidKey, ErrInvalidKey, "InvalidKey"},
	{KindKeyNotFound, ErrKeyNotFound, "KeyNotFound"},
	{KindKeyNotFoundAtSnapshot, ErrKeyNotFoundAtSnapshot, "KeyNotFoundAtSnapshot"},
	{KindKeyDeletedAtSnapshot, ErrKeyDeletedAtSnapshot, "KeyDeletedAtSnapshot"},
	{KindSnapshotNotFound, ErrSnapshotNotFound, "SnapshotNotFound"},
	{KindSnapshotAlreadyDeleted, ErrSnapshotAlreadyDeleted, "SnapshotAlreadyDeleted"},
	{KindSnapshotDeleted, ErrSnapshotDeleted, "SnapshotDeleted"},
}

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindUnknown:
		return "Unknown"
	}

	for _, ke := range kindErrors {
		if ke.kind == k {
			return ke.name
		}
	}

	return "Unknown"
}

// Err returns the sentinel error of the kind, nil for KindNone and KindUnknown.
func (k ErrorKind) Err() error {
	for _, ke := range kindErrors {
		if ke.kind == k {
			return ke.err
		}
	}

	return nil
}

// ParseErrorKind is the inverse of ErrorKind.String.
func ParseErrorKind(name string) (ErrorKind, bool) {
	switch name {
	case "None":
		return KindNone, true
	case "Unknown":
		return KindUnknown, true
	}

	for _, ke := range kindErrors {
		if ke.name == name {
			return ke.kind, true
		}
	}

	return KindUnknown, false
}

// KindOf maps err onto the store error taxonomy.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	for _, ke := range kindErrors {
		if errors.Is(err, ke.err) {
			return ke.kind
		}
	}

	return KindUnknown
}

// KeyError is returned by key operations. It wraps one of the key sentinels
// or, for reads, the snapshot sentinel that rejected the read.
type KeyError struct {
	Key      string
	Snapshot option.Generic[SnapshotID]
	parent   error
}

func errKey(key string, parent error) error {
	return KeyError{
		Key:      key,
		Snapshot: option.None[SnapshotID](),
		parent:   parent,
	}
}

func errKeyAt(key string, id SnapshotID, parent error) error {
	return KeyError{
		Key:      key,
		Snapshot: option.Some(id),
		parent:   parent,
	}
}

// Error returns a string representation of the key error.
func (e KeyError) Error() string {
	if id, ok := e.Snapshot.Get(); ok {
		return fmt.Sprintf("key %q at snapshot %d: %s", e.Key, id, e.parent)
	}

	return fmt.Sprintf("key %q: %s", e.Key, e.parent)
}

// Unwrap returns the underlying sentinel error.
func (e KeyError) Unwrap() error {
	return e.parent
}

// SnapshotError is returned by snapshot operations.
type SnapshotError struct {
	Snapshot SnapshotID
	parent   error
}

func errSnapshot(id SnapshotID, parent error) error {
	if parent == nil {
		return nil
	}

	return SnapshotError{
		Snapshot: id,
		parent:   parent,
	}
}

// Error returns a string representation of the snapshot error.
func (e SnapshotError) Error() string {
	return fmt.Sprintf("snapshot %d: %s", e.Snapshot, e.parent)
}

// Unwrap returns the underlying sentinel error.
func (e SnapshotError) Unwrap() error {
	return e.parent
}
