package snapstore_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	snapstore "github.com/tarantool/go-snapstore"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected snapstore.ErrorKind
	}{
		{"nil", nil, snapstore.KindNone},
		{"sentinel", snapstore.ErrInvalidKey, snapstore.KindInvalidKey},
		{"wrapped", fmt.Errorf("outer: %w", snapstore.ErrKeyDeletedAtSnapshot), snapstore.KindKeyDeletedAtSnapshot},
		{"snapshot error", snapstore.ErrSnapshotAlreadyDeleted, snapstore.KindSnapshotAlreadyDeleted},
		{"foreign", errors.New("boom"), snapstore.KindUnknown},
		{"unknown operation", snapstore.ErrUnknownOperation, snapstore.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, snapstore.KindOf(tt.err))
		})
	}
}

func TestErrorKind_RoundTrip(t *testing.T) {
	t.Parallel()

	kinds := []snapstore.ErrorKind{
		snapstore.KindNone,
		snapstore.KindInvalidKey,
		snapstore.KindKeyNotFound,
		snapstore.KindKeyNotFoundAtSnapshot,
		snapstore.KindKeyDeletedAtSnapshot,
		snapstore.KindSnapshotNotFound,
		snapstore.KindSnapshotAlreadyDeleted,
		snapstore.KindSnapshotDeleted,
		snapstore.KindUnknown,
	}

	for _, kind := range kinds {
		parsed, ok := snapstore.ParseErrorKind(kind.String())
		assert.True(t, ok, kind.String())
		assert.Equal(t, kind, parsed)

		if err := kind.Err(); err != nil {
			assert.Equal(t, kind, snapstore.KindOf(err))
		}
	}

	assert.NoError(t, snapstore.KindNone.Err())
	assert.NoError(t, snapstore.KindUnknown.Err())
	assert.Equal(t, "Unknown", snapstore.ErrorKind(99).String())

	_, ok := snapstore.ParseErrorKind("Bogus")
	assert.False(t, ok)
}
