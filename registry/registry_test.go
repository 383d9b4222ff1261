package registry_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarantool/go-snapstore/registry"
	"github.com/tarantool/go-snapstore/version"
)

func TestRegistry_TakeIssuesSequentialIDs(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	assert.Equal(t, version.Epoch(0), reg.Current())

	for want := range version.Epoch(5) {
		assert.Equal(t, want, reg.Take())
		assert.Equal(t, want+1, reg.Current())
		assert.NoError(t, reg.Check(want))
	}
}

func TestRegistry_Delete(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	first := reg.Take()
	second := reg.Take()

	require.NoError(t, reg.Delete(first))

	require.ErrorIs(t, reg.Delete(first), registry.ErrAlreadyDeleted)
	require.ErrorIs(t, reg.Check(first), registry.ErrDeleted)
	require.NoError(t, reg.Check(second))
}

func TestRegistry_UnknownIDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		taken int
		id    version.Epoch
	}{
		{"no snapshots taken", 0, 0},
		{"current epoch is not issued", 2, 2},
		{"far in the future", 3, 999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reg := registry.New()
			for range tt.taken {
				reg.Take()
			}

			require.ErrorIs(t, reg.Delete(tt.id), registry.ErrNotFound)
			require.ErrorIs(t, reg.Check(tt.id), registry.ErrNotFound)
			assert.Equal(t, version.Epoch(tt.taken), reg.Current(), "failed delete must not move the epoch")
		})
	}
}

func TestRegistry_LiveAndOldest(t *testing.T) {
	t.Parallel()

	reg := registry.New()

	_, ok := reg.OldestLive()
	assert.False(t, ok)
	assert.Empty(t, reg.Live())

	for range 4 {
		reg.Take()
	}

	require.NoError(t, reg.Delete(0))
	require.NoError(t, reg.Delete(2))

	assert.Equal(t, []version.Epoch{1, 3}, reg.Live())

	oldest, ok := reg.OldestLive()
	require.True(t, ok)
	assert.Equal(t, version.Epoch(1), oldest)
}

func TestRegistry_ConcurrentTake(t *testing.T) {
	t.Parallel()

	const takers = 32

	reg := registry.New()
	ids := make(chan version.Epoch, takers)

	var wg sync.WaitGroup

	wg.Add(takers)

	for range takers {
		go func() {
			defer wg.Done()

			ids <- reg.Take()
		}()
	}

	wg.Wait()
	close(ids)

	seen := make(map[version.Epoch]bool, takers)
	for id := range ids {
		assert.False(t, seen[id], "id %d issued twice", id)
		seen[id] = true
	}

	assert.Len(t, seen, takers)
	assert.Equal(t, version.Epoch(takers), reg.Current())
}
