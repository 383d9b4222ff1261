package version_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarantool/go-option"

	"github.com/tarantool/go-snapstore/version"
)

func some(s string) option.Generic[[]byte] {
	return option.Some([]byte(s))
}

func TestChain_WriteAppendsNewEpochs(t *testing.T) {
	t.Parallel()

	chain := version.NewChain()

	require.NoError(t, chain.Write(0, some("apple")))
	require.NoError(t, chain.Write(1, some("ant")))
	require.NoError(t, chain.Write(3, option.None[[]byte]()))

	entries := chain.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, version.Epoch(0), entries[0].Epoch)
	assert.Equal(t, version.Epoch(1), entries[1].Epoch)
	assert.Equal(t, version.Epoch(3), entries[2].Epoch)
	assert.True(t, entries[2].IsTombstone())
	assert.False(t, entries[1].IsTombstone())
}

func TestChain_WriteCoalescesSameEpoch(t *testing.T) {
	t.Parallel()

	chain := version.NewChain()

	require.NoError(t, chain.Write(2, some("first")))
	require.NoError(t, chain.Write(2, some("second")))
	require.NoError(t, chain.Write(2, some("third")))

	require.Equal(t, 1, chain.Len())

	entry, ok := chain.Resolve(2)
	require.True(t, ok)

	value, ok := entry.Value.Get()
	require.True(t, ok)
	assert.Equal(t, []byte("third"), value)
}

func TestChain_WriteCoalescesTombstone(t *testing.T) {
	t.Parallel()

	chain := version.NewChain()

	require.NoError(t, chain.Write(0, some("value")))
	require.NoError(t, chain.Write(0, option.None[[]byte]()))

	require.Equal(t, 1, chain.Len())

	entry, ok := chain.Resolve(0)
	require.True(t, ok)
	assert.True(t, entry.IsTombstone())
}

func TestChain_WriteRejectsOutOfOrder(t *testing.T) {
	t.Parallel()

	chain := version.NewChain()
	require.NoError(t, chain.Write(5, some("five")))

	err := chain.Write(4, some("four"))
	require.ErrorIs(t, err, version.ErrOutOfOrder)

	var orderErr version.OutOfOrderError
	require.ErrorAs(t, err, &orderErr)
	assert.Equal(t, version.Epoch(4), orderErr.Epoch)
	assert.Equal(t, version.Epoch(5), orderErr.Tail)

	assert.Equal(t, 1, chain.Len(), "rejected write must not change the chain")
}

func TestChain_ResolveEmpty(t *testing.T) {
	t.Parallel()

	_, ok := version.NewChain().Resolve(10)
	assert.False(t, ok)
}

func TestChain_EntriesIsCopy(t *testing.T) {
	t.Parallel()

	chain := version.NewChain()
	require.NoError(t, chain.Write(0, some("a")))

	entries := chain.Entries()
	entries[0].Epoch = 42

	assert.Equal(t, version.Epoch(0), chain.Entries()[0].Epoch)
}

func TestChain_Trim(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		epoch   version.Epoch
		dropped int
		left    []version.Epoch
	}{
		{"before first entry", 0, 0, []version.Epoch{1, 3, 5}},
		{"at first entry", 1, 0, []version.Epoch{1, 3, 5}},
		{"between entries", 4, 1, []version.Epoch{3, 5}},
		{"at last entry", 5, 2, []version.Epoch{5}},
		{"past last entry", 9, 2, []version.Epoch{5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			chain := version.NewChain()
			for _, e := range []version.Epoch{1, 3, 5} {
				require.NoError(t, chain.Write(e, some("v")))
			}

			assert.Equal(t, tt.dropped, chain.Trim(tt.epoch))

			epochs := make([]version.Epoch, 0, chain.Len())
			for _, e := range chain.Entries() {
				epochs = append(epochs, e.Epoch)
			}

			assert.Equal(t, tt.left, epochs)
		})
	}
}

func TestChain_ConcurrentWritersAndReaders(t *testing.T) {
	t.Parallel()

	const writers = 8

	chain := version.NewChain()
	require.NoError(t, chain.Write(0, some("base")))

	var wg sync.WaitGroup

	wg.Add(writers * 2)

	for range writers {
		go func() {
			defer wg.Done()

			assert.NoError(t, chain.Write(1, some("next")))
		}()

		go func() {
			defer wg.Done()

			entry, ok := chain.Resolve(0)
			assert.True(t, ok)
			assert.Equal(t, []byte("base"), entry.Value.UnwrapOr(nil))
		}()
	}

	wg.Wait()

	assert.Equal(t, 2, chain.Len())
}
