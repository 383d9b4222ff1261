package version

import "sort"

// Locate returns the index of the rightmost entry whose epoch is less than
// or equal to epoch. Entries must be sorted by epoch with unique epochs.
// The second result is false when every entry is newer than epoch.
func Locate(entries []Entry, epoch Epoch) (int, bool) {
	// First entry strictly newer than epoch; the one before it is visible.
	idx := sort.Search(len(entries), func(i int) bool {
		return entries[i].Epoch > epoch
	})
	if idx == 0 {
		return -1, false
	}

	return idx - 1, true
}
