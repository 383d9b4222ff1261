package snapstore

import (
	"go.uber.org/zap"
)

// CompactStats reports the outcome of a compaction.
type CompactStats struct {
	// Floor is the oldest epoch that stays readable.
	Floor SnapshotID
	// Keys is the number of chains inspected.
	Keys int
	// Dropped is the number of removed entries.
	Dropped int
}

// Compact removes version entries that no live snapshot can read. For every
// key it keeps the entry visible at the oldest live snapshot (or at the
// current epoch when no snapshot is live) and everything newer, so reads
// through live snapshots and future snapshots are unaffected.
func (s *Store) Compact() CompactStats {
	s.history.Lock()
	defer s.history.Unlock()

	floor, ok := s.registry.OldestLive()
	if !ok {
		floor = s.registry.Current()
	}

	stats := CompactStats{Floor: floor, Keys: 0, Dropped: 0}

	for _, chain := range s.chains() {
		stats.Keys++
		stats.Dropped += chain.Trim(floor)
	}

	s.logger.Info("history compacted",
		zap.Uint64("floor", uint64(stats.Floor)),
		zap.Int("keys", stats.Keys),
		zap.Int("dropped", stats.Dropped),
	)

	return stats
}
