package snapstore

import (
	"go.uber.org/zap"

	"github.com/tarantool/go-snapstore/internal/options"
)

const (
	defaultWatchBuffer = 100
)

// config contains configuration options for store instances.
type config struct {
	logger          *zap.Logger
	watchBuffer     int
	compactOnDelete bool
}

func defaultConfig() config {
	return config{
		logger:          zap.NewNop(),
		watchBuffer:     defaultWatchBuffer,
		compactOnDelete: false,
	}
}

// Option is a function that configures store options.
type Option = options.Callback[config]

// WithLogger sets the logger used for snapshot lifecycle and compaction
// messages. A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger == nil {
			logger = zap.NewNop()
		}

		cfg.logger = logger
	}
}

// WithWatchBuffer sets the channel capacity of new watches. Events that do
// not fit into a full channel are dropped.
func WithWatchBuffer(size int) Option {
	return func(cfg *config) {
		if size > 0 {
			cfg.watchBuffer = size
		}
	}
}

// WithCompactOnSnapshotDelete makes every successful DeleteSnapshot run
// Compact, dropping history no live snapshot can read.
func WithCompactOnSnapshotDelete() Option {
	return func(cfg *config) {
		cfg.compactOnDelete = true
	}
}

// rangeOptions contains configuration options for range operations.
type rangeOptions struct {
	Prefix string // Prefix filter for range queries.
	Limit  int    // Maximum number of results to return.
}

// RangeOption is a function that configures range operation options.
type RangeOption func(*rangeOptions)

// WithPrefix configures a range operation to filter keys by the specified prefix.
func WithPrefix(prefix string) RangeOption {
	return func(opts *rangeOptions) {
		opts.Prefix = prefix
	}
}

// WithLimit configures a range operation to limit the number of results returned.
func WithLimit(limit int) RangeOption {
	return func(opts *rangeOptions) {
		opts.Limit = limit
	}
}
