package watch

// Options contains configuration for watch operations.
type Options struct {
	// Prefix makes the watch match every key starting with the watched key.
	Prefix bool
}

// Option is a function that configures watch operation options.
type Option func(*Options)

// WithPrefix makes the watch match keys by prefix instead of exactly.
func WithPrefix() Option {
	return func(opts *Options) {
		opts.Prefix = true
	}
}

// Matches reports whether key is covered by a watch on watched.
func (o Options) Matches(watched, key string) bool {
	if o.Prefix {
		return len(key) >= len(watched) && key[:len(watched)] == watched
	}

	return key == watched
}
