// Package options implements generic functional options.
package options

// Callback mutates a configuration value of type T.
type Callback[T any] func(*T)

// Apply starts from defaults and runs every non-nil callback in order.
func Apply[T any](defaults T, cbs ...Callback[T]) T {
	opts := defaults

	for _, cb := range cbs {
		if cb != nil {
			cb(&opts)
		}
	}

	return opts
}
