package watch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tarantool/go-snapstore/watch"
)

func TestOptions_Matches(t *testing.T) {
	t.Parallel()

	prefix := watch.Options{Prefix: false}
	watch.WithPrefix()(&prefix)

	tests := []struct {
		name    string
		opts    watch.Options
		watched string
		key     string
		match   bool
	}{
		{"exact match", watch.Options{Prefix: false}, "a", "a", true},
		{"exact mismatch", watch.Options{Prefix: false}, "a", "ab", false},
		{"prefix match", prefix, "user/", "user/1", true},
		{"prefix equal", prefix, "user/", "user/", true},
		{"prefix shorter key", prefix, "user/", "use", false},
		{"empty prefix matches all", prefix, "", "anything", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.match, tt.opts.Matches(tt.watched, tt.key))
		})
	}
}
