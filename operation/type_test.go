package operation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tarantool/go-snapstore/operation"
)

func TestTypeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		typ      operation.Type
		expected string
		write    bool
	}{
		{"TypeGet", operation.TypeGet, "Get", false},
		{"TypePut", operation.TypePut, "Put", true},
		{"TypeDelete", operation.TypeDelete, "Delete", true},
		{"TypeTakeSnapshot", operation.TypeTakeSnapshot, "TakeSnapshot", false},
		{"TypeDeleteSnapshot", operation.TypeDeleteSnapshot, "DeleteSnapshot", false},
		{"UnknownType", operation.Type(99), "Unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.typ.String())
			assert.Equal(t, tt.write, tt.typ.IsWrite())
		})
	}
}
