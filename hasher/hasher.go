// Package hasher provides the hash functions used for snapshot digests.
package hasher

import (
	"crypto/sha1" //nolint:gosec
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
)

var (
	// ErrDataIsNil is returned if the passed data is nil.
	ErrDataIsNil = errors.New("data is nil")
	// ErrUnknownHasher is returned by ByName for unsupported names.
	ErrUnknownHasher = errors.New("unknown hasher")
)

// Hasher computes a digest over a byte slice.
// Implementations are stateless and safe for concurrent use.
type Hasher interface {
	Name() string
	Hash(data []byte) ([]byte, error)
}

type hasher struct {
	name    string
	newHash func() hash.Hash
}

// NewSHA256Hasher creates a sha256 Hasher.
func NewSHA256Hasher() Hasher {
	return hasher{name: "sha256", newHash: sha256.New}
}

// NewSHA1Hasher creates a sha1 Hasher.
func NewSHA1Hasher() Hasher {
	return hasher{name: "sha1", newHash: sha1.New} //nolint:gosec
}

// ByName returns the hasher registered under name.
func ByName(name string) (Hasher, error) {
	switch name {
	case "sha256":
		return NewSHA256Hasher(), nil
	case "sha1":
		return NewSHA1Hasher(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHasher, name)
	}
}

// Name implements Hasher interface.
func (h hasher) Name() string {
	return h.name
}

// Hash implements Hasher interface.
func (h hasher) Hash(data []byte) ([]byte, error) {
	if data == nil {
		return nil, ErrDataIsNil
	}

	sum := h.newHash()

	n, err := sum.Write(data)
	if n < len(data) || err != nil {
		return nil, fmt.Errorf("failed to write data: %w", err)
	}

	return sum.Sum(nil), nil
}
