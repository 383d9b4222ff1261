package snapstore

import (
	"encoding/binary"
	"fmt"

	"github.com/tarantool/go-snapstore/crypto"
	"github.com/tarantool/go-snapstore/hasher"
)

// manifest serializes the contents visible at snapshot id as length-prefixed
// key/value pairs in key order.
func (s *Store) manifest(id SnapshotID) ([]byte, error) {
	kvs, err := s.Range(id)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, 64)

	for _, pair := range kvs {
		buf = binary.AppendUvarint(buf, uint64(len(pair.Key)))
		buf = append(buf, pair.Key...)
		buf = binary.AppendUvarint(buf, uint64(len(pair.Value)))
		buf = append(buf, pair.Value...)
	}

	return buf, nil
}

// Digest hashes the full contents visible at snapshot id. Two snapshots
// with the same visible keys and values have the same digest.
func (s *Store) Digest(id SnapshotID, h hasher.Hasher) ([]byte, error) {
	data, err := s.manifest(id)
	if err != nil {
		return nil, err
	}

	sum, err := h.Hash(data)
	if err != nil {
		return nil, fmt.Errorf("failed to compute %s digest: %w", h.Name(), err)
	}

	return sum, nil
}

// SignSnapshot signs the contents visible at snapshot id.
func (s *Store) SignSnapshot(id SnapshotID, signer crypto.Signer) ([]byte, error) {
	data, err := s.manifest(id)
	if err != nil {
		return nil, err
	}

	signature, err := signer.Sign(data)
	if err != nil {
		return nil, errSnapshot(id, err)
	}

	return signature, nil
}

// VerifySnapshot checks that signature was made over the contents visible
// at snapshot id.
func (s *Store) VerifySnapshot(id SnapshotID, signature []byte, verifier crypto.Verifier) error {
	data, err := s.manifest(id)
	if err != nil {
		return err
	}

	return errSnapshot(id, verifier.Verify(data, signature))
}
