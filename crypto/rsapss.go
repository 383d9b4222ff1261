package crypto

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/tarantool/go-snapstore/hasher"
)

var (
	// ErrNoKey is returned when a signer or verifier was built without a key.
	ErrNoKey = errors.New("key is not set")
	// ErrBadSignature is returned when a signature does not match the data.
	ErrBadSignature = errors.New("signature mismatch")
)

const rsaPSSName = "RSASSA-PSS"

//nolint:gochecknoglobals
var pssOptions = &rsa.PSSOptions{
	SaltLength: rsa.PSSSaltLengthEqualsHash,
	Hash:       crypto.SHA256,
}

// RSAPSSSigner signs SHA-256 digests with RSASSA-PSS.
type RSAPSSSigner struct {
	key    *rsa.PrivateKey
	hasher hasher.Hasher
}

// NewRSAPSSSigner creates a signer for key.
func NewRSAPSSSigner(key *rsa.PrivateKey) RSAPSSSigner {
	return RSAPSSSigner{
		key:    key,
		hasher: hasher.NewSHA256Hasher(),
	}
}

// Name implements Signer interface.
func (RSAPSSSigner) Name() string {
	return rsaPSSName
}

// Sign implements Signer interface.
func (s RSAPSSSigner) Sign(data []byte) ([]byte, error) {
	if s.key == nil {
		return nil, fmt.Errorf("failed to sign: %w", ErrNoKey)
	}

	digest, err := s.hasher.Hash(data)
	if err != nil {
		return nil, fmt.Errorf("failed to get hash: %w", err)
	}

	signature, err := rsa.SignPSS(rand.Reader, s.key, crypto.SHA256, digest, pssOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}

	return signature, nil
}

// RSAPSSVerifier checks signatures made by RSAPSSSigner.
type RSAPSSVerifier struct {
	key    *rsa.PublicKey
	hasher hasher.Hasher
}

// NewRSAPSSVerifier creates a verifier for key.
func NewRSAPSSVerifier(key *rsa.PublicKey) RSAPSSVerifier {
	return RSAPSSVerifier{
		key:    key,
		hasher: hasher.NewSHA256Hasher(),
	}
}

// Name implements Verifier interface.
func (RSAPSSVerifier) Name() string {
	return rsaPSSName
}

// Verify implements Verifier interface.
func (v RSAPSSVerifier) Verify(data []byte, signature []byte) error {
	if v.key == nil {
		return fmt.Errorf("failed to verify: %w", ErrNoKey)
	}

	digest, err := v.hasher.Hash(data)
	if err != nil {
		return fmt.Errorf("failed to get hash: %w", err)
	}

	err = rsa.VerifyPSS(v.key, crypto.SHA256, digest, signature, pssOptions)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadSignature, err)
	}

	return nil
}
