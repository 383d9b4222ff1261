// Package crypto signs and verifies snapshot manifests.
package crypto

// Signer produces signatures over arbitrary data.
type Signer interface {
	// Name returns name of the signature algorithm.
	Name() string
	// Sign returns signature for passed data.
	Sign(data []byte) ([]byte, error)
}

// Verifier checks signatures produced by a matching Signer.
type Verifier interface {
	// Name returns name of the signature algorithm.
	Name() string
	// Verify returns nil when signature matches data.
	Verify(data []byte, signature []byte) error
}
