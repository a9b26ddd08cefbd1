package model

// Algorithm is a supported JSF signature algorithm.
type Algorithm string

// Supported signature algorithms.
const (
	AlgRS256   Algorithm = "RS256"
	AlgRS384   Algorithm = "RS384"
	AlgRS512   Algorithm = "RS512"
	AlgES256   Algorithm = "ES256"
	AlgES384   Algorithm = "ES384"
	AlgES512   Algorithm = "ES512"
	AlgEd25519 Algorithm = "Ed25519"
)

// Valid reports whether a is one of the seven supported algorithms.
func (a Algorithm) Valid() bool {
	switch a {
	case AlgRS256, AlgRS384, AlgRS512, AlgES256, AlgES384, AlgES512, AlgEd25519:
		return true
	default:
		return false
	}
}

// JWK is a minimal JWK-style public key descriptor, sufficient to identify
// the key type without pulling in a full JOSE stack (the core never
// verifies a JWK itself; it is carried as a descriptor alongside the
// signature for the verifier's convenience).
type JWK struct {
	Kty string `json:"kty"`
	Crv string `json:"crv,omitempty"`
	N   string `json:"n,omitempty"`
	E   string `json:"e,omitempty"`
	X   string `json:"x,omitempty"`
	Y   string `json:"y,omitempty"`
}

// Signature is the JSF-style signature object embedded at document root
// (and optionally per-component) of a CycloneDX document.
type Signature struct {
	Algorithm Algorithm `json:"algorithm"`
	Value     string    `json:"value"`
	PublicKey *JWK      `json:"publicKey,omitempty"`

	// Legacy/extended fields. A strictly JSF-compliant emission omits
	// all of these; JSF below produces that minimal form.
	KeyID       string   `json:"keyId,omitempty"`
	Certificate string   `json:"certificate,omitempty"`
	Timestamp   string   `json:"timestamp,omitempty"`
	Excludes    []string `json:"excludes,omitempty"`
}

// JSF returns a copy containing only the three JSF-compliant fields:
// algorithm, value, publicKey.
func (s *Signature) JSF() *Signature {
	if s == nil {
		return nil
	}
	return &Signature{
		Algorithm: s.Algorithm,
		Value:     s.Value,
		PublicKey: s.PublicKey,
	}
}
