package signer

import "errors"

// Sentinel errors for signer state-machine transitions and key loading
// (spec.md 4.6.1, 4.6.7). Structured error messages are returned verbatim
// by Error() where the spec quotes exact text.
var (
	ErrOpenPrivateKeyFile   = errors.New("Failed to open private key file")
	ErrLoadPrivateKey       = errors.New("Failed to load private key (check password if encrypted)")
	ErrOpenCertificateFile  = errors.New("Failed to open certificate file")
	ErrLoadCertificate      = errors.New("Failed to load certificate")
	ErrOpenPublicKeyFile    = errors.New("Failed to open public key file")
	ErrLoadPublicKey        = errors.New("Failed to load public key")
	ErrNoPrivateKey         = errors.New("No private key loaded")
	ErrNoPublicKey          = errors.New("No public key loaded")
	ErrNoSignatureInSBOM    = errors.New("No signature found in SBOM")
	ErrUnsupportedKeyType   = errors.New("signer: unsupported key type")
	ErrUnsupportedAlgorithm = errors.New("signer: unsupported algorithm")
)
