package signer

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
)

// LoadPrivateKey reads a PEM-encoded private key from path. password, when
// non-empty, is used to decrypt a legacy encrypted PEM block (RFC 1423
// headers); encrypted PKCS#8 ("ENCRYPTED PRIVATE KEY") blocks are not
// decrypted (spec.md 4.6.1). The error messages match the spec's quoted text exactly so
// callers can surface them verbatim.
func LoadPrivateKey(path string, password []byte) (crypto.Signer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrOpenPrivateKeyFile
	}
	return ParsePrivateKeyPEM(data, password)
}

// ParsePrivateKeyPEM decodes and parses a PEM-encoded private key held in
// memory, trying PKCS#1, PKCS#8, and SEC1/EC forms in turn.
func ParsePrivateKeyPEM(data []byte, password []byte) (crypto.Signer, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrLoadPrivateKey
	}

	der := block.Bytes
	if len(password) > 0 {
		decrypted, decErr := x509.DecryptPEMBlock(block, password) //nolint:staticcheck // no replacement for password-protected PEM in stdlib
		if decErr != nil {
			return nil, ErrLoadPrivateKey
		}
		der = decrypted
	}

	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return key, nil
	}
	if key, err := x509.ParseECPrivateKey(der); err == nil {
		return key, nil
	}
	if key, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		signer, ok := key.(crypto.Signer)
		if !ok {
			return nil, ErrLoadPrivateKey
		}
		return signer, nil
	}

	return nil, ErrLoadPrivateKey
}

// LoadCertificate reads and parses a PEM-encoded X.509 certificate.
func LoadCertificate(path string) (*x509.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrOpenCertificateFile
	}
	return ParseCertificatePEM(data)
}

// ParseCertificatePEM decodes and parses a PEM-encoded X.509 certificate
// held in memory.
func ParseCertificatePEM(data []byte) (*x509.Certificate, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrLoadCertificate
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, ErrLoadCertificate
	}
	return cert, nil
}

// LoadPublicKey reads a PEM-encoded SubjectPublicKeyInfo public key.
func LoadPublicKey(path string) (crypto.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrOpenPublicKeyFile
	}
	return ParsePublicKeyPEM(data)
}

// ParsePublicKeyPEM decodes and parses a PEM-encoded SubjectPublicKeyInfo
// public key held in memory.
func ParsePublicKeyPEM(data []byte) (crypto.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrLoadPublicKey
	}
	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, ErrLoadPublicKey
	}
	return key, nil
}

// publicKeyFromSigner extracts the crypto.PublicKey from a loaded private
// key, covering the three key types this package signs with.
func publicKeyFromSigner(signer crypto.Signer) crypto.PublicKey {
	switch k := signer.(type) {
	case *rsa.PrivateKey:
		return &k.PublicKey
	case *ecdsa.PrivateKey:
		return &k.PublicKey
	case ed25519.PrivateKey:
		return k.Public()
	default:
		return signer.Public()
	}
}
