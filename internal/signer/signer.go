// Package signer implements JSF-style (JSON Signature Format) signing and
// verification of SBOM documents: canonicalize the document with the
// signature field excluded, sign the canonical bytes, and embed the result
// back under the document's root "signature" field.
//
// No JOSE/JWT/JWK library appears anywhere in the reference corpus this
// package was grounded on, so signing is built entirely on the standard
// library's crypto/rsa, crypto/ecdsa, crypto/ed25519 and crypto/x509 —
// see DESIGN.md for the justification.
package signer

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/linksbom/linksbom/internal/canonjson"
	"github.com/linksbom/linksbom/internal/model"
)

// state tracks the per-instance signer state machine (spec.md 4.6.7):
// empty -> hasPrivateKey -> (optional) hasCertificate -> signedOnce (repeatable)
// orthogonally: empty -> hasPublicKey -> verifiedOrRejected
type state int

const (
	stateEmpty state = iota
	stateHasPrivateKey
	stateHasCertificate
	stateSignedOnce
)

// Signer holds key material loaded for signing and/or verification and
// tracks the most recent operation's error for callers that poll rather
// than check a returned error (spec.md 4.7's last_error convention).
type Signer struct {
	privateKey  crypto.Signer
	certificate *x509.Certificate
	publicKey   crypto.PublicKey

	signState state
	lastError error
}

// New returns an empty Signer.
func New() *Signer {
	return &Signer{}
}

// LoadPrivateKey loads a PEM private key from path, optionally decrypting
// it with password, and advances the signer into the hasPrivateKey state.
func (s *Signer) LoadPrivateKey(path string, password []byte) error {
	key, err := LoadPrivateKey(path, password)
	if err != nil {
		s.lastError = err
		return err
	}
	s.privateKey = key
	if s.signState < stateHasPrivateKey {
		s.signState = stateHasPrivateKey
	}
	s.lastError = nil
	return nil
}

// LoadCertificate loads a PEM X.509 certificate from path to be embedded
// alongside future signatures, advancing the signer into hasCertificate.
func (s *Signer) LoadCertificate(path string) error {
	cert, err := LoadCertificate(path)
	if err != nil {
		s.lastError = err
		return err
	}
	s.certificate = cert
	if s.signState < stateHasCertificate {
		s.signState = stateHasCertificate
	}
	s.lastError = nil
	return nil
}

// LoadPublicKey loads a PEM SubjectPublicKeyInfo public key from path for
// later Verify calls.
func (s *Signer) LoadPublicKey(path string) error {
	key, err := LoadPublicKey(path)
	if err != nil {
		s.lastError = err
		return err
	}
	s.publicKey = key
	s.lastError = nil
	return nil
}

// LastError returns the error from the most recent operation, or nil.
func (s *Signer) LastError() error {
	return s.lastError
}

// Sign canonicalizes sbomContent (excluding any "signature" field), signs
// the canonical bytes with the loaded private key under alg, and returns the
// resulting model.Signature. alg defaults to RS256 when empty.
func (s *Signer) Sign(sbomContent string, alg model.Algorithm) (*model.Signature, error) {
	if s.privateKey == nil {
		s.lastError = ErrNoPrivateKey
		return nil, ErrNoPrivateKey
	}
	if alg == "" {
		alg = model.AlgRS256
	}
	if !alg.Valid() {
		s.lastError = ErrUnsupportedAlgorithm
		return nil, ErrUnsupportedAlgorithm
	}

	parsed, err := canonjson.Parse([]byte(sbomContent))
	if err != nil {
		s.lastError = err
		return nil, err
	}
	canonical, excludes, err := canonjson.Canonicalize(parsed, canonjson.DefaultExclude)
	if err != nil {
		s.lastError = err
		return nil, err
	}

	value, err := signBytes(s.privateKey, alg, canonical)
	if err != nil {
		s.lastError = err
		return nil, err
	}

	jwk, err := jwkFromPublicKey(publicKeyFromSigner(s.privateKey))
	if err != nil {
		s.lastError = err
		return nil, err
	}

	sig := &model.Signature{
		Algorithm: alg,
		Value:     value,
		PublicKey: jwk,
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		Excludes:  excludes,
	}
	if s.certificate != nil {
		sig.Certificate = base64.StdEncoding.EncodeToString(s.certificate.Raw)
	}

	s.signState = stateSignedOnce
	s.lastError = nil
	return sig, nil
}

// Embed parses document as JSON, sets its root "signature" field to sig,
// and re-serializes with 2-space indentation.
func (s *Signer) Embed(document string, sig *model.Signature) (string, error) {
	var root map[string]interface{}
	if err := json.Unmarshal([]byte(document), &root); err != nil {
		s.lastError = err
		return "", err
	}

	sigBytes, err := json.Marshal(sig)
	if err != nil {
		s.lastError = err
		return "", err
	}
	var sigValue interface{}
	if err := json.Unmarshal(sigBytes, &sigValue); err != nil {
		s.lastError = err
		return "", err
	}
	root["signature"] = sigValue

	out, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		s.lastError = err
		return "", err
	}
	s.lastError = nil
	return string(out), nil
}

// Extract reads the root "signature" field of document.
func (s *Signer) Extract(document string) (*model.Signature, error) {
	var root struct {
		Signature *model.Signature `json:"signature"`
	}
	if err := json.Unmarshal([]byte(document), &root); err != nil {
		s.lastError = err
		return nil, err
	}
	if root.Signature == nil {
		s.lastError = ErrNoSignatureInSBOM
		return nil, ErrNoSignatureInSBOM
	}
	s.lastError = nil
	return root.Signature, nil
}

// Verify extracts the signature embedded in document, recomputes the
// canonical form with every "signature" field excluded, and checks the
// signature against the loaded public key (or the key material embedded in
// sig.PublicKey / sig.Certificate when no public key was loaded).
func (s *Signer) Verify(document string) (bool, error) {
	sig, err := s.Extract(document)
	if err != nil {
		return false, err
	}

	pub := s.publicKey
	if pub == nil {
		pub, err = publicKeyFromSignature(sig)
		if err != nil {
			s.lastError = err
			return false, err
		}
	}
	if pub == nil {
		s.lastError = ErrNoPublicKey
		return false, ErrNoPublicKey
	}

	parsed, err := canonjson.Parse([]byte(document))
	if err != nil {
		s.lastError = err
		return false, err
	}
	canonical, _, err := canonjson.Canonicalize(parsed, canonjson.DefaultExclude)
	if err != nil {
		s.lastError = err
		return false, err
	}

	ok, err := verifyBytes(pub, sig.Algorithm, canonical, sig.Value)
	if err != nil {
		s.lastError = err
		return false, err
	}
	if !ok {
		s.lastError = fmt.Errorf("signer: signature verification failed")
		return false, nil
	}
	s.lastError = nil
	return true, nil
}

// signBytes signs message with key under alg, returning the base64url
// (no padding) encoded signature value.
func signBytes(key crypto.Signer, alg model.Algorithm, message []byte) (string, error) {
	if alg == model.AlgEd25519 {
		ed, ok := key.(ed25519.PrivateKey)
		if !ok {
			return "", ErrUnsupportedKeyType
		}
		sig := ed25519.Sign(ed, message)
		return base64URLEncode(sig), nil
	}

	digest, hash, err := digestFor(alg, message)
	if err != nil {
		return "", err
	}

	switch k := key.(type) {
	case *rsa.PrivateKey:
		sig, err := rsa.SignPKCS1v15(rand.Reader, k, hash, digest)
		if err != nil {
			return "", err
		}
		return base64URLEncode(sig), nil
	case *ecdsa.PrivateKey:
		sig, err := ecdsa.SignASN1(rand.Reader, k, digest)
		if err != nil {
			return "", err
		}
		return base64URLEncode(sig), nil
	default:
		return "", ErrUnsupportedKeyType
	}
}

// verifyBytes verifies signatureValue (base64url, no padding) against
// message under alg using pub.
func verifyBytes(pub crypto.PublicKey, alg model.Algorithm, message []byte, signatureValue string) (bool, error) {
	sig, err := base64.RawURLEncoding.DecodeString(signatureValue)
	if err != nil {
		return false, err
	}

	if alg == model.AlgEd25519 {
		ed, ok := pub.(ed25519.PublicKey)
		if !ok {
			return false, ErrUnsupportedKeyType
		}
		return ed25519.Verify(ed, message, sig), nil
	}

	digest, hash, err := digestFor(alg, message)
	if err != nil {
		return false, err
	}

	switch k := pub.(type) {
	case *rsa.PublicKey:
		err := rsa.VerifyPKCS1v15(k, hash, digest, sig)
		return err == nil, nil
	case *ecdsa.PublicKey:
		return ecdsa.VerifyASN1(k, digest, sig), nil
	default:
		return false, ErrUnsupportedKeyType
	}
}

// digestFor hashes message with the hash function alg requires.
func digestFor(alg model.Algorithm, message []byte) ([]byte, crypto.Hash, error) {
	switch alg {
	case model.AlgRS256, model.AlgES256:
		sum := sha256.Sum256(message)
		return sum[:], crypto.SHA256, nil
	case model.AlgRS384, model.AlgES384:
		sum := sha512.Sum384(message)
		return sum[:], crypto.SHA384, nil
	case model.AlgRS512, model.AlgES512:
		sum := sha512.Sum512(message)
		return sum[:], crypto.SHA512, nil
	default:
		return nil, 0, ErrUnsupportedAlgorithm
	}
}

// publicKeyFromSignature derives a usable crypto.PublicKey from the JWK or
// certificate carried in sig, for verification when no public key file was
// explicitly loaded.
func publicKeyFromSignature(sig *model.Signature) (crypto.PublicKey, error) {
	if sig.Certificate != "" {
		der, err := base64.StdEncoding.DecodeString(sig.Certificate)
		if err != nil {
			return nil, err
		}
		cert, err := x509.ParseCertificate(der)
		if err != nil {
			return nil, err
		}
		return cert.PublicKey, nil
	}
	if sig.PublicKey != nil {
		return publicKeyFromJWK(sig.PublicKey)
	}
	return nil, nil
}

// publicKeyFromJWK reconstructs a crypto.PublicKey from a model.JWK.
func publicKeyFromJWK(jwk *model.JWK) (crypto.PublicKey, error) {
	switch jwk.Kty {
	case "RSA":
		n, err := base64.RawURLEncoding.DecodeString(jwk.N)
		if err != nil {
			return nil, err
		}
		e, err := base64.RawURLEncoding.DecodeString(jwk.E)
		if err != nil {
			return nil, err
		}
		eInt := 0
		for _, b := range e {
			eInt = eInt<<8 | int(b)
		}
		return &rsa.PublicKey{N: new(big.Int).SetBytes(n), E: eInt}, nil
	case "EC":
		curve, err := curveByName(jwk.Crv)
		if err != nil {
			return nil, err
		}
		x, err := base64.RawURLEncoding.DecodeString(jwk.X)
		if err != nil {
			return nil, err
		}
		y, err := base64.RawURLEncoding.DecodeString(jwk.Y)
		if err != nil {
			return nil, err
		}
		return &ecdsa.PublicKey{
			Curve: curve,
			X:     new(big.Int).SetBytes(x),
			Y:     new(big.Int).SetBytes(y),
		}, nil
	case "OKP":
		x, err := base64.RawURLEncoding.DecodeString(jwk.X)
		if err != nil {
			return nil, err
		}
		return ed25519.PublicKey(x), nil
	default:
		return nil, ErrUnsupportedKeyType
	}
}

func curveByName(crv string) (elliptic.Curve, error) {
	switch crv {
	case "P-256":
		return elliptic.P256(), nil
	case "P-384":
		return elliptic.P384(), nil
	case "P-521":
		return elliptic.P521(), nil
	default:
		return nil, ErrUnsupportedKeyType
	}
}
