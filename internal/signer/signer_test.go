package signer

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/linksbom/linksbom/internal/model"
)

func writeRSAPrivateKeyPEM(t *testing.T, dir, name string, key *rsa.PrivateKey) string {
	t.Helper()
	der := x509.MarshalPKCS1PrivateKey(key)
	block := &pem.Block{Type: "RSA PRIVATE KEY", Bytes: der}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

const sampleDocument = `{"bomFormat":"CycloneDX","specVersion":"1.6","version":1,"components":[{"type":"library","bom-ref":"libfoo@1.0.0","name":"libfoo","version":"1.0.0"}]}`

// TestSignEmbedVerify_S4 reproduces scenario S4: sign, embed, and verify a
// round trip with RS256 succeeds with the matching key and fails (with a
// non-empty last error) against a different key.
func TestSignEmbedVerify_S4(t *testing.T) {
	dir := t.TempDir()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	keyPath := writeRSAPrivateKeyPEM(t, dir, "signing.pem", key)

	other, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey other: %v", err)
	}

	signingSigner := New()
	if err := signingSigner.LoadPrivateKey(keyPath, nil); err != nil {
		t.Fatalf("LoadPrivateKey: %v", err)
	}

	sig, err := signingSigner.Sign(sampleDocument, model.AlgRS256)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if sig.Algorithm != model.AlgRS256 {
		t.Errorf("Algorithm = %q, want RS256", sig.Algorithm)
	}
	if sig.Value == "" {
		t.Error("expected non-empty signature value")
	}
	if sig.PublicKey == nil || sig.PublicKey.Kty != "RSA" {
		t.Errorf("expected embedded RSA JWK, got %+v", sig.PublicKey)
	}

	embedded, err := signingSigner.Embed(sampleDocument, sig)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if !strings.Contains(embedded, `"signature"`) {
		t.Fatalf("embedded document missing signature field: %s", embedded)
	}

	verifier := New()
	if err := verifier.LoadPublicKey(mustPublicKeyPath(t, dir, &key.PublicKey)); err != nil {
		t.Fatalf("LoadPublicKey: %v", err)
	}
	ok, err := verifier.Verify(embedded)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("expected verification to succeed with matching key")
	}
	if verifier.LastError() != nil {
		t.Errorf("LastError = %v, want nil after successful verify", verifier.LastError())
	}

	wrongVerifier := New()
	if err := wrongVerifier.LoadPublicKey(mustPublicKeyPath(t, dir, &other.PublicKey)); err != nil {
		t.Fatalf("LoadPublicKey (other): %v", err)
	}
	ok, err = wrongVerifier.Verify(embedded)
	if err != nil {
		t.Fatalf("Verify (other): %v", err)
	}
	if ok {
		t.Fatal("expected verification to fail with a non-matching key")
	}
	if wrongVerifier.LastError() == nil {
		t.Error("expected non-nil LastError after failed verification")
	}
}

func mustPublicKeyPath(t *testing.T, dir string, pub *rsa.PublicKey) string {
	t.Helper()
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		t.Fatalf("MarshalPKIXPublicKey: %v", err)
	}
	block := &pem.Block{Type: "PUBLIC KEY", Bytes: der}
	path := filepath.Join(dir, "public.pem")
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestSign_NoPrivateKey(t *testing.T) {
	s := New()
	_, err := s.Sign(sampleDocument, model.AlgRS256)
	if err != ErrNoPrivateKey {
		t.Errorf("err = %v, want ErrNoPrivateKey", err)
	}
	if s.LastError() != ErrNoPrivateKey {
		t.Errorf("LastError = %v, want ErrNoPrivateKey", s.LastError())
	}
}

func TestVerify_NoSignatureInDocument(t *testing.T) {
	s := New()
	_, err := s.Verify(sampleDocument)
	if err != ErrNoSignatureInSBOM {
		t.Errorf("err = %v, want ErrNoSignatureInSBOM", err)
	}
}

func TestLoadPrivateKey_MissingFile(t *testing.T) {
	s := New()
	err := s.LoadPrivateKey(filepath.Join(t.TempDir(), "missing.pem"), nil)
	if err != ErrOpenPrivateKeyFile {
		t.Errorf("err = %v, want ErrOpenPrivateKeyFile", err)
	}
}

func TestLoadPrivateKey_Unparseable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.pem")
	if err := os.WriteFile(path, []byte("not a pem file"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := New()
	err := s.LoadPrivateKey(path, nil)
	if err != ErrLoadPrivateKey {
		t.Errorf("err = %v, want ErrLoadPrivateKey", err)
	}
}

func TestSign_UnsupportedAlgorithm(t *testing.T) {
	dir := t.TempDir()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	keyPath := writeRSAPrivateKeyPEM(t, dir, "signing.pem", key)

	s := New()
	if err := s.LoadPrivateKey(keyPath, nil); err != nil {
		t.Fatalf("LoadPrivateKey: %v", err)
	}
	_, err = s.Sign(sampleDocument, model.Algorithm("bogus"))
	if err != ErrUnsupportedAlgorithm {
		t.Errorf("err = %v, want ErrUnsupportedAlgorithm", err)
	}
}

func TestEmbedExtractRoundTrip(t *testing.T) {
	dir := t.TempDir()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	keyPath := writeRSAPrivateKeyPEM(t, dir, "signing.pem", key)

	s := New()
	if err := s.LoadPrivateKey(keyPath, nil); err != nil {
		t.Fatalf("LoadPrivateKey: %v", err)
	}
	sig, err := s.Sign(sampleDocument, model.AlgRS256)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	embedded, err := s.Embed(sampleDocument, sig)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	extracted, err := s.Extract(embedded)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if extracted.Value != sig.Value || extracted.Algorithm != sig.Algorithm {
		t.Errorf("extracted signature = %+v, want %+v", extracted, sig)
	}
}
