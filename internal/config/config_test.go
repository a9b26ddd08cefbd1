package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore_Load_MissingFileReturnsZeroValue(t *testing.T) {
	s := NewStoreInDir(t.TempDir())
	cfg, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Format != "" {
		t.Errorf("expected zero-value Config, got %+v", cfg)
	}
	if !cfg.TransitiveEnabled() {
		t.Error("expected TransitiveEnabled default to be true")
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewStoreInDir(dir)

	disabled := false
	want := Config{
		Format:                 "cyclonedx",
		CycloneDXVersion:       "1.6",
		TransitiveDependencies: &disabled,
		Output:                 "sbom.json",
		Signing: Signing{
			PrivateKey: "keys/signer.pem",
			Algorithm:  "RS256",
		},
	}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Format != want.Format || got.CycloneDXVersion != want.CycloneDXVersion {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if got.TransitiveEnabled() {
		t.Error("expected TransitiveEnabled to be false after explicit override")
	}
	if got.Signing.PrivateKey != want.Signing.PrivateKey {
		t.Errorf("Signing.PrivateKey = %q, want %q", got.Signing.PrivateKey, want.Signing.PrivateKey)
	}
}

func TestStore_Load_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFilename)
	s := NewStore(path)
	if err := os.WriteFile(path, []byte("format: [unterminated"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := s.Load(); err == nil {
		t.Error("expected error for invalid YAML")
	}
}
