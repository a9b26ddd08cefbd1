package model

import "testing"

func TestNewComponent_EmptyName(t *testing.T) {
	if _, err := NewComponent("", "1.0.0", "/lib/libfoo.a", FileTypeStaticLibrary); err != ErrEmptyName {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
}

func TestComponent_BOMRef(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		expected string
	}{
		{"libfoo", "1.0.0", "libfoo-1.0.0"},
		{"libfoo", "", "libfoo"},
		{"libfoo", "UNKNOWN", "libfoo"},
	}

	for _, tc := range tests {
		t.Run(tc.name+"/"+tc.version, func(t *testing.T) {
			c, err := NewComponent(tc.name, tc.version, "/x", FileTypeObject)
			if err != nil {
				t.Fatalf("NewComponent: %v", err)
			}
			if got := c.BOMRef(); got != tc.expected {
				t.Errorf("BOMRef() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestComponent_Hash_Equal(t *testing.T) {
	a, _ := NewComponent("libfoo", "1.0.0", "/a/libfoo.so", FileTypeSharedLibrary)
	b, _ := NewComponent("libfoo", "1.0.0", "/b/libfoo.so", FileTypeSharedLibrary)
	a.PURL = "pkg:generic/libfoo@1.0.0"
	b.PURL = "pkg:generic/libfoo@1.0.0"

	if !a.Equal(b) {
		t.Errorf("expected a == b by hash, a.Hash()=%q b.Hash()=%q", a.Hash(), b.Hash())
	}

	c, _ := NewComponent("libfoo", "2.0.0", "/c/libfoo.so", FileTypeSharedLibrary)
	c.PURL = a.PURL
	if a.Equal(c) {
		t.Errorf("expected a != c (different version)")
	}
}

func TestScope_Normalized(t *testing.T) {
	if got := Scope("").Normalized(); got != ScopeRequired {
		t.Errorf("empty scope should normalize to required, got %q", got)
	}
	if got := ScopeOptional.Normalized(); got != ScopeOptional {
		t.Errorf("non-empty scope should pass through, got %q", got)
	}
}

func TestScope_Valid(t *testing.T) {
	tests := []struct {
		scope Scope
		valid bool
	}{
		{"", true},
		{ScopeRequired, true},
		{ScopeOptional, true},
		{ScopeExcluded, true},
		{"bogus", false},
	}
	for _, tc := range tests {
		if got := tc.scope.Valid(); got != tc.valid {
			t.Errorf("Scope(%q).Valid() = %v, want %v", tc.scope, got, tc.valid)
		}
	}
}

func TestComponent_Validate_ChecksumLength(t *testing.T) {
	c, _ := NewComponent("libfoo", "1.0.0", "/a", FileTypeObject)
	c.SetChecksum("SHA256", "deadbeef")
	if err := c.Validate(); err == nil {
		t.Errorf("expected validation error for short SHA256 checksum")
	}

	c.SetChecksum("SHA256", "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef")
	if err := c.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestSPDXFileType23(t *testing.T) {
	tests := map[FileType]string{
		FileTypeExecutable:    "BINARY",
		FileTypeSharedLibrary: "BINARY",
		FileTypeStaticLibrary: "ARCHIVE",
		FileTypeSource:        "SOURCE",
		FileTypeUnknown:       "OTHER",
	}
	for ft, want := range tests {
		if got := SPDXFileType23(ft); got != want {
			t.Errorf("SPDXFileType23(%v) = %q, want %q", ft, got, want)
		}
	}
}

func TestCycloneDXType(t *testing.T) {
	tests := map[FileType]string{
		FileTypeExecutable:    "application",
		FileTypeSharedLibrary: "library",
		FileTypeSource:        "source",
		FileTypeUnknown:       "unknown",
	}
	for ft, want := range tests {
		if got := CycloneDXType(ft); got != want {
			t.Errorf("CycloneDXType(%v) = %q, want %q", ft, got, want)
		}
	}
}
