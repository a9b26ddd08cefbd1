package purl

import "testing"

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		manager string
		pkg     string
		version string
		want    string
	}{
		{"conan with version", "conan", "zlib", "1.3.1", "pkg:conan/zlib@1.3.1"},
		{"vcpkg no version", "vcpkg", "fmt", "", "pkg:vcpkg/fmt"},
		{"system", "system", "libc6", "2.35", "pkg:system/libc6@2.35"},
		{"unknown manager falls back to generic", "homebrew", "openssl", "3.0.0", "pkg:generic/openssl@3.0.0"},
		{"empty manager falls back to generic", "", "libfoo", "1.0.0", "pkg:generic/libfoo@1.0.0"},
		{"empty name yields empty string", "conan", "", "1.0.0", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Build(tc.manager, tc.pkg, tc.version); got != tc.want {
				t.Errorf("Build(%q, %q, %q) = %q, want %q", tc.manager, tc.pkg, tc.version, got, tc.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"pkg:conan/zlib@1.3.1", TypeConan, false},
		{"pkg:generic/libfoo", TypeGeneric, false},
		{"not-a-purl", "", true},
		{"pkg:missing-slash", "", true},
	}

	for _, tc := range tests {
		got, err := Parse(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPURL_String_NilSafe(t *testing.T) {
	var p *PURL
	if got := p.String(); got != "" {
		t.Errorf("nil PURL.String() = %q, want empty", got)
	}
}
