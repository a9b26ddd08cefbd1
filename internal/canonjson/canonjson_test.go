package canonjson

import (
	"sort"
	"testing"
)

func canon(t *testing.T, raw string) string {
	t.Helper()
	v, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse(%q): %v", raw, err)
	}
	out, _, err := Canonicalize(v, nil)
	if err != nil {
		t.Fatalf("Canonicalize(%q): %v", raw, err)
	}
	return string(out)
}

func TestCanonicalize_KeyOrdering(t *testing.T) {
	got := canon(t, `{"b":1,"a":2,"c":3}`)
	want := `{"a":2,"b":1,"c":3}`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCanonicalize_Whitespace(t *testing.T) {
	got := canon(t, "{\n  \"a\" : 1,\n  \"b\": [1, 2, 3]\n}")
	want := `{"a":1,"b":[1,2,3]}`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCanonicalize_Numbers(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"n":1}`, `{"n":1}`},
		{`{"n":1.50}`, `{"n":1.5}`},
		{`{"n":-0}`, `{"n":0}`},
		{`{"n":-0.0}`, `{"n":0}`},
		{`{"n":100}`, `{"n":100}`},
	}
	for _, tc := range tests {
		if got := canon(t, tc.in); got != tc.want {
			t.Errorf("canon(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCanonicalize_StringEscaping(t *testing.T) {
	got := canon(t, `{"s":"a\"b\\c\u0001d\u00e9"}`)
	want := "{\"s\":\"a\\\"b\\\\c\\u0001d\u00e9\"}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCanonicalize_RoundTripStability(t *testing.T) {
	inputs := []string{
		`{"b":{"z":1,"a":[1,2,{"y":2,"x":1}]},"a":"hello","n":1.2500}`,
		`[]`,
		`{}`,
		`null`,
		`"just a string"`,
		`{"components":[{"name":"libfoo","signature":{"value":"x"}}],"signature":{"value":"y"}}`,
	}

	for _, in := range inputs {
		v1, err := Parse([]byte(in))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		c1, _, err := Canonicalize(v1, nil)
		if err != nil {
			t.Fatalf("Canonicalize: %v", err)
		}

		v2, err := Parse(c1)
		if err != nil {
			t.Fatalf("Parse(round2): %v", err)
		}
		c2, _, err := Canonicalize(v2, nil)
		if err != nil {
			t.Fatalf("Canonicalize(round2): %v", err)
		}

		if string(c1) != string(c2) {
			t.Errorf("round-trip unstable for %q:\n  c1=%s\n  c2=%s", in, c1, c2)
		}
	}
}

func TestCanonicalize_ExcludesNestedSignatures(t *testing.T) {
	raw := `{"signature":{"value":"root"},"components":[{"name":"libfoo","signature":{"value":"nested"}}]}`
	v, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, excludes, err := Canonicalize(v, nil)
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}

	outStr := string(out)
	if containsSignatureValue(outStr, "root") || containsSignatureValue(outStr, "nested") {
		t.Errorf("expected all signature fields excluded, got %s", outStr)
	}

	want := []string{"signature", "components[0].signature"}
	sort.Strings(want)
	sort.Strings(excludes)
	if len(excludes) != len(want) {
		t.Fatalf("excludes = %v, want %v", excludes, want)
	}
	for i := range want {
		if excludes[i] != want[i] {
			t.Errorf("excludes[%d] = %q, want %q", i, excludes[i], want[i])
		}
	}
}

func containsSignatureValue(s, needle string) bool {
	return len(s) > 0 && (indexOf(s, needle) >= 0)
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}
