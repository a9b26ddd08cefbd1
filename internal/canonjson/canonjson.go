// Package canonjson produces a deterministic byte serialization of a JSON
// value: sorted object keys, no insignificant whitespace, minimal escaping,
// and shortest round-trip number formatting. It is the basis for CycloneDX
// JSF signatures (internal/signer), where signing over non-canonical bytes
// would make signatures irreproducible across encoders.
package canonjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ExcludePredicate decides whether the field at path should be omitted from
// the canonical output. path looks like "signature" or
// "components[0].signature".
type ExcludePredicate func(path string) bool

// DefaultExclude matches any key named "signature" at any depth.
func DefaultExclude(path string) bool {
	return path == "signature" || strings.HasSuffix(path, ".signature")
}

// Parse decodes JSON bytes into the generic representation Canonicalize
// expects: numbers are preserved as json.Number so that Canonicalize can
// reproduce their original textual form where the rules require it.
func Parse(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("canonjson: parse: %w", err)
	}
	return v, nil
}

// Canonicalize renders v as canonical JSON bytes, applying predicate (or
// DefaultExclude when nil) to omit matching fields. It returns the bytes and
// the JSON-pointer-like paths of every field that was excluded.
//
// Canonicalize(v) == Canonicalize(Parse(Canonicalize(v))) for any v produced
// by Parse — the core testable property of this package.
func Canonicalize(v interface{}, predicate ExcludePredicate) ([]byte, []string, error) {
	if predicate == nil {
		predicate = DefaultExclude
	}
	w := &writer{predicate: predicate}
	var buf bytes.Buffer
	if err := w.write(&buf, v, ""); err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), w.excludes, nil
}

// MarshalCanonical marshals v with encoding/json, reparses it into the
// generic representation, and canonicalizes the result. Use this when v is
// a Go struct (e.g. a freshly-built model.Document) rather than already-
// decoded generic JSON.
func MarshalCanonical(v interface{}, predicate ExcludePredicate) ([]byte, []string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("canonjson: marshal: %w", err)
	}
	parsed, err := Parse(raw)
	if err != nil {
		return nil, nil, err
	}
	return Canonicalize(parsed, predicate)
}

type writer struct {
	predicate ExcludePredicate
	excludes  []string
}

func (w *writer) write(buf *bytes.Buffer, v interface{}, path string) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case json.Number:
		s, err := formatNumber(val)
		if err != nil {
			return err
		}
		buf.WriteString(s)
		return nil
	case float64:
		return w.write(buf, json.Number(strconv.FormatFloat(val, 'g', -1, 64)), path)
	case string:
		buf.WriteString(escapeString(val))
		return nil
	case map[string]interface{}:
		return w.writeObject(buf, val, path)
	case []interface{}:
		return w.writeArray(buf, val, path)
	default:
		return fmt.Errorf("canonjson: unsupported value of type %T at %q", v, path)
	}
}

func (w *writer) writeObject(buf *bytes.Buffer, obj map[string]interface{}, path string) error {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf.WriteByte('{')
	first := true
	for _, k := range keys {
		childPath := k
		if path != "" {
			childPath = path + "." + k
		}
		if w.predicate(childPath) {
			w.excludes = append(w.excludes, childPath)
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.WriteString(escapeString(k))
		buf.WriteByte(':')
		if err := w.write(buf, obj[k], childPath); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func (w *writer) writeArray(buf *bytes.Buffer, arr []interface{}, path string) error {
	buf.WriteByte('[')
	for i, item := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		childPath := fmt.Sprintf("%s[%d]", path, i)
		if err := w.write(buf, item, childPath); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

// formatNumber renders a json.Number per the canonicalization rules:
// integers without a fractional part, floats with the shortest round-trip
// representation, and -0 normalized to 0.
func formatNumber(n json.Number) (string, error) {
	s := string(n)
	if !strings.ContainsAny(s, ".eE") {
		if s == "-0" {
			return "0", nil
		}
		return s, nil
	}
	f, err := n.Float64()
	if err != nil {
		return "", fmt.Errorf("canonjson: invalid number %q: %w", s, err)
	}
	if f == 0 {
		return "0", nil
	}
	return strconv.FormatFloat(f, 'g', -1, 64), nil
}

// escapeString encodes s as a JSON string literal, escaping only the
// JSF-mandated set: quote, backslash, and control characters via \uXXXX.
// Non-ASCII bytes are passed through unescaped.
func escapeString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			b.WriteString(`\"`)
		case c == '\\':
			b.WriteString(`\\`)
		case c < 0x20:
			fmt.Fprintf(&b, `\u%04x`, c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
