// Package purl provides Package URL (PURL) generation for linked
// components. PURLs are a standardized way to identify software packages
// across ecosystems. See: https://github.com/package-url/purl-spec
//
// This package is used by:
// - SBOM generation (CycloneDX, SPDX)
// - the comparator, which reads PURL back out of parsed components
package purl

import (
	"fmt"
	"net/url"
	"strings"
)

// Type is the package manager component of a PURL (spec.md 3.1:
// package_manager is one of "conan", "vcpkg", "system", "generic").
type Type string

// PURL type constants for package managers recognized during linking.
const (
	TypeConan   Type = "conan"
	TypeVcpkg   Type = "vcpkg"
	TypeSystem  Type = "system"
	TypeGeneric Type = "generic"
)

// PURL represents a Package URL.
type PURL struct {
	Type       Type
	Namespace  string
	Name       string
	Version    string
	Qualifiers map[string]string
	Subpath    string
}

// String formats the PURL as "pkg:<type>/[<namespace>/]<name>[@<version>]".
func (p *PURL) String() string {
	if p == nil || p.Type == "" || p.Name == "" {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("pkg:")
	sb.WriteString(string(p.Type))
	sb.WriteRune('/')

	if p.Namespace != "" {
		sb.WriteString(url.PathEscape(p.Namespace))
		sb.WriteRune('/')
	}

	sb.WriteString(url.PathEscape(p.Name))

	if p.Version != "" {
		sb.WriteRune('@')
		sb.WriteString(url.PathEscape(p.Version))
	}

	if len(p.Qualifiers) > 0 {
		sb.WriteRune('?')
		first := true
		for k, v := range p.Qualifiers {
			if !first {
				sb.WriteRune('&')
			}
			sb.WriteString(url.QueryEscape(k))
			sb.WriteRune('=')
			sb.WriteString(url.QueryEscape(v))
			first = false
		}
	}

	if p.Subpath != "" {
		sb.WriteRune('#')
		sb.WriteString(p.Subpath)
	}

	return sb.String()
}

// ToType maps an arbitrary package_manager string to a known Type,
// defaulting to TypeGeneric for anything unrecognized.
func ToType(packageManager string) Type {
	switch Type(strings.ToLower(packageManager)) {
	case TypeConan, TypeVcpkg, TypeSystem:
		return Type(strings.ToLower(packageManager))
	default:
		return TypeGeneric
	}
}

// New builds a PURL from a component's package manager, name, and version.
// Returns nil if name is empty (there is nothing to identify).
func New(packageManager, name, version string) *PURL {
	if name == "" {
		return nil
	}
	return &PURL{
		Type:    ToType(packageManager),
		Name:    name,
		Version: version,
	}
}

// Build is a convenience wrapper returning the formatted string directly.
func Build(packageManager, name, version string) string {
	return New(packageManager, name, version).String()
}

// Parse extracts the package manager token from a PURL string of the form
// "pkg:<type>/...". It is deliberately lenient: CycloneDX/SPDX parsing only
// needs the type to recover package_manager, not a full purl-spec parse.
func Parse(s string) (Type, error) {
	const prefix = "pkg:"
	if !strings.HasPrefix(s, prefix) {
		return "", fmt.Errorf("purl: %q missing %q prefix", s, prefix)
	}
	rest := s[len(prefix):]
	slash := strings.IndexByte(rest, '/')
	if slash < 0 {
		return "", fmt.Errorf("purl: %q missing type separator", s)
	}
	return Type(rest[:slash]), nil
}
