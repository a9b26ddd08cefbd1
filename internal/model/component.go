// Package model defines the core entities shared by every format handler:
// Component, Document, Signature, Difference, and ValidationResult.
package model

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// FileType classifies the artifact a Component represents.
type FileType int

// File type classification values. Zero value is FileTypeUnknown.
const (
	FileTypeUnknown FileType = iota
	FileTypeExecutable
	FileTypeSharedLibrary
	FileTypeStaticLibrary
	FileTypeObject
	FileTypeSource
)

// String returns the canonical lowercase name used in properties and logs.
func (t FileType) String() string {
	switch t {
	case FileTypeExecutable:
		return "executable"
	case FileTypeSharedLibrary:
		return "shared-library"
	case FileTypeStaticLibrary:
		return "static-library"
	case FileTypeObject:
		return "object"
	case FileTypeSource:
		return "source"
	default:
		return "unknown"
	}
}

// Scope describes how a component participates in the build.
type Scope string

// Scope values; empty is treated as ScopeRequired.
const (
	ScopeRequired Scope = "required"
	ScopeOptional Scope = "optional"
	ScopeExcluded Scope = "excluded"
)

// Normalized returns the effective scope, defaulting to ScopeRequired.
func (s Scope) Normalized() Scope {
	if s == "" {
		return ScopeRequired
	}
	return s
}

// Valid reports whether s is empty or one of the three defined scopes.
func (s Scope) Valid() bool {
	switch s {
	case "", ScopeRequired, ScopeOptional, ScopeExcluded:
		return true
	default:
		return false
	}
}

// ErrEmptyName is returned by NewComponent when name is empty.
var ErrEmptyName = errors.New("component name must not be empty")

// Component represents one software artifact discovered during linking.
//
// Mutation is confined to construction and to the Generator during
// ingestion; once inserted into a Document it should be treated as
// immutable by callers.
type Component struct {
	// Identity
	Name     string
	Version  string
	FilePath string
	FileType FileType

	// Provenance
	PackageManager string // "conan", "vcpkg", "system", "generic", ...
	Supplier       string
	Manufacturer   string
	Publisher      string
	Group          string

	// Legal
	License   string
	Copyright string

	// Descriptive
	Description      string
	Scope            Scope
	MimeType         string
	CPE              string
	PURL             string
	Homepage         string
	DownloadLocation string

	// Integrity: algorithm name ("SHA256", "SHA1", ...) -> lowercase hex digest.
	Checksums map[string]string

	// Relationships: ordered identifiers referring to other components'
	// BOMRef or a resolvable path. Order is preserved; dedup is the
	// caller's responsibility.
	Dependencies []string

	// Extensibility: may use dot/colon namespacing, e.g. "external:website".
	Properties map[string]string
}

// NewComponent constructs a Component, validating the name invariant.
func NewComponent(name, version, filePath string, fileType FileType) (*Component, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	return &Component{
		Name:     name,
		Version:  version,
		FilePath: filePath,
		FileType: fileType,
		Scope:    ScopeRequired,
	}, nil
}

// BOMRef computes the identifier used to cross-reference this component
// from CycloneDX dependency graphs and SPDX relationships.
func (c *Component) BOMRef() string {
	if c.Version != "" && c.Version != "UNKNOWN" {
		return c.Name + "-" + c.Version
	}
	return c.Name
}

// Hash returns the canonical equality key: "name:version:type:purl".
func (c *Component) Hash() string {
	return strings.Join([]string{c.Name, c.Version, c.FileType.String(), c.PURL}, ":")
}

// Equal reports whether a and b have the same canonical hash.
func (c *Component) Equal(other *Component) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Hash() == other.Hash()
}

// SetProperty sets a namespaced property value, creating the map if needed.
func (c *Component) SetProperty(key, value string) {
	if c.Properties == nil {
		c.Properties = make(map[string]string)
	}
	c.Properties[key] = value
}

// SetChecksum records a checksum under the given algorithm name.
func (c *Component) SetChecksum(algorithm, hexDigest string) {
	if c.Checksums == nil {
		c.Checksums = make(map[string]string)
	}
	c.Checksums[strings.ToUpper(algorithm)] = strings.ToLower(hexDigest)
}

// Validate checks the invariants that NewComponent cannot guarantee once a
// Component has been mutated directly (e.g. by a MetadataExtractor).
func (c *Component) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if !c.Scope.Valid() {
		return fmt.Errorf("component %q: invalid scope %q", c.Name, c.Scope)
	}
	if sha256, ok := c.Checksums["SHA256"]; ok && len(sha256) != 64 {
		return fmt.Errorf("component %q: SHA256 checksum must be 64 hex chars, got %d", c.Name, len(sha256))
	}
	if sha1, ok := c.Checksums["SHA1"]; ok && len(sha1) != 40 {
		return fmt.Errorf("component %q: SHA1 checksum must be 40 hex chars, got %d", c.Name, len(sha1))
	}
	return nil
}

// BaseName returns the final path element of FilePath, used to synthesize
// placeholder components for unresolved dependencies.
func (c *Component) BaseName() string {
	return filepath.Base(c.FilePath)
}

// SPDXFileType23 maps FileType to the tag-value tokens used by SPDX 2.3
// (see spec.md 4.1: "SPDX 2.3 uses BINARY, SOURCE, ARCHIVE").
func SPDXFileType23(t FileType) string {
	switch t {
	case FileTypeExecutable, FileTypeSharedLibrary, FileTypeObject:
		return "BINARY"
	case FileTypeStaticLibrary:
		return "ARCHIVE"
	case FileTypeSource:
		return "SOURCE"
	default:
		return "OTHER"
	}
}

// SPDXFileType30 maps FileType to the JSON-LD tokens used by SPDX 3.0.x.
// SPDX 3.0 deliberately uses a distinct, lowercase vocabulary from 2.3.
func SPDXFileType30(t FileType) string {
	switch t {
	case FileTypeExecutable:
		return "executable"
	case FileTypeSharedLibrary:
		return "library"
	case FileTypeStaticLibrary:
		return "archive"
	case FileTypeObject:
		return "binary"
	case FileTypeSource:
		return "source"
	default:
		return "other"
	}
}

// CycloneDXType maps FileType to the CycloneDX component "type" enum.
func CycloneDXType(t FileType) string {
	switch t {
	case FileTypeExecutable:
		return "application"
	case FileTypeSharedLibrary, FileTypeStaticLibrary, FileTypeObject:
		return "library"
	case FileTypeSource:
		return "source"
	default:
		return "unknown"
	}
}
