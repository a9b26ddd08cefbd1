// Package format defines the pluggable per-version SBOM format handlers
// (SPDX 2.3/3.0.0/3.0.1, CycloneDX 1.4/1.5/1.6) behind a uniform
// Handler interface, and a Registry that resolves (format, version)
// pairs to a concrete implementation.
package format

import (
	"fmt"
	"strings"

	"github.com/linksbom/linksbom/internal/model"
)

// Metadata carries document-level values a Handler needs at emit time,
// distinct from the per-component data carried in each model.Component.
type Metadata struct {
	ProjectName   string
	CreatorTool   string
	CreatorVerson string
	Namespace     string // SPDX base namespace; handler appends project/uuid
	SerialNumber  string // CycloneDX urn:uuid:...; handler generates if empty
}

// Handler is the uniform capability surface every format/version
// implementation exposes (spec.md 4.3).
type Handler interface {
	FormatName() string // "SPDX" | "CycloneDX"
	FormatVersion() string
	FileExtension() string
	SupportsFeature(name string) bool

	Emit(components []*model.Component, meta Metadata) (string, error)
	Parse(content string) ([]*model.Component, error)
	Validate(content string) *model.ValidationResult
}

// Registry resolves (format, version) to a concrete Handler. format is
// case-insensitive; "cyclonedx" accepts the alias "cyclone".
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry returns an empty registry; callers populate it with Register.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds h under its own (FormatName, FormatVersion).
func (r *Registry) Register(h Handler) {
	r.handlers[key(h.FormatName(), h.FormatVersion())] = h
}

// ErrUnknownHandler is returned by Resolve when no handler matches.
type ErrUnknownHandler struct {
	Format  string
	Version string
}

func (e *ErrUnknownHandler) Error() string {
	return fmt.Sprintf("format: no handler registered for %s %s", e.Format, e.Version)
}

// Resolve looks up the handler for format/version.
func (r *Registry) Resolve(format, version string) (Handler, error) {
	h, ok := r.handlers[key(format, version)]
	if !ok {
		return nil, &ErrUnknownHandler{Format: format, Version: version}
	}
	return h, nil
}

// normalizeFormat canonicalizes a format name, accepting the "cyclone"
// alias for "cyclonedx".
func normalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "cyclone" {
		f = "cyclonedx"
	}
	return f
}

func key(format, version string) string {
	return normalizeFormat(format) + "@" + version
}
