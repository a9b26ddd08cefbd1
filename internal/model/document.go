package model

import (
	"sort"
	"time"
)

// Format is the SBOM family a Document belongs to.
type Format string

// Supported formats.
const (
	FormatSPDX      Format = "SPDX"
	FormatCycloneDX Format = "CycloneDX"
)

// Document is an ordered envelope around a set of Components plus metadata.
//
// Lifecycle: constructed empty, mutated only by the Generator during
// ingestion, frozen at emit.
type Document struct {
	Format  Format
	Version string

	Created           time.Time
	CreatorTool       string
	Name              string
	DocumentNamespace string // SPDX
	SerialNumber      string // CycloneDX, urn:uuid form
	DataLicense       string

	// components is addressed by canonical file path. Iteration for
	// emission must go through SortedComponents for deterministic output.
	components map[string]*Component
	order      []string // insertion order of keys, for stable dedup

	Signature *Signature
}

// NewDocument constructs an empty Document for the given format/version.
func NewDocument(format Format, version string) *Document {
	return &Document{
		Format:      format,
		Version:     version,
		Created:     time.Now().UTC(),
		DataLicense: "CC0-1.0",
		components:  make(map[string]*Component),
	}
}

// CreatedISO8601 renders Created with millisecond precision and a Z suffix.
func (d *Document) CreatedISO8601() string {
	return d.Created.UTC().Format("2006-01-02T15:04:05.000Z")
}

// Add inserts the component keyed by its canonical file path. An existing
// entry is never replaced: Add returns false if the key was already present
// (caller may treat as a silent no-op, matching Generator dedup semantics).
func (d *Document) Add(key string, c *Component) bool {
	if d.components == nil {
		d.components = make(map[string]*Component)
	}
	if _, exists := d.components[key]; exists {
		return false
	}
	d.components[key] = c
	d.order = append(d.order, key)
	return true
}

// Has reports whether key is already present.
func (d *Document) Has(key string) bool {
	_, ok := d.components[key]
	return ok
}

// Len returns the number of components in the document.
func (d *Document) Len() int {
	return len(d.components)
}

// Components returns the components in insertion order (not the order
// used for deterministic emission — see SortedComponents).
func (d *Document) Components() []*Component {
	out := make([]*Component, 0, len(d.order))
	for _, k := range d.order {
		out = append(out, d.components[k])
	}
	return out
}

// SortedComponents returns components sorted by BOMRef, the deterministic
// projection required so that emitted bytes (and therefore signatures)
// are reproducible regardless of the underlying map's iteration order.
func (d *Document) SortedComponents() []*Component {
	out := d.Components()
	sort.Slice(out, func(i, j int) bool {
		return out[i].BOMRef() < out[j].BOMRef()
	})
	return out
}
