// Package merge unions components parsed from N SBOM documents into a
// single model.Document, resolving conflicts by first-occurrence-wins.
package merge

import (
	"os"

	"github.com/linksbom/linksbom/internal/format"
	"github.com/linksbom/linksbom/internal/model"
)

// Merger parses each input SBOM with the registry's handlers (via format
// auto-detection) and unions their components.
type Merger struct {
	registry *format.Registry
}

// New constructs a Merger backed by registry.
func New(registry *format.Registry) *Merger {
	return &Merger{registry: registry}
}

// MergeFiles reads each path in paths, parses it, and unions the result by
// key `name + ":" + version`; the first occurrence of a key wins
// (spec.md 4.5).
func (m *Merger) MergeFiles(paths []string) ([]*model.Component, error) {
	contents := make([]string, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		contents = append(contents, string(data))
	}
	return m.MergeContents(contents)
}

// MergeContents parses each SBOM document's raw content and unions the
// result (first occurrence wins).
func (m *Merger) MergeContents(contents []string) ([]*model.Component, error) {
	seen := make(map[string]bool)
	var merged []*model.Component

	for _, content := range contents {
		detectedFormat, version, err := format.Detect(content)
		if err != nil {
			return nil, err
		}
		handler, err := m.registry.Resolve(detectedFormat, version)
		if err != nil {
			return nil, err
		}
		components, err := handler.Parse(content)
		if err != nil {
			return nil, err
		}

		for _, c := range components {
			key := c.Name + ":" + c.Version
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, c)
		}
	}

	return merged, nil
}

// Emit renders the merged components through the handler for
// (outputFormat, outputVersion).
func (m *Merger) Emit(components []*model.Component, outputFormat, outputVersion string, meta format.Metadata) (string, error) {
	handler, err := m.registry.Resolve(outputFormat, outputVersion)
	if err != nil {
		return "", err
	}
	return handler.Emit(components, meta)
}
