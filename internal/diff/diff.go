// Package diff compares two sets of components (typically parsed from two
// SBOM documents, possibly in different formats) and produces a list of
// model.Difference entries plus formatted reports.
package diff

import (
	"sort"

	"github.com/linksbom/linksbom/internal/format"
	"github.com/linksbom/linksbom/internal/model"
)

// Comparator parses both sides of a comparison using format
// auto-detection (mixed formats on either side are permitted) and indexes
// them by component name.
type Comparator struct {
	registry *format.Registry
}

// New constructs a Comparator backed by registry.
func New(registry *format.Registry) *Comparator {
	return &Comparator{registry: registry}
}

// Compare parses oldContent and newContent and returns the differences
// between them, indexed by component name (spec.md 4.5).
func (c *Comparator) Compare(oldContent, newContent string) ([]model.Difference, error) {
	oldComponents, err := c.parse(oldContent)
	if err != nil {
		return nil, err
	}
	newComponents, err := c.parse(newContent)
	if err != nil {
		return nil, err
	}

	return CompareComponents(oldComponents, newComponents), nil
}

func (c *Comparator) parse(content string) ([]*model.Component, error) {
	detectedFormat, version, err := format.Detect(content)
	if err != nil {
		return nil, err
	}
	handler, err := c.registry.Resolve(detectedFormat, version)
	if err != nil {
		return nil, err
	}
	return handler.Parse(content)
}

// CompareComponents indexes both slices by name and classifies each name
// as Added, Removed, Modified, or Unchanged (spec.md 4.5).
func CompareComponents(oldComponents, newComponents []*model.Component) []model.Difference {
	oldByName := indexByName(oldComponents)
	newByName := indexByName(newComponents)

	names := make(map[string]bool, len(oldByName)+len(newByName))
	for name := range oldByName {
		names[name] = true
	}
	for name := range newByName {
		names[name] = true
	}

	sortedNames := make([]string, 0, len(names))
	for name := range names {
		sortedNames = append(sortedNames, name)
	}
	sort.Strings(sortedNames)

	diffs := make([]model.Difference, 0, len(sortedNames))
	for _, name := range sortedNames {
		oldC, hasOld := oldByName[name]
		newC, hasNew := newByName[name]

		switch {
		case hasNew && !hasOld:
			diffs = append(diffs, model.Difference{Kind: model.Added, Component: newC})
		case hasOld && !hasNew:
			diffs = append(diffs, model.Difference{Kind: model.Removed, Component: oldC})
		case equalRelevantFields(oldC, newC):
			diffs = append(diffs, model.Difference{Kind: model.Unchanged, Component: newC})
		default:
			diffs = append(diffs, model.Difference{Kind: model.Modified, Component: newC, OldComponent: oldC})
		}
	}

	return diffs
}

func indexByName(components []*model.Component) map[string]*model.Component {
	out := make(map[string]*model.Component, len(components))
	for _, c := range components {
		out[c.Name] = c
	}
	return out
}

// equalRelevantFields reports whether two components sharing a name are
// equality-relevant identical (version and any other comparison field
// spec.md 4.5 names).
func equalRelevantFields(a, b *model.Component) bool {
	return a.Version == b.Version &&
		a.FileType == b.FileType &&
		a.License == b.License &&
		a.Description == b.Description &&
		a.PURL == b.PURL
}
