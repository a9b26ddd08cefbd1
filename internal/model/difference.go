package model

// DifferenceKind classifies how a component changed between two sets.
type DifferenceKind string

// Difference kinds.
const (
	Added     DifferenceKind = "Added"
	Removed   DifferenceKind = "Removed"
	Modified  DifferenceKind = "Modified"
	Unchanged DifferenceKind = "Unchanged"
)

// Difference is one entry produced by comparing two component sets.
type Difference struct {
	Kind DifferenceKind

	// Component is the "new" side. For Removed it is the last-known
	// component from the old set (there is no new side).
	Component *Component

	// OldComponent is set only for Modified.
	OldComponent *Component
}

// Statistics summarizes a slice of Differences by kind.
type Statistics struct {
	Added     int
	Removed   int
	Modified  int
	Unchanged int
}

// Summarize counts each kind of difference.
func Summarize(diffs []Difference) Statistics {
	var s Statistics
	for _, d := range diffs {
		switch d.Kind {
		case Added:
			s.Added++
		case Removed:
			s.Removed++
		case Modified:
			s.Modified++
		case Unchanged:
			s.Unchanged++
		}
	}
	return s
}
