package diff

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/linksbom/linksbom/internal/model"
)

// FormatReport renders diffs in the requested format ("text", "json",
// "csv"); any other value falls back to "text" (spec.md 4.5).
func FormatReport(diffs []model.Difference, reportFormat string) (string, error) {
	switch reportFormat {
	case "json":
		return formatJSON(diffs)
	case "csv":
		return formatCSV(diffs)
	default:
		return formatText(diffs), nil
	}
}

// formatText renders a human-readable summary followed by one line per
// difference of the form "[KIND] name version (type)", adapted from the
// teacher's FormatDiffOutput (internal/core/diff_service.go).
func formatText(diffs []model.Difference) string {
	if len(diffs) == 0 {
		return "No differences found"
	}

	stats := model.Summarize(diffs)
	var b strings.Builder
	fmt.Fprintf(&b, "%d added, %d removed, %d modified, %d unchanged\n\n", stats.Added, stats.Removed, stats.Modified, stats.Unchanged)

	for _, d := range diffs {
		c := d.Component
		b.WriteString(fmt.Sprintf("[%s] %s %s (%s)\n", d.Kind, c.Name, c.Version, c.FileType.String()))
	}

	return b.String()
}

type jsonDifference struct {
	Type      string           `json:"type"`
	Component jsonComponentRef `json:"component"`
}

type jsonComponentRef struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Type    string `json:"type"`
}

type jsonReport struct {
	Timestamp   string           `json:"timestamp"`
	Differences []jsonDifference `json:"differences"`
}

func formatJSON(diffs []model.Difference) (string, error) {
	report := jsonReport{
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Differences: make([]jsonDifference, 0, len(diffs)),
	}
	for _, d := range diffs {
		c := d.Component
		report.Differences = append(report.Differences, jsonDifference{
			Type: strings.ToLower(string(d.Kind)),
			Component: jsonComponentRef{
				Name:    c.Name,
				Version: c.Version,
				Type:    c.FileType.String(),
			},
		})
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// formatCSV renders every field double-quoted (spec.md 4.5), unlike
// encoding/csv's default of quoting only fields that need it.
func formatCSV(diffs []model.Difference) (string, error) {
	var b strings.Builder
	writeCSVRow(&b, "Type", "Name", "Version", "Type", "License", "Description")

	for _, d := range diffs {
		c := d.Component
		writeCSVRow(&b, string(d.Kind), c.Name, c.Version, c.FileType.String(), c.License, c.Description)
	}

	return b.String(), nil
}

func writeCSVRow(b *strings.Builder, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
