package main

import (
	"fmt"
	"os"

	"github.com/linksbom/linksbom/internal/diff"
)

func runDiff(args []string) error {
	flags, args := parseCommonFlags(args)
	reportFormat, args := valueFlag(args, "--report-format")
	paths := args

	if len(paths) != 2 {
		return fmt.Errorf("expected exactly two files (old, new), got %d", len(paths))
	}
	if reportFormat == "" {
		reportFormat = "text"
	}
	if flags.Mode == outputJSON {
		reportFormat = "json"
	}

	oldContent, err := os.ReadFile(paths[0])
	if err != nil {
		return err
	}
	newContent, err := os.ReadFile(paths[1])
	if err != nil {
		return err
	}

	comparator := diff.New(buildRegistry())
	diffs, err := comparator.Compare(string(oldContent), string(newContent))
	if err != nil {
		return err
	}

	report, err := diff.FormatReport(diffs, reportFormat)
	if err != nil {
		return err
	}
	fmt.Println(report)
	return nil
}
