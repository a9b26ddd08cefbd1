package main

import (
	"fmt"

	"github.com/linksbom/linksbom/internal/format"
	"github.com/linksbom/linksbom/internal/merge"
)

func runMerge(args []string) error {
	flags, args := parseCommonFlags(args)
	output, args := valueFlag(args, "--output")
	formatName, args := valueFlag(args, "--format")
	versionName, args := valueFlag(args, "--version")
	paths := args

	if len(paths) < 2 {
		return fmt.Errorf("merge requires at least two input files, got %d", len(paths))
	}
	if output == "" {
		return fmt.Errorf("--output is required")
	}
	if formatName == "" {
		formatName = "cyclonedx"
	}
	if versionName == "" {
		versionName = "1.6"
	}

	m := merge.New(buildRegistry())
	components, err := m.MergeFiles(paths)
	if err != nil {
		return err
	}

	content, err := m.Emit(components, formatName, versionName, format.Metadata{})
	if err != nil {
		return err
	}

	if err := writeFile(output, content); err != nil {
		return err
	}

	if flags.Mode == outputJSON {
		return printJSON(map[string]interface{}{"status": "success", "output": output, "components": len(components)})
	}
	if flags.Mode != outputQuiet {
		fmt.Printf("Wrote %s (%d components)\n", output, len(components))
	}
	return nil
}
