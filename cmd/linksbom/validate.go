package main

import (
	"fmt"
	"os"

	"github.com/linksbom/linksbom/internal/validator"
)

func runValidate(args []string) error {
	flags, args := parseCommonFlags(args)
	formatName, args := valueFlag(args, "--format")
	versionName, args := valueFlag(args, "--version")
	paths := args

	if len(paths) != 1 {
		return fmt.Errorf("expected exactly one file, got %d", len(paths))
	}

	v := validator.New(buildRegistry())
	result, err := v.ValidateFile(paths[0], formatName, versionName)
	if err != nil {
		return err
	}

	if flags.Mode == outputJSON {
		return printJSON(result)
	}

	if result.Valid {
		if flags.Mode != outputQuiet {
			fmt.Println("Valid")
		}
	} else {
		fmt.Println("Invalid")
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "[ERROR] %s\n", e)
		}
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "[WARNING] %s\n", w)
	}

	if !result.Valid {
		os.Exit(1)
	}
	return nil
}
