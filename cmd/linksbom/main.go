// Command linksbom generates, validates, diffs, merges, and signs SBOM
// documents across SPDX (2.3, 3.0.0, 3.0.1) and CycloneDX (1.4, 1.5, 1.6).
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/linksbom/linksbom/internal/version"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(0)
	}

	command := os.Args[1]
	switch command {
	case "--help", "-h", "help":
		printHelp()
		os.Exit(0)
	case "--version":
		fmt.Printf("linksbom %s\n", version.GetFullVersion())
		os.Exit(0)
	}

	args := os.Args[2:]
	var err error

	switch command {
	case "generate":
		err = runGenerate(args)
	case "validate":
		err = runValidate(args)
	case "diff":
		err = runDiff(args)
	case "merge":
		err = runMerge(args)
	case "sign":
		err = runSign(args)
	case "verify":
		err = runVerify(args)
	case "watch":
		err = runWatch(args)
	default:
		fmt.Fprintf(os.Stderr, "linksbom: unknown command %q\n", command)
		printHelp()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "linksbom %s: %v\n", command, err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`linksbom - generate, validate, diff, merge, and sign SBOMs

Usage:
  linksbom generate <path>... [--format cyclonedx|spdx] [--cyclonedx-version V] [--spdx-version V]
                               [--output FILE] [--project-name NAME] [--no-transitive] [--config FILE]
  linksbom validate <file> [--format NAME] [--version V]
  linksbom diff <old> <new> [--report-format text|json|csv]
  linksbom merge <file>... --output FILE [--format cyclonedx|spdx] [--version V]
  linksbom sign <file> [--key FILE] [--cert FILE] [--algorithm ALG] [--output FILE] [--strict]
  linksbom verify <file> [--public-key FILE]
  linksbom watch <manifest> [--output FILE] [--format cyclonedx|spdx] [--version V]

Common flags: --yes/-y  --quiet/-q  --json  --verbose/-v
`)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
