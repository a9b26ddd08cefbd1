package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/linksbom/linksbom/internal/config"
	"github.com/linksbom/linksbom/internal/format"
	"github.com/linksbom/linksbom/internal/generator"
	"github.com/linksbom/linksbom/internal/model"
	"github.com/linksbom/linksbom/internal/tui/progress"
	"github.com/linksbom/linksbom/internal/tui/signwizard"
)

func runGenerate(args []string) error {
	flags, args := parseCommonFlags(args)
	cfgPath, args := valueFlag(args, "--config")
	formatName, args := valueFlag(args, "--format")
	cdxVersion, args := valueFlag(args, "--cyclonedx-version")
	spdxVersion, args := valueFlag(args, "--spdx-version")
	output, args := valueFlag(args, "--output")
	projectName, args := valueFlag(args, "--project-name")
	noTransitive, args := boolFlag(args, "--no-transitive")
	paths := args

	fileCfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	cfg := generator.DefaultConfig()
	applyFileConfig(&cfg, fileCfg)
	if formatName != "" {
		cfg.Format = formatName
	}
	if cdxVersion != "" {
		cfg.CycloneDXVersion = cdxVersion
	}
	if spdxVersion != "" {
		cfg.SPDXVersion = spdxVersion
	}
	if noTransitive {
		cfg.TransitiveDependencies = false
	}
	if output == "" {
		output = fileCfg.Output
	}
	if output == "" {
		output = "sbom.json"
	}

	if len(paths) == 0 {
		return fmt.Errorf("no input paths given")
	}

	g := generator.New(cfg, buildRegistry(), nil)
	tracker := newProgressTracker(flags, len(paths), "Processing components")
	if err := ingestPaths(g, paths, tracker); err != nil {
		tracker.Fail(err)
		return err
	}
	tracker.Complete()

	meta := format.Metadata{ProjectName: projectName}
	if err := g.Generate(output, meta); err != nil {
		return err
	}

	if flags.Mode == outputJSON {
		return printJSON(map[string]interface{}{"status": "success", "output": output, "components": g.Document().Len()})
	}
	if flags.Mode != outputQuiet {
		fmt.Printf("Wrote %s (%d components)\n", output, g.Document().Len())
	}
	return nil
}

// ingestPaths builds a synthetic model.Component per path and processes it
// through the generator. Binary/metadata introspection is intentionally
// out of scope here: generator.MetadataExtractor is the extension point a
// caller supplies for that (generator.NoopExtractor is used when nil).
func ingestPaths(g *generator.Generator, paths []string, tracker progress.Tracker) error {
	for _, p := range paths {
		c, err := model.NewComponent(filepath.Base(p), "", p, model.FileTypeUnknown)
		if err != nil {
			return err
		}
		if err := g.Process(c); err != nil {
			return err
		}
		tracker.Increment(p)
	}
	return nil
}

// newProgressTracker picks a Tracker matching the output mode: a live
// bubbletea bar on an interactive terminal, plain text lines otherwise, and
// a no-op in quiet/JSON mode.
func newProgressTracker(flags commonFlags, total int, label string) progress.Tracker {
	switch {
	case flags.Mode == outputQuiet || flags.Mode == outputJSON:
		return progress.NewNoOpTracker()
	case signwizard.IsInteractive():
		return progress.NewBubbleTeaTracker(total, label)
	default:
		return progress.NewTextTracker(total, label)
	}
}

// readManifest reads a newline-delimited list of file paths, skipping blank
// lines and "#"-prefixed comments.
func readManifest(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var paths []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	return paths, scanner.Err()
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		path = config.DefaultFilename
	}
	return config.NewStore(path).Load()
}

func applyFileConfig(cfg *generator.Config, fileCfg config.Config) {
	if fileCfg.Format != "" {
		cfg.Format = fileCfg.Format
	}
	if fileCfg.CycloneDXVersion != "" {
		cfg.CycloneDXVersion = fileCfg.CycloneDXVersion
	}
	if fileCfg.SPDXVersion != "" {
		cfg.SPDXVersion = fileCfg.SPDXVersion
	}
	cfg.TransitiveDependencies = fileCfg.TransitiveEnabled()
	cfg.SuppressWarnings = fileCfg.SuppressWarnings
}
