package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/linksbom/linksbom/internal/format"
	"github.com/linksbom/linksbom/internal/generator"
	"github.com/linksbom/linksbom/internal/tui/progress"
	"github.com/linksbom/linksbom/internal/watch"
)

// runWatch regenerates the SBOM named by --output every time the manifest
// file changes, until interrupted. manifest is a newline-delimited list of
// input paths (see readManifest).
func runWatch(args []string) error {
	_, args = parseCommonFlags(args)
	cfgPath, args := valueFlag(args, "--config")
	formatName, args := valueFlag(args, "--format")
	versionName, args := valueFlag(args, "--version")
	output, args := valueFlag(args, "--output")
	paths := args

	if len(paths) != 1 {
		return fmt.Errorf("watch expects exactly one manifest file, got %d", len(paths))
	}
	manifest := paths[0]

	fileCfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	if output == "" {
		output = fileCfg.Output
	}
	if output == "" {
		output = "sbom.json"
	}

	regenerate := func() error {
		cfg := generator.DefaultConfig()
		applyFileConfig(&cfg, fileCfg)
		if formatName != "" {
			cfg.Format = formatName
		}
		if versionName != "" {
			if cfg.Format == "spdx" {
				cfg.SPDXVersion = versionName
			} else {
				cfg.CycloneDXVersion = versionName
			}
		}

		inputPaths, err := readManifest(manifest)
		if err != nil {
			return err
		}

		g := generator.New(cfg, buildRegistry(), nil)
		if err := ingestPaths(g, inputPaths, progress.NewNoOpTracker()); err != nil {
			return err
		}
		return g.Generate(output, format.Metadata{})
	}

	if err := regenerate(); err != nil {
		return err
	}

	logger := log.New(os.Stderr, "", 0)
	w := watch.New(manifest, logger)

	stop := make(chan struct{})
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		close(stop)
	}()

	return w.Run(stop, regenerate)
}
