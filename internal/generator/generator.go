// Package generator accumulates Components discovered during linking into
// a model.Document and renders it through a format.Handler.
package generator

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/linksbom/linksbom/internal/format"
	"github.com/linksbom/linksbom/internal/model"
)

// Config holds the knobs that control generation (spec.md 4.4).
type Config struct {
	Format                 string // "spdx" | "cyclonedx"
	SPDXVersion            string // "2.3" | "3.0.0" | "3.0.1"
	CycloneDXVersion       string // "1.4" | "1.5" | "1.6"
	TransitiveDependencies bool   // default true
	SuppressWarnings       bool
	Metadata               map[string]string
}

// DefaultConfig returns the configuration Generator uses when none is
// supplied: CycloneDX 1.6, transitive dependency resolution enabled.
func DefaultConfig() Config {
	return Config{
		Format:                 "cyclonedx",
		CycloneDXVersion:       "1.6",
		TransitiveDependencies: true,
		Metadata:               map[string]string{},
	}
}

// Generator ingests Components one at a time and renders the accumulated
// document through a registered format.Handler.
type Generator struct {
	cfg       Config
	doc       *model.Document
	registry  *format.Registry
	extractor MetadataExtractor

	lastError error
}

// New constructs a Generator. extractor may be nil, in which case
// NoopExtractor is used.
func New(cfg Config, registry *format.Registry, extractor MetadataExtractor) *Generator {
	if extractor == nil {
		extractor = NoopExtractor{}
	}
	if cfg.Metadata == nil {
		cfg.Metadata = map[string]string{}
	}
	return &Generator{
		cfg:       cfg,
		doc:       model.NewDocument(documentFormat(cfg.Format), version(cfg)),
		registry:  registry,
		extractor: extractor,
	}
}

func documentFormat(f string) model.Format {
	if strings.EqualFold(f, "spdx") {
		return model.FormatSPDX
	}
	return model.FormatCycloneDX
}

func version(cfg Config) string {
	if strings.EqualFold(cfg.Format, "spdx") {
		return cfg.SPDXVersion
	}
	return cfg.CycloneDXVersion
}

// LastError returns the most recent failure, following the component-wide
// last_error convention (spec.md 4.7).
func (g *Generator) LastError() error { return g.lastError }

// Document exposes the accumulated document, mainly for tests and for
// Generate's handler lookup.
func (g *Generator) Document() *model.Document { return g.doc }

// Process ingests one component (spec.md 4.4, steps 1-4). Errors are
// recorded in LastError and also returned, matching the rest of the
// codebase's (bool, error)-flavored reporting at the orchestration layer
// while keeping a conventional Go (error) return at this layer.
func (g *Generator) Process(c *model.Component) error {
	return g.process(c)
}

// process is the recursive worker behind Process. "@rpath/"-relative
// dependency entries are resolved against each component's own directory
// as the walk descends.
func (g *Generator) process(c *model.Component) error {
	key, err := canonicalPath(c.FilePath)
	if err != nil {
		g.lastError = err
		return err
	}

	if g.doc.Has(key) {
		return nil
	}

	if err := g.extractor.ExtractMetadata(c); err != nil {
		g.lastError = err
		return err
	}

	g.doc.Add(key, c)

	if !g.cfg.TransitiveDependencies {
		return nil
	}

	dir := filepath.Dir(c.FilePath)
	for _, dep := range c.Dependencies {
		depPath := resolveDependencyPath(dep, dir)
		depKey, err := canonicalPath(depPath)
		if err != nil {
			continue
		}
		if g.doc.Has(depKey) {
			continue
		}

		synthetic, err := model.NewComponent(filepath.Base(depPath), "", depPath, model.FileTypeUnknown)
		if err != nil {
			continue
		}
		if err := g.process(synthetic); err != nil {
			continue
		}
	}

	return nil
}

// resolveDependencyPath rewrites "@rpath/"-prefixed dependency strings
// relative to the parent component's directory (spec.md 4.4 step 4).
func resolveDependencyPath(dep, parentDir string) string {
	const rpathPrefix = "@rpath/"
	if strings.HasPrefix(dep, rpathPrefix) {
		return filepath.Join(parentDir, strings.TrimPrefix(dep, rpathPrefix))
	}
	return dep
}

// canonicalPath resolves path to an absolute, cleaned form used as the
// deduplication key. Paths that cannot be made absolute (e.g. empty
// strings) are rejected.
func canonicalPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errEmptyPath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

var errEmptyPath = errors.New("generator: empty file path")

// Generate renders the accumulated document to outputPath via the format
// handler selected by the generator's configuration (spec.md 4.4).
func (g *Generator) Generate(outputPath string, meta format.Metadata) error {
	if g.doc.Len() == 0 {
		g.lastError = ErrNoComponents
		return ErrNoComponents
	}
	if strings.TrimSpace(outputPath) == "" {
		g.lastError = ErrNoOutputPath
		return ErrNoOutputPath
	}

	v := version(g.cfg)
	handler, err := g.registry.Resolve(g.cfg.Format, v)
	if err != nil {
		wrapped := &UnknownHandlerError{Format: g.cfg.Format, Version: v, Cause: err}
		g.lastError = wrapped
		return wrapped
	}

	content, err := handler.Emit(g.doc.SortedComponents(), meta)
	if err != nil {
		g.lastError = err
		return err
	}

	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		g.lastError = err
		return err
	}
	return nil
}
