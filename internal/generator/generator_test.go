package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/linksbom/linksbom/internal/format"
	"github.com/linksbom/linksbom/internal/format/cyclonedx"
	"github.com/linksbom/linksbom/internal/model"
)

func newRegistry() *format.Registry {
	r := format.NewRegistry()
	r.Register(cyclonedx.NewHandler("1.6"))
	return r
}

func mustComponent(t *testing.T, name, filePath string) *model.Component {
	t.Helper()
	c, err := model.NewComponent(name, "1.0.0", filePath, model.FileTypeSharedLibrary)
	if err != nil {
		t.Fatalf("NewComponent: %v", err)
	}
	return c
}

func TestGenerator_Process_Dedup(t *testing.T) {
	g := New(DefaultConfig(), newRegistry(), nil)

	c1 := mustComponent(t, "libfoo", "/lib/libfoo.so")
	c2 := mustComponent(t, "libfoo-dup", "/lib/libfoo.so") // same canonical path

	if err := g.Process(c1); err != nil {
		t.Fatalf("Process c1: %v", err)
	}
	if err := g.Process(c2); err != nil {
		t.Fatalf("Process c2: %v", err)
	}

	if g.Document().Len() != 1 {
		t.Errorf("expected 1 component after dedup, got %d", g.Document().Len())
	}
}

func TestGenerator_Process_TransitiveDependencies(t *testing.T) {
	dir := t.TempDir()
	appPath := filepath.Join(dir, "app")

	app := mustComponent(t, "app", appPath)
	app.Dependencies = []string{"@rpath/libfoo.so", filepath.Join(dir, "libbar.so")}

	g := New(DefaultConfig(), newRegistry(), nil)
	if err := g.Process(app); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if g.Document().Len() != 3 {
		t.Fatalf("expected app + 2 synthesized deps = 3 components, got %d", g.Document().Len())
	}

	var sawLibfoo, sawLibbar bool
	for _, c := range g.Document().Components() {
		switch c.Name {
		case "libfoo.so":
			sawLibfoo = true
		case "libbar.so":
			sawLibbar = true
		}
	}
	if !sawLibfoo || !sawLibbar {
		t.Errorf("expected synthetic components for both dependencies, got %+v", g.Document().Components())
	}
}

func TestGenerator_Process_TransitiveDependenciesDisabled(t *testing.T) {
	dir := t.TempDir()
	appPath := filepath.Join(dir, "app")

	app := mustComponent(t, "app", appPath)
	app.Dependencies = []string{filepath.Join(dir, "libbar.so")}

	cfg := DefaultConfig()
	cfg.TransitiveDependencies = false
	g := New(cfg, newRegistry(), nil)
	if err := g.Process(app); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if g.Document().Len() != 1 {
		t.Errorf("expected dependency walk skipped, got %d components", g.Document().Len())
	}
}

func TestGenerator_Generate_NoComponents(t *testing.T) {
	g := New(DefaultConfig(), newRegistry(), nil)
	err := g.Generate(filepath.Join(t.TempDir(), "out.json"), format.Metadata{})
	if !errors.Is(err, ErrNoComponents) {
		t.Errorf("expected ErrNoComponents, got %v", err)
	}
}

func TestGenerator_Generate_NoOutputPath(t *testing.T) {
	g := New(DefaultConfig(), newRegistry(), nil)
	c := mustComponent(t, "libfoo", "/lib/libfoo.so")
	if err := g.Process(c); err != nil {
		t.Fatalf("Process: %v", err)
	}

	err := g.Generate("", format.Metadata{})
	if !errors.Is(err, ErrNoOutputPath) {
		t.Errorf("expected ErrNoOutputPath, got %v", err)
	}
}

func TestGenerator_Generate_WritesFile(t *testing.T) {
	g := New(DefaultConfig(), newRegistry(), nil)
	c := mustComponent(t, "libfoo", "/lib/libfoo.so")
	if err := g.Process(c); err != nil {
		t.Fatalf("Process: %v", err)
	}

	out := filepath.Join(t.TempDir(), "sbom.cdx.json")
	if err := g.Generate(out, format.Metadata{ProjectName: "demo"}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty output file")
	}
}

func TestExtractParallel_PreservesOrder(t *testing.T) {
	paths := []string{"/a", "/b", "/c", "/d"}
	extract := func(_ context.Context, path string) (*model.Component, error) {
		return mustComponent(t, filepath.Base(path), path), nil
	}

	results, err := ExtractParallel(context.Background(), paths, 2, extract)
	if err != nil {
		t.Fatalf("ExtractParallel: %v", err)
	}
	if len(results) != len(paths) {
		t.Fatalf("expected %d results, got %d", len(paths), len(results))
	}
	for i, p := range paths {
		if results[i] == nil || results[i].FilePath != p {
			t.Errorf("result[%d] = %+v, want FilePath %q", i, results[i], p)
		}
	}
}

func TestExtractParallel_CollectsFirstError(t *testing.T) {
	paths := []string{"/a", "/b"}
	wantErr := errors.New("boom")
	extract := func(_ context.Context, path string) (*model.Component, error) {
		if path == "/b" {
			return nil, wantErr
		}
		return mustComponent(t, "a", path), nil
	}

	_, err := ExtractParallel(context.Background(), paths, 2, extract)
	if !errors.Is(err, wantErr) {
		t.Errorf("expected wantErr, got %v", err)
	}
}
