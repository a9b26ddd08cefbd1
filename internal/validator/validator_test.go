package validator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/linksbom/linksbom/internal/format"
	"github.com/linksbom/linksbom/internal/format/cyclonedx"
	"github.com/linksbom/linksbom/internal/format/spdx"
	"github.com/linksbom/linksbom/internal/model"
)

func newRegistry() *format.Registry {
	r := format.NewRegistry()
	r.Register(cyclonedx.NewHandler("1.6"))
	r.Register(spdx.Handler23{})
	return r
}

func TestValidateContent_EmptyContent(t *testing.T) {
	v := New(newRegistry())
	result := v.ValidateContent("", "", "")
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if len(result.Errors) != 1 || result.Errors[0] != "Content is empty" {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
}

func TestValidateContent_AutoDetectsCycloneDX(t *testing.T) {
	c, err := model.NewComponent("libfoo", "1.0.0", "/lib/libfoo.so", model.FileTypeSharedLibrary)
	if err != nil {
		t.Fatalf("NewComponent: %v", err)
	}
	h := cyclonedx.NewHandler("1.6")
	content, err := h.Emit([]*model.Component{c}, format.Metadata{ProjectName: "demo"})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}

	v := New(newRegistry())
	result := v.ValidateContent(content, "", "")
	if !result.Valid {
		t.Errorf("expected valid result, got errors: %v", result.Errors)
	}
	if result.Metadata["format"] != "CycloneDX" {
		t.Errorf("format metadata = %q, want CycloneDX", result.Metadata["format"])
	}
}

func TestValidateContent_UnknownHandler(t *testing.T) {
	v := New(format.NewRegistry())
	result := v.ValidateContent(`{"bomFormat":"CycloneDX","specVersion":"9.9"}`, "cyclonedx", "9.9")
	if result.Valid {
		t.Fatal("expected invalid result for unregistered handler")
	}
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sbom.json")

	c, err := model.NewComponent("libfoo", "1.0.0", "/lib/libfoo.so", model.FileTypeSharedLibrary)
	if err != nil {
		t.Fatalf("NewComponent: %v", err)
	}
	h := cyclonedx.NewHandler("1.6")
	content, err := h.Emit([]*model.Component{c}, format.Metadata{ProjectName: "demo"})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	v := New(newRegistry())
	result, err := v.ValidateFile(path, "", "")
	if err != nil {
		t.Fatalf("ValidateFile: %v", err)
	}
	if !result.Valid {
		t.Errorf("expected valid result, got errors: %v", result.Errors)
	}
}
