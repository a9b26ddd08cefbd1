package spdx

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/linksbom/linksbom/internal/format"
	"github.com/linksbom/linksbom/internal/model"
)

func TestHandler30_Emit_PopulatesElements(t *testing.T) {
	c := mustComponent(t, "libfoo", "1.0.0", model.FileTypeSharedLibrary)
	h := NewHandler30("3.0.1")

	out, err := h.Emit([]*model.Component{c}, format.Metadata{ProjectName: "demo", CreatorTool: "linksbom", CreatorVerson: "1.0.0"})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}

	var d map[string]interface{}
	if err := json.Unmarshal([]byte(out), &d); err != nil {
		t.Fatalf("emitted output is not valid JSON: %v", err)
	}

	elements, ok := d["elements"].([]interface{})
	if !ok || len(elements) != 1 {
		t.Fatalf("expected elements array with 1 entry, got %v", d["elements"])
	}
	if !strings.Contains(out, `"@context"`) {
		t.Error("expected @context field")
	}
}

func TestHandler30_Validate_MissingFields(t *testing.T) {
	result := Handler30{version: "3.0.1"}.Validate(`{"name":"demo"}`)
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	for _, missing := range []string{"@context", "specVersion", "documentNamespace", "creationInfo", "dataLicense"} {
		found := false
		for _, e := range result.Errors {
			if strings.Contains(e, missing) {
				found = true
			}
		}
		if !found {
			t.Errorf("expected error naming %q, got %v", missing, result.Errors)
		}
	}
}

func TestHandler30_RoundTrip(t *testing.T) {
	c := mustComponent(t, "libfoo", "2.0.0", model.FileTypeSharedLibrary)
	c.License = "MIT"
	h := NewHandler30("3.0.0")

	out, err := h.Emit([]*model.Component{c}, format.Metadata{ProjectName: "demo", CreatorTool: "linksbom", CreatorVerson: "1.0.0"})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	parsed, err := h.Parse(out)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(parsed) != 1 || parsed[0].Name != "libfoo" || parsed[0].Version != "2.0.0" {
		t.Fatalf("unexpected parse result: %+v", parsed)
	}
	if parsed[0].License != "MIT" {
		t.Errorf("License = %q, want MIT", parsed[0].License)
	}
}
