package spdx

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/linksbom/linksbom/internal/format"
	"github.com/linksbom/linksbom/internal/model"
)

// Handler30 implements format.Handler for SPDX 3.0.0 and 3.0.1 JSON-LD.
// The two versions share a document shape; Handler30.version selects the
// @context URL and whether annotations are emitted (3.0.1 only, per the
// feature matrix in spec.md 4.3.1).
type Handler30 struct {
	version string // "3.0.0" or "3.0.1"
}

var (
	_ format.Handler = Handler30{version: "3.0.0"}
	_ format.Handler = Handler30{version: "3.0.1"}
)

// NewHandler30 constructs the 3.0.0 or 3.0.1 handler.
func NewHandler30(version string) Handler30 {
	return Handler30{version: version}
}

func (h Handler30) FormatName() string    { return "SPDX" }
func (h Handler30) FormatVersion() string { return h.version }
func (h Handler30) FileExtension() string { return ".spdx.json" }

func (h Handler30) SupportsFeature(name string) bool {
	if name == "annotations" {
		return h.version == "3.0.1"
	}
	return false
}

type doc30 struct {
	Context           string        `json:"@context"`
	SPDXVersion       string        `json:"spdxVersion"`
	SpecVersion       string        `json:"specVersion"`
	DataLicense       string        `json:"dataLicense"`
	SPDXID            string        `json:"SPDXID"`
	Name              string        `json:"name"`
	DocumentNamespace string        `json:"documentNamespace"`
	CreationInfo      creationInfo  `json:"creationInfo"`
	Elements          []element30   `json:"elements"`
}

type creationInfo struct {
	Creators []string `json:"creators"`
	Created  string   `json:"created"`
}

type element30 struct {
	ElementType      string   `json:"elementType"`
	SPDXID           string   `json:"SPDXID"`
	Name             string   `json:"name"`
	VersionInfo      string   `json:"versionInfo,omitempty"`
	Description      string   `json:"description,omitempty"`
	LicenseConcluded string   `json:"licenseConcluded,omitempty"`
	Annotations      []string `json:"annotations,omitempty"`
}

// Emit renders components as an SPDX 3.0.x JSON-LD document. elements
// carries one entry per component (correcting the always-empty elements
// array flagged as an open design question in spec.md 9, item 1).
func (h Handler30) Emit(components []*model.Component, meta format.Metadata) (string, error) {
	sorted := make([]*model.Component, len(components))
	copy(sorted, components)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].BOMRef() < sorted[j].BOMRef() })

	namespace := meta.Namespace
	if namespace == "" {
		namespace = "https://spdx.org/spdxdocs"
	}
	namespace = fmt.Sprintf("%s/%s/%s", strings.TrimRight(namespace, "/"), meta.ProjectName, uuid.New().String())

	creatorTool := meta.CreatorTool
	if creatorTool == "" {
		creatorTool = "linksbom"
	}

	d := doc30{
		Context:           fmt.Sprintf("https://spdx.org/rdf/%s/spdx-context.jsonld", h.version),
		SPDXVersion:       "SPDX-3.0",
		SpecVersion:       "SPDX-" + h.version,
		DataLicense:       "CC0-1.0",
		SPDXID:            "SPDXRef-DOCUMENT",
		Name:              meta.ProjectName,
		DocumentNamespace: namespace,
		CreationInfo: creationInfo{
			Creators: []string{"Tool: " + creatorTool + "-" + meta.CreatorVerson},
			Created:  time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		},
	}

	for _, c := range sorted {
		el := element30{
			ElementType:      "Package",
			SPDXID:           Ref(c.Name),
			Name:             c.Name,
			VersionInfo:      c.Version,
			Description:      c.Description,
			LicenseConcluded: licenseOrNoassertion(c.License),
		}
		if h.version == "3.0.1" && len(c.Dependencies) > 0 {
			el.Annotations = []string{"depends on " + strings.Join(c.Dependencies, ", ")}
		}
		d.Elements = append(d.Elements, el)
	}

	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", fmt.Errorf("spdx: emit %s: %w", h.version, err)
	}
	return string(raw), nil
}

// Parse reads an SPDX 3.0.x JSON-LD document back into Components.
func (h Handler30) Parse(content string) ([]*model.Component, error) {
	var d doc30
	if err := json.Unmarshal([]byte(content), &d); err != nil {
		return nil, fmt.Errorf("spdx: parse %s: %w", h.version, err)
	}

	out := make([]*model.Component, 0, len(d.Elements))
	for _, el := range d.Elements {
		if el.ElementType != "" && el.ElementType != "Package" {
			continue
		}
		c, err := model.NewComponent(el.Name, el.VersionInfo, "", model.FileTypeUnknown)
		if err != nil {
			continue
		}
		c.Description = el.Description
		if el.LicenseConcluded != "NOASSERTION" {
			c.License = el.LicenseConcluded
		}
		out = append(out, c)
	}
	return out, nil
}

// Validate checks presence of the required SPDX 3.0 document fields.
func (h Handler30) Validate(content string) *model.ValidationResult {
	result := model.NewValidationResult()
	if strings.TrimSpace(content) == "" {
		result.AddError("Content is empty")
		return result
	}

	var generic map[string]interface{}
	if err := json.Unmarshal([]byte(content), &generic); err != nil {
		result.AddError(fmt.Sprintf("malformed JSON: %v", err))
		return result
	}

	required := []string{"@context", "specVersion", "name", "documentNamespace", "creationInfo", "dataLicense"}
	for _, field := range required {
		if _, ok := generic[field]; !ok {
			result.AddError(fmt.Sprintf("missing required field: %s", field))
		}
	}
	if _, hasElements := generic["elements"]; !hasElements {
		if _, hasGraph := generic["@graph"]; !hasGraph {
			result.AddError("missing required field: elements (or @graph)")
		}
	}

	result.SetMetadata("format", "SPDX")
	result.SetMetadata("version", h.version)
	return result
}
