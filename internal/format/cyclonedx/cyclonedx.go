// Package cyclonedx implements the CycloneDX 1.4/1.5/1.6 format.Handler
// variants on top of github.com/CycloneDX/cyclonedx-go, the same encoder the
// teacher codebase uses for its own (single-version) CycloneDX output.
package cyclonedx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/google/uuid"

	"github.com/linksbom/linksbom/internal/format"
	"github.com/linksbom/linksbom/internal/model"
	"github.com/linksbom/linksbom/internal/purl"
)

// Handler implements format.Handler for one CycloneDX spec version.
type Handler struct {
	version string // "1.4", "1.5", "1.6"
}

var (
	_ format.Handler = Handler{version: "1.4"}
	_ format.Handler = Handler{version: "1.5"}
	_ format.Handler = Handler{version: "1.6"}
)

// NewHandler constructs the handler for the given CycloneDX spec version.
func NewHandler(version string) Handler {
	return Handler{version: version}
}

func (h Handler) FormatName() string    { return "CycloneDX" }
func (h Handler) FormatVersion() string { return h.version }
func (h Handler) FileExtension() string { return ".cdx.json" }

// featureMatrix is the table in spec.md 4.3.2.
var featureMatrix = map[string]map[string]bool{
	"vulnerabilities": {"1.4": false, "1.5": true, "1.6": true},
	"formulation":     {"1.4": false, "1.5": true, "1.6": true},
	"services":        {"1.4": false, "1.5": false, "1.6": true},
	"annotations":     {"1.4": false, "1.5": false, "1.6": true},
	"compositions":    {"1.4": false, "1.5": false, "1.6": true},
}

func (h Handler) SupportsFeature(name string) bool {
	versions, ok := featureMatrix[name]
	if !ok {
		return false
	}
	return versions[h.version]
}

func specVersion(v string) cdx.SpecVersion {
	switch v {
	case "1.4":
		return cdx.SpecVersion1_4
	case "1.5":
		return cdx.SpecVersion1_5
	case "1.6":
		return cdx.SpecVersion1_6
	default:
		return cdx.SpecVersion1_6
	}
}

// Emit renders components as a CycloneDX document of this handler's
// version. 1.4 is pretty-printed, 1.5/1.6 are compact (spec.md 6.1).
func (h Handler) Emit(components []*model.Component, meta format.Metadata) (string, error) {
	sorted := make([]*model.Component, len(components))
	copy(sorted, components)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].BOMRef() < sorted[j].BOMRef() })

	bom := cdx.NewBOM()
	bom.SpecVersion = specVersion(h.version)
	bom.Version = 1

	serial := meta.SerialNumber
	if serial == "" {
		serial = "urn:uuid:" + uuid.New().String()
	}
	if h.version != "1.4" {
		bom.SerialNumber = serial
	}

	creatorTool := meta.CreatorTool
	if creatorTool == "" {
		creatorTool = "linksbom"
	}
	bom.Metadata = &cdx.Metadata{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Tools: &cdx.ToolsChoice{
			Components: &[]cdx.Component{{
				Type:    cdx.ComponentTypeApplication,
				Name:    creatorTool,
				Version: meta.CreatorVerson,
			}},
		},
		Component: &cdx.Component{
			Type:    cdx.ComponentTypeApplication,
			Name:    meta.ProjectName,
			Version: "local",
		},
	}

	cdxComponents := make([]cdx.Component, 0, len(sorted))
	for _, c := range sorted {
		cdxComponents = append(cdxComponents, buildComponent(c))
	}
	bom.Components = &cdxComponents

	var deps []cdx.Dependency
	for _, c := range sorted {
		if len(c.Dependencies) == 0 {
			continue
		}
		refs := append([]string(nil), c.Dependencies...)
		deps = append(deps, cdx.Dependency{Ref: c.BOMRef(), Dependencies: &refs})
	}
	if len(deps) > 0 {
		bom.Dependencies = &deps
	}

	var buf strings.Builder
	encoder := cdx.NewBOMEncoder(&buf, cdx.BOMFileFormatJSON)
	encoder.SetPretty(h.version == "1.4")
	if err := encoder.Encode(bom); err != nil {
		return "", fmt.Errorf("cyclonedx: emit %s: %w", h.version, err)
	}
	return buf.String(), nil
}

// buildComponent maps a model.Component to the CycloneDX wire shape
// (spec.md 4.3.2). evidence is never emitted: this repository has no
// evidence data source, and the always-present-even-when-empty evidence
// child flagged as an open design question (spec.md 9, item 2) is
// corrected by omission rather than reproduced.
func buildComponent(c *model.Component) cdx.Component {
	out := cdx.Component{
		Type:        cdx.ComponentType(model.CycloneDXType(c.FileType)),
		BOMRef:      c.BOMRef(),
		Name:        c.Name,
		Version:     c.Version,
		Group:       c.Group,
		MIMEType:    c.MimeType,
		Copyright:   c.Copyright,
		CPE:         c.CPE,
		Description: c.Description,
	}

	if c.Scope != "" {
		out.Scope = cdx.Scope(c.Scope.Normalized())
	}

	p := c.PURL
	if p == "" {
		p = purl.Build(c.PackageManager, c.Name, c.Version)
	}
	out.PackageURL = p

	if c.License != "" {
		out.Licenses = &cdx.Licenses{{License: &cdx.License{ID: c.License}}}
	}

	if hashes := buildHashes(c.Checksums); len(hashes) > 0 {
		out.Hashes = &hashes
	}

	if c.Supplier != "" {
		out.Supplier = &cdx.OrganizationalEntity{Name: c.Supplier}
	}
	if c.Manufacturer != "" {
		out.Manufacturer = &cdx.OrganizationalEntity{Name: c.Manufacturer}
	}
	if c.Publisher != "" {
		out.Publisher = c.Publisher
	}

	var extRefs []cdx.ExternalReference
	if c.Homepage != "" {
		extRefs = append(extRefs, cdx.ExternalReference{Type: cdx.ERTypeWebsite, URL: c.Homepage})
	}
	if c.DownloadLocation != "" {
		extRefs = append(extRefs, cdx.ExternalReference{Type: cdx.ExternalReferenceType("distribution"), URL: c.DownloadLocation})
	}
	for key, value := range c.Properties {
		const prefix = "external:"
		if strings.HasPrefix(key, prefix) {
			extRefs = append(extRefs, cdx.ExternalReference{Type: cdx.ExternalReferenceType(strings.TrimPrefix(key, prefix)), URL: value})
		}
	}
	if len(extRefs) > 0 {
		sort.Slice(extRefs, func(i, j int) bool { return extRefs[i].URL < extRefs[j].URL })
		out.ExternalReferences = &extRefs
	}

	if len(c.Properties) > 0 {
		keys := make([]string, 0, len(c.Properties))
		for k := range c.Properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		props := make([]cdx.Property, 0, len(keys))
		for _, k := range keys {
			props = append(props, cdx.Property{Name: k, Value: c.Properties[k]})
		}
		out.Properties = &props
	}

	return out
}

// hashAlgos maps the checksum algorithm names model.Component.SetChecksum
// accepts to their cdx.HashAlgo constant, in the fixed emission order
// spec.md 4.3.2 expects (strongest first).
var hashAlgos = []struct {
	name string
	algo cdx.HashAlgo
}{
	{"SHA512", cdx.HashAlgoSHA512},
	{"SHA384", cdx.HashAlgoSHA384},
	{"SHA256", cdx.HashAlgoSHA256},
	{"SHA1", cdx.HashAlgoSHA1},
	{"MD5", cdx.HashAlgoMD5},
}

// buildHashes emits one cdx.Hash per checksum algorithm present on the
// component, rather than only ever emitting SHA256 (spec.md 4.3.2:
// "hashes[] emits one entry per known checksum").
func buildHashes(checksums map[string]string) []cdx.Hash {
	var hashes []cdx.Hash
	for _, h := range hashAlgos {
		if digest, ok := checksums[h.name]; ok && digest != "" {
			hashes = append(hashes, cdx.Hash{Algorithm: h.algo, Value: digest})
		}
	}
	return hashes
}

// Validate requires presence of bomFormat (== "CycloneDX"), specVersion,
// version, metadata, and components (spec.md 4.3.2).
func (h Handler) Validate(content string) *model.ValidationResult {
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

	if bf, ok := generic["bomFormat"].(string); !ok || bf != "CycloneDX" {
		result.AddError("bomFormat must be \"CycloneDX\"")
	}
	for _, field := range []string{"specVersion", "version", "metadata", "components"} {
		if _, ok := generic[field]; !ok {
			result.AddError(fmt.Sprintf("missing required field: %s", field))
		}
	}

	result.SetMetadata("format", "CycloneDX")
	result.SetMetadata("version", h.version)
	return result
}

// Parse decodes a CycloneDX document back into Components (spec.md 4.3.2).
func (h Handler) Parse(content string) ([]*model.Component, error) {
	decoder := cdx.NewBOMDecoder(bytes.NewReader([]byte(content)), cdx.BOMFileFormatJSON)
	var bom cdx.BOM
	if err := decoder.Decode(&bom); err != nil {
		return nil, fmt.Errorf("cyclonedx: parse: %w", err)
	}

	if bom.Components == nil {
		return nil, nil
	}

	out := make([]*model.Component, 0, len(*bom.Components))
	for _, cc := range *bom.Components {
		c, err := model.NewComponent(cc.Name, cc.Version, "", fromCDXType(cc.Type))
		if err != nil {
			continue
		}
		c.Description = cc.Description
		c.PURL = cc.PackageURL
		if cc.PackageURL != "" {
			if t, perr := purl.Parse(cc.PackageURL); perr == nil {
				c.PackageManager = string(t)
			}
		}
		if cc.Supplier != nil {
			c.Supplier = cc.Supplier.Name
		}
		if cc.Licenses != nil && len(*cc.Licenses) > 0 && (*cc.Licenses)[0].License != nil {
			c.License = (*cc.Licenses)[0].License.ID
		}
		out = append(out, c)
	}
	return out, nil
}

func fromCDXType(t cdx.ComponentType) model.FileType {
	switch string(t) {
	case "application":
		return model.FileTypeExecutable
	case "library":
		return model.FileTypeSharedLibrary
	default:
		return model.FileTypeUnknown
	}
}
