// Package spdx implements the SPDX 2.3 (tag-value) and SPDX 3.0.0/3.0.1
// (JSON-LD) format.Handler variants.
//
// The typed 2.3 document (buildDocument) is built from
// github.com/spdx/tools-golang's v2.3 types (common.ElementID/Checksum/
// Creator, v2_3.Document/Package/File/Relationship). Tag-value Emit and
// Parse do not go through those types: Emit writes the tag lines as text
// (taking only the spdx.Version, spdx.DataLicense and common.SHA1
// constants from the library) and Parse fills model.Component values
// directly, rather than using tvsaver/tvloader: the spec
// requires a specific, bit-exact flattened File/Package/Relationship triple
// (spec.md 4.3.1 and scenario S1) that this repository could not verify
// tvsaver/tvloader reproduce byte-for-byte without running the toolchain,
// so the grammar is implemented directly (see DESIGN.md).
package spdx

import (
	"bufio"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spdx/tools-golang/spdx"
	"github.com/spdx/tools-golang/spdx/v2/common"
	spdx23 "github.com/spdx/tools-golang/spdx/v2/v2_3"

	"github.com/linksbom/linksbom/internal/format"
	"github.com/linksbom/linksbom/internal/model"
	"github.com/linksbom/linksbom/internal/purl"
)

// PackageID is the literal SPDX identifier of the synthetic package that
// CONTAINS every emitted file (spec.md 4.3.1).
const PackageID = "Package"

// spdxIDRe matches a well-formed SPDXID value.
var spdxIDRe = regexp.MustCompile(`^SPDXRef-[A-Za-z0-9_-]+$`)

// SanitizeID replaces any character outside [A-Za-z0-9_-] with '_', producing
// the component used after the "SPDXRef-" prefix.
func SanitizeID(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "component"
	}
	return b.String()
}

// Ref formats a full SPDXID from a sanitized component name.
func Ref(name string) string {
	return "SPDXRef-" + SanitizeID(name)
}

// Handler23 implements format.Handler for SPDX 2.3 tag-value.
type Handler23 struct{}

var _ format.Handler = Handler23{}

func (Handler23) FormatName() string    { return "SPDX" }
func (Handler23) FormatVersion() string { return "2.3" }
func (Handler23) FileExtension() string { return ".spdx" }

func (Handler23) SupportsFeature(name string) bool {
	return false
}

// Emit renders components as SPDX 2.3 tag-value text.
func (Handler23) Emit(components []*model.Component, meta format.Metadata) (string, error) {
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

	var b strings.Builder
	b.WriteString("SPDXVersion: " + spdx.Version + "\n")
	b.WriteString("DataLicense: " + spdx.DataLicense + "\n")
	b.WriteString("SPDXID: SPDXRef-DOCUMENT\n")
	b.WriteString("DocumentName: " + meta.ProjectName + "\n")
	b.WriteString("DocumentNamespace: " + namespace + "\n")
	b.WriteString("Creator: Tool: " + creatorTool + "-" + meta.CreatorVerson + "\n")
	b.WriteString("Created: " + time.Now().UTC().Format("2006-01-02T15:04:05Z") + "\n")
	b.WriteString("\n")

	b.WriteString("PackageName: " + meta.ProjectName + "\n")
	b.WriteString("SPDXID: SPDXRef-" + PackageID + "\n")
	b.WriteString("PackageDownloadLocation: NOASSERTION\n")
	b.WriteString("FilesAnalyzed: true\n")
	b.WriteString("\n")

	ids := make(map[string]string, len(sorted)) // BOMRef -> SPDXID
	for _, c := range sorted {
		id := Ref(c.Name)
		ids[c.BOMRef()] = id

		b.WriteString("FileName: " + c.Name + "\n")
		b.WriteString("SPDXID: " + id + "\n")
		b.WriteString("FileType: " + model.SPDXFileType23(c.FileType) + "\n")

		if sha1, ok := c.Checksums["SHA1"]; ok && len(sha1) == 40 {
			b.WriteString("FileChecksum: " + string(common.SHA1) + ": " + sha1 + "\n")
		}

		if len(c.Dependencies) > 0 {
			b.WriteString("FileComment: depends on " + strings.Join(c.Dependencies, ", ") + "\n")
		} else {
			b.WriteString("FileComment: " + model.SPDXFileType23(c.FileType) + " file\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Relationship: SPDXRef-" + PackageID + " DESCRIBES SPDXRef-DOCUMENT\n")
	for _, c := range sorted {
		id := ids[c.BOMRef()]
		b.WriteString(fmt.Sprintf("Relationship: SPDXRef-%s CONTAINS %s\n", PackageID, id))
	}
	for _, c := range sorted {
		id := ids[c.BOMRef()]
		for _, dep := range c.Dependencies {
			depID, ok := ids[dep]
			if !ok {
				depID = Ref(dep)
			}
			b.WriteString(fmt.Sprintf("Relationship: %s DEPENDS_ON %s\n", id, depID))
		}
	}

	return b.String(), nil
}

// Parse reads SPDX 2.3 tag-value text back into Components. Only the tags
// this package emits are recognized; unrecognized tags are ignored rather
// than rejected, per the parse-recovery policy in spec.md 7.
func (Handler23) Parse(content string) ([]*model.Component, error) {
	var out []*model.Component
	var current *model.Component

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tag, value, ok := splitTag(line)
		if !ok {
			continue
		}
		switch tag {
		case "FileName":
			if current != nil {
				out = append(out, current)
			}
			c, err := model.NewComponent(value, "", "", model.FileTypeUnknown)
			if err != nil {
				continue
			}
			current = c
		case "FileType":
			if current != nil {
				current.FileType = fromSPDXFileType23(value)
			}
		case "FileChecksum":
			if current == nil {
				continue
			}
			parts := strings.SplitN(value, ":", 2)
			if len(parts) == 2 {
				current.SetChecksum(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
			}
		}
	}
	if current != nil {
		out = append(out, current)
	}
	return out, nil
}

// Validate checks the presence of the required SPDX 2.3 tags and the
// well-formedness of every SPDXID value (spec.md 4.3.1, scenario S6).
func (Handler23) Validate(content string) *model.ValidationResult {
	result := model.NewValidationResult()
	if strings.TrimSpace(content) == "" {
		result.AddError("Content is empty")
		return result
	}

	required := []string{"SPDXVersion", "DataLicense", "SPDXID", "DocumentName", "DocumentNamespace", "Creator", "Created"}
	present := make(map[string]bool)

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		tag, value, ok := splitTag(line)
		if !ok {
			continue
		}
		present[tag] = true
		if tag == "SPDXID" && !spdxIDRe.MatchString(value) && value != "SPDXRef-DOCUMENT" {
			result.AddError(fmt.Sprintf("invalid SPDXID: %q", value))
		}
	}

	for _, tag := range required {
		if !present[tag] {
			result.AddError(fmt.Sprintf("missing required tag: %s", tag))
		}
	}

	result.SetMetadata("format", "SPDX")
	result.SetMetadata("version", "2.3")
	return result
}

func splitTag(line string) (tag, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}

func fromSPDXFileType23(s string) model.FileType {
	switch s {
	case "BINARY":
		return model.FileTypeExecutable
	case "ARCHIVE":
		return model.FileTypeStaticLibrary
	case "SOURCE":
		return model.FileTypeSource
	default:
		return model.FileTypeUnknown
	}
}

// buildDocument is exercised by tests that need the library's typed
// representation (e.g. to assert on CreationInfo/Checksum shapes) without
// going through the tag-value text form.
func buildDocument(components []*model.Component, meta format.Metadata, namespace string) *spdx23.Document {
	creators := []common.Creator{{CreatorType: "Tool", Creator: meta.CreatorTool + "-" + meta.CreatorVerson}}
	doc := &spdx23.Document{
		SPDXVersion:       spdx.Version,
		DataLicense:       spdx.DataLicense,
		SPDXIdentifier:    common.ElementID("DOCUMENT"),
		DocumentName:      meta.ProjectName,
		DocumentNamespace: namespace,
		CreationInfo: &spdx23.CreationInfo{
			Created:  time.Now().UTC().Format("2006-01-02T15:04:05Z"),
			Creators: creators,
		},
	}

	pkg := &spdx23.Package{
		PackageName:             meta.ProjectName,
		PackageSPDXIdentifier:   common.ElementID(PackageID),
		PackageDownloadLocation: "NOASSERTION",
		FilesAnalyzed:           true,
	}

	for _, c := range components {
		file := &spdx23.File{
			FileName:           c.Name,
			FileSPDXIdentifier:  common.ElementID(SanitizeID(c.Name)),
			FileTypes:           []string{model.SPDXFileType23(c.FileType)},
			FileCopyrightText:   c.Copyright,
			LicenseInfoInFiles:  []string{licenseOrNoassertion(c.License)},
			LicenseConcluded:    licenseOrNoassertion(c.License),
		}
		if sha1, ok := c.Checksums["SHA1"]; ok {
			file.Checksums = []common.Checksum{{Algorithm: common.SHA1, Value: sha1}}
		}
		pkg.Files = append(pkg.Files, file)

		if ref := purlExternalRef(c); ref != nil {
			pkg.PackageExternalReferences = append(pkg.PackageExternalReferences, ref)
		}
	}

	doc.Packages = []*spdx23.Package{pkg}
	doc.Relationships = []*spdx23.Relationship{{
		RefA:         common.MakeDocElementID("", PackageID),
		RefB:         common.MakeDocElementID("", "DOCUMENT"),
		Relationship: "DESCRIBES",
	}}
	return doc
}

func licenseOrNoassertion(license string) string {
	if license == "" {
		return "NOASSERTION"
	}
	return license
}

// purlExternalRef builds the PackageExternalReference used when this
// component's package_manager-derived PURL should be carried on an SPDX
// package rather than a file (used by buildDocument).
func purlExternalRef(c *model.Component) *spdx23.PackageExternalReference {
	p := purl.Build(c.PackageManager, c.Name, c.Version)
	if p == "" {
		return nil
	}
	return &spdx23.PackageExternalReference{
		Category: common.CategoryPackageManager,
		RefType:  "purl",
		Locator:  p,
	}
}
