package format

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	spdxTagVersionRe    = regexp.MustCompile(`SPDXVersion:\s*SPDX-([0-9][0-9.]*)`)
	spdxSpecVersionRe   = regexp.MustCompile(`"specVersion"\s*:\s*"SPDX-([0-9][0-9.]*)"`)
	spdxLegacyVersionRe = regexp.MustCompile(`"spdxVersion"\s*:\s*"SPDX-([0-9][0-9.]*)"`)
	cdxVersionRe        = regexp.MustCompile(`"specVersion"\s*:\s*"([0-9][0-9.]*)"`)
)

// spdxJSONVersion extracts the SPDX JSON version, preferring specVersion
// (which carries the full "3.0.x") over the legacy spdxVersion key.
func spdxJSONVersion(content string) string {
	if m := spdxSpecVersionRe.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	if m := spdxLegacyVersionRe.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	return ""
}

// Detect inspects raw SBOM content and returns the format name ("spdx" or
// "cyclonedx") and, when recoverable, its version string.
func Detect(content string) (detectedFormat string, version string, err error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", "", fmt.Errorf("format: empty content")
	}

	lower := strings.ToLower(trimmed)

	switch {
	case strings.Contains(trimmed, "SPDXVersion:"):
		if m := spdxTagVersionRe.FindStringSubmatch(trimmed); m != nil {
			return "spdx", m[1], nil
		}
		return "spdx", "", nil

	case strings.Contains(lower, `"bomformat"`) && strings.Contains(lower, `"cyclonedx"`):
		if m := cdxVersionRe.FindStringSubmatch(trimmed); m != nil {
			return "cyclonedx", m[1], nil
		}
		return "cyclonedx", "", nil

	case strings.Contains(trimmed, `"@context"`) && strings.Contains(lower, "spdx"):
		return "spdx", spdxJSONVersion(trimmed), nil

	case strings.Contains(lower, `"spdxversion"`) || strings.Contains(lower, `"specversion"`):
		return "spdx", spdxJSONVersion(trimmed), nil

	default:
		return "", "", fmt.Errorf("format: unable to detect SBOM format from content")
	}
}
