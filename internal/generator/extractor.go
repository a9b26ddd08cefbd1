package generator

import "github.com/linksbom/linksbom/internal/model"

// MetadataExtractor enriches a synthesized Component with data read from
// its underlying file (ELF/Mach-O/PE headers, archive membership, debug
// info). Binary format parsing is out of scope for this repository; the
// interface exists so a real extractor can be plugged in without
// changing the Generator.
type MetadataExtractor interface {
	ExtractMetadata(c *model.Component) error

	IsELF(path string) bool
	IsMachO(path string) bool
	IsPE(path string) bool
	IsArchive(path string) bool

	SetVerbose(bool)
	SetExtractDebugInfo(bool)
	SetSuppressWarnings(bool)
}

// NoopExtractor is the zero-value MetadataExtractor: every probe returns
// false and ExtractMetadata is a no-op. Used by tests and as the
// Generator's default.
type NoopExtractor struct{}

func (NoopExtractor) ExtractMetadata(*model.Component) error { return nil }
func (NoopExtractor) IsELF(string) bool                       { return false }
func (NoopExtractor) IsMachO(string) bool                      { return false }
func (NoopExtractor) IsPE(string) bool                         { return false }
func (NoopExtractor) IsArchive(string) bool                    { return false }
func (NoopExtractor) SetVerbose(bool)                          {}
func (NoopExtractor) SetExtractDebugInfo(bool)                 {}
func (NoopExtractor) SetSuppressWarnings(bool)                 {}

var _ MetadataExtractor = NoopExtractor{}
