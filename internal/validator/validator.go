// Package validator dispatches SBOM content to the matching format.Handler
// for schema and required-field validation, auto-detecting format/version
// when the caller does not already know it.
package validator

import (
	"errors"
	"os"
	"strings"

	"github.com/linksbom/linksbom/internal/format"
	"github.com/linksbom/linksbom/internal/model"
)

// ErrEmptyContent is returned when the content to validate is blank.
var ErrEmptyContent = errors.New("Content is empty")

// Validator dispatches to a Registry of format handlers.
type Validator struct {
	registry *format.Registry
}

// New constructs a Validator backed by registry.
func New(registry *format.Registry) *Validator {
	return &Validator{registry: registry}
}

// ValidateContent validates an in-memory SBOM document. If formatName is
// empty, the format and version are auto-detected (spec.md 4.3/4.5).
func (v *Validator) ValidateContent(content, formatName, version string) *model.ValidationResult {
	if strings.TrimSpace(content) == "" {
		result := model.NewValidationResult()
		result.AddError(ErrEmptyContent.Error())
		return result
	}

	if formatName == "" {
		detectedFormat, detectedVersion, err := format.Detect(content)
		if err != nil {
			result := model.NewValidationResult()
			result.AddError(err.Error())
			return result
		}
		formatName, version = detectedFormat, detectedVersion
	}

	handler, err := v.registry.Resolve(formatName, version)
	if err != nil {
		result := model.NewValidationResult()
		result.AddError(err.Error())
		return result
	}

	return handler.Validate(content)
}

// ValidateFile reads path and delegates to ValidateContent.
func (v *Validator) ValidateFile(path, formatName, version string) (*model.ValidationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return v.ValidateContent(string(data), formatName, version), nil
}
