package generator

import "errors"

// Sentinel errors for common generation failures. These can be used with
// errors.Is() for error type checking.
var (
	// ErrNoComponents is returned by Generate when the accumulated
	// document has no components.
	ErrNoComponents = errors.New("No components to generate SBOM from")

	// ErrNoOutputPath is returned by Generate when no output path was
	// configured.
	ErrNoOutputPath = errors.New("No output path specified")
)

// UnknownHandlerError wraps format.ErrUnknownHandler with generator
// context, following the teacher's structured-error-type convention
// (see internal/core/errors.go).
type UnknownHandlerError struct {
	Format  string
	Version string
	Cause   error
}

func (e *UnknownHandlerError) Error() string {
	return "Error: no format handler for " + e.Format + " " + e.Version
}

func (e *UnknownHandlerError) Unwrap() error {
	return e.Cause
}
