package somesy

import "errors"

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := writer.Sync(metadata)
//	if errors.Is(err, somesy.ErrValidationFailed) {
//	    // Handle an invalid target file
//	}
var (
	// ErrInvalidMetadata indicates the canonical project metadata is invalid
	// (e.g. missing required fields or duplicate contributors).
	ErrInvalidMetadata = errors.New("invalid project metadata")

	// ErrInputNotFound indicates no somesy input file could be located.
	ErrInputNotFound = errors.New("no somesy input file found")

	// ErrTargetNotFound indicates a target file is absent and the adapter
	// was constructed without permission to create it.
	ErrTargetNotFound = errors.New("target file not found")

	// ErrValidationFailed indicates a target file does not satisfy the
	// schema of its format; synchronization must not proceed on it.
	ErrValidationFailed = errors.New("target file validation failed")

	// ErrNoSyncTargets indicates every sync target has been disabled,
	// leaving nothing to do.
	ErrNoSyncTargets = errors.New("no sync target enabled")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidMetadata), errors.Is(err, ErrNoSyncTargets):
		return ExitInvalidMetadata
	case errors.Is(err, ErrInputNotFound):
		return ExitInputMissing
	case errors.Is(err, ErrTargetNotFound):
		return ExitTargetMissing
	case errors.Is(err, ErrValidationFailed):
		return ExitValidationFailed
	}

	return ExitGeneralError
}
