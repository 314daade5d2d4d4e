// internal/types/errors.go
package types

import (
	"errors"
	"fmt"
)

// Failure kinds reported by the patch pipeline.
var (
	// ErrAnchorNotFound is returned when no primary anchor occurs in the buffer.
	ErrAnchorNotFound = errors.New("anchor not found")

	// ErrSecondaryAnchorMissing is returned when primary anchors exist but none
	// has its secondary anchor within the configured distance.
	ErrSecondaryAnchorMissing = errors.New("secondary anchor missing")

	// ErrPatternNotFound is returned when the anchor was found but the expected
	// structure near it was not.
	ErrPatternNotFound = errors.New("pattern not found")

	// ErrValidationFailed is returned when no candidate passes validation.
	ErrValidationFailed = errors.New("validation failed")

	// ErrAlreadyApplied marks a recognised no-op. It is not a failure.
	ErrAlreadyApplied = errors.New("already applied")

	// ErrIO is returned when reading or writing the target file fails.
	ErrIO = errors.New("i/o error")
)

// LocateError reports which stage of a patch's locate pipeline failed.
type LocateError struct {
	Patch  string // Patch name
	Stage  string // anchor, window, match, validate
	Err    error  // One of the sentinel errors above
	Detail string // What was being looked for
}

func (e *LocateError) Error() string {
	msg := fmt.Sprintf("%s: %s: %v", e.Patch, e.Stage, e.Err)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *LocateError) Unwrap() error {
	return e.Err
}

// Kind returns the sentinel error that classifies err, or nil if err does not
// come from the patch pipeline.
func Kind(err error) error {
	for _, k := range []error{
		ErrAnchorNotFound,
		ErrSecondaryAnchorMissing,
		ErrPatternNotFound,
		ErrValidationFailed,
		ErrAlreadyApplied,
		ErrIO,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
