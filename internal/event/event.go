// internal/event/event.go
package event

import "github.com/hollegjx/mycode-statusline/internal/types"

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Session lifecycle
	TypeSessionOpened // Bundle read into a new session
	TypeSessionSaved  // Patched bundle written back

	// Per-patch outcomes
	TypePatchApplied // Splice performed
	TypePatchSkipped // Idempotency marker found, nothing to do
	TypePatchFailed  // Locate phase failed, buffer untouched

	// Watch mode
	TypeBundleChanged // The watched bundle was rewritten on disk
)

func (t Type) String() string {
	switch t {
	case TypeSessionOpened:
		return "session-opened"
	case TypeSessionSaved:
		return "session-saved"
	case TypePatchApplied:
		return "patch-applied"
	case TypePatchSkipped:
		return "patch-skipped"
	case TypePatchFailed:
		return "patch-failed"
	case TypeBundleChanged:
		return "bundle-changed"
	default:
		return "unknown"
	}
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// SessionOpenedData describes a freshly loaded bundle.
type SessionOpenedData struct {
	SessionID string
	FilePath  string
	Size      int
}

// SessionSavedData describes a completed write.
type SessionSavedData struct {
	SessionID string
	FilePath  string
	Applied   int
}

// PatchData carries one patch outcome.
type PatchData struct {
	SessionID string
	Patch     string
	Operation *types.Operation // nil unless applied
	Err       error            // nil once applied
	Warnings  []string
}

// BundleChangedData names the file that changed.
type BundleChangedData struct {
	FilePath string
}
