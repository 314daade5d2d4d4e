// internal/types/edit.go
package types

// Edit describes the byte ranges touched by a single splice.
type Edit struct {
	StartIndex  int // Start byte of the edit
	OldEndIndex int // End byte of the replaced text
	NewEndIndex int // End byte of the inserted text
}

// Delta is the change in buffer length caused by the edit.
func (e Edit) Delta() int {
	return e.NewEndIndex - e.OldEndIndex
}

// Operation is a fully resolved, applied edit as recorded in a session log.
// Replaying operations in order against the original buffer reproduces the
// patched buffer.
type Operation struct {
	Name        string // Patch that produced the edit
	Start       int    // Byte offset in the buffer before this operation
	End         int
	OldText     string // Text that was replaced
	NewText     string // Replacement text
	Description string
	Captured    string
}

// Location returns the span the operation replaced.
func (o Operation) Location() Location {
	return Location{Start: o.Start, End: o.End, Captured: o.Captured}
}

// Edit returns the byte ranges the operation touched.
func (o Operation) Edit() Edit {
	return Edit{
		StartIndex:  o.Start,
		OldEndIndex: o.End,
		NewEndIndex: o.Start + len(o.NewText),
	}
}
