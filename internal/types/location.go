// internal/types/location.go
package types

// Location is a resolved span in the source buffer.
// Start and End are byte offsets into the buffer *as it was* when the
// location was computed; any splice before Start invalidates it.
type Location struct {
	Start    int
	End      int
	Captured string // Optional captured sub-value (e.g. a variable name)
}

// Len returns the number of bytes the location covers.
func (l Location) Len() int {
	return l.End - l.Start
}
