package patch

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hollegjx/mycode-statusline/internal/buffer"
	"github.com/hollegjx/mycode-statusline/internal/types"
)

// DiffContext is how many bytes of unchanged text surround a diff.
const DiffContext = 50

// Diff shows one splice with a little context, for operator review.
type Diff struct {
	Offset  int // Buffer offset of Before
	Before  string
	OldText string
	NewText string
	After   string
}

// NewDiff builds the audit diff for replacing loc with replacement. Context
// edges are moved inward to rune boundaries.
func NewDiff(content string, loc types.Location, replacement string) Diff {
	from := loc.Start - DiffContext
	if from < 0 {
		from = 0
	}
	for from < loc.Start && !utf8.RuneStart(content[from]) {
		from++
	}
	to := loc.End + DiffContext
	if to > len(content) {
		to = len(content)
	}
	for to > loc.End && to < len(content) && !utf8.RuneStart(content[to]) {
		to--
	}
	return Diff{
		Offset:  from,
		Before:  content[from:loc.Start],
		OldText: content[loc.Start:loc.End],
		NewText: replacement,
		After:   content[loc.End:to],
	}
}

// Old is the context as it read before the splice.
func (d Diff) Old() string { return d.Before + d.OldText + d.After }

// New is the context as it reads after the splice.
func (d Diff) New() string { return d.Before + d.NewText + d.After }

func (d Diff) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "@@ offset %d @@\n", d.Offset)
	fmt.Fprintf(&sb, "- %s\n", d.Old())
	fmt.Fprintf(&sb, "+ %s\n", d.New())
	return sb.String()
}

// Apply splices the resolution into the buffer. The buffer is unchanged when
// an error is returned.
func Apply(buf buffer.Buffer, name, description string, res Resolution) (types.Operation, Diff, error) {
	loc := res.Location
	content := buf.String()
	if loc.Start < 0 || loc.End < loc.Start || loc.End > len(content) {
		return types.Operation{}, Diff{}, fmt.Errorf("%s: location [%d,%d) outside buffer of %d bytes", name, loc.Start, loc.End, len(content))
	}

	diff := NewDiff(content, loc, res.Replacement)
	op := types.Operation{
		Name:        name,
		Start:       loc.Start,
		End:         loc.End,
		OldText:     buf.Slice(loc.Start, loc.End),
		NewText:     res.Replacement,
		Description: description,
		Captured:    loc.Captured,
	}
	if _, err := buf.Replace(loc.Start, loc.End, res.Replacement); err != nil {
		return types.Operation{}, Diff{}, fmt.Errorf("%s: %w", name, err)
	}
	return op, diff, nil
}
