// Package patch holds the named bundle patches and the session that applies
// them in order.
package patch

import (
	"fmt"

	"github.com/hollegjx/mycode-statusline/internal/types"
)

// Registry names of the built-in patches.
const (
	NameVerbose           = "verbose"
	NameContextLow        = "context-low"
	NameEscInterrupt      = "esc-interrupt"
	NameStatusRefresh     = "statusline-refresh"
	NameContextLowMessage = "context-low-message"
)

// KnownNames lists every built-in patch in default application order.
// context-low runs before context-low-message since the latter rewrites
// the former's anchor.
var KnownNames = []string{
	NameVerbose,
	NameContextLow,
	NameEscInterrupt,
	NameStatusRefresh,
	NameContextLowMessage,
}

// Patch locates one fragment of the bundle and says what to put there.
// Locate is a pure function of content; it never mutates anything.
type Patch interface {
	Name() string
	Description() string
	// Applied reports whether the patch's idempotency marker is present.
	Applied(content string) bool
	Locate(content string) (Resolution, error)
}

// Resolution is a located, ready-to-apply edit.
type Resolution struct {
	Location    types.Location
	Replacement string
	Warnings    []string
	// Candidates is how many candidates survived validation, or matched the
	// anchor when the patch has no validation stage.
	Candidates int
}

func locateErr(patch, stage string, err error, detail string) error {
	return &types.LocateError{Patch: patch, Stage: stage, Err: err, Detail: detail}
}

func ambiguity(n int, what, pick string) string {
	return fmt.Sprintf("%d %s qualified; using the %s", n, what, pick)
}

// resolvesToItself is the marker for in-place rewrites: the fragment the
// patch would replace already reads as the replacement.
func resolvesToItself(p Patch, content string) bool {
	res, err := p.Locate(content)
	if err != nil {
		return false
	}
	loc := res.Location
	return loc.Len() == len(res.Replacement) && content[loc.Start:loc.End] == res.Replacement
}
