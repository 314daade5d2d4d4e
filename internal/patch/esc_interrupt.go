package patch

import (
	"fmt"
	"regexp"

	"github.com/hollegjx/mycode-statusline/internal/core/anchor"
	"github.com/hollegjx/mycode-statusline/internal/core/match"
	"github.com/hollegjx/mycode-statusline/internal/types"
)

const (
	escAnchor    = `{key:"esc"}`
	escSecondary = `"to interrupt"`
	escWithin    = 200
)

// Condition text between the spread and the first following "?".
var ternaryCondition = match.Shape{Name: "ternary condition", Pattern: regexp.MustCompile(`^([^?]+)\?`), Group: 1}

// EscInterruptPatch hides the "esc to interrupt" hint by replacing the
// ternary condition that spreads it into the footer.
type EscInterruptPatch struct{}

func (p EscInterruptPatch) Name() string { return NameEscInterrupt }

func (p EscInterruptPatch) Description() string {
	return `disable the "esc to interrupt" hint`
}

func (p EscInterruptPatch) Applied(content string) bool {
	return resolvesToItself(p, content)
}

func (p EscInterruptPatch) Locate(content string) (Resolution, error) {
	a := anchor.Literal(escAnchor).WithSecondary(escSecondary, escWithin)
	matches, err := anchor.Locate(content, a)
	if err != nil {
		return Resolution{}, locateErr(p.Name(), "anchor", err, a.String())
	}

	// Hints that are not spread through a ternary are skipped; the first
	// one that is wins.
	var (
		found    []types.Location
		firstErr error
	)
	for _, key := range matches {
		loc, err := p.condition(content, key.Start)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		found = append(found, loc)
	}
	if len(found) == 0 {
		return Resolution{}, firstErr
	}

	res := Resolution{
		Location:    found[0],
		Replacement: "(false)",
		Candidates:  len(found),
	}
	if skipped := len(matches) - len(found); skipped > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("skipped %d esc hint(s) without a spread ternary", skipped))
	}
	if len(found) > 1 {
		res.Warnings = append(res.Warnings, ambiguity(len(found), "esc hints", "first"))
	}
	return res, nil
}

// condition finds the ternary condition between the nearest preceding spread
// and the esc key at keyStart.
func (p EscInterruptPatch) condition(content string, keyStart int) (types.Location, error) {
	spread := anchor.ExtractRange(content, 0, keyStart).LastIndex("...")
	if spread < 0 {
		return types.Location{}, locateErr(p.Name(), "window", types.ErrPatternNotFound, "spread operator before esc key")
	}

	w := anchor.ExtractRange(content, spread+3, keyStart)
	frag, err := match.Find(w, ternaryCondition)
	if err != nil {
		return types.Location{}, locateErr(p.Name(), "match", err, "condition between ... and ?")
	}
	return frag.Location(), nil
}
