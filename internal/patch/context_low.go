package patch

import (
	"regexp"
	"strings"

	"github.com/hollegjx/mycode-statusline/internal/core/anchor"
	"github.com/hollegjx/mycode-statusline/internal/core/match"
	"github.com/hollegjx/mycode-statusline/internal/types"
)

const (
	contextLowAnchor   = "Context low ("
	contextLowLookback = 800
	// Candidate function text runs up to this far past the anchor.
	contextLowReach = 100
)

var guardShape = match.Shape{Name: "return-null guard", Pattern: regexp.MustCompile(`if\([^)]+\)return null`)}

// ContextLowPatch forces the guard of the context-low warning component to
// always bail out.
type ContextLowPatch struct {
	// Anchors are tried in order; the first found wins. Empty means
	// "Context low (".
	Anchors []anchor.Anchor
}

func (p ContextLowPatch) Name() string { return NameContextLow }

func (p ContextLowPatch) Description() string {
	return "disable the context low warning"
}

func (p ContextLowPatch) Applied(content string) bool {
	return resolvesToItself(p, content)
}

func (p ContextLowPatch) anchors() []anchor.Anchor {
	if len(p.Anchors) == 0 {
		return []anchor.Anchor{anchor.Literal(contextLowAnchor)}
	}
	return p.Anchors
}

func (p ContextLowPatch) Locate(content string) (Resolution, error) {
	var (
		a   anchor.Match
		err = types.ErrAnchorNotFound
	)
	var tried []string
	for _, candidate := range p.anchors() {
		if a, err = anchor.Find(content, candidate); err == nil {
			break
		}
		tried = append(tried, candidate.String())
	}
	if err != nil {
		return Resolution{}, locateErr(p.Name(), "anchor", err, strings.Join(tried, " | "))
	}

	w := anchor.Extract(content, a.Start, contextLowLookback, 0)
	starts := w.AllIndex("function ")
	if len(starts) == 0 {
		return Resolution{}, locateErr(p.Name(), "window", types.ErrPatternNotFound, "function declaration before anchor")
	}

	candidates := make([]match.Candidate, 0, len(starts))
	for _, s := range starts {
		candidates = append(candidates, match.Candidate{Start: s, End: a.Start + contextLowReach, Label: "function"})
	}
	v, err := match.Validate(content, candidates, match.Contains("tokenUsage:"))
	if err != nil {
		return Resolution{}, locateErr(p.Name(), "validate", err, "function containing tokenUsage:")
	}
	fn := v.Closest()

	body := anchor.ExtractRange(content, fn.Start, fn.End)
	frag, err := match.Find(body, guardShape)
	if err != nil {
		return Resolution{}, locateErr(p.Name(), "match", err, guardShape.Pattern.String())
	}

	res := Resolution{
		Location:    frag.Location(),
		Replacement: "if(true)return null",
		Candidates:  len(v.Survivors),
	}
	if v.Ambiguous() {
		res.Warnings = append(res.Warnings, ambiguity(len(v.Survivors), "function candidates", "closest to the anchor"))
	}
	return res, nil
}
