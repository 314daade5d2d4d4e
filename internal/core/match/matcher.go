// Package match applies small regex grammars to candidate windows and
// filters ambiguous candidates by containment checks.
package match

import (
	"regexp"

	"github.com/hollegjx/mycode-statusline/internal/core/anchor"
	"github.com/hollegjx/mycode-statusline/internal/logger"
	"github.com/hollegjx/mycode-statusline/internal/types"
)

// Shape describes the fragment a patch rewrites. When Group is positive the
// fragment is that capture group instead of the whole match.
type Shape struct {
	Name    string
	Pattern *regexp.Regexp
	Group   int
}

// Fragment is a structural match inside a window.
type Fragment struct {
	Window   anchor.Window
	Start    int // window-local
	End      int // window-local
	Text     string
	Captured string
}

// Location resolves the fragment to buffer offsets.
func (f Fragment) Location() types.Location {
	return f.Window.Resolve(f.Start, f.End, f.Captured)
}

// Find returns the first match of the shape inside the window.
func Find(w anchor.Window, s Shape) (Fragment, error) {
	loc := s.Pattern.FindStringSubmatchIndex(w.Text)
	if loc == nil {
		logger.DebugTagf("match", "Match: shape %q not in window [%d,%d)", s.Name, w.Start, w.End())
		return Fragment{}, types.ErrPatternNotFound
	}
	f, ok := fragmentFrom(w, s, loc)
	if !ok {
		return Fragment{}, types.ErrPatternNotFound
	}
	logger.DebugTagf("match", "Match: shape %q at %d: %q", s.Name, w.Start+f.Start, f.Text)
	return f, nil
}

// FindAll returns every non-overlapping match of the shape in window order.
func FindAll(w anchor.Window, s Shape) []Fragment {
	var out []Fragment
	for _, loc := range s.Pattern.FindAllStringSubmatchIndex(w.Text, -1) {
		if f, ok := fragmentFrom(w, s, loc); ok {
			out = append(out, f)
		}
	}
	return out
}

func fragmentFrom(w anchor.Window, s Shape, loc []int) (Fragment, bool) {
	start, end := loc[0], loc[1]
	if s.Group > 0 {
		if 2*s.Group+1 >= len(loc) || loc[2*s.Group] < 0 {
			return Fragment{}, false
		}
		start, end = loc[2*s.Group], loc[2*s.Group+1]
	}
	f := Fragment{Window: w, Start: start, End: end, Text: w.Text[start:end]}
	if len(loc) >= 4 && loc[2] >= 0 {
		f.Captured = w.Text[loc[2]:loc[3]]
	}
	return f, true
}
