// Package anchor finds the stable seed strings a patch searches from and
// carves the bounded windows the structural match must live in.
package anchor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hollegjx/mycode-statusline/internal/logger"
	"github.com/hollegjx/mycode-statusline/internal/types"
)

// Direction decides which occurrence Pick prefers.
type Direction int

const (
	Forward  Direction = iota // First occurrence in buffer order
	Backward                  // Last occurrence in buffer order
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Anchor is a literal or small regex expected to survive re-minification.
// Exactly one of Literal and Pattern is set.
type Anchor struct {
	Literal   string
	Pattern   *regexp.Regexp
	Direction Direction

	// Secondary, when set, must occur within SecondaryWithin bytes forward of
	// the primary match start. A non-positive bound means "anywhere after".
	Secondary       string
	SecondaryWithin int
}

// Literal builds a forward literal anchor.
func Literal(s string) Anchor {
	return Anchor{Literal: s}
}

// Regexp builds a forward regex anchor.
func Regexp(re *regexp.Regexp) Anchor {
	return Anchor{Pattern: re}
}

// WithSecondary returns a copy of the anchor that requires secondary within n bytes.
func (a Anchor) WithSecondary(secondary string, n int) Anchor {
	a.Secondary = secondary
	a.SecondaryWithin = n
	return a
}

// String describes the anchor for error details and logs.
func (a Anchor) String() string {
	s := a.Literal
	if a.Pattern != nil {
		s = a.Pattern.String()
	}
	if a.Secondary != "" {
		s = fmt.Sprintf("%s + %s within %d", s, a.Secondary, a.SecondaryWithin)
	}
	return s
}

// Match is one qualifying anchor occurrence. Captured holds the first
// capture group of a regex anchor, if any.
type Match struct {
	Start    int
	End      int
	Captured string
}

// Locate returns every occurrence of the anchor in buffer order. Occurrences
// without the secondary anchor inside the bound are dropped.
func Locate(content string, a Anchor) ([]Match, error) {
	primary := primaryMatches(content, a)
	if len(primary) == 0 {
		logger.DebugTagf("anchor", "Anchor: %q not found", a.String())
		return nil, types.ErrAnchorNotFound
	}
	if a.Secondary == "" {
		return primary, nil
	}

	qualified := make([]Match, 0, len(primary))
	for _, m := range primary {
		end := len(content)
		if a.SecondaryWithin > 0 && m.Start+a.SecondaryWithin < end {
			end = m.Start + a.SecondaryWithin
		}
		if strings.Contains(content[m.Start:end], a.Secondary) {
			qualified = append(qualified, m)
		}
	}
	if len(qualified) == 0 {
		logger.DebugTagf("anchor", "Anchor: %d primary match(es), none followed by %q", len(primary), a.Secondary)
		return nil, types.ErrSecondaryAnchorMissing
	}
	logger.DebugTagf("anchor", "Anchor: %q qualified %d of %d", a.String(), len(qualified), len(primary))
	return qualified, nil
}

func primaryMatches(content string, a Anchor) []Match {
	if a.Pattern != nil {
		var matches []Match
		for _, loc := range a.Pattern.FindAllStringSubmatchIndex(content, -1) {
			m := Match{Start: loc[0], End: loc[1]}
			if len(loc) >= 4 && loc[2] >= 0 {
				m.Captured = content[loc[2]:loc[3]]
			}
			matches = append(matches, m)
		}
		return matches
	}
	if a.Literal == "" {
		return nil
	}

	var matches []Match
	for from := 0; from <= len(content); {
		i := strings.Index(content[from:], a.Literal)
		if i < 0 {
			break
		}
		start := from + i
		matches = append(matches, Match{Start: start, End: start + len(a.Literal)})
		from = start + len(a.Literal)
	}
	return matches
}

// Pick applies the default disambiguation: first match going forward, last
// match going backward.
func Pick(matches []Match, dir Direction) (Match, bool) {
	if len(matches) == 0 {
		return Match{}, false
	}
	if dir == Backward {
		return matches[len(matches)-1], true
	}
	return matches[0], true
}

// Find locates the anchor and picks one occurrence by its direction.
func Find(content string, a Anchor) (Match, error) {
	matches, err := Locate(content, a)
	if err != nil {
		return Match{}, err
	}
	m, _ := Pick(matches, a.Direction)
	return m, nil
}
