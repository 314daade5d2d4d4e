package match

import (
	"strings"

	"github.com/hollegjx/mycode-statusline/internal/logger"
	"github.com/hollegjx/mycode-statusline/internal/types"
)

// Candidate is one possible home for a fragment. Start is where the
// candidate begins in the buffer; End bounds the text its constraints see.
type Candidate struct {
	Start int
	End   int
	Label string
}

// Constraint is a containment check run against a candidate's text.
type Constraint struct {
	Name  string
	Check func(text string) bool
}

// Contains requires the candidate text to include token.
func Contains(token string) Constraint {
	return Constraint{
		Name:  "contains " + token,
		Check: func(text string) bool { return strings.Contains(text, token) },
	}
}

// Validation keeps the whole candidate list so callers can report ambiguity.
type Validation struct {
	Considered []Candidate
	Survivors  []Candidate
}

// Closest returns the last surviving candidate, the one nearest a backward
// anchor.
func (v Validation) Closest() Candidate {
	return v.Survivors[len(v.Survivors)-1]
}

// Ambiguous reports whether more than one candidate passed.
func (v Validation) Ambiguous() bool {
	return len(v.Survivors) > 1
}

// Validate keeps every candidate whose text satisfies all constraints.
// It fails with ErrValidationFailed when none survive.
func Validate(content string, candidates []Candidate, constraints ...Constraint) (Validation, error) {
	v := Validation{Considered: candidates}
	for _, c := range candidates {
		text := slice(content, c.Start, c.End)
		ok := true
		for _, con := range constraints {
			if !con.Check(text) {
				logger.DebugTagf("match", "Validate: candidate %s@%d fails %q", c.Label, c.Start, con.Name)
				ok = false
				break
			}
		}
		if ok {
			v.Survivors = append(v.Survivors, c)
		}
	}
	if len(v.Survivors) == 0 {
		return v, types.ErrValidationFailed
	}
	if v.Ambiguous() {
		logger.DebugTagf("match", "Validate: %d of %d candidates survived", len(v.Survivors), len(candidates))
	}
	return v, nil
}

func slice(content string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(content) {
		end = len(content)
	}
	if start >= end {
		return ""
	}
	return content[start:end]
}
