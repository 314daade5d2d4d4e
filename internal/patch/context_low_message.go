package patch

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/hollegjx/mycode-statusline/internal/core/anchor"
	"github.com/hollegjx/mycode-statusline/internal/core/match"
)

const contextLowMessageAnchor = `"Context low ("`

var contextLowMessage = match.Shape{
	Name:    "context low message",
	Pattern: regexp.MustCompile(`^"Context low \(",([^,]+),"% remaining\) \x{00B7} Run /compact to compact & continue"`),
}

// ContextLowMessagePatch rewrites the context-low message around its
// percentage variable.
type ContextLowMessagePatch struct {
	Prefix string
	Suffix string
}

// ParseMessage splits "prefix,suffix" at the first comma.
func ParseMessage(s string) ContextLowMessagePatch {
	prefix, suffix, _ := strings.Cut(s, ",")
	return ContextLowMessagePatch{Prefix: prefix, Suffix: suffix}
}

func (p ContextLowMessagePatch) Name() string { return NameContextLowMessage }

func (p ContextLowMessagePatch) Description() string {
	return fmt.Sprintf("rewrite the context low message to %q…%q", p.Prefix, p.Suffix)
}

// RewrittenPattern matches the message as this patch writes it. The first
// group is the percentage variable.
func (p ContextLowMessagePatch) RewrittenPattern() *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(jsString(p.Prefix)) + `,([^,]+),` + regexp.QuoteMeta(jsString(p.Suffix)))
}

// Applied is true when the stock message is gone and the rewritten one is present.
func (p ContextLowMessagePatch) Applied(content string) bool {
	return !strings.Contains(content, contextLowMessageAnchor) && p.RewrittenPattern().MatchString(content)
}

func (p ContextLowMessagePatch) Locate(content string) (Resolution, error) {
	a, err := anchor.Find(content, anchor.Literal(contextLowMessageAnchor))
	if err != nil {
		return Resolution{}, locateErr(p.Name(), "anchor", err, contextLowMessageAnchor)
	}

	frag, err := match.Find(anchor.Extract(content, a.Start, 0, 200), contextLowMessage)
	if err != nil {
		return Resolution{}, locateErr(p.Name(), "match", err, "percentage variable in message")
	}

	loc := frag.Location()
	return Resolution{
		Location:    loc,
		Replacement: jsString(p.Prefix) + "," + loc.Captured + "," + jsString(p.Suffix),
		Candidates:  1,
	}, nil
}

// jsString renders s as a double-quoted JavaScript string literal.
func jsString(s string) string {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // a string always encodes
	return strings.TrimSuffix(sb.String(), "\n")
}
