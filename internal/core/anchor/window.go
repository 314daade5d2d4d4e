package anchor

import (
	"regexp"
	"strings"

	"github.com/hollegjx/mycode-statusline/internal/types"
)

// Window is a bounded slice of the buffer. Offsets inside Text are local;
// Start converts them back to buffer offsets.
type Window struct {
	Start int
	Text  string
}

// Extract returns the text from offset-lookback to offset+lookahead, clipped
// to the buffer. It never panics on out-of-range input.
func Extract(content string, offset, lookback, lookahead int) Window {
	if lookback < 0 {
		lookback = 0
	}
	if lookahead < 0 {
		lookahead = 0
	}
	return ExtractRange(content, offset-lookback, offset+lookahead)
}

// ExtractRange returns content[start:end] with both ends clipped to [0, len].
func ExtractRange(content string, start, end int) Window {
	start = clip(start, len(content))
	end = clip(end, len(content))
	if end < start {
		end = start
	}
	return Window{Start: start, Text: content[start:end]}
}

// End is the buffer offset just past the window.
func (w Window) End() int {
	return w.Start + len(w.Text)
}

// Resolve converts a window-local span into a buffer location.
func (w Window) Resolve(start, end int, captured string) types.Location {
	return types.Location{
		Start:    w.Start + start,
		End:      w.Start + end,
		Captured: captured,
	}
}

// Index returns the buffer offset of the first occurrence of sub, or -1.
func (w Window) Index(sub string) int {
	i := strings.Index(w.Text, sub)
	if i < 0 {
		return -1
	}
	return w.Start + i
}

// LastIndex returns the buffer offset of the last occurrence of sub, or -1.
func (w Window) LastIndex(sub string) int {
	i := strings.LastIndex(w.Text, sub)
	if i < 0 {
		return -1
	}
	return w.Start + i
}

// AllIndex returns the buffer offsets of every occurrence of sub in order.
func (w Window) AllIndex(sub string) []int {
	if sub == "" {
		return nil
	}
	var out []int
	for from := 0; ; {
		i := strings.Index(w.Text[from:], sub)
		if i < 0 {
			return out
		}
		out = append(out, w.Start+from+i)
		from += i + len(sub)
	}
}

// LastSubmatch returns the buffer span of the last regex match and its first
// capture group.
func (w Window) LastSubmatch(re *regexp.Regexp) (types.Location, bool) {
	all := re.FindAllStringSubmatchIndex(w.Text, -1)
	if len(all) == 0 {
		return types.Location{}, false
	}
	loc := all[len(all)-1]
	captured := ""
	if len(loc) >= 4 && loc[2] >= 0 {
		captured = w.Text[loc[2]:loc[3]]
	}
	return w.Resolve(loc[0], loc[1], captured), true
}

func clip(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
