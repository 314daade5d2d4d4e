// Package audit turns session results into artefacts an operator can keep:
// a unified diff of every splice and a YAML report.
package audit

import (
	"fmt"
	"strings"

	"github.com/sourcegraph/go-diff/diff"

	"github.com/hollegjx/mycode-statusline/internal/patch"
	"github.com/hollegjx/mycode-statusline/internal/types"
)

// FileDiffs builds one file diff per applied operation. Hunks carry the
// operation's context window rather than whole lines, since bundle lines
// can be megabytes long. The result is for reading only; patch(1) will not
// apply it.
func FileDiffs(path, original string, ops []types.Operation) []*diff.FileDiff {
	out := make([]*diff.FileDiff, 0, len(ops))
	content := original
	for _, op := range ops {
		d := patch.NewDiff(content, op.Location(), op.NewText)
		line := int32(strings.Count(content[:d.Offset], "\n") + 1)

		oldLines := splitLines(d.Old())
		newLines := splitLines(d.New())
		var body strings.Builder
		for _, l := range oldLines {
			body.WriteString("-" + l + "\n")
		}
		for _, l := range newLines {
			body.WriteString("+" + l + "\n")
		}

		out = append(out, &diff.FileDiff{
			OrigName: "a/" + path,
			NewName:  "b/" + path,
			Extended: []string{
				fmt.Sprintf("patch: %s", op.Name),
				fmt.Sprintf("bytes: %d-%d", op.Start, op.End),
			},
			Hunks: []*diff.Hunk{{
				OrigStartLine: line,
				OrigLines:     int32(len(oldLines)),
				NewStartLine:  line,
				NewLines:      int32(len(newLines)),
				Section:       op.Description,
				Body:          []byte(body.String()),
			}},
		})
		content = content[:op.Start] + op.NewText + content[op.End:]
	}
	return out
}

// UnifiedDiff renders the operations as a multi-file unified diff.
func UnifiedDiff(path, original string, ops []types.Operation) ([]byte, error) {
	if len(ops) == 0 {
		return nil, nil
	}
	out, err := diff.PrintMultiFileDiff(FileDiffs(path, original, ops))
	if err != nil {
		return nil, fmt.Errorf("failed to print diff: %w", err)
	}
	return out, nil
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
