package audit

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollegjx/mycode-statusline/internal/buffer"
	"github.com/hollegjx/mycode-statusline/internal/patch"
	"github.com/hollegjx/mycode-statusline/internal/types"
)

const sample = "line one\n" +
	`createElement(X,{spinnerTip:1,overrideMessage:2,verbose:false});` + "\n" +
	`...H1?[{key:"esc"},"foo","to interrupt"]:[]` + "\n"

func runSample(t *testing.T) (*patch.Session, patch.Summary) {
	t.Helper()
	s := patch.NewSession(buffer.New("cli.js", sample))
	sum := s.RunAll([]patch.Patch{patch.VerbosePatch{Value: true}, patch.EscInterruptPatch{}, patch.ContextLowPatch{}})
	return s, sum
}

func TestFileDiffs(t *testing.T) {
	s, _ := runSample(t)
	fds := FileDiffs("cli.js", s.Original(), s.Operations())
	require.Len(t, fds, 2)

	first := fds[0]
	assert.Equal(t, "a/cli.js", first.OrigName)
	assert.Contains(t, first.Extended, "patch: verbose")
	require.Len(t, first.Hunks, 1)
	assert.Equal(t, int32(1), first.Hunks[0].OrigStartLine, "context starts on line one")
	body := string(first.Hunks[0].Body)
	assert.Contains(t, body, "-createElement(X,{spinnerTip:1,overrideMessage:2,verbose:false});\n")
	assert.Contains(t, body, "+createElement(X,{spinnerTip:1,overrideMessage:2,verbose:true});\n")

	second := fds[1]
	assert.Equal(t, int32(2), second.Hunks[0].OrigStartLine)
	assert.Contains(t, string(second.Hunks[0].Body), "-...H1?")
	assert.Contains(t, string(second.Hunks[0].Body), "+...(false)?")
}

func TestUnifiedDiff(t *testing.T) {
	s, _ := runSample(t)
	out, err := UnifiedDiff("cli.js", s.Original(), s.Operations())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "--- a/cli.js")
	assert.Contains(t, text, "+++ b/cli.js")
	assert.Contains(t, text, "@@ -1,")
	assert.Equal(t, 2, strings.Count(text, "+++ b/cli.js"))

	none, err := UnifiedDiff("cli.js", sample, nil)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestReportRoundTrip(t *testing.T) {
	_, sum := runSample(t)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	r := NewReport(sum, true, now)
	r.Backup = "cli.js.backup"

	require.Len(t, r.Patches, 3)
	assert.Equal(t, "applied", r.Patches[0].State)
	require.NotNil(t, r.Patches[0].Start)
	assert.Equal(t, "verbose:false", r.Patches[0].Old)
	assert.Equal(t, "failed", r.Patches[2].State)
	assert.Contains(t, r.Patches[2].Error, types.ErrAnchorNotFound.Error())

	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, r.WriteFile(path))

	back, err := ReadReport(path)
	require.NoError(t, err)
	assert.Equal(t, r, back)
}

func TestReadReport_Missing(t *testing.T) {
	_, err := ReadReport(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
