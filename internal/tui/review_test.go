package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollegjx/mycode-statusline/internal/patch"
	"github.com/hollegjx/mycode-statusline/internal/types"
)

type fakeCopier struct {
	text string
	err  error
}

func (c *fakeCopier) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func newSimTUI(t *testing.T, w, h int) (*TUI, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	tui, err := NewWithScreen(s)
	require.NoError(t, err)
	s.SetSize(w, h)
	t.Cleanup(tui.Close)
	return tui, s
}

func rowText(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(string(c.Runes))
	}
	return b.String()
}

func screenText(s tcell.SimulationScreen) string {
	_, _, h := s.GetContents()
	var lines []string
	for y := 0; y < h; y++ {
		lines = append(lines, rowText(s, y))
	}
	return strings.Join(lines, "\n")
}

func sampleSummary() patch.Summary {
	content := `x=createElement(a,{verbose:false,spinnerTip:b})`
	loc := types.Location{Start: 19, End: 32}
	d := patch.NewDiff(content, loc, "verbose:true")
	return patch.Summary{
		FilePath: "/tmp/cli.js",
		Results: []patch.Result{
			{Patch: "verbose", Description: "force verbose", State: patch.Applied, Diff: &d},
			{Patch: "context-low", Description: "hide warning", State: patch.AlreadyApplied},
			{Patch: "esc-interrupt", Description: "hide hint", State: patch.Failed,
				Err: &types.LocateError{Patch: "esc-interrupt", Stage: "anchor", Err: types.ErrAnchorNotFound}},
		},
	}
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestReview_DrawShowsResultsAndDiff(t *testing.T) {
	tui, s := newSimTUI(t, 100, 20)
	r := NewReview(tui, sampleSummary(), nil)
	r.Draw()

	text := screenText(s)
	assert.Contains(t, rowText(s, 0), "cli.js")
	assert.Contains(t, rowText(s, 0), "1 applied, 1 already applied, 1 failed")
	assert.Contains(t, text, "verbose")
	assert.Contains(t, text, "NEW: ")
	assert.Contains(t, text, "verbose:true")
	assert.Contains(t, rowText(s, 19), "s save")
}

func TestReview_Navigation(t *testing.T) {
	tui, s := newSimTUI(t, 100, 20)
	r := NewReview(tui, sampleSummary(), nil)

	done, _ := r.HandleKey(key('j'))
	assert.False(t, done)
	r.HandleKey(key('j'))
	assert.Equal(t, 2, r.Selected())

	r.Draw()
	assert.Contains(t, screenText(s), "anchor not found")

	r.HandleKey(key('j'))
	assert.Equal(t, 0, r.Selected(), "wraps around")
	r.HandleKey(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	assert.Equal(t, 2, r.Selected())
}

func TestReview_Decisions(t *testing.T) {
	tui, _ := newSimTUI(t, 80, 10)
	r := NewReview(tui, sampleSummary(), nil)

	done, d := r.HandleKey(key('s'))
	assert.True(t, done)
	assert.Equal(t, Save, d)

	done, d = r.HandleKey(key('q'))
	assert.True(t, done)
	assert.Equal(t, Quit, d)

	done, d = r.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	assert.True(t, done)
	assert.Equal(t, Quit, d)
}

func TestReview_SaveWithNothingChanged(t *testing.T) {
	tui, _ := newSimTUI(t, 80, 10)
	sum := sampleSummary()
	sum.Results = sum.Results[1:]
	r := NewReview(tui, sum, nil)

	done, _ := r.HandleKey(key('s'))
	assert.False(t, done)
	assert.Equal(t, "nothing to save", r.Message())
}

func TestReview_CopyDiff(t *testing.T) {
	tui, _ := newSimTUI(t, 80, 10)
	c := &fakeCopier{}
	r := NewReview(tui, sampleSummary(), c)

	r.HandleKey(key('y'))
	assert.Contains(t, c.text, "verbose:true")
	assert.Equal(t, "copied diff for verbose", r.Message())

	r.HandleKey(key('j'))
	r.HandleKey(key('y'))
	assert.Equal(t, "no diff to copy", r.Message())

	c.err = errors.New("boom")
	r.HandleKey(key('k'))
	r.HandleKey(key('y'))
	assert.Contains(t, r.Message(), "copy failed")
}

func TestReview_RunReturnsOnKey(t *testing.T) {
	tui, s := newSimTUI(t, 80, 10)
	r := NewReview(tui, sampleSummary(), nil)

	s.InjectKey(tcell.KeyRune, 'j', tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 's', tcell.ModNone)
	assert.Equal(t, Save, r.Run())
	assert.Equal(t, 1, r.Selected())
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, []string{"abcd", "ef"}, wrapText("abcdef", 4))
	assert.Equal(t, []string{"ab", "", "cd"}, wrapText("ab\n\ncd", 10))
	// Wide characters count two cells.
	assert.Equal(t, []string{"世界", "!"}, wrapText("世界!", 4))
	assert.Nil(t, wrapText("x", 0))
}
