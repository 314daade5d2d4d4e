package tui

import (
	"fmt"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/hollegjx/mycode-statusline/internal/input"
	"github.com/hollegjx/mycode-statusline/internal/logger"
	"github.com/hollegjx/mycode-statusline/internal/patch"
)

// Decision is what the operator chose when leaving the review.
type Decision int

const (
	Quit Decision = iota
	Save
)

func (d Decision) String() string {
	if d == Save {
		return "save"
	}
	return "quit"
}

// Styles used by the review screen.
type Styles struct {
	Default  tcell.Style
	Header   tcell.Style
	Selected tcell.Style
	Applied  tcell.Style
	Skipped  tcell.Style
	Failed   tcell.Style
	Old      tcell.Style
	New      tcell.Style
	Status   tcell.Style
}

// DefaultStyles mirrors the colours of the plain printer.
func DefaultStyles() Styles {
	return Styles{
		Default:  tcell.StyleDefault,
		Header:   tcell.StyleDefault.Bold(true),
		Selected: tcell.StyleDefault.Reverse(true),
		Applied:  tcell.StyleDefault.Foreground(tcell.ColorGreen),
		Skipped:  tcell.StyleDefault.Foreground(tcell.ColorGray),
		Failed:   tcell.StyleDefault.Foreground(tcell.ColorRed),
		Old:      tcell.StyleDefault.Foreground(tcell.ColorRed),
		New:      tcell.StyleDefault.Foreground(tcell.ColorGreen),
		Status:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
	}
}

const helpText = "s save  q quit  y copy diff  j/k select  space/b scroll"

// Review shows the results of a session and lets the operator save or quit.
type Review struct {
	tui     *TUI
	summary patch.Summary
	copier  Copier
	styles  Styles
	input   *input.InputProcessor

	selected int
	scroll   int
	message  string
}

// NewReview creates a review over sum. copier may be nil to disable copying.
func NewReview(t *TUI, sum patch.Summary, copier Copier) *Review {
	return &Review{tui: t, summary: sum, copier: copier, styles: DefaultStyles(), input: input.NewInputProcessor()}
}

// Selected returns the index of the highlighted result.
func (r *Review) Selected() int { return r.selected }

// Message returns the current status message.
func (r *Review) Message() string { return r.message }

// Run draws and handles input until the operator decides.
func (r *Review) Run() Decision {
	for {
		r.Draw()
		switch ev := r.tui.PollEvent().(type) {
		case nil:
			// Screen finalized underneath us.
			return Quit
		case *tcell.EventResize:
			r.tui.Sync()
		case *tcell.EventKey:
			if done, d := r.HandleKey(ev); done {
				logger.Debugf("Review: operator chose %s", d)
				return d
			}
		}
	}
}

// HandleKey applies one key press. done is true once a decision is made.
func (r *Review) HandleKey(ev *tcell.EventKey) (done bool, d Decision) {
	n := len(r.summary.Results)
	switch r.input.ProcessEvent(ev) {
	case input.ActionQuit:
		return true, Quit
	case input.ActionSave:
		if !r.summary.Changed() {
			r.message = "nothing to save"
			return false, Quit
		}
		return true, Save
	case input.ActionMoveUp:
		r.move(-1, n)
	case input.ActionMoveDown:
		r.move(1, n)
	case input.ActionPageDown:
		r.scroll += r.pageSize()
	case input.ActionPageUp:
		r.scroll -= r.pageSize()
	case input.ActionCopy:
		r.copyDiff()
	}
	if r.scroll < 0 {
		r.scroll = 0
	}
	return false, Quit
}

func (r *Review) move(delta, n int) {
	if n == 0 {
		return
	}
	r.selected = (r.selected + delta + n) % n
	r.scroll = 0
	r.message = ""
}

func (r *Review) pageSize() int {
	_, h := r.tui.Size()
	if h <= 4 {
		return 1
	}
	return h - 4
}

func (r *Review) copyDiff() {
	res, ok := r.current()
	if !ok || res.Diff == nil {
		r.message = "no diff to copy"
		return
	}
	if r.copier == nil {
		r.message = "clipboard disabled"
		return
	}
	if err := r.copier.WriteAll(res.Diff.String()); err != nil {
		logger.Warnf("Review: copy failed: %v", err)
		r.message = fmt.Sprintf("copy failed: %v", err)
		return
	}
	r.message = fmt.Sprintf("copied diff for %s", res.Patch)
}

func (r *Review) current() (patch.Result, bool) {
	if r.selected < 0 || r.selected >= len(r.summary.Results) {
		return patch.Result{}, false
	}
	return r.summary.Results[r.selected], true
}

// Draw renders the header, result list, detail pane and status line.
func (r *Review) Draw() {
	s := r.tui.screen
	width, height := r.tui.Size()
	r.tui.Clear()
	if width <= 0 || height < 3 {
		r.tui.Show()
		return
	}

	header := fmt.Sprintf("mycode review: %s  (%d applied, %d already applied, %d failed)",
		filepath.Base(r.summary.FilePath),
		r.summary.Count(patch.Applied), r.summary.Count(patch.AlreadyApplied), r.summary.Count(patch.Failed))
	fill(s, 0, 0, width, 1, r.styles.Header)
	drawText(s, 0, 0, width, header, r.styles.Header)

	bodyTop, bodyHeight := 1, height-2
	listWidth := width / 3
	if listWidth > 32 {
		listWidth = 32
	}
	for i, res := range r.summary.Results {
		if i >= bodyHeight {
			break
		}
		style := r.stateStyle(res.State)
		if i == r.selected {
			style = r.styles.Selected
			fill(s, 0, bodyTop+i, listWidth, 1, style)
		}
		drawText(s, 0, bodyTop+i, listWidth-1, fmt.Sprintf("%-15s %s", res.State, res.Patch), style)
	}

	detailX := listWidth + 1
	r.drawDetail(detailX, bodyTop, width-detailX, bodyHeight)

	status := helpText
	if r.message != "" {
		status = r.message + "  |  " + helpText
	}
	fill(s, 0, height-1, width, 1, r.styles.Status)
	drawText(s, 0, height-1, width, status, r.styles.Status)
	r.tui.Show()
}

type styledLine struct {
	text  string
	style tcell.Style
}

func (r *Review) detailLines(width int) []styledLine {
	res, ok := r.current()
	if !ok {
		return []styledLine{{"no patches selected", r.styles.Skipped}}
	}
	var out []styledLine
	add := func(text string, style tcell.Style) {
		for _, l := range wrapText(text, width) {
			out = append(out, styledLine{l, style})
		}
	}
	add(res.Patch+": "+res.Description, r.styles.Header)
	switch {
	case res.Err != nil:
		add("error: "+res.Err.Error(), r.styles.Failed)
	case res.State == patch.AlreadyApplied:
		add("already applied, nothing to do", r.styles.Skipped)
	}
	if res.Diff != nil {
		add(fmt.Sprintf("@ byte %d", res.Diff.Offset), r.styles.Default)
		add("OLD: "+res.Diff.Old(), r.styles.Old)
		add("NEW: "+res.Diff.New(), r.styles.New)
	}
	for _, w := range res.Warnings {
		add("warning: "+w, r.styles.Skipped)
	}
	return out
}

func (r *Review) drawDetail(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	lines := r.detailLines(w)
	if last := len(lines) - 1; r.scroll > last {
		r.scroll = last
	}
	if r.scroll < 0 {
		r.scroll = 0
	}
	for i := 0; i < h && r.scroll+i < len(lines); i++ {
		l := lines[r.scroll+i]
		drawText(r.tui.screen, x, y+i, w, l.text, l.style)
	}
}

func (r *Review) stateStyle(st patch.State) tcell.Style {
	switch st {
	case patch.Applied:
		return r.styles.Applied
	case patch.Failed:
		return r.styles.Failed
	default:
		return r.styles.Skipped
	}
}
