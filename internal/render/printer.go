// internal/render/printer.go
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/hollegjx/mycode-statusline/internal/patch"
)

// ColorMode decides whether output is styled.
type ColorMode string

const (
	ColorAuto  ColorMode = "auto"  // Style when writing to a terminal
	ColorNever ColorMode = "never" // Plain text
)

// Styles defines the look of each kind of output line.
type Styles struct {
	Applied lipgloss.Style
	Skipped lipgloss.Style
	Failed  lipgloss.Style
	Warning lipgloss.Style
	Header  lipgloss.Style
	Context lipgloss.Style
	Removed lipgloss.Style
	Added   lipgloss.Style
}

// DefaultStyles provides the colored palette.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Applied: r.NewStyle().Foreground(lipgloss.Color("#8BC34A")).Bold(true),
		Skipped: r.NewStyle().Foreground(lipgloss.Color("#2196F3")),
		Failed:  r.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true),
		Warning: r.NewStyle().Foreground(lipgloss.Color("#FFC107")),
		Header:  r.NewStyle().Bold(true).Underline(true),
		Context: r.NewStyle().Faint(true),
		Removed: r.NewStyle().Foreground(lipgloss.Color("#e53935")).Strikethrough(true),
		Added:   r.NewStyle().Foreground(lipgloss.Color("#8BC34A")).Bold(true),
	}
}

// Printer writes session results for an operator.
type Printer struct {
	w      io.Writer
	styles Styles
	color  bool
}

// New creates a printer for w.
func New(w io.Writer, mode ColorMode) *Printer {
	p := &Printer{w: w, color: useColor(w, mode)}
	if p.color {
		p.styles = DefaultStyles(lipgloss.NewRenderer(w))
	}
	return p
}

// paint styles s, or returns it untouched in plain mode. Bundle text may
// hold tabs and newlines that lipgloss would reflow.
func (p *Printer) paint(style lipgloss.Style, s string) string {
	if !p.color || s == "" {
		return s
	}
	return style.Render(s)
}

func useColor(w io.Writer, mode ColorMode) bool {
	if mode == ColorNever || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Colored reports whether output is styled.
func (p *Printer) Colored() bool { return p.color }

// Printf writes a plain formatted line.
func (p *Printer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format, args...)
}

// Warnf writes a highlighted warning line.
func (p *Printer) Warnf(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.paint(p.styles.Warning, "warning: "+fmt.Sprintf(format, args...)))
}

// Result writes one line for a patch outcome, then its warnings.
func (p *Printer) Result(r patch.Result, dryRun bool) {
	var mark, state string
	switch r.State {
	case patch.Applied:
		mark, state = "✓", "applied"
		if dryRun {
			state = "would apply"
		}
		state = p.paint(p.styles.Applied, state)
	case patch.AlreadyApplied:
		mark, state = "=", p.paint(p.styles.Skipped, "already applied")
	case patch.Failed:
		mark, state = "✗", p.paint(p.styles.Failed, "failed")
	default:
		mark, state = "?", r.State.String()
	}

	line := fmt.Sprintf("%s %-20s %s", mark, r.Patch, state)
	if r.Operation != nil {
		line += fmt.Sprintf("  [%d,%d)", r.Operation.Start, r.Operation.End)
		if r.Location.Captured != "" {
			line += " " + r.Location.Captured
		}
	}
	fmt.Fprintln(p.w, line)
	if r.Err != nil {
		fmt.Fprintln(p.w, "    "+p.paint(p.styles.Failed, r.Err.Error()))
	}
	for _, w := range r.Warnings {
		fmt.Fprintln(p.w, "    "+p.paint(p.styles.Warning, "! "+w))
	}
}

// Diff writes the before/after context of one splice.
func (p *Printer) Diff(name string, d patch.Diff) {
	fmt.Fprintln(p.w, p.paint(p.styles.Header, fmt.Sprintf("--- %s @ offset %d ---", name, d.Offset)))
	fmt.Fprintln(p.w, "OLD: "+p.paint(p.styles.Context, d.Before)+p.paint(p.styles.Removed, d.OldText)+p.paint(p.styles.Context, d.After))
	fmt.Fprintln(p.w, "NEW: "+p.paint(p.styles.Context, d.Before)+p.paint(p.styles.Added, d.NewText)+p.paint(p.styles.Context, d.After))
}

// Summary writes every result, diffs for applied patches, and a count line.
func (p *Printer) Summary(sum patch.Summary, dryRun, showDiffs bool) {
	fmt.Fprintln(p.w, p.paint(p.styles.Header, sum.FilePath))
	for _, r := range sum.Results {
		p.Result(r, dryRun)
		if showDiffs && r.Diff != nil {
			p.Diff(r.Patch, *r.Diff)
		}
	}

	parts := []string{
		fmt.Sprintf("%d applied", sum.Count(patch.Applied)),
		fmt.Sprintf("%d already applied", sum.Count(patch.AlreadyApplied)),
		fmt.Sprintf("%d failed", sum.Count(patch.Failed)),
	}
	fmt.Fprintln(p.w, strings.Join(parts, ", "))
}
