package app

import (
	"github.com/hollegjx/mycode-statusline/internal/patch"
	"github.com/hollegjx/mycode-statusline/internal/tui"
)

// Review runs the patches in memory, shows them on t and saves only when the
// operator asks to. t is closed before anything is printed.
func (a *App) Review(path string, t *tui.TUI, copier tui.Copier) (tui.Decision, patch.Summary, error) {
	s, patches, err := a.openSession(path)
	if err != nil {
		t.Close()
		return tui.Quit, patch.Summary{}, err
	}
	sum := s.RunAll(patches)

	decision := tui.NewReview(t, sum, copier).Run()
	t.Close()

	if decision != tui.Save || !sum.Changed() {
		a.printer.Printf("no changes written\n")
		return decision, sum, nil
	}
	if _, err := a.backup(path, s.Original()); err != nil {
		return decision, sum, err
	}
	return decision, sum, s.Save("")
}
