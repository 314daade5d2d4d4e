// internal/app/app.go
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hollegjx/mycode-statusline/internal/audit"
	"github.com/hollegjx/mycode-statusline/internal/config"
	"github.com/hollegjx/mycode-statusline/internal/event"
	"github.com/hollegjx/mycode-statusline/internal/logger"
	"github.com/hollegjx/mycode-statusline/internal/patch"
	"github.com/hollegjx/mycode-statusline/internal/render"
	"github.com/hollegjx/mycode-statusline/internal/verify"
)

// ErrPatchFailed is returned when at least one patch could not be located.
// The patches that did resolve are still saved.
var ErrPatchFailed = errors.New("one or more patches failed")

// App wires configuration, the patch registry and output together for the
// CLI commands.
type App struct {
	cfg      *config.Config
	printer  *render.Printer
	events   *event.Manager
	registry *patch.Registry
	verifier *verify.SyntaxChecker

	now func() time.Time
}

// New creates an App writing human-readable output to out.
func New(cfg *config.Config, out io.Writer, color render.ColorMode) *App {
	a := &App{
		cfg:      cfg,
		printer:  render.New(out, color),
		events:   event.NewManager(),
		registry: patch.DefaultRegistry(cfg.PatchOptions()),
		now:      time.Now,
	}
	if cfg.Patch.VerifySyntax {
		a.verifier = verify.NewSyntaxChecker(verify.DefaultMargin)
	}

	a.events.Subscribe(event.TypeSessionSaved, a.handleSessionSaved)
	a.events.SubscribeAll(a.handlePatchOutcome, event.TypePatchApplied, event.TypePatchSkipped, event.TypePatchFailed)
	return a
}

// Close releases the syntax checker, if any.
func (a *App) Close() {
	if a.verifier != nil {
		a.verifier.Close()
	}
}

// Events exposes the app's event manager.
func (a *App) Events() *event.Manager { return a.events }

// PatchOptions controls a single patch command.
type PatchOptions struct {
	DryRun     bool
	ShowDiff   bool
	ReportPath string // YAML session report; empty disables
	DiffPath   string // unified diff of all splices; empty disables
}

func (a *App) openSession(path string) (*patch.Session, []patch.Patch, error) {
	patches, err := a.registry.Select(a.cfg.Patch.Patches)
	if err != nil {
		return nil, nil, err
	}
	opts := []patch.Option{patch.WithEvents(a.events)}
	if a.verifier != nil {
		opts = append(opts, patch.WithVerifier(a.verifier))
	}
	s, err := patch.Open(path, opts...)
	if err != nil {
		return nil, nil, err
	}
	return s, patches, nil
}

// Patch runs the configured patches against path and, unless DryRun, backs
// the file up and saves it when anything changed.
func (a *App) Patch(path string, opts PatchOptions) (patch.Summary, error) {
	s, patches, err := a.openSession(path)
	if err != nil {
		return patch.Summary{}, err
	}
	sum := s.RunAll(patches)
	a.printer.Summary(sum, opts.DryRun, opts.ShowDiff || opts.DryRun)

	var backup string
	if !opts.DryRun && sum.Changed() {
		if backup, err = a.backup(path, s.Original()); err != nil {
			return sum, err
		}
		if err := s.Save(""); err != nil {
			return sum, err
		}
	}

	if err := a.writeAudit(s, sum, opts, backup); err != nil {
		return sum, err
	}
	if n := sum.Count(patch.Failed); n > 0 {
		return sum, fmt.Errorf("%w: %d of %d", ErrPatchFailed, n, len(sum.Results))
	}
	return sum, nil
}

// Check reports what Patch would do without writing the bundle.
func (a *App) Check(path string) (patch.Summary, error) {
	return a.Patch(path, PatchOptions{DryRun: true, ShowDiff: true})
}

func (a *App) writeAudit(s *patch.Session, sum patch.Summary, opts PatchOptions, backup string) error {
	if opts.DiffPath != "" {
		out, err := audit.UnifiedDiff(s.FilePath(), s.Original(), s.Operations())
		if err != nil {
			return fmt.Errorf("failed to build diff: %w", err)
		}
		if err := os.WriteFile(opts.DiffPath, out, 0644); err != nil {
			return fmt.Errorf("failed to write diff '%s': %w", opts.DiffPath, err)
		}
		logger.Debugf("App: wrote diff to %s", opts.DiffPath)
	}
	if opts.ReportPath != "" {
		r := audit.NewReport(sum, opts.DryRun, a.now())
		r.Backup = backup
		if err := r.WriteFile(opts.ReportPath); err != nil {
			return err
		}
		logger.Debugf("App: wrote report to %s", opts.ReportPath)
	}
	return nil
}

func (a *App) handleSessionSaved(e event.Event) bool {
	if data, ok := e.Data.(event.SessionSavedData); ok {
		a.printer.Printf("wrote %s (%d change(s))\n", data.FilePath, data.Applied)
	}
	return false
}

func (a *App) handlePatchOutcome(e event.Event) bool {
	if data, ok := e.Data.(event.PatchData); ok {
		if data.Err != nil {
			logger.DebugTagf("session", "App: %s %v", e.Type, data.Err)
		} else {
			logger.DebugTagf("session", "App: %s %s", e.Type, data.Patch)
		}
	}
	return false
}
