package audit

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hollegjx/mycode-statusline/internal/patch"
)

// Report is the YAML record of one session.
type Report struct {
	SessionID string        `yaml:"session_id"`
	File      string        `yaml:"file"`
	Generated time.Time     `yaml:"generated"`
	DryRun    bool          `yaml:"dry_run"`
	Backup    string        `yaml:"backup,omitempty"`
	Patches   []PatchReport `yaml:"patches"`
}

// PatchReport is one patch's outcome.
type PatchReport struct {
	Name       string   `yaml:"name"`
	State      string   `yaml:"state"`
	Error      string   `yaml:"error,omitempty"`
	Start      *int     `yaml:"start,omitempty"`
	End        *int     `yaml:"end,omitempty"`
	Captured   string   `yaml:"captured,omitempty"`
	Old        string   `yaml:"old,omitempty"`
	New        string   `yaml:"new,omitempty"`
	Candidates int      `yaml:"candidates,omitempty"`
	Warnings   []string `yaml:"warnings,omitempty"`
}

// NewReport converts a session summary.
func NewReport(sum patch.Summary, dryRun bool, now time.Time) Report {
	r := Report{
		SessionID: sum.SessionID,
		File:      sum.FilePath,
		Generated: now.UTC(),
		DryRun:    dryRun,
		Patches:   make([]PatchReport, 0, len(sum.Results)),
	}
	for _, res := range sum.Results {
		pr := PatchReport{
			Name:       res.Patch,
			State:      res.State.String(),
			Captured:   res.Location.Captured,
			Candidates: res.Candidates,
			Warnings:   res.Warnings,
		}
		if res.Err != nil {
			pr.Error = res.Err.Error()
		}
		if op := res.Operation; op != nil {
			start, end := op.Start, op.End
			pr.Start, pr.End = &start, &end
			pr.Old, pr.New = op.OldText, op.NewText
		}
		r.Patches = append(r.Patches, pr)
	}
	return r
}

// Encode writes the report as YAML.
func (r Report) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

// WriteFile writes the report to path.
func (r Report) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report '%s': %w", path, err)
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadReport loads a report written by WriteFile.
func ReadReport(path string) (Report, error) {
	var r Report
	data, err := os.ReadFile(path)
	if err != nil {
		return r, fmt.Errorf("failed to read report '%s': %w", path, err)
	}
	if err := yaml.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("failed to parse report '%s': %w", path, err)
	}
	return r, nil
}
