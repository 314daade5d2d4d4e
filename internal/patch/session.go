package patch

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/hollegjx/mycode-statusline/internal/buffer"
	"github.com/hollegjx/mycode-statusline/internal/core/history"
	"github.com/hollegjx/mycode-statusline/internal/event"
	"github.com/hollegjx/mycode-statusline/internal/logger"
	"github.com/hollegjx/mycode-statusline/internal/types"
)

// State is where a single patch ended up within a session.
type State int

const (
	Unchecked State = iota
	AlreadyApplied
	Located
	Applied
	Failed
)

func (s State) String() string {
	switch s {
	case AlreadyApplied:
		return "already-applied"
	case Located:
		return "located"
	case Applied:
		return "applied"
	case Failed:
		return "failed"
	default:
		return "unchecked"
	}
}

// Result is the outcome of running one patch.
type Result struct {
	Patch       string
	Description string
	State       State
	Err         error
	Location    types.Location
	Operation   *types.Operation
	Diff        *Diff
	Warnings    []string
	Candidates  int
}

// Outcome reports the result as an error: nil once applied, a wrapped
// types.ErrAlreadyApplied for a no-op, and Err for a failure.
func (r Result) Outcome() error {
	switch r.State {
	case AlreadyApplied:
		return fmt.Errorf("%s: %w", r.Patch, types.ErrAlreadyApplied)
	case Failed:
		return r.Err
	default:
		return nil
	}
}

// Verifier inspects a splice after the fact and returns warnings. It never
// vetoes the edit.
type Verifier interface {
	Verify(before, after string, op types.Operation) []string
}

// Summary aggregates the results of RunAll.
type Summary struct {
	SessionID string
	FilePath  string
	Results   []Result
}

// Count returns how many results ended in state.
func (s Summary) Count(state State) int {
	n := 0
	for _, r := range s.Results {
		if r.State == state {
			n++
		}
	}
	return n
}

// Changed reports whether any patch modified the buffer.
func (s Summary) Changed() bool {
	return s.Count(Applied) > 0
}

// Session owns one bundle buffer and applies patches to it in order.
type Session struct {
	ID       string
	buf      buffer.Buffer
	original string
	log      *history.Log
	events   *event.Manager
	verifier Verifier
}

// Option configures a Session.
type Option func(*Session)

// WithEvents routes patch outcomes to the given event manager.
func WithEvents(m *event.Manager) Option {
	return func(s *Session) { s.events = m }
}

// WithVerifier runs v after every splice.
func WithVerifier(v Verifier) Option {
	return func(s *Session) { s.verifier = v }
}

// Open reads path into a new session. Any failure is an ErrIO.
func Open(path string, opts ...Option) (*Session, error) {
	buf, err := buffer.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrIO, err)
	}
	return NewSession(buf, opts...), nil
}

// NewSession wraps an already loaded buffer.
func NewSession(buf buffer.Buffer, opts ...Option) *Session {
	s := &Session{
		ID:       uuid.NewString(),
		buf:      buf,
		original: buf.String(),
		log:      history.NewLog(),
	}
	for _, opt := range opts {
		opt(s)
	}
	logger.InfoTagf("session", "Session %s: opened %s (%d bytes)", s.ID, buf.FilePath(), buf.Len())
	s.dispatch(event.TypeSessionOpened, event.SessionOpenedData{SessionID: s.ID, FilePath: buf.FilePath(), Size: buf.Len()})
	return s
}

// Run takes one patch through marker check, locate and splice against the
// buffer as it is now.
func (s *Session) Run(p Patch) Result {
	res := Result{Patch: p.Name(), Description: p.Description(), State: Unchecked}
	content := s.buf.String()

	if p.Applied(content) {
		res.State = AlreadyApplied
		logger.InfoTagf("session", "Session %s: %s already applied", s.ID, p.Name())
		s.dispatch(event.TypePatchSkipped, event.PatchData{SessionID: s.ID, Patch: p.Name(), Err: res.Outcome()})
		return res
	}

	resolution, err := p.Locate(content)
	if err != nil {
		return s.fail(res, err)
	}
	res.State = Located
	res.Location = resolution.Location
	res.Warnings = append(res.Warnings, resolution.Warnings...)
	res.Candidates = resolution.Candidates

	op, diff, err := Apply(s.buf, p.Name(), p.Description(), resolution)
	if err != nil {
		return s.fail(res, err)
	}
	s.log.Record(op)
	res.State = Applied
	res.Operation = &op
	res.Diff = &diff

	if s.verifier != nil {
		res.Warnings = append(res.Warnings, s.verifier.Verify(content, s.buf.String(), op)...)
	}
	for _, w := range res.Warnings {
		logger.WarnTagf("apply", "Session %s: %s: %s", s.ID, p.Name(), w)
	}
	logger.InfoTagf("apply", "Session %s: applied %s at [%d,%d)", s.ID, p.Name(), op.Start, op.End)
	s.dispatch(event.TypePatchApplied, event.PatchData{SessionID: s.ID, Patch: p.Name(), Operation: &op, Warnings: res.Warnings})
	return res
}

func (s *Session) fail(res Result, err error) Result {
	res.State = Failed
	res.Err = err
	logger.WarnTagf("session", "Session %s: %v", s.ID, err)
	s.dispatch(event.TypePatchFailed, event.PatchData{SessionID: s.ID, Patch: res.Patch, Err: err, Warnings: res.Warnings})
	return res
}

// RunAll runs every patch in order. A failure never stops the rest.
func (s *Session) RunAll(patches []Patch) Summary {
	sum := Summary{SessionID: s.ID, FilePath: s.buf.FilePath(), Results: make([]Result, 0, len(patches))}
	for _, p := range patches {
		sum.Results = append(sum.Results, s.Run(p))
	}
	return sum
}

// Save writes the buffer to path, or back to its source when path is empty.
// An unmodified buffer is not rewritten in place.
func (s *Session) Save(path string) error {
	if path == "" {
		path = s.buf.FilePath()
	}
	if !s.buf.IsModified() && path == s.buf.FilePath() {
		logger.DebugTagf("session", "Session %s: nothing to save", s.ID)
		return nil
	}
	if err := s.buf.Save(path); err != nil {
		return fmt.Errorf("%w: %w", types.ErrIO, err)
	}
	logger.InfoTagf("session", "Session %s: saved %s", s.ID, path)
	s.dispatch(event.TypeSessionSaved, event.SessionSavedData{SessionID: s.ID, FilePath: path, Applied: s.log.Len()})
	return nil
}

// Content returns the buffer as currently patched.
func (s *Session) Content() string { return s.buf.String() }

// Original returns the buffer as it was read.
func (s *Session) Original() string { return s.original }

// FilePath returns the path the buffer was read from.
func (s *Session) FilePath() string { return s.buf.FilePath() }

// Operations returns the applied operations in order.
func (s *Session) Operations() []types.Operation { return s.log.Operations() }

// Log exposes the session's operation log.
func (s *Session) Log() *history.Log { return s.log }

func (s *Session) dispatch(t event.Type, data interface{}) {
	if s.events != nil {
		s.events.Dispatch(t, data)
	}
}

