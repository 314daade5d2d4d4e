// Package history records the ordered splices a session applied and can
// re-derive or undo them.
package history

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hollegjx/mycode-statusline/internal/logger"
	"github.com/hollegjx/mycode-statusline/internal/types"
)

// ErrReplayMismatch is returned when a recorded operation does not fit the
// text it is replayed or reverted against.
var ErrReplayMismatch = errors.New("operation does not match buffer")

// Log is the ordered list of operations applied to one buffer.
type Log struct {
	ops   []types.Operation
	mutex sync.Mutex
}

// NewLog creates an empty operation log.
func NewLog() *Log {
	return &Log{ops: make([]types.Operation, 0, 8)}
}

// Record appends an applied operation.
func (l *Log) Record(op types.Operation) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.ops = append(l.ops, op)
	logger.Debugf("History: Recorded %s [%d,%d). Count: %d", op.Name, op.Start, op.End, len(l.ops))
}

// Operations returns a copy of the recorded operations in order.
func (l *Log) Operations() []types.Operation {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	out := make([]types.Operation, len(l.ops))
	copy(out, l.ops)
	return out
}

// Len returns the number of recorded operations.
func (l *Log) Len() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return len(l.ops)
}

// Clear drops every recorded operation.
func (l *Log) Clear() {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.ops = l.ops[:0]
	logger.Debugf("History: Cleared.")
}

// Replay applies the log to original and returns the result.
func (l *Log) Replay(original string) (string, error) {
	return Replay(original, l.Operations())
}

// Revert undoes the log against final and returns the original text.
func (l *Log) Revert(final string) (string, error) {
	return Revert(final, l.Operations())
}

// Replay applies ops in order. Each operation's OldText must be found at its
// recorded offsets.
func Replay(original string, ops []types.Operation) (string, error) {
	content := original
	for i, op := range ops {
		if op.Start < 0 || op.End < op.Start || op.End > len(content) || content[op.Start:op.End] != op.OldText {
			return "", fmt.Errorf("replay %d (%s) at [%d,%d): %w", i, op.Name, op.Start, op.End, ErrReplayMismatch)
		}
		content = content[:op.Start] + op.NewText + content[op.End:]
	}
	return content, nil
}

// Revert undoes ops in reverse order, restoring each OldText.
func Revert(final string, ops []types.Operation) (string, error) {
	content := final
	for i := len(ops) - 1; i >= 0; i-- {
		op := ops[i]
		end := op.Start + len(op.NewText)
		if op.Start < 0 || end > len(content) || content[op.Start:end] != op.NewText {
			return "", fmt.Errorf("revert %d (%s) at %d: %w", i, op.Name, op.Start, ErrReplayMismatch)
		}
		content = content[:op.Start] + op.OldText + content[end:]
	}
	return content, nil
}
