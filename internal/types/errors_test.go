package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocateError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *LocateError
		want string
	}{
		{
			"with detail",
			&LocateError{Patch: "verbose", Stage: "anchor", Err: ErrAnchorNotFound, Detail: "createElement call"},
			"verbose: anchor: anchor not found (createElement call)",
		},
		{
			"without detail",
			&LocateError{Patch: "esc-interrupt", Stage: "match", Err: ErrPatternNotFound},
			"esc-interrupt: match: pattern not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestKind(t *testing.T) {
	wrapped := fmt.Errorf("opening bundle: %w", &LocateError{Patch: "p", Stage: "validate", Err: ErrValidationFailed})
	assert.Equal(t, ErrValidationFailed, Kind(wrapped))
	assert.Equal(t, ErrIO, Kind(fmt.Errorf("%w: disk full", ErrIO)))
	assert.Nil(t, Kind(errors.New("something else")))
	assert.Nil(t, Kind(nil))
}

func TestOperation_Edit(t *testing.T) {
	op := Operation{Start: 10, End: 23, OldText: "verbose:false", NewText: "verbose:true"}
	edit := op.Edit()
	assert.Equal(t, Edit{StartIndex: 10, OldEndIndex: 23, NewEndIndex: 22}, edit)
	assert.Equal(t, -1, edit.Delta())
	assert.Equal(t, 13, op.Location().Len())
}
