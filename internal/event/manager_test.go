package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatch_OrderAndType(t *testing.T) {
	m := NewManager()
	var got []string

	m.Subscribe(TypePatchApplied, func(e Event) bool {
		got = append(got, "first:"+e.Data.(PatchData).Patch)
		return false
	})
	m.Subscribe(TypePatchApplied, func(e Event) bool {
		got = append(got, "second")
		return false
	})
	m.Subscribe(TypePatchFailed, func(e Event) bool {
		got = append(got, "failed")
		return false
	})

	m.Dispatch(TypePatchApplied, PatchData{Patch: "verbose"})
	assert.Equal(t, []string{"first:verbose", "second"}, got)
}

func TestDispatch_NoHandlers(t *testing.T) {
	m := NewManager()
	assert.NotPanics(t, func() { m.Dispatch(TypeSessionSaved, nil) })
}

func TestSubscribeAll(t *testing.T) {
	m := NewManager()
	var seen []Type
	m.SubscribeAll(func(e Event) bool {
		seen = append(seen, e.Type)
		return false
	}, TypePatchApplied, TypePatchSkipped)

	m.Dispatch(TypePatchSkipped, PatchData{})
	m.Dispatch(TypePatchApplied, PatchData{})
	m.Dispatch(TypePatchFailed, PatchData{})
	assert.Equal(t, []Type{TypePatchSkipped, TypePatchApplied}, seen)
}

func TestSubscribeDuringDispatch(t *testing.T) {
	m := NewManager()
	calls := 0
	m.Subscribe(TypeBundleChanged, func(e Event) bool {
		calls++
		m.Subscribe(TypeBundleChanged, func(Event) bool { calls++; return false })
		return false
	})
	m.Dispatch(TypeBundleChanged, BundleChangedData{FilePath: "cli.js"})
	assert.Equal(t, 1, calls)
	assert.Equal(t, "bundle-changed", TypeBundleChanged.String())
}
