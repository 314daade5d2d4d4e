package buffer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAndSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cli.js")
	original := "#!/usr/bin/env node\r\nvar a=1;\n// ünïcode · stays\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0755))

	sb, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, sb.String())
	assert.False(t, sb.IsModified())

	require.NoError(t, sb.Save(""))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data), "save must be byte-identical")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.js"))
	assert.Error(t, err)

	_, err = Load(dir)
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.js")
	require.NoError(t, os.WriteFile(bad, []byte{0xff, 0xfe, 'a'}, 0644))
	_, err = Load(bad)
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestReplace(t *testing.T) {
	sb := New("x.js", "abc verbose:false def")

	edit, err := sb.Replace(4, 17, "verbose:true")
	require.NoError(t, err)
	assert.Equal(t, "abc verbose:true def", sb.String())
	assert.Equal(t, 4, edit.StartIndex)
	assert.Equal(t, 17, edit.OldEndIndex)
	assert.Equal(t, 16, edit.NewEndIndex)
	assert.True(t, sb.IsModified())

	// pure insertion
	_, err = sb.Replace(0, 0, ">>")
	require.NoError(t, err)
	assert.Equal(t, ">>abc verbose:true def", sb.String())
}

func TestReplace_InvalidRangeLeavesBuffer(t *testing.T) {
	sb := New("x.js", "abcdef")
	for _, r := range [][2]int{{-1, 2}, {4, 2}, {2, 7}} {
		_, err := sb.Replace(r[0], r[1], "zz")
		assert.Error(t, err)
	}
	assert.Equal(t, "abcdef", sb.String())
	assert.False(t, sb.IsModified())
}

func TestSlice_Clips(t *testing.T) {
	sb := New("", "0123456789")
	assert.Equal(t, "0123", sb.Slice(-5, 4))
	assert.Equal(t, "789", sb.Slice(7, 100))
	assert.Equal(t, "", sb.Slice(8, 3))
}

func TestSave_NoPath(t *testing.T) {
	sb := New("", "x")
	assert.Error(t, sb.Save(""))
}

func TestSave_OtherPath(t *testing.T) {
	dir := t.TempDir()
	sb := New(filepath.Join(dir, "a.js"), "content")
	other := filepath.Join(dir, "b.js")
	require.NoError(t, sb.Save(other))
	assert.Equal(t, other, sb.FilePath())
	data, err := os.ReadFile(other)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}
