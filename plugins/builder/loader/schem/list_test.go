package schem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"house.schem", "Tower.SCHEM", "old.Schematic", "notes.txt", "schem", "b.schem.bak"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte{0}, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.schem"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested.schem", "inner.schem"), []byte{0}, 0o644))

	names, err := List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tower.SCHEM", "house.schem", "old.Schematic"}, names)
}

func TestListMissingDir(t *testing.T) {
	names, err := List(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestListNotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.schem")
	require.NoError(t, os.WriteFile(file, []byte{0}, 0o644))
	_, err := List(file)
	require.ErrorIs(t, err, ErrIO)
}
