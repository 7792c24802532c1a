package outputdir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean_RemovesExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "artifacts")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "nested", "f.txt"), []byte("x"), 0o644))

	require.NoError(t, Clean(target))
	_, err := os.Stat(target)
	assert.True(t, os.IsNotExist(err))
}

func TestClean_MissingDirectoryIsNotAnError(t *testing.T) {
	assert.NoError(t, Clean(filepath.Join(t.TempDir(), "does-not-exist")))
}

func TestClean_EmptyPathIsNoop(t *testing.T) {
	assert.NoError(t, Clean(""))
}

func TestCleanAll_RemovesListedDirectory(t *testing.T) {
	dir := t.TempDir()
	ok := filepath.Join(dir, "ok")
	require.NoError(t, os.MkdirAll(ok, 0o755))

	require.NoError(t, CleanAll([]string{ok}))
	_, err := os.Stat(ok)
	assert.True(t, os.IsNotExist(err))
}
