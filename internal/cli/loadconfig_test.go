package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ReadsJSONFixtureOntoDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "torc.config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"projects": [{"id": "a", "name": "A", "testDir": "tests"}],
		"workers": 8
	}`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Workers)
	require.Len(t, cfg.Projects, 1)
	assert.Equal(t, "A", cfg.Projects[0].Name)
}

func TestLoadConfig_MissingFileErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
