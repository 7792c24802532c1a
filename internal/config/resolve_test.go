package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnv map[string]string

func (f fakeEnv) Getenv(key string) string { return f[key] }

func TestResolve_AppliesOverrides(t *testing.T) {
	base := Defaults()
	base.Projects = []Project{{Name: "chromium"}, {Name: "firefox"}}

	workers := 8
	forbidOnly := true
	cfg, err := Resolve(base, CLIOverrides{
		Workers:    &workers,
		ForbidOnly: &forbidOnly,
	}, RunOptions{}, fakeEnv{})
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Workers)
	assert.True(t, cfg.ForbidOnly)
	assert.Len(t, cfg.Projects, 2)
	assert.Equal(t, 1, cfg.Projects[0].RepeatEach, "WithDefaults should fill RepeatEach")
}

func TestResolve_UnknownProjectFilterIsError(t *testing.T) {
	base := Defaults()
	base.Projects = []Project{{Name: "chromium"}}

	_, err := Resolve(base, CLIOverrides{}, RunOptions{ProjectFilter: []string{"Safari"}}, fakeEnv{})
	require.Error(t, err)
}

func TestResolve_ProjectFilterIsCaseInsensitive(t *testing.T) {
	base := Defaults()
	base.Projects = []Project{{Name: "Chromium"}}

	_, err := Resolve(base, CLIOverrides{}, RunOptions{ProjectFilter: []string{"chromium"}}, fakeEnv{})
	require.NoError(t, err)
}

func TestResolve_ReporterEnvDefaults(t *testing.T) {
	base := Defaults()
	base.Reporter = nil

	cfg, err := Resolve(base, CLIOverrides{}, RunOptions{}, fakeEnv{})
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultReporter}, cfg.Reporter)

	cfg, err = Resolve(base, CLIOverrides{}, RunOptions{}, fakeEnv{"CI": "1"})
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultReporterCI}, cfg.Reporter)
}

func TestResolve_ExtraReporterEnvAppended(t *testing.T) {
	base := Defaults()
	cfg, err := Resolve(base, CLIOverrides{}, RunOptions{}, fakeEnv{"PW_TEST_REPORTER": "./custom-reporter.js"})
	require.NoError(t, err)
	assert.Contains(t, cfg.Reporter, "./custom-reporter.js")
}
