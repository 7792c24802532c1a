package config

import (
	"fmt"
	"os"
)

// Env abstracts environment-variable lookups so Resolve stays testable
// without touching the real process environment.
type Env interface {
	Getenv(key string) string
}

// osEnv reads from the real process environment.
type osEnv struct{}

func (osEnv) Getenv(key string) string { return os.Getenv(key) }

// OSEnv is the Env backed by the real process environment.
var OSEnv Env = osEnv{}

// Resolve applies CLIOverrides onto base's defaults and validates
// projectFilter against the resolved project set. A projectFilter naming
// an unknown project is a configuration error, raised before any
// reporting starts.
func Resolve(base FullConfigInternal, overrides CLIOverrides, opts RunOptions, env Env) (FullConfigInternal, error) {
	cfg := base

	if overrides.ForbidOnly != nil {
		cfg.ForbidOnly = *overrides.ForbidOnly
	}
	if overrides.FullyParallel != nil {
		for i := range cfg.Projects {
			cfg.Projects[i].FullyParallel = *overrides.FullyParallel
		}
	}
	if overrides.GlobalTimeoutMs != nil {
		cfg.GlobalTimeoutMs = *overrides.GlobalTimeoutMs
	}
	if overrides.MaxFailures != nil {
		cfg.MaxFailures = *overrides.MaxFailures
	}
	if overrides.Quiet != nil {
		cfg.Quiet = *overrides.Quiet
	}
	if overrides.RepeatEach != nil {
		for i := range cfg.Projects {
			cfg.Projects[i].RepeatEach = *overrides.RepeatEach
		}
	}
	if overrides.Retries != nil {
		for i := range cfg.Projects {
			cfg.Projects[i].Retries = *overrides.Retries
		}
	}
	if overrides.OutputDir != nil {
		for i := range cfg.Projects {
			cfg.Projects[i].OutputDir = *overrides.OutputDir
		}
	}
	if len(overrides.Reporter) > 0 {
		cfg.Reporter = overrides.Reporter
	}
	if overrides.Shard != nil {
		cfg.Shard = *overrides.Shard
	}
	if overrides.TimeoutMs != nil {
		cfg.TimeoutMs = *overrides.TimeoutMs
	}
	if overrides.IgnoreSnapshots != nil {
		cfg.IgnoreSnapshots = *overrides.IgnoreSnapshots
	}
	if overrides.UpdateSnapshots != "" {
		cfg.UpdateSnapshots = overrides.UpdateSnapshots
	}
	if overrides.Workers != nil {
		cfg.Workers = *overrides.Workers
	}
	for _, po := range overrides.ProjectOverrides {
		for i := range cfg.Projects {
			if cfg.Projects[i].Name == po.Name {
				cfg.Projects[i].Use = mergeUse(cfg.Projects[i].Use, po.Use)
			}
		}
	}
	if overrides.Use != nil {
		for i := range cfg.Projects {
			cfg.Projects[i].Use = mergeUse(cfg.Projects[i].Use, overrides.Use)
		}
	}

	for i := range cfg.Projects {
		cfg.Projects[i] = cfg.Projects[i].WithDefaults()
	}

	if err := validateProjectFilter(cfg.Projects, opts.ProjectFilter); err != nil {
		return FullConfigInternal{}, err
	}

	applyReporterEnv(&cfg, env)

	return cfg, nil
}

func mergeUse(base, extra map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// validateProjectFilter returns a configuration error if the
// CLI named a project that does not exist, case-insensitively.
func validateProjectFilter(projects []Project, filter []string) error {
	if len(filter) == 0 {
		return nil
	}
	known := make(map[string]bool, len(projects))
	for _, p := range projects {
		known[lower(p.Name)] = true
	}
	for _, name := range filter {
		if !known[lower(name)] {
			return fmt.Errorf("config: unknown project %q", name)
		}
	}
	return nil
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// applyReporterEnv applies CI/PW_TEST_REPORTER environment handling: a
// human-readable default reporter when CI is unset, a dot-style reporter
// when it's set, and PW_TEST_REPORTER appended to whatever reporter list
// results.
func applyReporterEnv(cfg *FullConfigInternal, env Env) {
	if len(cfg.Reporter) == 0 {
		if env.Getenv("CI") != "" {
			cfg.Reporter = []string{DefaultReporterCI}
		} else {
			cfg.Reporter = []string{DefaultReporter}
		}
	}
	if extra := env.Getenv("PW_TEST_REPORTER"); extra != "" {
		cfg.Reporter = append(cfg.Reporter, extra)
	}
}
