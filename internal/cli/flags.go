// Package cli holds the flag surface cobra populates and the
// conversion from those flags into the config package's RunOptions /
// CLIOverrides shapes.
package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/torcrun/torc/internal/config"
)

// Flags holds every command-line flag across torc's subcommands; each
// command registers only the subset it uses.
type Flags struct {
	ConfigPath  string
	ResultsPath string

	WorkerCommand string
	WithDatabase  bool

	WebServerCommand    string
	WebServerURL        string
	WebServerTimeoutMs  int64
	WebServerReuseExist bool

	ContainerImage string

	ListOnly        bool
	Grep            string
	GrepInvert      string
	Project         []string
	Shard           string
	Workers         int
	RepeatEach      int
	Retries         int
	ForbidOnly      bool
	GlobalTimeoutMs int64
	MaxFailures     int
	Reporter        []string
	PassWithNoTests bool
	UpdateSnapshots string
	OutputDir       string
	Quiet           bool
}

// ToRunOptions builds the RunOptions a run/list-files invocation needs.
func (f *Flags) ToRunOptions() config.RunOptions {
	return config.RunOptions{
		ListOnly:         f.ListOnly,
		ProjectFilter:    f.Project,
		PassWithNoTests:  f.PassWithNoTests,
		TestTitleMatcher: titleMatcher(f.Grep, f.GrepInvert),
	}
}

// ToCLIOverrides builds the CLIOverrides Resolve folds onto the base
// FullConfigInternal.
func (f *Flags) ToCLIOverrides() (config.CLIOverrides, error) {
	overrides := config.CLIOverrides{}

	if f.ForbidOnly {
		v := true
		overrides.ForbidOnly = &v
	}
	if f.GlobalTimeoutMs > 0 {
		overrides.GlobalTimeoutMs = &f.GlobalTimeoutMs
	}
	if f.MaxFailures > 0 {
		overrides.MaxFailures = &f.MaxFailures
	}
	if f.OutputDir != "" {
		overrides.OutputDir = &f.OutputDir
	}
	if f.Quiet {
		v := true
		overrides.Quiet = &v
	}
	if f.RepeatEach > 0 {
		overrides.RepeatEach = &f.RepeatEach
	}
	if f.Retries > 0 {
		overrides.Retries = &f.Retries
	}
	if len(f.Reporter) > 0 {
		overrides.Reporter = f.Reporter
	}
	if f.UpdateSnapshots != "" {
		overrides.UpdateSnapshots = config.UpdateSnapshots(f.UpdateSnapshots)
	}
	if f.Workers > 0 {
		overrides.Workers = &f.Workers
	}
	if f.Shard != "" {
		shard, err := parseShard(f.Shard)
		if err != nil {
			return config.CLIOverrides{}, err
		}
		overrides.Shard = &shard
	}

	return overrides, nil
}

// parseShard parses the "current/total" form --shard accepts.
func parseShard(s string) (config.Shard, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return config.Shard{}, fmt.Errorf("cli: invalid --shard %q, want current/total", s)
	}
	current, err := strconv.Atoi(parts[0])
	if err != nil {
		return config.Shard{}, fmt.Errorf("cli: invalid --shard %q: %w", s, err)
	}
	total, err := strconv.Atoi(parts[1])
	if err != nil {
		return config.Shard{}, fmt.Errorf("cli: invalid --shard %q: %w", s, err)
	}
	return config.Shard{Current: current, Total: total}, nil
}

// titleMatcher combines --grep/--grep-invert into the single predicate
// RunOptions.TestTitleMatcher expects, or nil if neither was given.
func titleMatcher(grep, grepInvert string) config.TitleMatcher {
	grepRe := compileOrNil(grep)
	invertRe := compileOrNil(grepInvert)
	if grepRe == nil && invertRe == nil {
		return nil
	}
	return func(fullTitle string) bool {
		if grepRe != nil && !grepRe.MatchString(fullTitle) {
			return false
		}
		if invertRe != nil && invertRe.MatchString(fullTitle) {
			return false
		}
		return true
	}
}

func compileOrNil(pattern string) *regexp.Regexp {
	if pattern == "" {
		return nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}
	return re
}
