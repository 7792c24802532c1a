package config

// TestFileFilter narrows collection to files matching a pattern, optionally
// pinned to a specific line/column.
type TestFileFilter struct {
	FilePattern string
	Line        *int
	Column      *int
}

// TitleMatcher predicates a test's full title for CLI-side admission.
type TitleMatcher func(fullTitle string) bool

// RunOptions are the CLI-originated run controls.
type RunOptions struct {
	ListOnly         bool
	TestFileFilters  []TestFileFilter
	TestTitleMatcher TitleMatcher
	ProjectFilter    []string
	PassWithNoTests  bool
}

// UpdateSnapshots is the CLI override for snapshot refresh behavior.
type UpdateSnapshots string

const (
	UpdateSnapshotsAll     UpdateSnapshots = "all"
	UpdateSnapshotsNone    UpdateSnapshots = "none"
	UpdateSnapshotsMissing UpdateSnapshots = "missing"
)

// Shard is a 1-based partition selector.
type Shard struct {
	Current int
	Total   int
}

// IsSet reports whether sharding was requested at all.
func (s Shard) IsSet() bool { return s.Total > 0 }

// ProjectOverride is the {name, use} shape accepted via --project-use style
// CLI overrides.
type ProjectOverride struct {
	Name string
	Use  map[string]any
}

// CLIOverrides are the optional, CLI-originated config overrides.
type CLIOverrides struct {
	ForbidOnly       *bool
	FullyParallel    *bool
	GlobalTimeoutMs  *int64
	MaxFailures      *int
	OutputDir        *string
	Quiet            *bool
	RepeatEach       *int
	Retries          *int
	Reporter         []string
	Shard            *Shard
	TimeoutMs        *int64
	IgnoreSnapshots  *bool
	UpdateSnapshots  UpdateSnapshots
	Workers          *int
	ProjectOverrides []ProjectOverride
	Use              map[string]any
}
