package config

// Package-level defaults for FullConfigInternal: Defaults uses the worker
// and timeout values, and Resolve picks the default reporter.
const (
	// DefaultWorkers is the worker-process pool size when unset.
	DefaultWorkers = 4
	// DefaultTimeoutMs is the per-test timeout when unset.
	DefaultTimeoutMs = 30_000
	// DefaultReporter is injected when CI is unset; the dot
	// reporter is used instead when CI is set. Resolve applies this split.
	DefaultReporter = "line"
	// DefaultReporterCI is the reporter used when the CI environment
	// variable is set.
	DefaultReporterCI = "dot"
)

// DefaultExtensions are the file extensions the collector admits after
// testMatch/testIgnore filtering.
var DefaultExtensions = []string{".js", ".ts", ".mjs", ".tsx", ".jsx"}
