package config

// FullConfigInternal is the fully-resolved configuration the orchestrator
// runs against: the base Projects plus every applicable default, with any
// CLIOverrides already folded in by Resolve. This is the validated config
// value an out-of-scope config loader would produce.
type FullConfigInternal struct {
	Projects []Project

	ForbidOnly      bool
	GlobalTimeoutMs int64
	MaxFailures     int
	Quiet           bool
	Reporter        []string
	Shard           Shard
	TimeoutMs       int64
	IgnoreSnapshots bool
	UpdateSnapshots UpdateSnapshots
	Workers         int
}

// Defaults returns a FullConfigInternal with no projects and package-level
// fallback values for everything else.
func Defaults() FullConfigInternal {
	return FullConfigInternal{
		Workers:   DefaultWorkers,
		TimeoutMs: DefaultTimeoutMs,
	}
}
