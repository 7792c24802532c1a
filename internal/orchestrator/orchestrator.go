// Package orchestrator wires every other internal package into the
// staged, sharded, interruptible run: project staging, file collection,
// suite building, grouping, shard filtering, and the stage-dispatch loop
// with cascade-on-prior-stage-failure, interrupt, and global-timeout
// semantics, wrapped in global lifecycle setup/teardown.
package orchestrator

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/torcrun/torc/internal/builder"
	"github.com/torcrun/torc/internal/config"
	"github.com/torcrun/torc/internal/dispatch"
	"github.com/torcrun/torc/internal/domain"
	"github.com/torcrun/torc/internal/grouper"
	"github.com/torcrun/torc/internal/lifecycle"
	"github.com/torcrun/torc/internal/outputdir"
	"github.com/torcrun/torc/internal/reporter"
	"github.com/torcrun/torc/internal/shard"
	"github.com/torcrun/torc/internal/signalwatch"
	"github.com/torcrun/torc/internal/stage"
)

// Options bundles the resolved configuration and every external
// collaborator one call to Run needs.
type Options struct {
	Config    config.FullConfigInternal
	RunOpts   config.RunOptions
	Compiler  builder.FileCompiler
	Dispatch  dispatch.Factory
	Reporter  reporter.Reporter
	Plugins   []lifecycle.Plugin

	GlobalSetup    func(ctx context.Context) (lifecycle.TeardownFunc, error)
	GlobalTeardown func(ctx context.Context) error
}

// Run executes one full orchestration: stage → collect → build → group →
// shard → dispatch, reporting every step to opts.Reporter and returning
// the terminal FullResult.
func Run(ctx context.Context, opts Options) domain.FullResult {
	runID := uuid.New().String()
	startTime := time.Now()

	specs, collectErrs := collectAll(opts.Config.Projects, opts.RunOpts)

	result := builder.Build(specs, opts.Compiler, builder.Options{
		ForbidOnly:       opts.Config.ForbidOnly,
		ListMode:         opts.RunOpts.ListOnly,
		FileFilters:      opts.RunOpts.TestFileFilters,
		TestTitleMatcher: opts.RunOpts.TestTitleMatcher,
	})

	opts.Reporter.OnBegin(opts.Config, result.Root)

	fatals := append(collectErrs, result.Fatals...)
	if len(fatals) > 0 {
		for _, e := range fatals {
			opts.Reporter.OnError(e)
		}
		return finish(opts, runID, startTime, domain.StatusFailed, fatals)
	}

	if opts.RunOpts.ListOnly {
		return finish(opts, runID, startTime, domain.StatusPassed, nil)
	}

	if err := outputdir.CleanAll(outputDirsFor(opts.Config.Projects, opts.RunOpts.ProjectFilter)); err != nil {
		outErr := domain.TestError{Message: err.Error()}
		opts.Reporter.OnError(outErr)
		return finish(opts, runID, startTime, domain.StatusFailed, []domain.TestError{outErr})
	}

	projectByID := indexProjects(opts.Config.Projects)
	stageOf := func(projectID string) int { return projectByID[projectID].Stage }
	runOf := func(projectID string) domain.RunMode {
		if projectByID[projectID].Run == config.RunAlways {
			return domain.RunAlways
		}
		return domain.RunDefault
	}

	groups := grouper.Group(result.Root.AllTests(), opts.Config.Workers, runOf)
	stages := stage.Partition(groups, stageOf)

	if opts.Config.Shard.IsSet() {
		shardableTotal := shard.ShardableTotal(result.Root, runOf)
		from, to := shard.Window(shardableTotal, opts.Config.Shard.Current, opts.Config.Shard.Total)
		filtered, retained := shard.Filter(stages, from, to)
		stages = filtered
		shard.Prune(result.Root, retained)
	}

	watcher := signalwatch.New()
	lc := &lifecycle.Lifecycle{
		Plugins:        opts.Plugins,
		GlobalSetup:    opts.GlobalSetup,
		GlobalTeardown: opts.GlobalTeardown,
	}

	var teardownErrs []domain.TestError
	teardown := func() {
		lc.Teardown(context.Background(), func(err error) {
			teardownErrs = append(teardownErrs, domain.TestError{Message: err.Error(), NotAFatalError: true})
		})
		watcher.Disarm()
	}

	if err := lc.Setup(ctx, watcher); err != nil {
		setupErr := domain.TestError{Message: err.Error()}
		opts.Reporter.OnError(setupErr)
		status := domain.StatusFailed
		if err == lifecycle.ErrInterrupted {
			status = domain.StatusInterrupted
		}
		teardown()
		return finish(opts, runID, startTime, status, append([]domain.TestError{setupErr}, teardownErrs...))
	}

	status, runErrs := runStagesWithTimeout(ctx, opts, stages, watcher)
	teardown()
	return finish(opts, runID, startTime, status, append(runErrs, teardownErrs...))
}

// runStagesWithTimeout races the stage-dispatch loop against
// opts.Config.GlobalTimeoutMs. The deadline aborts only the wait — it
// never cancels in-flight dispatcher work — so a timed-out run's
// teardown still observes whatever plugins/workers eventually settle.
func runStagesWithTimeout(ctx context.Context, opts Options, stages []stage.Stage, watcher *signalwatch.Watcher) (domain.FullResultStatus, []domain.TestError) {
	type outcome struct {
		status domain.FullResultStatus
		errs   []domain.TestError
	}
	done := make(chan outcome, 1)
	go func() {
		s, e := runStages(ctx, opts, stages, watcher)
		done <- outcome{status: s, errs: e}
	}()

	if opts.Config.GlobalTimeoutMs <= 0 {
		o := <-done
		return o.status, o.errs
	}

	timer := time.NewTimer(time.Duration(opts.Config.GlobalTimeoutMs) * time.Millisecond)
	defer timer.Stop()

	select {
	case o := <-done:
		return o.status, o.errs
	case <-timer.C:
		timeoutErr := domain.NewStacklessError("global timeout exceeded")
		opts.Reporter.OnError(*timeoutErr)
		return domain.StatusTimedOut, []domain.TestError{*timeoutErr}
	}
}

// runStages implements the stage-dispatch loop.
func runStages(ctx context.Context, opts Options, stages []stage.Stage, watcher *signalwatch.Watcher) (domain.FullResultStatus, []domain.TestError) {
	previousStageFailed := false
	interrupted := false
	workerErrors := false
	anyTestFailed := false

	for _, st := range stages {
		groups := st.Groups
		if previousStageFailed {
			groups = skipNonAlways(groups, opts.Reporter)
		}
		if len(groups) == 0 {
			continue
		}

		sink := reporterSink{r: opts.Reporter}
		d := opts.Dispatch(groups, sink)

		runDone := make(chan error, 1)
		go func() { runDone <- d.Run(ctx) }()

		select {
		case <-runDone:
		case <-watcher.Done():
			interrupted = true
		}

		_ = d.Stop(context.Background())

		if d.HasWorkerErrors() {
			workerErrors = true
		}
		if groupsFailed(groups) {
			anyTestFailed = true
			previousStageFailed = true
		} else {
			previousStageFailed = false
		}

		if interrupted || workerErrors {
			break
		}
	}

	switch {
	case interrupted:
		return domain.StatusInterrupted, nil
	case workerErrors || anyTestFailed:
		return domain.StatusFailed, nil
	default:
		return domain.StatusPassed, nil
	}
}

// groupsFailed reports whether any test across groups recorded a
// failed/timedOut attempt.
func groupsFailed(groups []*domain.TestGroup) bool {
	for _, g := range groups {
		for _, tc := range g.Tests {
			last := tc.LastAttempt()
			if last != nil && (last.Status == domain.AttemptStatusFailed || last.Status == domain.AttemptStatusTimedOut) {
				return true
			}
		}
	}
	return false
}

// reporterSink adapts a Reporter to dispatch.TestSink.
type reporterSink struct {
	r reporter.Reporter
}

func (s reporterSink) OnTestBegin(tc *domain.TestCase) { s.r.OnTestBegin(tc) }
func (s reporterSink) OnTestEnd(tc *domain.TestCase, attempt domain.Attempt) {
	s.r.OnTestEnd(tc, attempt)
}

func finish(opts Options, runID string, startTime time.Time, status domain.FullResultStatus, errs []domain.TestError) domain.FullResult {
	result := domain.FullResult{
		RunID:     runID,
		Status:    status,
		Errors:    errs,
		StartTime: startTime.Format(time.RFC3339),
		Duration:  time.Since(startTime).Seconds(),
	}
	opts.Reporter.OnEnd(result)
	opts.Reporter.OnExit()
	return result
}

func indexProjects(projects []config.Project) map[string]config.Project {
	out := make(map[string]config.Project, len(projects))
	for _, p := range projects {
		out[p.ID] = p
	}
	return out
}

func outputDirsFor(projects []config.Project, filter []string) []string {
	allowed := projectFilterSet(filter)
	var dirs []string
	for _, p := range projects {
		if len(allowed) > 0 && !allowed[lowerName(p.Name)] {
			continue
		}
		if p.OutputDir != "" {
			dirs = append(dirs, p.OutputDir)
		}
	}
	return dirs
}

func projectFilterSet(filter []string) map[string]bool {
	if len(filter) == 0 {
		return nil
	}
	out := make(map[string]bool, len(filter))
	for _, name := range filter {
		out[lowerName(name)] = true
	}
	return out
}

func lowerName(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
