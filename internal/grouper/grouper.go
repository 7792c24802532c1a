// Package grouper implements the test grouping algorithm:
// the partition deciding which tests can share a worker process.
package grouper

import (
	"fmt"

	"github.com/torcrun/torc/internal/domain"
)

// bucketKey identifies one (workerHash, requireFile) bucket.
type bucketKey struct {
	workerHash  string
	requireFile string
}

// bucket holds the three per-(workerHash,requireFile) containers a test
// can fall into: general, parallel, and parallel-with-hooks.
type bucket struct {
	general  []*domain.TestCase
	parallel map[*domain.Suite][]*domain.TestCase
	// parallelSolo holds the parallel tests keyed by the test itself
	// (when neither a serial wrapper nor hooks apply); Go can't key a
	// map by *domain.Suite and *domain.TestCase interchangeably, so
	// these tests live in a separate slice, and each one emits its own
	// single-test group.
	parallelSolo      []*domain.TestCase
	parallelWithHooks []*domain.TestCase

	// order preserves first-seen order of parallel's serial-suite keys,
	// so emission order matches source order rather than map order.
	order []*domain.Suite
}

// Group partitions tests into the minimal set of TestGroups that may
// share a worker process, given the configured worker count. runOf
// reports the inherited run mode ('default'/'always') for a test's
// project.
func Group(tests []*domain.TestCase, workers int, runOf func(projectID string) domain.RunMode) []*domain.TestGroup {
	if workers <= 0 {
		workers = 1
	}
	if runOf == nil {
		runOf = func(string) domain.RunMode { return domain.RunDefault }
	}

	buckets := make(map[bucketKey]*bucket)
	var bucketOrder []bucketKey

	for _, tc := range tests {
		key := bucketKey{workerHash: tc.WorkerHash, requireFile: tc.RequireFile}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{parallel: make(map[*domain.Suite][]*domain.TestCase)}
			buckets[key] = b
			bucketOrder = append(bucketOrder, key)
		}
		place(b, tc)
	}

	var groups []*domain.TestGroup
	for _, key := range bucketOrder {
		b := buckets[key]
		run := runOf(firstProjectID(b))
		if len(b.general) > 0 {
			groups = append(groups, newGroup(key, run, b.general))
		}
		for _, serial := range b.order {
			groups = append(groups, newGroup(key, run, b.parallel[serial]))
		}
		for _, solo := range b.parallelSolo {
			groups = append(groups, newGroup(key, run, []*domain.TestCase{solo}))
		}
		if len(b.parallelWithHooks) > 0 {
			groups = append(groups, chunkWithHooks(key, run, b.parallelWithHooks, workers)...)
		}
	}
	return groups
}

func firstProjectID(b *bucket) string {
	switch {
	case len(b.general) > 0:
		return b.general[0].ProjectID
	case len(b.order) > 0:
		return b.parallel[b.order[0]][0].ProjectID
	case len(b.parallelSolo) > 0:
		return b.parallelSolo[0].ProjectID
	case len(b.parallelWithHooks) > 0:
		return b.parallelWithHooks[0].ProjectID
	default:
		return ""
	}
}

// place assigns tc to general, parallel[outerMostSerialSuite|test], or
// parallelWithHooks based on an ancestor walk classifying it.
func place(b *bucket, tc *domain.TestCase) {
	insideParallel, outerSerial, hasAllHooks := classify(tc)

	switch {
	case !insideParallel:
		b.general = append(b.general, tc)
	case hasAllHooks && outerSerial == nil:
		b.parallelWithHooks = append(b.parallelWithHooks, tc)
	case outerSerial != nil:
		if _, ok := b.parallel[outerSerial]; !ok {
			b.order = append(b.order, outerSerial)
		}
		b.parallel[outerSerial] = append(b.parallel[outerSerial], tc)
	default:
		b.parallelSolo = append(b.parallelSolo, tc)
	}
}

// classify walks tc's ancestor chain once, computing insideParallel,
// outerMostSerialSuite, and hasAllHooks.
func classify(tc *domain.TestCase) (insideParallel bool, outerSerial *domain.Suite, hasAllHooks bool) {
	for s := tc.Parent; s != nil; s = s.Parent {
		if s.ParallelMode == domain.ParallelModeParallel {
			insideParallel = true
		}
		if s.ParallelMode == domain.ParallelModeSerial {
			outerSerial = s
		}
		if s.HasHook(domain.HookBeforeAll) || s.HasHook(domain.HookAfterAll) {
			hasAllHooks = true
		}
	}
	return
}

func newGroup(key bucketKey, run domain.RunMode, tests []*domain.TestCase) *domain.TestGroup {
	if len(tests) == 0 {
		return nil
	}
	return &domain.TestGroup{
		WorkerHash:      key.workerHash,
		RequireFile:     key.requireFile,
		RepeatEachIndex: tests[0].RepeatEachIndex,
		ProjectID:       tests[0].ProjectID,
		Run:             run,
		Tests:           tests,
	}
}

// chunkWithHooks splits tests into contiguous chunks of size
// ceil(len/workers).
func chunkWithHooks(key bucketKey, run domain.RunMode, tests []*domain.TestCase, workers int) []*domain.TestGroup {
	chunkSize := (len(tests) + workers - 1) / workers
	if chunkSize <= 0 {
		chunkSize = len(tests)
	}
	var groups []*domain.TestGroup
	for i := 0; i < len(tests); i += chunkSize {
		end := i + chunkSize
		if end > len(tests) {
			end = len(tests)
		}
		groups = append(groups, newGroup(key, run, tests[i:end]))
	}
	return groups
}

// Validate checks the group-purity invariant: every test in a group
// shares (workerHash, requireFile, repeatEachIndex, projectId).
func Validate(groups []*domain.TestGroup) error {
	for _, g := range groups {
		for _, tc := range g.Tests {
			if tc.WorkerHash != g.WorkerHash || tc.RequireFile != g.RequireFile ||
				tc.RepeatEachIndex != g.RepeatEachIndex || tc.ProjectID != g.ProjectID {
				return fmt.Errorf("grouper: impure group for %s: test %q does not share group identity", g.RequireFile, tc.Title)
			}
		}
	}
	return nil
}
