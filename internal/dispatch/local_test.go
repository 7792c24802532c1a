package dispatch

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torcrun/torc/internal/domain"
)

type recordingSink struct {
	mu      sync.Mutex
	begins  []string
	endings []string
}

func (s *recordingSink) OnTestBegin(tc *domain.TestCase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.begins = append(s.begins, tc.Title)
}

func (s *recordingSink) OnTestEnd(tc *domain.TestCase, attempt domain.Attempt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endings = append(s.endings, tc.Title)
}

type stubRunner struct {
	fail map[string]bool
}

func (r stubRunner) RunTest(ctx context.Context, tc *domain.TestCase) (domain.Attempt, error) {
	if r.fail[tc.Title] {
		return domain.Attempt{Status: domain.AttemptStatusFailed}, nil
	}
	return domain.Attempt{Status: domain.AttemptStatusPassed}, nil
}

func TestLocalDispatcher_RunsEveryTestInEveryGroup(t *testing.T) {
	g1 := &domain.TestGroup{Tests: []*domain.TestCase{{Title: "a"}, {Title: "b"}}}
	g2 := &domain.TestGroup{Tests: []*domain.TestCase{{Title: "c"}}}

	sink := &recordingSink{}
	d := &LocalDispatcher{Groups: []*domain.TestGroup{g1, g2}, Sink: sink, Runner: stubRunner{}, MaxWorkers: 2}

	require.NoError(t, d.Run(context.Background()))
	assert.ElementsMatch(t, []string{"a", "b", "c"}, sink.endings)
	assert.False(t, d.HasWorkerErrors())
}

func TestLocalDispatcher_PreservesOrderWithinGroup(t *testing.T) {
	g := &domain.TestGroup{Tests: []*domain.TestCase{{Title: "first"}, {Title: "second"}, {Title: "third"}}}
	sink := &recordingSink{}
	d := &LocalDispatcher{Groups: []*domain.TestGroup{g}, Sink: sink, Runner: stubRunner{}, MaxWorkers: 4}

	require.NoError(t, d.Run(context.Background()))
	assert.Equal(t, []string{"first", "second", "third"}, sink.endings)
}

func TestLocalDispatcher_RecordsAttemptOnTestCase(t *testing.T) {
	tc := &domain.TestCase{Title: "a"}
	g := &domain.TestGroup{Tests: []*domain.TestCase{tc}}
	sink := &recordingSink{}
	d := &LocalDispatcher{Groups: []*domain.TestGroup{g}, Sink: sink, Runner: stubRunner{fail: map[string]bool{"a": true}}, MaxWorkers: 1}

	require.NoError(t, d.Run(context.Background()))
	require.Len(t, tc.Attempts, 1)
	assert.Equal(t, domain.AttemptStatusFailed, tc.Attempts[0].Status)
}
