package storage

import (
	"github.com/torcrun/torc/internal/domain"
)

// FailureDetail is one failed or timed-out test, flattened for the
// viewer's failure list.
type FailureDetail struct {
	File    string `json:"file"`
	Title   string `json:"title"`
	Message string `json:"message,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

// RunRecord is the full, self-contained record of one run, everything
// `torc view` needs without re-running anything.
type RunRecord struct {
	RunID     string                  `json:"runId"`
	Status    domain.FullResultStatus `json:"status"`
	StartTime string                  `json:"startTime"`
	Duration  float64                 `json:"durationSeconds"`
	Workers   int                     `json:"workers"`

	TotalTests   int `json:"totalTests"`
	PassedTests  int `json:"passedTests"`
	FailedTests  int `json:"failedTests"`
	SkippedTests int `json:"skippedTests"`

	Failures []FailureDetail    `json:"failures,omitempty"`
	Errors   []domain.TestError `json:"errors,omitempty"`
}

// BuildRunRecord walks root's suite tree, classifying every test case's
// last attempt, and assembles the persisted record for result.
func BuildRunRecord(result domain.FullResult, root *domain.Suite, workers int) RunRecord {
	run := RunRecord{
		RunID:     result.RunID,
		Status:    result.Status,
		StartTime: result.StartTime,
		Duration:  result.Duration,
		Workers:   workers,
		Errors:    result.Errors,
	}

	if root == nil {
		return run
	}

	for _, tc := range root.AllTests() {
		last := tc.LastAttempt()
		run.TotalTests++
		if last == nil {
			run.SkippedTests++
			continue
		}
		switch last.Status {
		case domain.AttemptStatusPassed:
			run.PassedTests++
		case domain.AttemptStatusFailed, domain.AttemptStatusTimedOut:
			run.FailedTests++
			detail := FailureDetail{File: tc.RequireFile, Title: tc.FullTitle()}
			if last.Error != nil {
				detail.Message = last.Error.Message
				detail.Stack = last.Error.Stack
			}
			run.Failures = append(run.Failures, detail)
		default:
			run.SkippedTests++
		}
	}

	return run
}
