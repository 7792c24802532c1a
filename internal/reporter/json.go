package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/torcrun/torc/internal/config"
	"github.com/torcrun/torc/internal/domain"
)

// jsonReport is the on-disk shape the json reporter writes, a
// meta/details split mirroring the run's overall stats plus each
// finished test's outcome.
type jsonReport struct {
	RunID    string            `json:"runId"`
	Status   domain.FullResultStatus `json:"status"`
	Duration float64           `json:"durationSeconds"`
	Stats    jsonStats         `json:"stats"`
	Errors   []domain.TestError `json:"errors,omitempty"`
	Failures []jsonFailure     `json:"failures,omitempty"`
}

type jsonStats struct {
	TotalFiles  int `json:"totalFiles"`
	FailedFiles int `json:"failedFiles"`
	TotalTests  int `json:"totalTests"`
	Passed      int `json:"passed"`
	Failed      int `json:"failed"`
	Skipped     int `json:"skipped"`
}

type jsonFailure struct {
	File    string `json:"file"`
	Title   string `json:"title"`
	Message string `json:"message,omitempty"`
}

type jsonReporter struct {
	base
	opts Options

	mu       sync.Mutex
	root     *domain.Suite
	errors   []domain.TestError
	failures []jsonFailure
}

func newJSONReporter(opts Options) Reporter {
	return &jsonReporter{opts: opts}
}

func (r *jsonReporter) OnBegin(_ config.FullConfigInternal, root *domain.Suite) {
	r.root = root
}

func (r *jsonReporter) OnTestEnd(tc *domain.TestCase, attempt domain.Attempt) {
	if attempt.Status == domain.AttemptStatusPassed || attempt.Status == domain.AttemptStatusSkipped {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	f := jsonFailure{File: tc.RequireFile, Title: tc.FullTitle()}
	if attempt.Error != nil {
		f.Message = attempt.Error.Message
	}
	r.failures = append(r.failures, f)
}

func (r *jsonReporter) OnError(err domain.TestError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, err)
}

func (r *jsonReporter) OnEnd(result domain.FullResult) {
	s := summarize(r.root)
	report := jsonReport{
		RunID:    result.RunID,
		Status:   result.Status,
		Duration: result.Duration,
		Stats: jsonStats{
			TotalFiles:  s.totalFiles,
			FailedFiles: s.failedFiles,
			TotalTests:  s.totalTests,
			Passed:      s.passedTests,
			Failed:      s.failedTests,
			Skipped:     s.skippedTests,
		},
		Errors:   append(result.Errors, r.errors...),
		Failures: r.failures,
	}
	writeJSONReport(r.opts, report)
}

func writeJSONReport(opts Options, report jsonReport) {
	var w io.Writer = opts.writer()
	if opts.OutputFile != "" {
		f, err := os.Create(opts.OutputFile)
		if err != nil {
			fmt.Fprintf(opts.writer(), "reporter: json: %v\n", err)
			return
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		fmt.Fprintf(opts.writer(), "reporter: json: %v\n", err)
	}
}
