package reporter

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"sync"

	"github.com/torcrun/torc/internal/config"
	"github.com/torcrun/torc/internal/domain"
)

// htmlReporter renders a single static HTML page summarizing the run, the
// file-facing counterpart to json/junit. No HTML-report library appears in
// the example pack, so this builds the page with stdlib html/template
// rather than an ungrounded third-party templating engine.
type htmlReporter struct {
	base
	opts Options

	mu       sync.Mutex
	root     *domain.Suite
	failures []jsonFailure
}

func newHTMLReporter(opts Options) Reporter {
	return &htmlReporter{opts: opts}
}

func (r *htmlReporter) OnBegin(_ config.FullConfigInternal, root *domain.Suite) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.root = root
}

func (r *htmlReporter) OnTestEnd(tc *domain.TestCase, attempt domain.Attempt) {
	if attempt.Status == domain.AttemptStatusPassed || attempt.Status == domain.AttemptStatusSkipped {
		return
	}
	f := jsonFailure{File: tc.RequireFile, Title: tc.FullTitle()}
	if attempt.Error != nil {
		f.Message = attempt.Error.Message
	}
	r.mu.Lock()
	r.failures = append(r.failures, f)
	r.mu.Unlock()
}

func (r *htmlReporter) OnEnd(result domain.FullResult) {
	s := summarize(r.root)
	data := htmlReportData{
		RunID:    result.RunID,
		Status:   string(result.Status),
		Duration: result.Duration,
		Stats:    jsonStats{TotalFiles: s.totalFiles, FailedFiles: s.failedFiles, TotalTests: s.totalTests, Passed: s.passedTests, Failed: s.failedTests, Skipped: s.skippedTests},
		Failures: r.failures,
	}
	writeHTMLReport(r.opts, data)
}

type htmlReportData struct {
	RunID    string
	Status   string
	Duration float64
	Stats    jsonStats
	Failures []jsonFailure
}

var htmlReportTemplate = template.Must(template.New("report").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>torc run {{.RunID}}</title>
<style>
body { font-family: -apple-system, sans-serif; margin: 2rem; color: #1a1a1a; }
.status-passed { color: #1a7f37; }
.status-failed, .status-timedout { color: #cf222e; }
table { border-collapse: collapse; margin-bottom: 1.5rem; }
td, th { border: 1px solid #d0d7de; padding: 0.4rem 0.8rem; text-align: left; }
.failure { border-left: 3px solid #cf222e; padding: 0.5rem 1rem; margin-bottom: 0.5rem; background: #fff8f8; }
.failure .file { color: #57606a; font-size: 0.85rem; }
.failure .message { white-space: pre-wrap; font-family: monospace; }
</style>
</head>
<body>
<h1>Run {{.RunID}}</h1>
<p>Status: <strong class="status-{{.Status}}">{{.Status}}</strong> &middot; {{printf "%.2f" .Duration}}s</p>
<table>
<tr><th>Files</th><td>{{.Stats.TotalFiles}}</td></tr>
<tr><th>Failed files</th><td>{{.Stats.FailedFiles}}</td></tr>
<tr><th>Tests</th><td>{{.Stats.TotalTests}}</td></tr>
<tr><th>Passed</th><td>{{.Stats.Passed}}</td></tr>
<tr><th>Failed</th><td>{{.Stats.Failed}}</td></tr>
<tr><th>Skipped</th><td>{{.Stats.Skipped}}</td></tr>
</table>
{{if .Failures}}
<h2>Failures</h2>
{{range .Failures}}
<div class="failure">
<div class="file">{{.File}}</div>
<div class="title">{{.Title}}</div>
{{if .Message}}<div class="message">{{.Message}}</div>{{end}}
</div>
{{end}}
{{else}}
<p>All tests passed.</p>
{{end}}
</body>
</html>
`))

func writeHTMLReport(opts Options, data htmlReportData) {
	var w io.Writer = opts.writer()
	if opts.OutputFile != "" {
		f, err := os.Create(opts.OutputFile)
		if err != nil {
			fmt.Fprintf(opts.writer(), "reporter: html: %v\n", err)
			return
		}
		defer f.Close()
		w = f
	}
	if err := htmlReportTemplate.Execute(w, data); err != nil {
		fmt.Fprintf(opts.writer(), "reporter: html: %v\n", err)
	}
}
