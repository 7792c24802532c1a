package reporter

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/torcrun/torc/internal/config"
	"github.com/torcrun/torc/internal/domain"
)

// junitReporter writes the run as a JUnit XML document, one <testsuite>
// per compiled file, one <testcase> per TestCase. No junit-writing
// library appears anywhere in the example pack, so this uses stdlib
// encoding/xml directly rather than reaching for an ecosystem dependency
// that was never grounded in the corpus.
type junitReporter struct {
	base
	opts Options

	mu   sync.Mutex
	root *domain.Suite
}

func newJUnitReporter(opts Options) Reporter {
	return &junitReporter{opts: opts}
}

func (r *junitReporter) OnBegin(_ config.FullConfigInternal, root *domain.Suite) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.root = root
}

type junitTestSuites struct {
	XMLName xml.Name        `xml:"testsuites"`
	Suites  []junitTestSuite `xml:"testsuite"`
}

type junitTestSuite struct {
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Skipped  int             `xml:"skipped,attr"`
	Time     float64         `xml:"time,attr"`
	Cases    []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	Name    string        `xml:"name,attr"`
	Time    float64       `xml:"time,attr"`
	Failure *junitFailure `xml:"failure,omitempty"`
	Skipped *struct{}     `xml:"skipped,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Body    string `xml:",chardata"`
}

func (r *junitReporter) OnEnd(result domain.FullResult) {
	r.mu.Lock()
	root := r.root
	r.mu.Unlock()

	doc := junitTestSuites{}
	for _, fileSuite := range filesOf(root) {
		ts := junitTestSuite{Name: fileSuite.File}
		for _, tc := range fileSuite.AllTests() {
			jc := junitTestCase{Name: tc.FullTitle()}
			attempt := tc.LastAttempt()
			if attempt != nil {
				jc.Time = attempt.Duration.Seconds()
			}
			switch attemptStatus(tc) {
			case domain.AttemptStatusFailed, domain.AttemptStatusTimedOut:
				ts.Failures++
				msg := ""
				if attempt != nil && attempt.Error != nil {
					msg = attempt.Error.Message
				}
				jc.Failure = &junitFailure{Message: msg, Body: msg}
			case domain.AttemptStatusSkipped, domain.AttemptStatusInterrupt:
				ts.Skipped++
				jc.Skipped = &struct{}{}
			}
			ts.Tests++
			ts.Time += jc.Time
			ts.Cases = append(ts.Cases, jc)
		}
		doc.Suites = append(doc.Suites, ts)
	}

	writeJUnitReport(r.opts, doc)
}

func writeJUnitReport(opts Options, doc junitTestSuites) {
	var w io.Writer = opts.writer()
	if opts.OutputFile != "" {
		f, err := os.Create(opts.OutputFile)
		if err != nil {
			fmt.Fprintf(opts.writer(), "reporter: junit: %v\n", err)
			return
		}
		defer f.Close()
		w = f
	}
	fmt.Fprint(w, xml.Header)
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		fmt.Fprintf(opts.writer(), "reporter: junit: %v\n", err)
	}
}
