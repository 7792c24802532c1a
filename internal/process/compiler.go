// Package process is the reference, non-authoritative FileCompiler +
// TestRunner pair `torc run` wires by default: a static regex scan to
// discover test() / it() call sites, and an os/exec-based runner that
// shells out to a configured command per test. A real implementation
// would load and execute the file itself; the builder, dispatcher and
// orchestrator depend only on the FileCompiler/TestRunner interfaces, and
// only the CLI commands wire this package in, so `torc run` works without
// a separate worker binary.
package process

import (
	"fmt"
	"os"
	"regexp"

	"github.com/torcrun/torc/internal/domain"
)

// callSitePattern finds test()/it() call sites (optionally .only/.skip/
// .fixme) and captures the opening quote character of their first
// argument; Go's RE2 engine can't backreference that quote to find its
// matching close, so the title itself is read separately by readQuoted.
var callSitePattern = regexp.MustCompile(`(?m)^\s*(test|it)(\.(only|skip|fixme))?\s*\(\s*(['"` + "`" + `])`)

// StaticCompiler discovers test titles by scanning a file's text for
// test()/it() call sites, without loading or executing the file.
type StaticCompiler struct{}

// NewStaticCompiler returns a StaticCompiler.
func NewStaticCompiler() *StaticCompiler { return &StaticCompiler{} }

// CompileFile reads path and returns a file-kind Suite with one
// TestCase per discovered call site, in source order.
func (c *StaticCompiler) CompileFile(path string) (*domain.Suite, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("process: read %s: %w", path, err)
	}

	fileSuite := domain.NewSuite(domain.SuiteKindFile, "")
	fileSuite.File = path

	for _, title := range findTestTitles(string(content)) {
		fileSuite.AddTest(&domain.TestCase{
			Title:       title,
			RequireFile: path,
		})
	}
	return fileSuite, nil
}

// findTestTitles returns every discovered test title in source order.
func findTestTitles(src string) []string {
	var titles []string

	for _, loc := range callSitePattern.FindAllStringSubmatchIndex(src, -1) {
		quote := src[loc[8]:loc[9]][0]
		rest := src[loc[9]:]
		if title, ok := readQuoted(rest, quote); ok {
			titles = append(titles, title)
		}
	}

	return titles
}

// readQuoted reads a quote-delimited string from the start of s,
// honoring backslash escapes, and returns its unescaped content.
func readQuoted(s string, quote byte) (string, bool) {
	var out []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			out = append(out, s[i+1])
			i++
			continue
		}
		if c == quote {
			return string(out), true
		}
		out = append(out, c)
	}
	return "", false
}
