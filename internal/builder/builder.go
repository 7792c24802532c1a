// Package builder compiles collected files into the suite tree and
// applies an ordered filter chain: duplicate titles, focused-line,
// forbid-only, only-semantics, then per-project repeatEach cloning with
// grep/grepInvert/title admission.
package builder

import (
	"fmt"

	"github.com/torcrun/torc/internal/config"
	"github.com/torcrun/torc/internal/domain"
)

// FileCompiler loads one test file and yields its suite subtree. It is an
// external collaborator — torc depends only on this interface, never on
// a concrete implementation.
type FileCompiler interface {
	CompileFile(path string) (*domain.Suite, error)
}

// ProjectSpec pairs a resolved project with the files the collector
// matched for it.
type ProjectSpec struct {
	Project config.Project
	Files   []string
}

// Options are the run-wide controls the filter chain needs.
type Options struct {
	ForbidOnly       bool
	ListMode         bool
	FileFilters      []config.TestFileFilter
	TestTitleMatcher config.TitleMatcher
}

// Result is the outcome of Build.
type Result struct {
	Root   *domain.Suite
	Fatals []domain.TestError
}

// Build loads every unique file exactly once into a preprocess suite,
// applies the structural filters, then clones each (project, file) pair
// repeatEach times, admitting tests via grep/grepInvert/title matching.
func Build(specs []ProjectSpec, compiler FileCompiler, opts Options) Result {
	files := uniqueFiles(specs)
	preprocess, fatals := loadPreprocess(files, compiler)

	for path, fileSuite := range preprocess {
		if dup := findDuplicateTitle(fileSuite); dup != "" {
			fatals = append(fatals, domain.TestError{
				Message: fmt.Sprintf("duplicate test title %q in %s", dup, path),
			})
		}
		applyFocusedLine(fileSuite, path, opts.FileFilters)
	}

	if opts.ForbidOnly {
		var offenders []string
		for path, fileSuite := range preprocess {
			if hasOnlyAnywhere(fileSuite) {
				offenders = append(offenders, path)
			}
		}
		if len(offenders) > 0 {
			fatals = append(fatals, domain.TestError{
				Message: fmt.Sprintf("--forbid-only found %d file(s) with tests marked only: %v", len(offenders), offenders),
			})
		}
	}

	if !opts.ListMode {
		for _, fileSuite := range preprocess {
			applyOnlyFilter(fileSuite)
		}
	}

	root := domain.NewSuite(domain.SuiteKindRoot, "")
	for _, spec := range specs {
		projectSuite := root.AddSuite(domain.NewSuite(domain.SuiteKindProject, spec.Project.Name))
		projectSuite.Project = &domain.ProjectRef{ID: spec.Project.ID, Name: spec.Project.Name}

		for _, path := range spec.Files {
			fileSuite, ok := preprocess[path]
			if !ok {
				continue
			}
			for repeatIdx := 0; repeatIdx < repeatCount(spec.Project); repeatIdx++ {
				clone := fileSuite.Clone()
				tagClone(clone, spec.Project, path, repeatIdx)
				admitByGrep(clone, spec.Project, opts.TestTitleMatcher)
				if len(clone.Entries) > 0 || clone.Only {
					clone.Parent = projectSuite
					projectSuite.Entries = append(projectSuite.Entries, domain.Entry{Suite: clone})
				}
			}
		}
	}

	return Result{Root: root, Fatals: fatals}
}

func repeatCount(p config.Project) int {
	if p.RepeatEach <= 0 {
		return 1
	}
	return p.RepeatEach
}

func uniqueFiles(specs []ProjectSpec) []string {
	seen := make(map[string]bool)
	var out []string
	for _, spec := range specs {
		for _, f := range spec.Files {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out
}

func loadPreprocess(files []string, compiler FileCompiler) (map[string]*domain.Suite, []domain.TestError) {
	preprocess := make(map[string]*domain.Suite, len(files))
	var fatals []domain.TestError
	for _, path := range files {
		suite, err := compiler.CompileFile(path)
		if err != nil {
			fatals = append(fatals, domain.TestError{Message: fmt.Sprintf("failed to load %s: %v", path, err)})
			continue
		}
		suite.Kind = domain.SuiteKindFile
		suite.File = path
		preprocess[path] = suite
	}
	return preprocess, fatals
}
