package orchestrator

import (
	"fmt"

	"github.com/torcrun/torc/internal/builder"
	"github.com/torcrun/torc/internal/collector"
	"github.com/torcrun/torc/internal/config"
	"github.com/torcrun/torc/internal/domain"
)

// collectAll runs file collection for every project the CLI did not
// filter out, turning a per-project Collect error into a fatal
// collection error rather than aborting the whole run.
func collectAll(projects []config.Project, runOpts config.RunOptions) ([]builder.ProjectSpec, []domain.TestError) {
	allowed := projectFilterSet(runOpts.ProjectFilter)

	var specs []builder.ProjectSpec
	var fatals []domain.TestError

	for _, p := range projects {
		if len(allowed) > 0 && !allowed[lowerName(p.Name)] {
			continue
		}
		p = p.WithDefaults()

		paths, err := collector.Collect(p.TestDir, p.RespectGitIgnore)
		if err != nil {
			fatals = append(fatals, domain.TestError{Message: fmt.Sprintf("collecting %s: %v", p.Name, err)})
			continue
		}

		files := collector.FilterFiles(paths, collector.Options{
			TestMatch:   p.TestMatch,
			TestIgnore:  p.TestIgnore,
			Extensions:  config.DefaultExtensions,
			FileFilters: runOpts.TestFileFilters,
		})
		if len(files) == 0 {
			continue
		}
		specs = append(specs, builder.ProjectSpec{Project: p, Files: files})
	}

	if len(specs) == 0 && len(fatals) == 0 && !runOpts.PassWithNoTests {
		fatals = append(fatals, domain.TestError{Message: "no tests found"})
	}

	return specs, fatals
}
