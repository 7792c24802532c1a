package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/torcrun/torc/internal/cli"
	"github.com/torcrun/torc/internal/config"
	"github.com/torcrun/torc/internal/domain"
	"github.com/torcrun/torc/internal/orchestrator"
	"github.com/torcrun/torc/internal/process"
	"github.com/torcrun/torc/internal/reporter"
)

// ListFilesCommand runs only the collector/builder stages and prints
// the discovered files as a JSON report, one entry per project.
type ListFilesCommand struct{}

// listFilesReport is the top-level list-files JSON shape.
type listFilesReport struct {
	Projects []listFilesProject `json:"projects"`
}

type listFilesProject struct {
	Docker  string   `json:"docker"`
	Name    string   `json:"name"`
	TestDir string   `json:"testDir"`
	Files   []string `json:"files"`
}

func (lc *ListFilesCommand) Execute(flags *cli.Flags) error {
	cfg, runOpts, err := resolveConfig(flags)
	if err != nil {
		return err
	}

	rep, err := reporter.New("null", reporter.Options{})
	if err != nil {
		return err
	}
	capturing := &rootCapturingReporter{Reporter: rep}

	result := orchestrator.Run(context.Background(), orchestrator.Options{
		Config:   cfg,
		RunOpts:  runOpts,
		Compiler: process.NewStaticCompiler(),
		Reporter: capturing,
	})
	if result.Status != domain.StatusPassed {
		for _, e := range result.Errors {
			fmt.Fprintln(os.Stderr, e.Message)
		}
		return fmt.Errorf("list-files: %s", result.Status)
	}

	report, err := buildListFilesReport(cfg.Projects, capturing.root)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func buildListFilesReport(projects []config.Project, root *domain.Suite) (listFilesReport, error) {
	docker := os.Getenv("PLAYWRIGHT_DOCKER")
	filesByProject := map[string][]string{}
	if root != nil {
		for _, entry := range root.Entries {
			if !entry.IsSuite() || entry.Suite.Project == nil {
				continue
			}
			filesByProject[entry.Suite.Project.ID] = filesOfProject(entry.Suite)
		}
	}

	report := listFilesReport{}
	for _, p := range projects {
		absTestDir, err := filepath.Abs(p.TestDir)
		if err != nil {
			return listFilesReport{}, fmt.Errorf("list-files: resolve testDir for %s: %w", p.Name, err)
		}
		report.Projects = append(report.Projects, listFilesProject{
			Docker:  docker,
			Name:    p.Name,
			TestDir: absTestDir,
			Files:   filesByProject[p.ID],
		})
	}
	return report, nil
}

// filesOfProject collects the distinct file paths under a project
// suite, in declaration order.
func filesOfProject(projectSuite *domain.Suite) []string {
	seen := make(map[string]bool)
	var files []string
	for _, entry := range projectSuite.Entries {
		if !entry.IsSuite() || entry.Suite.File == "" {
			continue
		}
		if !seen[entry.Suite.File] {
			seen[entry.Suite.File] = true
			files = append(files, entry.Suite.File)
		}
	}
	return files
}
