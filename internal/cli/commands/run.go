package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/torcrun/torc/internal/cli"
	"github.com/torcrun/torc/internal/config"
	"github.com/torcrun/torc/internal/dispatch"
	"github.com/torcrun/torc/internal/domain"
	"github.com/torcrun/torc/internal/lifecycle"
	"github.com/torcrun/torc/internal/lifecycle/plugin/container"
	"github.com/torcrun/torc/internal/lifecycle/plugin/database"
	"github.com/torcrun/torc/internal/lifecycle/plugin/webserver"
	"github.com/torcrun/torc/internal/orchestrator"
	"github.com/torcrun/torc/internal/process"
	"github.com/torcrun/torc/internal/reporter"
	"github.com/torcrun/torc/internal/storage"
)

// RunCommand drives orchestrator.Run and persists the result for
// `torc view`.
type RunCommand struct{}

// Execute resolves flags into a FullConfigInternal, runs the
// orchestrator, persists the result regardless of outcome, and returns
// a non-nil error if setup failed or the run itself did not pass.
func (rc *RunCommand) Execute(flags *cli.Flags) error {
	cfg, runOpts, err := resolveConfig(flags)
	if err != nil {
		return err
	}

	rep, err := reporter.NewForRun(cfg.Reporter, runOpts.ListOnly, reporter.Options{})
	if err != nil {
		return err
	}
	capturing := &rootCapturingReporter{Reporter: rep}

	var plugins []lifecycle.Plugin
	if flags.WithDatabase {
		plugins = append(plugins, database.New(database.Config{WorkerCount: cfg.Workers}))
	}
	if flags.WebServerCommand != "" {
		plugins = append(plugins, webserver.New(webserver.Config{
			Command:    flags.WebServerCommand,
			URL:        flags.WebServerURL,
			Timeout:    time.Duration(flags.WebServerTimeoutMs) * time.Millisecond,
			ReuseExist: flags.WebServerReuseExist,
		}))
	}
	if flags.ContainerImage != "" {
		plugins = append(plugins, container.New(container.Config{Image: flags.ContainerImage}))
	}

	workerCmd := flags.WorkerCommand
	if workerCmd == "" {
		workerCmd = "true"
	}

	result := orchestrator.Run(context.Background(), orchestrator.Options{
		Config:   cfg,
		RunOpts:  runOpts,
		Compiler: process.NewStaticCompiler(),
		Dispatch: dispatch.NewLocalDispatcher(process.NewRunner(process.Config{Command: workerCmd}), cfg.Workers),
		Reporter: capturing,
		Plugins:  plugins,
	})

	record := storage.BuildRunRecord(result, capturing.root, cfg.Workers)
	if err := storage.NewJSONStorage(flags.ResultsPath).Save(record); err != nil {
		return fmt.Errorf("run: persist results: %w", err)
	}

	if result.Status != domain.StatusPassed {
		return fmt.Errorf("run: finished with status %s", result.Status)
	}
	return nil
}

// rootCapturingReporter records the suite tree OnBegin received so the
// run command can build a RunRecord without orchestrator.Run needing to
// return the tree itself.
type rootCapturingReporter struct {
	reporter.Reporter
	root *domain.Suite
}

func (r *rootCapturingReporter) OnBegin(cfg config.FullConfigInternal, root *domain.Suite) {
	r.root = root
	r.Reporter.OnBegin(cfg, root)
}
