package process

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/torcrun/torc/internal/domain"
)

// Config is the command template a Runner shells out to for each test.
type Config struct {
	// Command is the executable invoked per test, e.g. "node" or a
	// wrapper script. Runner appends the test's RequireFile and full
	// title as the last two arguments.
	Command string
	Args    []string
	Dir     string
	Env     []string
}

// Runner executes one test per call by running Config.Command against
// its file and title via exec.CommandContext, treating a non-zero exit
// as a test failure and any other error as a worker-level failure.
type Runner struct {
	cfg Config
}

// NewRunner returns a Runner for cfg, suitable for
// dispatch.NewLocalDispatcher.
func NewRunner(cfg Config) *Runner { return &Runner{cfg: cfg} }

// RunTest shells out to r.cfg.Command, reporting the test as failed
// (with the combined output as the error message) on a non-zero exit,
// and as a worker error only when the command itself could not be
// started.
func (r *Runner) RunTest(ctx context.Context, tc *domain.TestCase) (domain.Attempt, error) {
	args := append(append([]string{}, r.cfg.Args...), tc.RequireFile, tc.FullTitle())
	cmd := exec.CommandContext(ctx, r.cfg.Command, args...)
	cmd.Dir = r.cfg.Dir
	if len(r.cfg.Env) > 0 {
		cmd.Env = append(os.Environ(), r.cfg.Env...)
	}

	start := time.Now()
	output, err := cmd.CombinedOutput()
	duration := time.Since(start)

	if err == nil {
		return domain.Attempt{Status: domain.AttemptStatusPassed, Duration: duration}, nil
	}

	if _, isExit := err.(*exec.ExitError); isExit {
		return domain.Attempt{
			Status:   domain.AttemptStatusFailed,
			Duration: duration,
			Error:    &domain.TestError{Message: string(output)},
		}, nil
	}

	return domain.Attempt{
		Status:   domain.AttemptStatusFailed,
		Duration: duration,
		Error:    &domain.TestError{Message: fmt.Sprintf("process: start %s: %v", r.cfg.Command, err)},
	}, err
}
