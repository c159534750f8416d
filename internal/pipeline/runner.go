package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/alnah/go-tex2img/internal/process"
)

// waitDelay bounds how long Wait blocks on output pipes after the process
// group has been killed.
const waitDelay = 2 * time.Second

// Command describes one external program invocation.
type Command struct {
	Name    string
	Args    []string
	Dir     string        // working directory
	LogPath string        // stdout and stderr destination, empty = discard
	Timeout time.Duration // zero = no budget beyond the parent context
}

// CommandRunner abstracts command execution to enable testing without real subprocesses.
//
// Run returns an error wrapping ErrTimeout when the budget is exceeded,
// ErrProcessExit when the program exits non-zero, and the parent context's
// error when the caller cancelled.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

// Compile-time interface check.
var _ CommandRunner = (*ExecRunner)(nil)

// Run starts the command in its own process group and waits for it.
func (r *ExecRunner) Run(ctx context.Context, c Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	runCtx := ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	var out io.Writer = io.Discard
	if c.LogPath != "" {
		logFile, err := os.Create(c.LogPath) // #nosec G304 -- path built inside the scratch directory
		if err != nil {
			return fmt.Errorf("creating log file: %w", err)
		}
		defer logFile.Close()
		out = logFile
	}

	cmd := exec.CommandContext(runCtx, c.Name, c.Args...) // #nosec G204 -- binary names come from configuration
	cmd.Dir = c.Dir
	cmd.Stdout = out
	cmd.Stderr = out
	cmd.WaitDelay = waitDelay
	process.Isolate(cmd)

	err := cmd.Run()

	// Caller cancellation wins over our own budget.
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s after %s", ErrTimeout, c.Name, c.Timeout)
	}
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%w: %s: exit code %d", ErrProcessExit, c.Name, exitErr.ExitCode())
	}
	return fmt.Errorf("running %s: %w", c.Name, err)
}
