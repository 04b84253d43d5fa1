// Package toolchain drives the external ahead-of-time compiler: it
// builds invocation argument vectors, runs the process synchronously and
// manages the temporary files the exchange goes through.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner executes an external tool. The call blocks until the process
// exits; callers needing bounded latency must enforce it through ctx or
// by running the translator on a worker they can terminate.
type Runner interface {
	// LookPath resolves a tool name to an executable path.
	LookPath(name string) (string, error)

	// Run executes the tool and returns its exit code. A non-nil error
	// with exit code -1 means the process could not be started; a
	// non-nil error with a real exit code carries captured stderr.
	Run(ctx context.Context, name string, args []string) (int, error)
}

// ExecRunner runs tools with os/exec, capturing stderr into the error.
type ExecRunner struct {
	// PrintCommands echoes each invocation to stdout before running it.
	PrintCommands bool
}

func (r ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (r ExecRunner) Run(ctx context.Context, name string, args []string) (int, error) {
	if r.PrintCommands {
		fmt.Fprintf(os.Stdout, "%s %s\n", name, strings.Join(args, " "))
	}
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return exitErr.ExitCode(), err
		}
		return exitErr.ExitCode(), fmt.Errorf("%s: %s", name, msg)
	}
	return -1, fmt.Errorf("failed to run %s: %w", name, err)
}
