package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"k8s.io/utils/exec"
)

// Error describes a command that could not be run or exited non-zero.
type Error struct {
	Command  string
	Args     []string
	Stderr   string
	ExitCode int // -1 when the command did not exit normally
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Command, strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Runner executes commands.
type Runner struct {
	exec exec.Interface
}

// NewRunner creates a Runner. A nil executor uses the host.
func NewRunner(e exec.Interface) *Runner {
	if e == nil {
		e = exec.New()
	}
	return &Runner{exec: e}
}

// Run executes name with args and returns its standard output.
func (r *Runner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return r.RunWithInput(ctx, nil, name, args...)
}

// RunWithInput is Run with stdin attached to the command.
func (r *Runner) RunWithInput(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error) {
	cmd := r.exec.CommandContext(ctx, name, args...)
	if stdin != nil {
		cmd.SetStdin(stdin)
	}
	var stderr bytes.Buffer
	cmd.SetStderr(&stderr)

	out, err := cmd.Output()
	if err != nil {
		cmdErr := &Error{
			Command:  name,
			Args:     args,
			Stderr:   strings.TrimSpace(stderr.String()),
			ExitCode: -1,
			Err:      err,
		}
		var exitErr exec.ExitError
		if errors.As(err, &exitErr) {
			cmdErr.ExitCode = exitErr.ExitStatus()
		}
		return nil, cmdErr
	}
	return out, nil
}

// LookPath reports the resolved path of a binary.
func (r *Runner) LookPath(name string) (string, error) {
	return r.exec.LookPath(name)
}
