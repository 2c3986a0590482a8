// Package commandtest scripts k8s.io/utils/exec fakes for command tests.
package commandtest

import (
	"strings"

	"k8s.io/utils/exec"
	testingexec "k8s.io/utils/exec/testing"
)

// Result is the scripted outcome of one command.
type Result struct {
	Stdout string
	Err    error
}

// OK is a successful command with the given stdout.
func OK(stdout string) Result {
	return Result{Stdout: stdout}
}

// Exit is a command that exits with the given status.
func Exit(status int) Result {
	return Result{Err: testingexec.FakeExitError{Status: status}}
}

// Recorder captures the command lines a fake executor was asked to run.
type Recorder struct {
	Calls [][]string
}

// Lines returns each recorded call joined with spaces.
func (r *Recorder) Lines() []string {
	lines := make([]string, 0, len(r.Calls))
	for _, c := range r.Calls {
		lines = append(lines, strings.Join(c, " "))
	}
	return lines
}

// NewFakeExec returns an executor that answers commands in order with the
// given results and records every invocation. Running more commands than
// scripted panics.
func NewFakeExec(results ...Result) (*testingexec.FakeExec, *Recorder) {
	rec := &Recorder{}
	fe := &testingexec.FakeExec{}
	for _, res := range results {
		fe.CommandScript = append(fe.CommandScript, func(cmd string, args ...string) exec.Cmd {
			rec.Calls = append(rec.Calls, append([]string{cmd}, args...))
			fc := &testingexec.FakeCmd{
				OutputScript: []testingexec.FakeAction{
					func() ([]byte, []byte, error) { return []byte(res.Stdout), nil, res.Err },
				},
			}
			return testingexec.InitFakeCmd(fc, cmd, args...)
		})
	}
	fe.LookPathFunc = func(file string) (string, error) {
		if strings.HasPrefix(file, "/") {
			return file, nil
		}
		return "/usr/sbin/" + file, nil
	}
	return fe, rec
}
