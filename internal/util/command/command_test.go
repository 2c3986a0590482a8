package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/volplan/internal/util/command/commandtest"
)

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	fe, rec := commandtest.NewFakeExec(commandtest.OK("hello"))
	r := NewRunner(fe)

	out, err := r.Run(context.Background(), "echo", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))
	assert.Equal(t, []string{"echo hello"}, rec.Lines())
}

func TestRunner_RunExitError(t *testing.T) {
	t.Parallel()

	fe, _ := commandtest.NewFakeExec(commandtest.Exit(5))
	r := NewRunner(fe)

	_, err := r.Run(context.Background(), "lvm", "vgs")
	require.Error(t, err)

	var cmdErr *Error
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, 5, cmdErr.ExitCode)
	assert.Equal(t, "lvm", cmdErr.Command)
	assert.Equal(t, []string{"vgs"}, cmdErr.Args)
	assert.Contains(t, err.Error(), "lvm vgs")
}

func TestRunner_RunOtherError(t *testing.T) {
	t.Parallel()

	fe, _ := commandtest.NewFakeExec(commandtest.Result{Err: errors.New("boom")})
	r := NewRunner(fe)

	_, err := r.Run(context.Background(), "mkfs")
	var cmdErr *Error
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, -1, cmdErr.ExitCode)
}

func TestError_IncludesStderr(t *testing.T) {
	t.Parallel()

	err := &Error{Command: "mount", Args: []string{"/dev/x", "/mnt"}, Stderr: "no such device", Err: errors.New("exit status 32")}
	assert.Equal(t, "mount /dev/x /mnt: exit status 32: no such device", err.Error())
}
