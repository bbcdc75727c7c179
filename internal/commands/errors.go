package commands

import (
	"errors"
	"fmt"
	"io"

	"tasklist/internal/exitcode"
	"tasklist/internal/service"
	"tasklist/internal/task"
)

// reportTaskError prints a local task-list error and returns its exit code.
func reportTaskError(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, task.ErrStorageUnavailable):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StorageError
	case errors.Is(err, task.ErrEmptyText):
		fmt.Fprintln(errOut, "error: task text required")
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
}

// reportRemoteError prints a remote backend error and returns its exit code.
func reportRemoteError(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, service.ErrAuth):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrAmbiguous):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}

// ok prints the success marker unless quiet.
func ok(env *Env, out io.Writer) int {
	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
