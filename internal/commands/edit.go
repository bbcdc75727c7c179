package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasklist/internal/exitcode"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct{}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"rename"} }
func (c *EditCmd) Synopsis() string  { return "Replace the text of a task" }
func (c *EditCmd) Usage() string     { return "tasklist edit <ref> <text...>" }
func (c *EditCmd) NeedsStore() bool  { return true }
func (c *EditCmd) NeedsRemote() bool { return false }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task reference required")
		return exitcode.UserError
	}
	ref, err := ParseTaskRef(args[0])
	if err != nil {
		if errors.Is(err, ErrTaskRefRequired) {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	t, err := env.Session.Resolve(ref)
	if err != nil {
		return reportTaskError(errOut, err)
	}

	if _, err := env.Session.Edit(ctx, t.ID, strings.Join(args[1:], " ")); err != nil {
		return reportTaskError(errOut, err)
	}
	return ok(env, out)
}
