package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"tasklist/internal/exitcode"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string  { return "Flip tasks between active and completed" }
func (c *ToggleCmd) Usage() string     { return "tasklist toggle <ref...>" }
func (c *ToggleCmd) NeedsStore() bool  { return true }
func (c *ToggleCmd) NeedsRemote() bool { return false }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	return runEach(ctx, env, args, out, errOut, func(ctx context.Context, id string) error {
		_, err := env.Session.Toggle(ctx, id)
		return err
	})
}

// runEach resolves every reference up front and then applies fn to each task.
// It stops at the first failure.
func runEach(ctx context.Context, env *Env, args []string, out, errOut io.Writer, fn func(ctx context.Context, id string) error) int {
	refs, err := ParseTaskRefs(args)
	if err != nil {
		if errors.Is(err, ErrTaskRefRequired) {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	targets, err := resolveRefs(env.Session, refs)
	if err != nil {
		return reportTaskError(errOut, err)
	}

	for _, t := range targets {
		if err := fn(ctx, t.ID); err != nil {
			return reportTaskError(errOut, err)
		}
	}
	return ok(env, out)
}
