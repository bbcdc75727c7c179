package commands

import (
	"context"
	"flag"
	"io"
	"strings"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Add a task" }
func (c *AddCmd) Usage() string     { return "tasklist add <text...>" }
func (c *AddCmd) NeedsStore() bool  { return true }
func (c *AddCmd) NeedsRemote() bool { return false }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	// Blank text is rejected by the store with ErrEmptyText
	t, err := env.Session.Add(ctx, strings.Join(args, " "))
	if err != nil {
		return reportTaskError(errOut, err)
	}
	env.Log.Debug("task added", "id", t.ID)
	return ok(env, out)
}
