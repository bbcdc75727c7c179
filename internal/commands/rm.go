package commands

import (
	"context"
	"flag"
	"io"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete tasks" }
func (c *RmCmd) Usage() string     { return "tasklist rm <ref...>" }
func (c *RmCmd) NeedsStore() bool  { return true }
func (c *RmCmd) NeedsRemote() bool { return false }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	// Positions are resolved before the first delete shifts the list
	return runEach(ctx, env, args, out, errOut, func(ctx context.Context, id string) error {
		t, err := env.Session.Delete(ctx, id)
		if err == nil {
			env.Log.Debug("task deleted", "id", t.ID)
		}
		return err
	})
}
