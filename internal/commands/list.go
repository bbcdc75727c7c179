package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasklist/internal/exitcode"
	"tasklist/internal/output"
	"tasklist/internal/task"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `tasklist` (no args) and `tasklist list [filter]`.
type ListCmd struct {
	filter  string
	showIDs bool
}

// SetFilter sets the filter name (for testing).
func (c *ListCmd) SetFilter(name string) {
	c.filter = name
}

// SetShowIDs toggles the id column (for testing).
func (c *ListCmd) SetShowIDs(show bool) {
	c.showIDs = show
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "tasklist list [--filter all|active|completed] [--ids]" }
func (c *ListCmd) NeedsStore() bool  { return true }
func (c *ListCmd) NeedsRemote() bool { return false }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.filter, "f", "", "")
	fs.BoolVar(&c.showIDs, "ids", false, "")
}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	name := c.filter
	switch {
	case len(args) > 1:
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	case len(args) == 1 && name != "":
		fmt.Fprintln(errOut, "error: cannot use both --filter and a filter argument")
		return exitcode.UserError
	case len(args) == 1:
		name = args[0]
	}

	if name != "" {
		filter, err := task.ParseFilter(name)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		env.Session.SetFilter(filter)
	}
	output.FormatSnapshot(out, env.Session.Snapshot(), c.showIDs, env.Config.Quiet)
	return exitcode.Success
}
