package commands

import (
	"context"
	"flag"
	"io"

	"tasklist/internal/exitcode"
	"tasklist/internal/output"
)

func init() {
	Register(&StatsCmd{})
}

// StatsCmd implements the stats command.
type StatsCmd struct{}

func (c *StatsCmd) Name() string      { return "stats" }
func (c *StatsCmd) Aliases() []string { return nil }
func (c *StatsCmd) Synopsis() string  { return "Print task counters" }
func (c *StatsCmd) Usage() string     { return "tasklist stats" }
func (c *StatsCmd) NeedsStore() bool  { return true }
func (c *StatsCmd) NeedsRemote() bool { return false }

func (c *StatsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatsCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	output.FormatSummary(out, env.Session.Snapshot().Summary)
	return exitcode.Success
}
