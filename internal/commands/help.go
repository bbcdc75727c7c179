package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasklist/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "tasklist help" }
func (c *HelpCmd) NeedsStore() bool  { return false }
func (c *HelpCmd) NeedsRemote() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, usageText)
	fmt.Fprintln(out, "\nCommands:")
	for _, cmd := range DefaultRegistry.All() {
		line := fmt.Sprintf("  %-8s %s", cmd.Name(), cmd.Synopsis())
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			line += " (alias: " + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprint(out, footerText)
	return exitcode.Success
}

const usageText = `Usage:
  tasklist                                           List all tasks
  tasklist list [common flags] [--filter <f>] [--ids] [<f>]
  tasklist add [common flags] <text...>
  tasklist edit [common flags] <ref> <text...>
  tasklist toggle [common flags] <ref...>
  tasklist rm [common flags] <ref...>
  tasklist stats [common flags]
  tasklist tui [common flags]
  tasklist push [common flags] [--list <list-name>] [--create] [--dry-run]
  tasklist lists [common flags]
  tasklist login [common flags]
  tasklist logout [common flags]
  tasklist help
  tasklist version
`

const footerText = `
Filters: all, active, completed
Refs: a position from 'tasklist list' (1, 2, ...) or an id prefix from --ids

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
