package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"tasklist/internal/exitcode"
	"tasklist/internal/task"
	"tasklist/internal/tui"
)

func init() {
	Register(&TuiCmd{})
}

// isInteractive reports whether stdin and stdout are both terminals.
// Replaced in tests.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// runTUI starts the interactive editor. Replaced in tests.
var runTUI = tui.Run

// TuiCmd implements the tui command.
type TuiCmd struct {
	filter string
}

func (c *TuiCmd) Name() string       { return "tui" }
func (c *TuiCmd) Aliases() []string  { return []string{"ui"} }
func (c *TuiCmd) Synopsis() string   { return "Edit tasks interactively" }
func (c *TuiCmd) Usage() string      { return "tasklist tui [--filter all|active|completed]" }
func (c *TuiCmd) NeedsStore() bool   { return true }
func (c *TuiCmd) NeedsRemote() bool  { return false }
func (c *TuiCmd) OwnsTerminal() bool { return true }

func (c *TuiCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.filter, "f", "", "")
}

func (c *TuiCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	filter := env.Session.Filter()
	if c.filter != "" {
		f, err := task.ParseFilter(c.filter)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		filter = f
	}
	if !isInteractive() {
		fmt.Fprintln(errOut, "error: tui requires a terminal")
		return exitcode.UserError
	}

	env.Session.SetFilter(filter)
	opts := tui.Options{
		CompactWidth: env.Config.TUI.CompactWidth,
		NarrowWidth:  env.Config.TUI.NarrowWidth,
		CharLimit:    env.Config.TUI.CharLimit,
	}
	if err := runTUI(ctx, env.Session, opts, env.Log); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
