package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasklist/internal/exitcode"
	"tasklist/internal/mirror"
	"tasklist/internal/service"
)

func init() {
	Register(&PushCmd{})
}

// PushCmd implements the push command.
type PushCmd struct {
	listName string
	create   bool
	dryRun   bool
}

// SetListName sets the list name (for testing).
func (c *PushCmd) SetListName(name string) {
	c.listName = name
}

// SetCreate allows creating a missing list (for testing).
func (c *PushCmd) SetCreate(create bool) {
	c.create = create
}

// SetDryRun prints the plan without applying it (for testing).
func (c *PushCmd) SetDryRun(dryRun bool) {
	c.dryRun = dryRun
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return nil }
func (c *PushCmd) Synopsis() string  { return "Mirror local tasks to Google Tasks" }
func (c *PushCmd) Usage() string {
	return "tasklist push [--list <list-name>] [--create] [--dry-run]"
}
func (c *PushCmd) NeedsStore() bool  { return true }
func (c *PushCmd) NeedsRemote() bool { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.BoolVar(&c.create, "create", false, "")
	fs.BoolVar(&c.dryRun, "dry-run", false, "")
}

func (c *PushCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	list, err := c.resolveList(ctx, env.Remote)
	if err != nil {
		return reportRemoteError(errOut, err)
	}

	remote, err := env.Remote.ListTasks(ctx, list.ID)
	if err != nil {
		return reportRemoteError(errOut, err)
	}

	plan := mirror.Build(env.Session.Tasks(), remote)
	env.Log.Debug("push plan", "list", list.Title, "create", len(plan.Create), "complete", len(plan.Complete), "unchanged", plan.Unchanged)

	if plan.Empty() {
		if !env.Config.Quiet {
			fmt.Fprintln(out, "nothing to push")
		}
		return exitcode.Success
	}

	if c.dryRun {
		for _, p := range plan.Create {
			fmt.Fprintf(out, "+ %s\n", p.Title)
		}
		for _, p := range plan.Complete {
			fmt.Fprintf(out, "x %s\n", p.Title)
		}
		return exitcode.Success
	}

	res, err := mirror.Apply(ctx, env.Remote, list.ID, plan)
	if err != nil {
		if res.Created+res.Completed > 0 {
			fmt.Fprintf(errOut, "partial push: created %d, completed %d\n", res.Created, res.Completed)
		}
		return reportRemoteError(errOut, err)
	}

	if !env.Config.Quiet {
		fmt.Fprintf(out, "ok: created %d, completed %d\n", res.Created, res.Completed)
	}
	return exitcode.Success
}

func (c *PushCmd) resolveList(ctx context.Context, svc service.Service) (service.TaskList, error) {
	name := strings.TrimSpace(c.listName)
	if name == "" {
		return svc.DefaultList(ctx)
	}

	list, err := svc.ResolveList(ctx, name)
	if errors.Is(err, service.ErrNotFound) && c.create {
		return svc.CreateList(ctx, name)
	}
	return list, err
}
