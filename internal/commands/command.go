// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"
	"log/slog"

	"tasklist/internal/config"
	"tasklist/internal/service"
	"tasklist/internal/session"
)

// Env carries what the dispatcher prepared for a command run.
type Env struct {
	// Config is always provided (config dir, paths, settings).
	Config *config.Config

	// Session is nil if NeedsStore() returns false.
	Session *session.Session

	// Remote is nil if NeedsRemote() returns false.
	Remote service.Service

	// Log is never nil.
	Log *slog.Logger
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStore returns true if the command reads or writes the local task list.
	NeedsStore() bool

	// NeedsRemote returns true if the command talks to Google Tasks.
	// Commands like help, version, login, logout return false.
	NeedsRemote() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}

// TerminalOwner is implemented by commands that take over the terminal.
// The dispatcher sends their logs to a file instead of stderr.
type TerminalOwner interface {
	OwnsTerminal() bool
}
