package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"tasklist/internal/blob"
	"tasklist/internal/commands"
	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/logging"
	"tasklist/internal/persist"
	"tasklist/internal/service"
	"tasklist/internal/session"
)

// SessionFactory opens the local task list described by cfg.
// The returned closer releases the underlying blob store.
type SessionFactory func(ctx context.Context, cfg *config.Config, log *slog.Logger) (*session.Session, io.Closer, error)

// RemoteFactory creates a Service from config.
// Used to inject the backend during dispatch.
type RemoteFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// OpenSession is the default SessionFactory: configured blob store, codec
// and empty-view labels.
func OpenSession(ctx context.Context, cfg *config.Config, log *slog.Logger) (*session.Session, io.Closer, error) {
	codec, err := cfg.Codec()
	if err != nil {
		return nil, nil, err
	}
	opts, err := cfg.BlobOptions()
	if err != nil {
		return nil, nil, err
	}
	blobs, err := blob.Open(ctx, opts)
	if err != nil {
		return nil, nil, err
	}

	bridge := persist.NewBridge(blobs, cfg.Storage.Key, codec, persist.WithLogger(log))
	sess := session.Open(ctx, bridge,
		session.WithLabels(cfg.ViewLabels()),
		session.WithFilter(cfg.DefaultFilter()),
		session.WithLogger(log),
	)
	return sess, blobs, nil
}

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	sessions SessionFactory
	remote   RemoteFactory
}

// NewDispatcher creates a new dispatcher with the given registry and factories.
// A nil sessions factory means OpenSession. A nil remote factory leaves
// Env.Remote unset after the credential pre-flight checks.
func NewDispatcher(registry *commands.Registry, sessions SessionFactory, remote RemoteFactory) *Dispatcher {
	if sessions == nil {
		sessions = OpenSession
	}
	return &Dispatcher{
		registry: registry,
		sessions: sessions,
		remote:   remote,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// If first token starts with -, it's an error (flags require a command)
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return reportFlagError(errOut, err)
	}

	// Check if first positional arg starts with - (should have been parsed as flag)
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug

	log, closeLog := d.logger(cmd, cfg, errOut)
	defer closeLog()

	env := &commands.Env{Config: cfg, Log: log}

	if cmd.NeedsRemote() {
		if code, ok := d.openRemote(ctx, env, errOut); !ok {
			return code
		}
	}

	if cmd.NeedsStore() {
		sess, closer, err := d.sessions(ctx, cfg, log)
		if err != nil {
			fmt.Fprintf(errOut, "error: storage unavailable: %s\n", err)
			return exitcode.StorageError
		}
		defer func() {
			if err := closer.Close(); err != nil {
				log.Warn("failed to close storage", "error", err)
			}
		}()
		env.Session = sess
	}

	log.Debug("dispatch", "command", cmd.Name(), "args", len(positionalArgs))
	return cmd.Run(ctx, env, positionalArgs, out, errOut)
}

// logger returns the logger for a run. Commands that own the terminal log to
// a file in the config dir; everything else logs to errOut.
func (d *Dispatcher) logger(cmd commands.Command, cfg *config.Config, errOut io.Writer) (*slog.Logger, func()) {
	owner, ok := cmd.(commands.TerminalOwner)
	if !ok || !owner.OwnsTerminal() {
		return logging.New(errOut, cfg.LogLevel()), func() {}
	}
	log, f, err := logging.OpenFile(cfg.Dir, cfg.LogLevel())
	if err != nil {
		return logging.Discard(), func() {}
	}
	return log, func() { f.Close() }
}

func (d *Dispatcher) openRemote(ctx context.Context, env *commands.Env, errOut io.Writer) (int, bool) {
	cfg := env.Config
	if d.remote == nil {
		// No factory - check for required auth files and report user-friendly errors.
		// Env.Remote stays nil; this path is for pre-flight checks only.
		if !cfg.HasOAuthClient() {
			fmt.Fprintf(errOut, "error: %s not found in %s\n", config.OAuthClientFile, cfg.Dir)
			return exitcode.AuthError, false
		}
		if !cfg.HasToken() {
			fmt.Fprintf(errOut, "error: not logged in (run: tasklist login)\n")
			return exitcode.AuthError, false
		}
		return exitcode.Success, true
	}

	svc, err := d.remote(ctx, cfg)
	if err != nil {
		if errors.Is(err, service.ErrAuth) {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.AuthError, false
		}
		fmt.Fprintf(errOut, "error: backend error: %s\n", err)
		return exitcode.BackendError, false
	}
	env.Remote = svc
	return exitcode.Success, true
}

func reportFlagError(errOut io.Writer, err error) int {
	errStr := err.Error()

	if strings.HasPrefix(errStr, "flag needs an argument:") {
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagName)
		return exitcode.UserError
	}

	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
		return exitcode.UserError
	}

	fmt.Fprintf(errOut, "error: %s\n", errStr)
	return exitcode.UserError
}
