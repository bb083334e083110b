// Package cli parses the process command line and dispatches to commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"taskpad/internal/commands"
	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/logging"
)

// DefaultCommand runs when no command is given.
const DefaultCommand = "ui"

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  commands.ExporterFactory
}

// NewDispatcher creates a new dispatcher with the given registry and exporter factory.
// A nil factory leaves export unconfigured.
func NewDispatcher(registry *commands.Registry, factory commands.ExporterFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) == 0 {
		args = []string{DefaultCommand}
	}

	cmdName := args[0]

	// flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	// the store lives only as long as one process run
	if cmd.Scope() == commands.ScopeSession {
		fmt.Fprintf(errOut, "error: %s runs inside a session (try: taskpad shell)\n", cmd.Name())
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], in, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, in io.Reader, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	// Common flags
	var configDir string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	positionalArgs, ok := commands.ParseFlags(fs, args, errOut)
	if !ok {
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug

	if err := cfg.LoadSettings(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	logOut := errOut
	if commands.OwnsTerminal(cmd) {
		w, closeLog := openLogFile(cfg)
		defer closeLog()
		logOut = w
	}

	logger := logging.New(logOut, cfg.Settings.Log.Level, cfg.Debug)
	sess := commands.NewSession(cfg, in, logger, d.factory)
	sess.Registry = d.registry

	sess.Log("cli").Debugw("msg", "dispatch", "command", cmd.Name(), "config", cfg.Dir)
	return cmd.Run(ctx, sess, positionalArgs, out, errOut)
}

// openLogFile opens the log file for appending.
// Logs are dropped when the file cannot be opened.
func openLogFile(cfg *config.Config) (io.Writer, func()) {
	if err := cfg.EnsureDir(); err != nil {
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { _ = f.Close() }
}
