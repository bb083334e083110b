// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"
)

// Scope says where a command may run.
type Scope int

const (
	// ScopeProcess commands own the whole process run (ui, shell, login, logout).
	ScopeProcess Scope = iota

	// ScopeSession commands operate on a live session store (add, done, rm...).
	ScopeSession

	// ScopeAny commands run both from the command line and inside a session.
	ScopeAny
)

// Command defines the interface for CLI and session commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// Scope reports where the command may run.
	Scope() Scope

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// sess is always provided; its store is empty for process commands.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, sess *Session, args []string, out, errOut io.Writer) int
}

// ScreenCommand is implemented by commands that take over the terminal.
// Their log lines go to the config directory instead of stderr.
type ScreenCommand interface {
	OwnsTerminal() bool
}

// OwnsTerminal reports whether cmd takes over the terminal while it runs.
func OwnsTerminal(cmd Command) bool {
	sc, ok := cmd.(ScreenCommand)
	return ok && sc.OwnsTerminal()
}
