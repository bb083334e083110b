package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"taskpad/internal/exitcode"
)

// Registry holds registered commands.
type Registry struct {
	mu   sync.RWMutex
	cmds map[string]Command // name and aliases map to command
}

// NewRegistry creates a new command registry.
func NewRegistry() *Registry {
	return &Registry{
		cmds: make(map[string]Command),
	}
}

// Register adds a command to the registry.
// Returns an error if the name or any alias is already registered.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, exists := r.cmds[name]; exists {
		return fmt.Errorf("command already registered: %s", name)
	}

	for _, alias := range c.Aliases() {
		if _, exists := r.cmds[alias]; exists {
			return fmt.Errorf("command alias already registered: %s", alias)
		}
	}

	r.cmds[name] = c
	for _, alias := range c.Aliases() {
		r.cmds[alias] = c
	}

	return nil
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.cmds[name]
	return cmd, ok
}

// All returns all unique commands sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]Command)
	for _, cmd := range r.cmds {
		seen[cmd.Name()] = cmd
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]Command, len(names))
	for i, name := range names {
		result[i] = seen[name]
	}
	return result
}

// Exec runs one session line (already split into words) against sess.
// Process commands are refused; they cannot nest inside a session.
func (r *Registry) Exec(ctx context.Context, sess *Session, words []string, out, errOut io.Writer) int {
	if len(words) == 0 {
		return exitcode.Success
	}

	name := words[0]
	cmd, ok := r.Find(name)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
		return exitcode.UserError
	}
	if cmd.Scope() == ScopeProcess {
		fmt.Fprintf(errOut, "error: %s is not available inside a session\n", cmd.Name())
		return exitcode.UserError
	}

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.RegisterFlags(fs)

	args := words[1:]
	if hasFlags(fs) {
		var ok bool
		if args, ok = ParseFlags(fs, args, errOut); !ok {
			return exitcode.UserError
		}
	} else if len(args) > 0 && args[0] == "--" {
		// no flags to parse, so every word is text ("add -5 push-ups")
		args = args[1:]
	}

	sess.Log("commands").Debugw("msg", "exec", "command", cmd.Name(), "args", strings.Join(args, " "))
	return cmd.Run(ctx, sess, args, out, errOut)
}

// ParseFlags parses args into fs, reporting problems as "error: ..." lines.
// It returns the positional arguments and whether parsing succeeded.
func ParseFlags(fs *flag.FlagSet, args []string, errOut io.Writer) ([]string, bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(errOut, "error: %s has no help flag (try: help)\n", fs.Name())
			return nil, false
		}

		errStr := err.Error()

		if strings.HasPrefix(errStr, "flag needs an argument:") {
			flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
			fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagName)
			return nil, false
		}

		if strings.HasPrefix(errStr, "flag provided but not defined:") {
			flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag provided but not defined:"))
			fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
			return nil, false
		}

		fmt.Fprintf(errOut, "error: %s\n", errStr)
		return nil, false
	}

	return fs.Args(), true
}

// hasFlags reports whether any flag is defined on fs.
func hasFlags(fs *flag.FlagSet) bool {
	found := false
	fs.VisitAll(func(*flag.Flag) { found = true })
	return found
}

// DefaultRegistry is the global command registry.
var DefaultRegistry = NewRegistry()

// Register adds a command to the default registry.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
