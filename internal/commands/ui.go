package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpad/internal/exitcode"
	"taskpad/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd opens the task screen over a fresh session store.
type UICmd struct{}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return nil }
func (c *UICmd) Synopsis() string  { return "Open the task screen" }
func (c *UICmd) Usage() string     { return "taskpad ui [common flags]" }
func (c *UICmd) Scope() Scope      { return ScopeProcess }

func (c *UICmd) OwnsTerminal() bool { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, sess *Session, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	m := tui.New(sess.Store, sess.Config.Settings.UI, tui.WithLogger(sess.Logger))
	if err := tui.Run(ctx, m, sess.In, out); err != nil {
		fmt.Fprintf(errOut, "error: terminal: %v\n", err)
		return exitcode.BackendError
	}

	sess.Log("ui").Debugw("msg", "screen closed", "tasks", sess.Store.Len())
	return exitcode.Success
}
