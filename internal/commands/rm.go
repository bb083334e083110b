package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpad/internal/exitcode"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "rm <n>" }
func (c *RmCmd) Scope() Scope      { return ScopeSession }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, sess *Session, args []string, out, errOut io.Writer) int {
	task, code := resolveTask(sess.Store, args, errOut)
	if code != exitcode.Success {
		return code
	}

	sess.Store.Delete(task.ID)

	if !sess.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
