package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpad/internal/exitcode"
	"taskpad/internal/output"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
type ListCmd struct {
	showIDs bool
}

// SetShowIDs sets the --ids flag (for testing).
func (c *ListCmd) SetShowIDs(show bool) {
	c.showIDs = show
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "list [--ids]" }
func (c *ListCmd) Scope() Scope      { return ScopeSession }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.showIDs, "ids", false, "")
}

func (c *ListCmd) Run(ctx context.Context, sess *Session, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	tasks := sess.Store.Snapshot()
	if len(tasks) == 0 {
		if !sess.Config.Quiet {
			fmt.Fprintln(out, "no tasks")
		}
		return exitcode.Success
	}

	for i, task := range tasks {
		if c.showIDs {
			output.FormatTaskWithID(out, i+1, task)
		} else {
			output.FormatTask(out, i+1, task)
		}
	}
	return exitcode.Success
}
