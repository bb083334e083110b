package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpad/internal/exitcode"
)

func init() {
	Register(&DoneCmd{})
	Register(&UndoCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"check"} }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string     { return "done <n>" }
func (c *DoneCmd) Scope() Scope      { return ScopeSession }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, sess *Session, args []string, out, errOut io.Writer) int {
	return runToggle(sess, args, true, out, errOut)
}

// UndoCmd implements the undo command: it clears the completion flag.
type UndoCmd struct{}

func (c *UndoCmd) Name() string      { return "undo" }
func (c *UndoCmd) Aliases() []string { return []string{"undone", "uncheck"} }
func (c *UndoCmd) Synopsis() string  { return "Mark a task not completed" }
func (c *UndoCmd) Usage() string     { return "undo <n>" }
func (c *UndoCmd) Scope() Scope      { return ScopeSession }

func (c *UndoCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UndoCmd) Run(ctx context.Context, sess *Session, args []string, out, errOut io.Writer) int {
	return runToggle(sess, args, false, out, errOut)
}

// runToggle is the shared implementation for done and undo.
// Setting a flag to the value it already has still succeeds.
func runToggle(sess *Session, args []string, completed bool, out, errOut io.Writer) int {
	task, code := resolveTask(sess.Store, args, errOut)
	if code != exitcode.Success {
		return code
	}

	sess.Store.Toggle(task.ID, completed)

	if !sess.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
