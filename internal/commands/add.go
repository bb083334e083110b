package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskpad/internal/exitcode"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Add a task" }
func (c *AddCmd) Usage() string     { return "add <description...>" }
func (c *AddCmd) Scope() Scope      { return ScopeSession }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

// Run joins args into the description. Blank text is ignored without output.
func (c *AddCmd) Run(ctx context.Context, sess *Session, args []string, out, errOut io.Writer) int {
	description := strings.Join(args, " ")

	if _, ok := sess.Store.Add(description); !ok {
		sess.Log("commands").Debug("blank description ignored")
		return exitcode.Success
	}

	if !sess.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
