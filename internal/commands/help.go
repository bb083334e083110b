package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpad/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return []string{"?"} }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskpad help" }
func (c *HelpCmd) Scope() Scope      { return ScopeAny }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, sess *Session, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskpad                          Open the task screen
  taskpad ui [common flags]        Open the task screen
  taskpad shell [--no-prompt] [common flags]
                                   Read commands from stdin, one per line
  taskpad login [common flags]     Authenticate with Google (for export)
  taskpad logout [common flags]    Remove stored credentials
  taskpad help
  taskpad version

Session commands (shell):
  add <description...>             Add a task (blank text is ignored)
  done <n>                         Mark task n completed
  undo <n>                         Mark task n not completed
  rm <n>                           Delete task n
  list [--ids]                     List tasks
  save [--format text|json|csv|pdf] <path>
                                   Write the list to a file
  export [--list <name>] [--create]
                                   Copy the list to Google Tasks
  quit                             End the session

Screen keys:
  enter   add the typed task        tab     switch input/list
  space   toggle the selected task  d       delete the selected task
  y       copy the selected task    esc     quit

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
