package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"taskpad/internal/exitcode"
	"taskpad/internal/output"
)

func init() {
	Register(&SaveCmd{})
}

// SaveCmd implements the save command: a one-way snapshot to a file.
type SaveCmd struct {
	format string
}

// SetFormat sets the --format flag (for testing).
func (c *SaveCmd) SetFormat(format string) {
	c.format = format
}

func (c *SaveCmd) Name() string      { return "save" }
func (c *SaveCmd) Aliases() []string { return nil }
func (c *SaveCmd) Synopsis() string  { return "Write the task list to a file" }
func (c *SaveCmd) Usage() string {
	return "save [--format " + strings.Join(output.Formats(), "|") + "] <path>"
}
func (c *SaveCmd) Scope() Scope { return ScopeSession }

func (c *SaveCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", "", "")
	fs.StringVar(&c.format, "f", "", "")
}

func (c *SaveCmd) Run(ctx context.Context, sess *Session, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: path required")
		return exitcode.UserError
	}
	path := strings.Join(args, " ")

	format := c.format
	if format == "" {
		format = output.FormatFromPath(path)
	}

	// reject unknown formats before touching the file system
	if !output.IsFormat(format) {
		fmt.Fprintf(errOut, "error: %v: %s\n", output.ErrUnknownFormat, format)
		return exitcode.UserError
	}

	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to create %s: %v\n", path, err)
		return exitcode.BackendError
	}

	tasks := sess.Store.Snapshot()
	exportErr := output.Export(f, format, sess.Config.Settings.UI.Title, tasks)
	closeErr := f.Close()
	if err := errors.Join(exportErr, closeErr); err != nil {
		fmt.Fprintf(errOut, "error: failed to write %s: %v\n", path, err)
		return exitcode.BackendError
	}

	sess.Log("commands").Debugw("msg", "snapshot saved", "path", path, "format", format, "tasks", len(tasks))
	if !sess.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
