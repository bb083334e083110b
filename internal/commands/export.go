package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskpad/internal/exitcode"
	"taskpad/internal/service"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd copies the current tasks into a remote task list.
// Nothing is read back; the session store is left untouched.
type ExportCmd struct {
	listName string
	create   bool
}

// SetListName sets the list name (for testing).
func (c *ExportCmd) SetListName(name string) {
	c.listName = name
}

// SetCreate sets the --create flag (for testing).
func (c *ExportCmd) SetCreate(create bool) {
	c.create = create
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return []string{"push"} }
func (c *ExportCmd) Synopsis() string  { return "Copy the task list to Google Tasks" }
func (c *ExportCmd) Usage() string     { return "export [--list <list-name>] [--create]" }
func (c *ExportCmd) Scope() Scope      { return ScopeSession }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.BoolVar(&c.create, "create", false, "")
}

func (c *ExportCmd) Run(ctx context.Context, sess *Session, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	listName := strings.TrimSpace(c.listName)
	if listName == "" {
		listName = sess.Config.Settings.Export.List
	}
	if c.create && listName == "" {
		fmt.Fprintln(errOut, "error: --create needs a list name")
		return exitcode.UserError
	}

	tasks := sess.Store.Snapshot()
	if len(tasks) == 0 {
		if !sess.Config.Quiet {
			fmt.Fprintln(out, "no tasks")
		}
		return exitcode.Success
	}

	exp, code := openExporter(ctx, sess, errOut)
	if code != exitcode.Success {
		return code
	}

	list, code := c.resolveList(ctx, exp, listName, errOut)
	if code != exitcode.Success {
		return code
	}

	items := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, service.FromLocal(t))
	}

	n, err := exp.InsertTasks(ctx, list.ID, items)
	if err != nil {
		return reportBackendError(fmt.Errorf("exported %d of %d tasks: %w", n, len(items), err), errOut)
	}

	sess.Log("commands").Infow("msg", "exported", "list", list.ID, "tasks", n)
	if !sess.Config.Quiet {
		fmt.Fprintf(out, "exported %d tasks to %s\n", n, list.Title)
	}
	return exitcode.Success
}

func (c *ExportCmd) resolveList(ctx context.Context, exp service.Exporter, name string, errOut io.Writer) (service.TaskList, int) {
	if name == "" {
		list, err := exp.DefaultList(ctx)
		if err != nil {
			return service.TaskList{}, reportBackendError(err, errOut)
		}
		return list, exitcode.Success
	}

	list, err := exp.ResolveList(ctx, name)
	switch {
	case err == nil:
		return list, exitcode.Success
	case errors.Is(err, service.ErrNotFound) && c.create:
		list, err = exp.CreateList(ctx, name)
		if err != nil {
			return service.TaskList{}, reportBackendError(err, errOut)
		}
		return list, exitcode.Success
	case errors.Is(err, service.ErrNotFound):
		fmt.Fprintf(errOut, "error: list not found: %s\n", name)
		return service.TaskList{}, exitcode.UserError
	case errors.Is(err, service.ErrAmbiguous):
		fmt.Fprintf(errOut, "error: ambiguous list name: %s\n", name)
		return service.TaskList{}, exitcode.UserError
	default:
		return service.TaskList{}, reportBackendError(err, errOut)
	}
}

// openExporter checks credentials and builds the exporter.
func openExporter(ctx context.Context, sess *Session, errOut io.Writer) (service.Exporter, int) {
	if sess.Exporter == nil {
		fmt.Fprintln(errOut, "error: export is not configured")
		return nil, exitcode.AuthError
	}

	exp, err := sess.Exporter(ctx, sess.Config, sess.Logger)
	if err != nil {
		return nil, reportBackendError(err, errOut)
	}
	return exp, exitcode.Success
}

// reportBackendError prints err and maps it to an exit code.
// Auth failures get their own code so the user knows to log in again.
func reportBackendError(err error, errOut io.Writer) int {
	if service.IsAuth(err) {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}
