package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode"

	"taskpad/internal/exitcode"
	"taskpad/internal/tasklist"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from args.
// A reference is the 1-based position shown by the list command.
// Extra args after the reference are rejected.
func ParseTaskRef(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected argument: %s", args[1])
	}

	ref := args[0]
	if !isAllDigits(ref) {
		return 0, fmt.Errorf("invalid task reference: %s", ref)
	}

	num, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("invalid task reference: %s", ref)
	}
	return num, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// resolveTask parses args and looks the task up in store.
// On failure it prints the error and returns a non-zero exit code.
func resolveTask(store *tasklist.Store, args []string, errOut io.Writer) (tasklist.Task, int) {
	num, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return tasklist.Task{}, exitcode.UserError
	}

	task, ok := store.At(num)
	if !ok {
		fmt.Fprintf(errOut, "error: task number out of range: %d\n", num)
		return tasklist.Task{}, exitcode.UserError
	}
	return task, exitcode.Success
}
