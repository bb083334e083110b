// Package output provides formatters for CLI output and snapshot exports.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskpad/internal/tasklist"
)

const (
	// ListSeparator is the separator line around a list header.
	ListSeparator = "------------"

	// ShortIDLen is the number of id characters shown by `list --ids`.
	ShortIDLen = 8
)

// Checkbox renders the completion flag.
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// FormatTask formats a task line.
// Format: "{N:>4}  [ ] {DESCRIPTION}\n"
func FormatTask(w io.Writer, num int, task tasklist.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, Checkbox(task.Completed), NormalizeDescription(task.Description))
}

// FormatTaskWithID formats a task line followed by its short id.
// Format: "{N:>4}  {ID:8}  [ ] {DESCRIPTION}\n"
func FormatTaskWithID(w io.Writer, num int, task tasklist.Task) {
	fmt.Fprintf(w, "%4d  %-*s  %s %s\n", num, ShortIDLen, ShortID(task.ID), Checkbox(task.Completed), NormalizeDescription(task.Description))
}

// FormatHeader formats a list header.
func FormatHeader(w io.Writer, title string) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintln(w, NormalizeTitle(title))
	fmt.Fprintln(w, ListSeparator)
}

// FormatSummary formats the "N tasks, M done" line.
func FormatSummary(w io.Writer, tasks []tasklist.Task) {
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	noun := "tasks"
	if len(tasks) == 1 {
		noun = "task"
	}
	fmt.Fprintf(w, "%d %s, %d done\n", len(tasks), noun, done)
}

// ShortID returns the first ShortIDLen characters of id.
func ShortID(id string) string {
	if len(id) > ShortIDLen {
		return id[:ShortIDLen]
	}
	return id
}

// NormalizeDescription makes a description fit on one line.
// Newlines are replaced with spaces.
func NormalizeDescription(desc string) string {
	desc = strings.ReplaceAll(desc, "\r", " ")
	return strings.ReplaceAll(desc, "\n", " ")
}

// NormalizeTitle normalizes a list title for display.
// Empty or whitespace-only titles become "(untitled)".
func NormalizeTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
