// Package tasklist holds the in-memory, ordered task list of a session.
package tasklist

// Task is a single entry of the list.
type Task struct {
	// ID is assigned at creation and never changes.
	ID string

	// Description is the text entered by the user, stored verbatim.
	Description string

	// Completed reports whether the task is checked off.
	Completed bool
}

// ChangeKind identifies the mutation that produced a Change.
type ChangeKind int

const (
	// Added means a task was appended.
	Added ChangeKind = iota + 1

	// Toggled means a task's completion flag changed.
	Toggled

	// Deleted means a task was removed.
	Deleted
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Toggled:
		return "toggled"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Change is delivered to observers after every effective mutation.
type Change struct {
	Kind ChangeKind

	// Task is the affected task after the mutation (before removal for Deleted).
	Task Task

	// Snapshot is the list as it looks after the mutation.
	Snapshot []Task
}
