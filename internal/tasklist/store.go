package tasklist

import (
	"io"
	"strings"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// Observer receives a Change after each effective mutation.
type Observer func(Change)

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the UUID generator used for new task IDs.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithLogger sets the logger used for mutation debug logs.
func WithLogger(logger log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.log = log.NewHelper(log.With(logger, "module", "tasklist"))
		}
	}
}

type subscription struct {
	id int
	fn Observer
}

// Store is an ordered, in-memory list of tasks.
//
// A Store belongs to one event loop and is not safe for concurrent use.
// Observers are called synchronously from the mutating call.
type Store struct {
	tasks     []Task
	newID     func() string
	observers []subscription
	nextSubID int
	log       *log.Helper
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		newID: uuid.NewString,
		log:   log.NewHelper(log.NewStdLogger(io.Discard)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsBlank reports whether text is empty or whitespace only.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// Add appends a new, incomplete task.
// Blank descriptions are ignored and reported with ok == false.
func (s *Store) Add(description string) (task Task, ok bool) {
	if IsBlank(description) {
		return Task{}, false
	}

	task = Task{
		ID:          s.newID(),
		Description: description,
	}
	s.tasks = append(s.tasks, task)

	s.log.Debugw("msg", "task added", "id", task.ID, "len", len(s.tasks))
	s.notify(Added, task)
	return task, true
}

// Toggle sets the completion flag of the task with the given id.
// It returns false when no such task exists or the flag already had that value.
func (s *Store) Toggle(id string, completed bool) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	if s.tasks[i].Completed == completed {
		return false
	}

	s.tasks[i].Completed = completed

	s.log.Debugw("msg", "task toggled", "id", id, "completed", completed)
	s.notify(Toggled, s.tasks[i])
	return true
}

// Delete removes the task with the given id.
// It returns false when no such task exists.
func (s *Store) Delete(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}

	removed := s.tasks[i]
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)

	s.log.Debugw("msg", "task deleted", "id", id, "len", len(s.tasks))
	s.notify(Deleted, removed)
	return true
}

// Snapshot returns a copy of the tasks in insertion order.
func (s *Store) Snapshot() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// At returns the task at the 1-based position pos.
func (s *Store) At(pos int) (Task, bool) {
	if pos < 1 || pos > len(s.tasks) {
		return Task{}, false
	}
	return s.tasks[pos-1], true
}

// Subscribe registers fn for change notifications.
// The returned function removes the subscription; calling it twice is harmless.
func (s *Store) Subscribe(fn Observer) (cancel func()) {
	if fn == nil {
		return func() {}
	}

	s.nextSubID++
	id := s.nextSubID
	s.observers = append(s.observers, subscription{id: id, fn: fn})

	return func() {
		for i, sub := range s.observers {
			if sub.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) notify(kind ChangeKind, task Task) {
	if len(s.observers) == 0 {
		return
	}

	// observers may unsubscribe while being notified
	subs := make([]subscription, len(s.observers))
	copy(subs, s.observers)

	for _, sub := range subs {
		sub.fn(Change{Kind: kind, Task: task, Snapshot: s.Snapshot()})
	}
}
