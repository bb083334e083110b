// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"

	"taskpad/internal/service"
)

// DefaultListID is the ID used for the default list.
const DefaultListID = "@default"

// FakeExporter is an in-memory implementation of service.Exporter for testing.
type FakeExporter struct {
	mu    sync.RWMutex
	lists []service.TaskList
	tasks map[string][]service.Task // listID -> tasks in insertion order

	// Error injection for testing
	DefaultListErr error
	ListListsErr   error
	ResolveListErr error
	CreateListErr  error
	InsertTaskErr  error
}

// NewFakeExporter creates a new FakeExporter with a default list.
func NewFakeExporter() *FakeExporter {
	f := &FakeExporter{
		tasks: make(map[string][]service.Task),
	}
	f.lists = []service.TaskList{
		{ID: DefaultListID, Title: "My Tasks", IsDefault: true},
	}
	f.tasks[DefaultListID] = nil
	return f
}

// AddList adds a list to the fake exporter.
func (f *FakeExporter) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Title: title})
	if f.tasks[id] == nil {
		f.tasks[id] = nil
	}
}

// Tasks returns the tasks inserted into a list, in insertion order.
func (f *FakeExporter) Tasks(listID string) []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks[listID]))
	copy(out, f.tasks[listID])
	return out
}

// DefaultList implements service.Exporter.
func (f *FakeExporter) DefaultList(ctx context.Context) (service.TaskList, error) {
	if f.DefaultListErr != nil {
		return service.TaskList{}, f.DefaultListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, l := range f.lists {
		if l.IsDefault {
			return l, nil
		}
	}
	return service.TaskList{}, errors.New("no default list")
}

// ListLists implements service.Exporter.
func (f *FakeExporter) ListLists(ctx context.Context) ([]service.TaskList, error) {
	if f.ListListsErr != nil {
		return nil, f.ListListsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.TaskList, len(f.lists))
	copy(result, f.lists)
	return result, nil
}

// ResolveList implements service.Exporter.
func (f *FakeExporter) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	if f.ResolveListErr != nil {
		return service.TaskList{}, f.ResolveListErr
	}
	lists, _ := f.ListLists(ctx)
	return service.MatchList(lists, name)
}

// CreateList implements service.Exporter.
func (f *FakeExporter) CreateList(ctx context.Context, name string) (service.TaskList, error) {
	if f.CreateListErr != nil {
		return service.TaskList{}, f.CreateListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	// Generate a simple ID
	id := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
	list := service.TaskList{ID: id, Title: name}
	f.lists = append(f.lists, list)
	f.tasks[id] = nil
	return list, nil
}

// InsertTasks implements service.Exporter.
func (f *FakeExporter) InsertTasks(ctx context.Context, listID string, items []service.Task) (int, error) {
	if f.InsertTaskErr != nil {
		return 0, f.InsertTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.tasks[listID]; !ok {
		return 0, service.ErrNotFound
	}
	f.tasks[listID] = append(f.tasks[listID], items...)
	return len(items), nil
}
