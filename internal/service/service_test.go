package service

import (
	"errors"
	"testing"

	"taskpad/internal/tasklist"
)

func TestMatchList(t *testing.T) {
	lists := []TaskList{
		{ID: "1", Title: "My Tasks", IsDefault: true},
		{ID: "2", Title: " Shopping "},
		{ID: "3", Title: "Work"},
		{ID: "4", Title: "work"},
	}

	got, err := MatchList(lists, "shopping")
	if err != nil {
		t.Fatalf("MatchList() err=%v, want nil", err)
	}
	if got.ID != "2" {
		t.Fatalf("MatchList() id=%s, want 2", got.ID)
	}

	_, err = MatchList(lists, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("MatchList() err=%v, want %v", err, ErrNotFound)
	}
	if err.Error() != "list not found: missing" {
		t.Fatalf("MatchList() err=%q", err.Error())
	}

	_, err = MatchList(lists, "WORK")
	if !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("MatchList() err=%v, want %v", err, ErrAmbiguous)
	}
	if err.Error() != "ambiguous list name: WORK" {
		t.Fatalf("MatchList() err=%q", err.Error())
	}
}

func TestFromLocal(t *testing.T) {
	open := FromLocal(tasklist.Task{ID: "a", Description: "Buy milk"})
	if open.Title != "Buy milk" || open.Status != StatusNeedsAction {
		t.Fatalf("FromLocal() = %+v", open)
	}

	done := FromLocal(tasklist.Task{ID: "b", Description: "Walk dog", Completed: true})
	if done.Status != StatusCompleted {
		t.Fatalf("FromLocal() status=%s, want %s", done.Status, StatusCompleted)
	}
}
