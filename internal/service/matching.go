package service

import (
	"fmt"
	"strings"
)

// MatchList picks the single list whose title matches name, ignoring case
// and surrounding whitespace.
func MatchList(lists []TaskList, name string) (TaskList, error) {
	name = strings.TrimSpace(name)
	nameLower := strings.ToLower(name)

	var matches []TaskList
	for _, l := range lists {
		if strings.ToLower(strings.TrimSpace(l.Title)) == nameLower {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return TaskList{}, fmt.Errorf("list %w: %s", ErrNotFound, name)
	case 1:
		return matches[0], nil
	default:
		return TaskList{}, fmt.Errorf("%w list name: %s", ErrAmbiguous, name)
	}
}
