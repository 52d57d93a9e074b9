package tasks

import (
	"fmt"
	"strings"
)

// Filter selects which tasks a view shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters returns every filter in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterActive, FilterCompleted}
}

// ParseFilter parses a filter name (case-insensitive, trimmed).
// An empty string selects FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "active":
		return FilterActive, nil
	case "completed":
		return FilterCompleted, nil
	}
	return "", fmt.Errorf("invalid filter: %s", s)
}

// Match reports whether t belongs to the filtered view.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Apply returns the tasks matching f, keeping their relative order.
// The input slice is not modified.
func Apply(list []Task, f Filter) []Task {
	out := make([]Task, 0, len(list))
	for _, t := range list {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Stats are the counters shown above the task list.
type Stats struct {
	All       int
	Active    int
	Completed int
	Remaining int
}

// Compute counts tasks by state.
func Compute(list []Task) Stats {
	var s Stats
	s.All = len(list)
	for _, t := range list {
		if t.Completed {
			s.Completed++
		} else {
			s.Active++
		}
	}
	s.Remaining = s.All - s.Completed
	return s
}

// EmptyMessage is shown when the filtered view has no tasks.
func EmptyMessage(total int, f Filter) string {
	if total == 0 {
		return "No tasks yet. Add your first task above!"
	}
	return fmt.Sprintf("No %s tasks found.", f)
}
