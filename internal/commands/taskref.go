package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"plptask/internal/tasks"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Position int   // 1-based position in the unfiltered list, when ByID is false
	ID       int64 // task ID, when ByID is true
	ByID     bool
}

func (r TaskRef) String() string {
	if r.ByID {
		return fmt.Sprintf("@%d", r.ID)
	}
	return strconv.Itoa(r.Position)
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from args.
//
// Parsing rules:
// 1. No args → error: task reference required
// 2. All digits (e.g. 3) → position as printed by `list`
// 3. '@' followed by digits (e.g. @1714557600000) → task ID
// 4. Otherwise, or extra args → error: invalid task reference: <ref>
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", strings.Join(args, " "))
	}

	arg := args[0]
	if isAllDigits(arg) {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
		}
		return TaskRef{Position: n}, nil
	}

	if rest, ok := strings.CutPrefix(arg, "@"); ok && isAllDigits(rest) {
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
		}
		return TaskRef{ID: id, ByID: true}, nil
	}

	return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
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

// ResolveTaskRef finds the task a reference points at in list.
func ResolveTaskRef(list []tasks.Task, ref TaskRef) (tasks.Task, error) {
	if ref.ByID {
		for _, t := range list {
			if t.ID == ref.ID {
				return t, nil
			}
		}
		return tasks.Task{}, fmt.Errorf("task not found: %s", ref)
	}
	if ref.Position < 1 || ref.Position > len(list) {
		return tasks.Task{}, fmt.Errorf("task number out of range: %d", ref.Position)
	}
	return list[ref.Position-1], nil
}
