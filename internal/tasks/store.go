package tasks

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"plptask/internal/kv"
)

// StorageKey is the key the task list is persisted under.
const StorageKey = "plp-tasks"

// ClearAllPrompt is the question asked before every task is deleted.
const ClearAllPrompt = "Are you sure you want to delete all tasks?"

// Confirmer answers a blocking yes/no question.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) (bool, error)

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(prompt string) (bool, error) { return f(prompt) }

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for IDs and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger for debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Store is the task list mirrored to persisted storage.
//
// Each mutation rewrites the whole list under StorageKey. Two processes
// sharing the same storage can overwrite each other's changes.
type Store struct {
	mu        sync.Mutex
	storage   kv.Storage
	list      []Task
	now       func() time.Time
	logger    *log.Logger
	observers map[int]func([]Task)
	nextObs   int
}

// Open reads the persisted task list and returns a Store over it.
// A missing key yields an empty list.
func Open(ctx context.Context, storage kv.Storage, opts ...Option) (*Store, error) {
	s := &Store{
		storage:   storage,
		now:       time.Now,
		observers: make(map[int]func([]Task)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	data, ok, err := storage.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if ok {
		list, err := decodeSnapshot(data)
		if err != nil {
			return nil, fmt.Errorf("load tasks: %w", err)
		}
		s.list = list
	}
	s.logger.Debug("loaded tasks", "count", len(s.list))
	return s, nil
}

// Tasks returns a copy of the current list, newest first.
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.list)
}

// Get returns the task with the given ID.
func (s *Store) Get(id int64) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.list {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Subscribe registers fn to be called with the new list after every
// successful mutation. The returned func removes the subscription.
func (s *Store) Subscribe(fn func([]Task)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// Add prepends a task with the trimmed text.
// Blank text is ignored: added is false and nothing is written.
func (s *Store) Add(ctx context.Context, text string) (task Task, added bool, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, false, nil
	}

	err = s.mutate(ctx, func(list []Task) ([]Task, bool) {
		now := s.now().UTC()
		task = Task{
			ID:        nextID(list, now),
			Text:      text,
			Completed: false,
			CreatedAt: now.Format(TimestampLayout),
		}
		return append([]Task{task}, list...), true
	})
	if err != nil {
		return Task{}, false, err
	}
	return task, true, nil
}

// Toggle flips the completed flag of the task with the given ID.
// It reports false, without writing, when no task has that ID.
func (s *Store) Toggle(ctx context.Context, id int64) (bool, error) {
	var found bool
	err := s.mutate(ctx, func(list []Task) ([]Task, bool) {
		out := clone(list)
		for i := range out {
			if out[i].ID == id {
				out[i].Completed = !out[i].Completed
				found = true
				break
			}
		}
		return out, found
	})
	return found, err
}

// Delete removes the task with the given ID.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	var found bool
	err := s.mutate(ctx, func(list []Task) ([]Task, bool) {
		out := make([]Task, 0, len(list))
		for _, t := range list {
			if t.ID == id {
				found = true
				continue
			}
			out = append(out, t)
		}
		return out, found
	})
	return found, err
}

// ClearAll deletes every task once c confirms.
// It reports whether the list was cleared.
func (s *Store) ClearAll(ctx context.Context, c Confirmer) (bool, error) {
	ok, err := c.Confirm(ClearAllPrompt)
	if err != nil {
		return false, fmt.Errorf("confirm: %w", err)
	}
	if !ok {
		return false, nil
	}
	err = s.mutate(ctx, func(list []Task) ([]Task, bool) {
		return []Task{}, true
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// ClearCompleted removes all completed tasks and returns how many were removed.
// Nothing is written when no task is completed.
func (s *Store) ClearCompleted(ctx context.Context) (int, error) {
	var removed int
	err := s.mutate(ctx, func(list []Task) ([]Task, bool) {
		out := Apply(list, FilterActive)
		removed = len(list) - len(out)
		return out, removed > 0
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// mutate applies fn to the current list and, when fn reports a change,
// persists the whole result before swapping it in and notifying observers.
// On a write failure the in-memory list is left as it was.
func (s *Store) mutate(ctx context.Context, fn func([]Task) ([]Task, bool)) error {
	s.mu.Lock()
	next, changed := fn(s.list)
	if !changed {
		s.mu.Unlock()
		return nil
	}

	data, err := encodeSnapshot(next)
	if err == nil {
		err = s.storage.Set(ctx, StorageKey, data)
	}
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("save tasks: %w", err)
	}
	s.list = next
	s.logger.Debug("saved tasks", "count", len(next))

	observers := make([]func([]Task), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	snapshot := clone(next)
	s.mu.Unlock()

	for _, notify := range observers {
		notify(clone(snapshot))
	}
	return nil
}

// nextID derives an ID from the clock, bumped past any existing ID.
func nextID(list []Task, now time.Time) int64 {
	id := now.UnixMilli()
	for _, t := range list {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}

func clone(list []Task) []Task {
	if list == nil {
		return []Task{}
	}
	out := make([]Task, len(list))
	copy(out, list)
	return out
}
