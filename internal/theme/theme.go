// Package theme holds the persisted light/dark preference and its styles.
package theme

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"plptask/internal/kv"
)

// StorageKey is the key the theme preference is persisted under.
const StorageKey = "theme"

// Theme is the presentation preference.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Default is used when nothing valid is stored.
const Default = Light

// Parse parses a theme name (case-insensitive, trimmed).
func Parse(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	}
	return "", fmt.Errorf("invalid theme: %s", s)
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Context is the process-wide theme flag. It is built once at startup and
// passed to every view that renders.
type Context struct {
	mu        sync.RWMutex
	storage   kv.Storage
	current   Theme
	observers map[int]func(Theme)
	nextObs   int
}

// Load reads the persisted preference, falling back to Default.
func Load(ctx context.Context, storage kv.Storage) (*Context, error) {
	c := &Context{storage: storage, current: Default}
	v, ok, err := storage.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load theme: %w", err)
	}
	if ok {
		if t, err := Parse(v); err == nil {
			c.current = t
		}
	}
	return c, nil
}

// Fixed returns a Context that is never persisted. Used for rendering
// without storage.
func Fixed(t Theme) *Context {
	return &Context{current: t}
}

// Current returns the active theme.
func (c *Context) Current() Theme {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Styles returns the style set for the active theme on standard output.
func (c *Context) Styles() Styles {
	return StylesFor(c.Current(), nil)
}

// StylesFor returns the style set for the active theme rendered to w.
func (c *Context) StylesFor(w io.Writer) Styles {
	return WriterStyles(c.Current(), w)
}

// Toggle switches to the opposite theme and persists it.
func (c *Context) Toggle(ctx context.Context) (Theme, error) {
	next := c.Current().Opposite()
	if err := c.Set(ctx, next); err != nil {
		return c.Current(), err
	}
	return next, nil
}

// Set changes the active theme and persists it.
func (c *Context) Set(ctx context.Context, t Theme) error {
	if c.storage != nil {
		if err := c.storage.Set(ctx, StorageKey, string(t)); err != nil {
			return fmt.Errorf("save theme: %w", err)
		}
	}

	c.mu.Lock()
	c.current = t
	observers := make([]func(Theme), 0, len(c.observers))
	for _, fn := range c.observers {
		observers = append(observers, fn)
	}
	c.mu.Unlock()

	for _, fn := range observers {
		fn(t)
	}
	return nil
}

// Subscribe registers fn to be called after every theme change.
// The returned func removes the subscription.
func (c *Context) Subscribe(fn func(Theme)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.observers == nil {
		c.observers = make(map[int]func(Theme))
	}
	id := c.nextObs
	c.nextObs++
	c.observers[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}
