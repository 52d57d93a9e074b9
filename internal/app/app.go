// Package app wires the task store, theme, and post browser into the single
// context object every command and view receives.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"plptask/internal/config"
	"plptask/internal/kv"
	"plptask/internal/posts"
	"plptask/internal/tasks"
	"plptask/internal/theme"
)

// App is the process-wide state. It is created once at startup and lives
// until the process exits.
type App struct {
	Tasks  *tasks.Store
	Theme  *theme.Context
	Posts  *posts.Browser
	Logger *log.Logger

	closer io.Closer
}

// Open opens the storage database in the config directory and builds an App
// over it, talking to the posts API configured in cfg.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDir(); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}
	db, err := kv.OpenSQLite(ctx, cfg.DatabasePath(), cfg.Logger)
	if err != nil {
		return nil, err
	}

	opts := []posts.Option{posts.WithLogger(cfg.Logger)}
	if cfg.Timeout > 0 {
		opts = append(opts, posts.WithTimeout(cfg.Timeout))
	}
	client := posts.New(cfg.APIURL, opts...)

	a, err := New(ctx, db, client, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	a.closer = db
	return a, nil
}

// New builds an App over the given storage and posts source.
func New(ctx context.Context, storage kv.Storage, fetcher posts.Fetcher, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	store, err := tasks.Open(ctx, storage, tasks.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	th, err := theme.Load(ctx, storage)
	if err != nil {
		return nil, err
	}
	return &App{
		Tasks:  store,
		Theme:  th,
		Posts:  posts.NewBrowser(fetcher),
		Logger: logger,
	}, nil
}

// Close releases the storage. Safe to call on an App built with New.
func (a *App) Close() error {
	if a == nil || a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
