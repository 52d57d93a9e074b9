// Package kv provides the persisted key-value storage used for tasks and the theme.
package kv

import "context"

// Storage is a string-valued key-value store.
// Get reports ok=false when the key has never been set.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
