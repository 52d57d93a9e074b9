// Package tasks holds the task list, its filters, and its persisted store.
package tasks

import "time"

// TimestampLayout is the creation timestamp format (ISO-8601, UTC, milliseconds).
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Task is a single to-do item.
type Task struct {
	ID        int64  `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
	CreatedAt string `json:"createdAt" yaml:"createdAt"`
}

// Created parses CreatedAt. The zero time is returned for malformed values.
func (t Task) Created() time.Time {
	ts, err := time.Parse(TimestampLayout, t.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return ts
}
