// Package store keeps users and meetings in memory and flushes them to a Backend.
package store

import (
	"context"
	"fmt"
	"slices"

	"agenda/internal/model"
)

// Backend loads and saves the whole dataset at once.
type Backend interface {
	Load(ctx context.Context) ([]model.User, []model.Meeting, error)
	Save(ctx context.Context, users []model.User, meetings []model.Meeting) error
}

// table is an ordered list of records with predicate-driven access.
type table[T any] struct {
	rows  []T
	clone func(T) T
}

func (t *table[T]) query(match func(T) bool) []T {
	var out []T
	for _, r := range t.rows {
		if match(r) {
			out = append(out, t.clone(r))
		}
	}
	return out
}

func (t *table[T]) update(match func(T) bool, apply func(*T)) int {
	n := 0
	for i := range t.rows {
		if match(t.rows[i]) {
			apply(&t.rows[i])
			n++
		}
	}
	return n
}

func (t *table[T]) delete(match func(T) bool) int {
	before := len(t.rows)
	t.rows = slices.DeleteFunc(t.rows, match)
	return before - len(t.rows)
}

func (t *table[T]) snapshot() []T {
	out := make([]T, len(t.rows))
	for i, r := range t.rows {
		out[i] = t.clone(r)
	}
	return out
}

// Store is not safe for concurrent use; one goroutine owns it.
type Store struct {
	backend  Backend
	users    table[model.User]
	meetings table[model.Meeting]
	dirty    bool
}

func New(b Backend) *Store {
	return &Store{
		backend:  b,
		users:    table[model.User]{clone: func(u model.User) model.User { return u }},
		meetings: table[model.Meeting]{clone: model.Meeting.Clone},
	}
}

// Load replaces the in-memory tables with the backend's contents.
func (s *Store) Load(ctx context.Context) error {
	users, meetings, err := s.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	s.users.rows = users
	s.meetings.rows = meetings
	s.dirty = false
	return nil
}

// Flush saves through the backend when there are unsaved changes.
func (s *Store) Flush(ctx context.Context) error {
	if !s.dirty {
		return nil
	}
	if err := s.backend.Save(ctx, s.users.snapshot(), s.meetings.snapshot()); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	s.dirty = false
	return nil
}

func (s *Store) Dirty() bool { return s.dirty }

func (s *Store) touch(n int) int {
	if n > 0 {
		s.dirty = true
	}
	return n
}
