// Package memory provides an in-memory store seeded from and snapshotted to
// JSON files laid out under a single data directory.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"paycycle/internal/core"
)

const (
	usersFile         = "users.json"
	expensesFile      = "expenses.json"
	notificationsFile = "notifications.json"
)

type Store struct {
	mu            sync.Mutex
	dir           string // empty means no file snapshots
	users         map[string]core.User
	expenses      map[string]core.Expense
	notifications map[string]core.Notification
}

// New returns an empty store with no file backing. Used in tests.
func New() *Store {
	return &Store{
		users:         make(map[string]core.User),
		expenses:      make(map[string]core.Expense),
		notifications: make(map[string]core.Notification),
	}
}

// NewFromFiles loads users.json, expenses.json and notifications.json from
// base if present, and snapshots every mutation back to the same files.
func NewFromFiles(base string) *Store {
	s := New()
	s.dir = base

	readInto(filepath.Join(base, usersFile), func(users []core.User) {
		for _, u := range users {
			s.users[u.Email] = u
		}
	})
	readInto(filepath.Join(base, expensesFile), func(expenses []core.Expense) {
		for _, e := range expenses {
			s.expenses[e.ID] = e
		}
	})
	readInto(filepath.Join(base, notificationsFile), func(notifs []core.Notification) {
		for _, n := range notifs {
			s.notifications[n.ID] = n
		}
	})
	return s
}

func readInto[T any](path string, seed func([]T)) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return
	}
	seed(items)
}

func (s *Store) GetUser(_ context.Context, email string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return core.User{}, core.ErrUserNotFound
	}
	return u, nil
}

func (s *Store) PutUser(_ context.Context, u core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.Email] = u
	return s.snapshotLocked()
}

func (s *Store) ListExpenses(_ context.Context, email string) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Expense
	for _, e := range s.expenses {
		if e.Email == email {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) GetExpense(_ context.Context, id, email string) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.expenses[id]
	if !ok || e.Email != email {
		return core.Expense{}, core.ErrExpenseNotFound
	}
	return e, nil
}

func (s *Store) PutExpense(_ context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses[e.ID] = e
	return s.snapshotLocked()
}

func (s *Store) DeleteExpense(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.expenses, id)
	return s.snapshotLocked()
}

func (s *Store) ListNotifications(_ context.Context, email string) ([]core.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Notification
	for _, n := range s.notifications {
		if n.Email == email {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *Store) PutNotification(_ context.Context, n core.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications[n.ID] = n
	return s.snapshotLocked()
}

func (s *Store) DeleteNotification(_ context.Context, id, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok || n.Email != email {
		return core.ErrNotificationNotFound
	}
	delete(s.notifications, id)
	return s.snapshotLocked()
}

// CommitPayday writes the rolled-over user and closes the cycle on all of
// their open expenses under a single lock acquisition.
func (s *Store) CommitPayday(_ context.Context, u core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Email]; !ok {
		return core.ErrUserNotFound
	}
	s.users[u.Email] = u
	for id, e := range s.expenses {
		if e.Email == u.Email && e.Cycle {
			e.Cycle = false
			s.expenses[id] = e
		}
	}
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() error {
	if s.dir == "" {
		return nil
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	users := make([]core.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	expenses := make([]core.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		expenses = append(expenses, e)
	}
	notifs := make([]core.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		notifs = append(notifs, n)
	}

	if err := writeFile(filepath.Join(s.dir, usersFile), users); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(s.dir, expensesFile), expenses); err != nil {
		return err
	}
	return writeFile(filepath.Join(s.dir, notificationsFile), notifs)
}

func writeFile(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
