// Package memory keeps the budget snapshot in process, optionally mirrored to
// a JSON file so a restart picks up where it left off.
package memory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"budgetpro/internal/core"
	"budgetpro/internal/snapshot"
)

var _ snapshot.Repository = (*Store)(nil)

type Store struct {
	mu   sync.Mutex
	data []byte
	path string
	now  func() time.Time
}

// New returns an empty in-memory store.
func New(now func() time.Time) *Store {
	return &Store{now: now}
}

// NewFromFile seeds the store from path. A missing file starts empty; the
// file is rewritten on every save.
func NewFromFile(path string, now func() time.Time) (*Store, error) {
	s := &Store{path: path, now: now}
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read snapshot file: %w", err)
	default:
		s.data = b
	}
	return s, nil
}

func (s *Store) Load(ctx context.Context) (core.Store, error) {
	s.mu.Lock()
	data := append([]byte(nil), s.data...)
	s.mu.Unlock()

	st, err := snapshot.Decode(data, s.now())
	if err != nil {
		slog.WarnContext(ctx, "Discarding unreadable snapshot", "path", s.path, "error", err)
	}
	return st, nil
}

func (s *Store) Save(ctx context.Context, st core.Store) error {
	b, err := snapshot.Encode(st)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = b
	if s.path == "" {
		return nil
	}
	if err := writeFileAtomic(s.path, b); err != nil {
		return fmt.Errorf("write snapshot file: %w", err)
	}
	slog.DebugContext(ctx, "Snapshot written", "path", s.path, "bytes", len(b))
	return nil
}

func (s *Store) Close() error { return nil }

func writeFileAtomic(path string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
