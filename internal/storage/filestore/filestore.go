// Package filestore keeps the todo snapshot in a single JSON file.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/xyz-asif/imagetodo/internal/features/todos"
	"github.com/xyz-asif/imagetodo/internal/storage/snapshot"
)

type Repository struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func New(path string) *Repository {
	return &Repository{path: path, now: time.Now}
}

// Path returns the file backing the repository.
func (r *Repository) Path() string {
	return r.path
}

// Load returns an empty collection when the file does not exist yet.
func (r *Repository) Load(ctx context.Context) ([]todos.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []todos.Todo{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return snapshot.Decode(b)
}

// Save writes to a temp file in the same directory and renames it over the
// old snapshot.
func (r *Repository) Save(ctx context.Context, list []todos.Todo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := snapshot.Encode(list, r.now())
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("rename file: %w", err)
	}
	return nil
}
