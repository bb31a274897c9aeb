// Package memstore keeps todos in process memory only.
package memstore

import (
	"context"
	"sync"

	"github.com/xyz-asif/imagetodo/internal/features/todos"
)

type Repository struct {
	mu    sync.Mutex
	todos []todos.Todo
	saves int
	// FailWith, when set, is returned by Save.
	FailWith error
}

func New(seed ...todos.Todo) *Repository {
	return &Repository{todos: append([]todos.Todo(nil), seed...)}
}

func (r *Repository) Load(ctx context.Context) ([]todos.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]todos.Todo{}, r.todos...), nil
}

func (r *Repository) Save(ctx context.Context, list []todos.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	r.todos = append([]todos.Todo{}, list...)
	r.saves++
	return nil
}

// Saves reports how many snapshots were written.
func (r *Repository) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}
