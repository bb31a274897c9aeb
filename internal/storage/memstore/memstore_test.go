package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/imagetodo/internal/features/todos"
)

func TestSaveCopiesInput(t *testing.T) {
	repo := New()
	list := []todos.Todo{{ID: 1, Title: "a"}}
	require.NoError(t, repo.Save(context.Background(), list))

	list[0].Title = "changed"
	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "a", got[0].Title)
	require.Equal(t, 1, repo.Saves())
}

func TestFailWith(t *testing.T) {
	boom := errors.New("disk full")
	repo := New(todos.Todo{ID: 1})
	repo.FailWith = boom

	require.ErrorIs(t, repo.Save(context.Background(), nil), boom)
	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
}
