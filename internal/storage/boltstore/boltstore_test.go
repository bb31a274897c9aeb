package boltstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/imagetodo/internal/features/todos"
)

func TestSaveLoadAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.db")

	repo, err := Open(path)
	require.NoError(t, err)

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, got)

	list := []todos.Todo{
		{ID: 1, Title: "a", Description: "b", EndDate: "2024-01-01", Image: "data:image/png;base64,AA=="},
		{ID: 2, Title: "c", Description: "d", EndDate: "2024-01-02", Image: "data:image/png;base64,AA==", IsCompleted: true},
	}
	require.NoError(t, repo.Save(context.Background(), list))
	require.NoError(t, repo.Close())

	repo, err = Open(path)
	require.NoError(t, err)
	defer repo.Close()

	got, err = repo.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, list, got)
}

func TestSaveHonoursCancelledContext(t *testing.T) {
	repo, err := Open(filepath.Join(t.TempDir(), "todos.db"))
	require.NoError(t, err)
	defer repo.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, repo.Save(ctx, nil), context.Canceled)
}
