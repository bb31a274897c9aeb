package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xyz-asif/imagetodo/internal/config"
	"github.com/xyz-asif/imagetodo/internal/features/todos"
	"github.com/xyz-asif/imagetodo/internal/storage/boltstore"
	"github.com/xyz-asif/imagetodo/internal/storage/filestore"
	"github.com/xyz-asif/imagetodo/internal/storage/memstore"
)

func TestOpenDrivers(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Defaults()
	cfg.DataFile = filepath.Join(dir, "todos.json")
	cfg.BoltPath = filepath.Join(dir, "todos.db")

	tests := []struct {
		driver string
		want   todos.Repository
	}{
		{config.DriverMemory, &memstore.Repository{}},
		{config.DriverFile, &filestore.Repository{}},
		{config.DriverBolt, &boltstore.Repository{}},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			cfg.StorageDriver = tt.driver
			repo, closeRepo, err := Open(context.Background(), cfg, zap.NewNop())
			require.NoError(t, err)
			require.IsType(t, tt.want, repo)

			store, err := todos.NewStore(context.Background(), repo, nil)
			require.NoError(t, err)
			require.NoError(t, store.Add(context.Background(), todos.Todo{ID: 1, Title: "a"}))
			require.NoError(t, closeRepo(context.Background()))
		})
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	cfg := config.Defaults()
	cfg.StorageDriver = "sqlite"

	_, _, err := Open(context.Background(), cfg, zap.NewNop())
	require.ErrorContains(t, err, "unknown storage driver")
}

type unreachableRepo struct{ *memstore.Repository }

func (unreachableRepo) Ping(context.Context) error { return errors.New("no reachable servers") }

func TestPing(t *testing.T) {
	require.NoError(t, Ping(context.Background(), memstore.New()))
	require.ErrorContains(t, Ping(context.Background(), unreachableRepo{memstore.New()}), "no reachable servers")
}
