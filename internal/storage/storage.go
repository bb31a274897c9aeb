// Package storage opens the todo repository selected by configuration.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xyz-asif/imagetodo/internal/config"
	"github.com/xyz-asif/imagetodo/internal/database"
	"github.com/xyz-asif/imagetodo/internal/features/todos"
	"github.com/xyz-asif/imagetodo/internal/storage/boltstore"
	"github.com/xyz-asif/imagetodo/internal/storage/filestore"
	"github.com/xyz-asif/imagetodo/internal/storage/memstore"
	"github.com/xyz-asif/imagetodo/internal/storage/mongostore"
)

// Open returns the repository for cfg.StorageDriver and a func releasing it.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (todos.Repository, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	switch cfg.StorageDriver {
	case config.DriverMemory:
		log.Warn("using in-memory storage, todos are lost on restart")
		return memstore.New(), noop, nil

	case config.DriverFile:
		log.Info("using file storage", zap.String("path", cfg.DataFile))
		return filestore.New(cfg.DataFile), noop, nil

	case config.DriverBolt:
		repo, err := boltstore.Open(cfg.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using bolt storage", zap.String("path", cfg.BoltPath))
		return repo, func(context.Context) error { return repo.Close() }, nil

	case config.DriverMongo:
		db, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, err
		}
		repo, err := mongostore.NewRepository(ctx, db)
		if err != nil {
			_ = db.Disconnect(ctx)
			return nil, nil, err
		}
		log.Info("using mongo storage", zap.String("db", cfg.MongoDB))
		return repo, db.Disconnect, nil
	}

	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

// Pinger is implemented by repositories backed by a remote server.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping checks the backend of repo when it has one. Local stores always pass.
func Ping(ctx context.Context, repo todos.Repository) error {
	if p, ok := repo.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
