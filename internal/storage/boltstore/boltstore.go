// Package boltstore keeps the todo snapshot in a BoltDB file.
package boltstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/xyz-asif/imagetodo/internal/features/todos"
	"github.com/xyz-asif/imagetodo/internal/storage/snapshot"
)

var (
	bucketName  = []byte("todos")
	snapshotKey = []byte("snapshot")
)

type Repository struct {
	db  *bolt.DB
	now func() time.Time
}

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Repository{db: db, now: time.Now}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Load(ctx context.Context) ([]todos.Todo, error) {
	var list []todos.Todo
	err := r.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketName).Get(snapshotKey)
		var err error
		// v is only valid inside the transaction; Decode copies out of it.
		list, err = snapshot.Decode(v)
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *Repository) Save(ctx context.Context, list []todos.Todo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := snapshot.Encode(list, r.now())
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(snapshotKey, payload)
	})
}
