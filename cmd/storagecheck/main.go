// Command storagecheck opens the configured todo storage and reports what it
// holds, without starting the server.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/xyz-asif/imagetodo/internal/config"
	"github.com/xyz-asif/imagetodo/internal/pkg/logger"
	"github.com/xyz-asif/imagetodo/internal/storage"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: "warn", Encoding: "console"})
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	fmt.Printf("Opening %s storage...\n", cfg.StorageDriver)
	repo, closeRepo, err := storage.Open(ctx, cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open failed:", err)
		os.Exit(1)
	}
	defer closeRepo(context.Background())

	list, err := repo.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load failed:", err)
		os.Exit(1)
	}

	completed := 0
	for _, t := range list {
		if t.IsCompleted {
			completed++
		}
	}

	fmt.Println("✅ Storage readable")
	fmt.Printf("  Todos:     %d\n", len(list))
	fmt.Printf("  Completed: %d\n", completed)
	fmt.Printf("  Pending:   %d\n", len(list)-completed)
}
