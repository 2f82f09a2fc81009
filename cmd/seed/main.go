// Command seed fills an empty item store with item1..itemN at positions 1..N.
//
// It reads the same environment as the server. The count defaults to
// SEED_COUNT and can be overridden with -count.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"

	"github.com/janisto/echo-sortable/internal/platform/config"
	applog "github.com/janisto/echo-sortable/internal/platform/logging"
	"github.com/janisto/echo-sortable/internal/service/item"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		applog.LogFatal(ctx, "invalid configuration", err)
	}
	applog.SetLevel(cfg.LogLevel)

	count := flag.Int("count", cfg.SeedCount, "number of items to create")
	flag.Parse()

	if err := run(ctx, cfg, *count); err != nil {
		applog.LogFatal(ctx, "seeding items failed", err, slog.String("driver", cfg.StoreDriver))
	}
}

func run(ctx context.Context, cfg *config.Config, count int) error {
	if count < 0 {
		return fmt.Errorf("-count must not be negative, got %d", count)
	}

	repo, closeStore, err := item.Open(ctx, item.StoreConfig{
		Driver:            cfg.StoreDriver,
		DatabaseURL:       cfg.DatabaseURL,
		FirebaseProjectID: cfg.FirebaseProjectID,
	})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeStore(); closeErr != nil {
			applog.LogError(ctx, "store close error", closeErr)
		}
	}()

	n, err := item.Seed(ctx, repo, count)
	if err != nil {
		return err
	}
	if n == 0 {
		applog.LogInfo(ctx, "store already holds items, nothing seeded")
		return nil
	}
	applog.LogInfo(ctx, "items seeded", slog.Int("created", n), slog.String("driver", cfg.StoreDriver))
	return nil
}
