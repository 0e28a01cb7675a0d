package main

import (
	"context"
	"fmt"

	"github.com/ChristopherHardiman/lonelog/internal/config"
	"github.com/ChristopherHardiman/lonelog/internal/store"
	"github.com/ChristopherHardiman/lonelog/internal/store/postgres"
	"github.com/ChristopherHardiman/lonelog/internal/store/sqlite"
)

const defaultSqliteDSN = "sqlite://lonelog.db"

func openDB(ctx context.Context, cfg *config.ProjectConfig) (store.Store, error) {
	switch cfg.Database.Driver {
	case "", "sqlite":
		dsn := cfg.Database.DSN
		if dsn == "" {
			dsn = defaultSqliteDSN
		}
		return sqlite.New(ctx, dsn)
	case "postgres":
		return postgres.New(ctx, cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unknown database driver: %s", cfg.Database.Driver)
	}
}
