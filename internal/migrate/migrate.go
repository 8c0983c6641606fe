package migrate

import (
	"context"
	"database/sql"
	"fmt"

	"blogapi/pkg/logger"

	_ "github.com/lib/pq"
	"github.com/pressly/goose"
)

const dialect = "postgres"

// Up applies every pending migration found in dir.
func Up(ctx context.Context, dsn, dir string) error {
	db, err := sql.Open(dialect, dsn)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("apply migrations from %s: %w", dir, err)
	}

	logger.FromContext(ctx).Info("migrations applied", "dir", dir, "from_version", version)
	return nil
}
