package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Checkpoint folds the WAL into the main database file and truncates it.
func Checkpoint(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE);`); err != nil {
		return fmt.Errorf("wal checkpoint: %w", err)
	}
	return nil
}
