package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		// One JSON document per collection (tasks, habits, reminders, ...).
		`CREATE TABLE IF NOT EXISTS blobs (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);`,
		// Audit trail of every XP award, used by the history command.
		`CREATE TABLE IF NOT EXISTS xp_ledger (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source_kind TEXT NOT NULL,
			source_id TEXT NOT NULL,
			amount INTEGER NOT NULL,
			level_after INTEGER NOT NULL,
			awarded_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_xp_ledger_awarded_at ON xp_ledger(awarded_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
