package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS progress (
			key TEXT PRIMARY KEY,
			version INTEGER NOT NULL DEFAULT 1,
			level INTEGER NOT NULL DEFAULT 1,
			xp INTEGER NOT NULL DEFAULT 0,
			xp_needed INTEGER NOT NULL DEFAULT 100
		);`,
		`CREATE TABLE IF NOT EXISTS custom_tasks (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			xp_reward INTEGER NOT NULL DEFAULT 0,
			boss_damage INTEGER NOT NULL DEFAULT 0
		);`,
		// Append-only log of every quest/task completion.
		`CREATE TABLE IF NOT EXISTS completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			quest_id TEXT NOT NULL,
			name TEXT NOT NULL,
			kind TEXT NOT NULL,
			xp_awarded INTEGER NOT NULL,
			damage INTEGER NOT NULL,
			level_after INTEGER NOT NULL,
			boss TEXT NOT NULL,
			boss_defeated INTEGER NOT NULL DEFAULT 0,
			completed_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_custom_tasks_position ON custom_tasks(position);`,
		`CREATE INDEX IF NOT EXISTS idx_completions_completed_at ON completions(completed_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
