package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const mainProgressKey = "main_user"

// SQLiteStore keeps Progress in two tables. Save replaces the whole state
// inside one transaction.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Load(ctx context.Context) (*Progress, error) {
	p := DefaultProgress()
	row := s.db.QueryRowContext(ctx, `SELECT version, level, xp, xp_needed FROM progress WHERE key = ?`, mainProgressKey)
	if err := row.Scan(&p.Version, &p.Level, &p.XP, &p.XPNeeded); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, nil
		}
		return nil, fmt.Errorf("progress get: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, xp_reward, boss_damage
		FROM custom_tasks
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Name, &t.XPReward, &t.BossDamage); err != nil {
			return nil, fmt.Errorf("task scan: %w", err)
		}
		p.Tasks = append(p.Tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	upgrade(p)
	return p, nil
}

func (s *SQLiteStore) Save(ctx context.Context, p *Progress) error {
	if p == nil {
		return errors.New("progress is nil")
	}
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO progress (key, version, level, xp, xp_needed) VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET
				version = excluded.version,
				level = excluded.level,
				xp = excluded.xp,
				xp_needed = excluded.xp_needed
		`, mainProgressKey, SchemaVersion, p.Level, p.XP, p.XPNeeded); err != nil {
			return fmt.Errorf("progress upsert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM custom_tasks`); err != nil {
			return fmt.Errorf("task clear: %w", err)
		}
		for i, t := range p.Tasks {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO custom_tasks (id, position, name, xp_reward, boss_damage)
				VALUES (?, ?, ?, ?, ?)
			`, t.ID, i, t.Name, t.XPReward, t.BossDamage); err != nil {
				return fmt.Errorf("task insert: %w", err)
			}
		}
		return nil
	})
}
