package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Journal is the completion history backed by the completions table.
type Journal struct {
	db *sql.DB
}

func NewJournal(db *sql.DB) *Journal {
	return &Journal{db: db}
}

func (j *Journal) Append(ctx context.Context, c Completion) (int64, error) {
	res, err := j.db.ExecContext(ctx, `
		INSERT INTO completions (quest_id, name, kind, xp_awarded, damage, level_after, boss, boss_defeated, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.QuestID, c.Name, c.Kind, c.XPAwarded, c.Damage, c.LevelAfter, c.Boss, boolToInt(c.Defeated), c.CompletedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("completion insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("completion last insert id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit completions, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Completion, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, quest_id, name, kind, xp_awarded, damage, level_after, boss, boss_defeated, completed_at
		FROM completions
		ORDER BY completed_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("completion list: %w", err)
	}
	defer rows.Close()

	var out []Completion
	for rows.Next() {
		var c Completion
		var defeated int
		if err := rows.Scan(&c.ID, &c.QuestID, &c.Name, &c.Kind, &c.XPAwarded, &c.Damage, &c.LevelAfter, &c.Boss, &defeated, &c.CompletedAt); err != nil {
			return nil, fmt.Errorf("completion scan: %w", err)
		}
		c.Defeated = defeated != 0
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completion rows: %w", err)
	}
	return out, nil
}

// DamageSince sums boss damage dealt at or after since.
func (j *Journal) DamageSince(ctx context.Context, since time.Time) (int, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(damage), 0)
		FROM completions
		WHERE completed_at >= ?
	`, since.UTC())
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("completion damage sum: %w", err)
	}
	return n, nil
}

func (j *Journal) Stats(ctx context.Context) (JournalStats, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN kind = 'daily' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(boss_defeated), 0),
			COALESCE(SUM(damage), 0)
		FROM completions
	`)
	var st JournalStats
	if err := row.Scan(&st.Completions, &st.DailyCompletions, &st.BossDefeats, &st.TotalDamage); err != nil {
		return JournalStats{}, fmt.Errorf("completion stats: %w", err)
	}
	return st, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
