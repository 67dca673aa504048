package storage

import "time"

// SchemaVersion is written into every saved progress file.
// Files without a version field are treated as version 0.
const SchemaVersion = 1

const (
	DefaultLevel    = 1
	DefaultXP       = 0
	DefaultXPNeeded = 100
)

type Progress struct {
	Version  int    `json:"version"`
	Level    int    `json:"level"`
	XP       int    `json:"xp"`
	XPNeeded int    `json:"xp_needed"`
	Tasks    []Task `json:"tasks"`
}

// Task is a user-added custom task. ID is assigned on creation and is the
// only identity used for removal; names may repeat.
type Task struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	XPReward   int    `json:"xp"`
	BossDamage int    `json:"damage"`
}

type Completion struct {
	ID          int64     `json:"id"`
	QuestID     string    `json:"quest_id"`
	Name        string    `json:"name"`
	Kind        string    `json:"kind"`
	XPAwarded   int       `json:"xp_awarded"`
	Damage      int       `json:"damage"`
	LevelAfter  int       `json:"level_after"`
	Boss        string    `json:"boss"`
	Defeated    bool      `json:"boss_defeated"`
	CompletedAt time.Time `json:"completed_at"`
}

// JournalStats aggregates the completion history.
type JournalStats struct {
	Completions      int
	DailyCompletions int
	BossDefeats      int
	TotalDamage      int
}

// DefaultProgress returns the first-run state.
func DefaultProgress() *Progress {
	return &Progress{
		Version:  SchemaVersion,
		Level:    DefaultLevel,
		XP:       DefaultXP,
		XPNeeded: DefaultXPNeeded,
		Tasks:    []Task{},
	}
}

// Clone returns a deep copy so callers can hand out snapshots safely.
func (p *Progress) Clone() *Progress {
	if p == nil {
		return nil
	}
	out := *p
	out.Tasks = make([]Task, len(p.Tasks))
	copy(out.Tasks, p.Tasks)
	return &out
}
