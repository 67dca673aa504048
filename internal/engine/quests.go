package engine

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"questboss/internal/storage"
)

type QuestKind string

const (
	QuestKindDaily  QuestKind = "daily"
	QuestKindCustom QuestKind = "custom"
)

const (
	// DefaultTaskXP and DefaultTaskDamage apply when a custom task is added
	// without explicit values.
	DefaultTaskXP     = 10
	DefaultTaskDamage = 10
)

// Quest is anything that can be completed: a fixed daily quest or a custom
// task. ID is the daily code or the custom task's UUID.
type Quest struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	XPReward   int       `json:"xp_reward"`
	BossDamage int       `json:"boss_damage"`
	Kind       QuestKind `json:"kind"`
}

// DailyQuestDef is a fixed catalog entry. Code is a short stable handle.
type DailyQuestDef struct {
	Code       string `json:"code" yaml:"code" toml:"code"`
	Name       string `json:"name" yaml:"name" toml:"name"`
	XPReward   int    `json:"xp_reward" yaml:"xp_reward" toml:"xp_reward"`
	BossDamage int    `json:"boss_damage" yaml:"boss_damage" toml:"boss_damage"`
}

var DefaultDailyQuests = []DailyQuestDef{
	{Code: "workout", Name: "Work out for 20 minutes", XPReward: 30, BossDamage: 15},
	{Code: "read", Name: "Read 10 pages", XPReward: 20, BossDamage: 10},
	{Code: "tidy", Name: "Tidy your desk", XPReward: 15, BossDamage: 10},
	{Code: "water", Name: "Drink 8 glasses of water", XPReward: 10, BossDamage: 5},
	{Code: "plan", Name: "Plan tomorrow", XPReward: 15, BossDamage: 10},
}

// Catalog holds the fixed content of a session: boss rotation and dailies.
type Catalog struct {
	Bosses  []BossDef
	Dailies []DailyQuestDef
}

func DefaultCatalog() Catalog {
	return Catalog{
		Bosses:  append([]BossDef(nil), DefaultBosses...),
		Dailies: append([]DailyQuestDef(nil), DefaultDailyQuests...),
	}
}

// idLike matches codes made only of task id characters. Such a code would
// shadow custom tasks whose id starts with it.
var idLike = regexp.MustCompile(`^[0-9a-fA-F-]+$`)

// Validate checks the invariants boss selection and completion rely on.
func (c Catalog) Validate() error {
	if len(c.Bosses) == 0 {
		return &ValidationError{Field: "bosses", Reason: "catalog must not be empty"}
	}
	for i, b := range c.Bosses {
		if strings.TrimSpace(b.Name) == "" {
			return &ValidationError{Field: fmt.Sprintf("bosses[%d].name", i), Reason: "is required"}
		}
		if b.MaxHP <= 0 {
			return &ValidationError{Field: fmt.Sprintf("bosses[%d].max_hp", i), Reason: "must be positive"}
		}
	}
	seen := map[string]bool{}
	for i, q := range c.Dailies {
		code := strings.TrimSpace(q.Code)
		if code == "" {
			return &ValidationError{Field: fmt.Sprintf("dailies[%d].code", i), Reason: "is required"}
		}
		if seen[code] {
			return &ValidationError{Field: fmt.Sprintf("dailies[%d].code", i), Reason: fmt.Sprintf("duplicate code %q", code)}
		}
		seen[code] = true
		if idLike.MatchString(code) {
			return &ValidationError{Field: fmt.Sprintf("dailies[%d].code", i), Reason: fmt.Sprintf("code %q could be a task id prefix", code)}
		}
		if _, err := ValidateTaskInput(q.Name, q.XPReward, q.BossDamage); err != nil {
			return err
		}
	}
	return nil
}

func (c Catalog) SelectBoss(today time.Time) BossDef {
	return selectBoss(c.Bosses, today)
}

func (c Catalog) daily(code string) (DailyQuestDef, bool) {
	for _, q := range c.Dailies {
		if q.Code == code {
			return q, true
		}
	}
	return DailyQuestDef{}, false
}

func (d DailyQuestDef) Quest() Quest {
	return Quest{ID: d.Code, Name: d.Name, XPReward: d.XPReward, BossDamage: d.BossDamage, Kind: QuestKindDaily}
}

func customQuest(t storage.Task) Quest {
	return Quest{ID: t.ID, Name: t.Name, XPReward: t.XPReward, BossDamage: t.BossDamage, Kind: QuestKindCustom}
}
