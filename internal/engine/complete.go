package engine

import (
	"context"
	"log"

	"questboss/internal/storage"
)

type CompleteResult struct {
	Quest       Quest `json:"quest"`
	XPAwarded   int   `json:"xp_awarded"`
	LevelBefore int   `json:"level_before"`
	LevelAfter  int   `json:"level_after"`
	LevelUp     bool  `json:"level_up"`
	Damage      int   `json:"damage"`
	BossHP      int   `json:"boss_hp"`
	// BossDefeated is set only by the completion that brought HP to zero.
	BossDefeated bool `json:"boss_defeated"`
}

// CompleteTask completes a daily quest (by code) or a custom task (by id or
// unique id prefix). XP is granted first, then the boss takes damage. Custom
// tasks are removed; daily quests are only marked done for today.
func (s *Service) CompleteTask(ctx context.Context, id string) (*CompleteResult, error) {
	if d, ok := s.catalog.daily(id); ok {
		s.rollDay()
		if s.doneToday[d.Code] {
			return nil, ErrQuestDoneToday
		}
		res, err := s.complete(ctx, d.Quest(), -1)
		if err != nil {
			return nil, err
		}
		s.doneToday[d.Code] = true
		s.publish()
		return res, nil
	}

	idx, err := s.findTask(id)
	if err != nil {
		return nil, err
	}
	res, err := s.complete(ctx, customQuest(s.progress.Tasks[idx]), idx)
	if err != nil {
		return nil, err
	}
	s.publish()
	return res, nil
}

// complete applies the rewards of q and persists. taskIdx >= 0 also removes
// that custom task. In-memory state is rolled back if the save fails.
func (s *Service) complete(ctx context.Context, q Quest, taskIdx int) (*CompleteResult, error) {
	prevProgress := s.progress.Clone()
	prevBoss := s.boss

	levelBefore := s.progress.Level
	GrantXP(s.progress, q.XPReward)
	defeated := s.boss.ApplyDamage(q.BossDamage)
	if taskIdx >= 0 {
		s.progress.Tasks = removeAt(s.progress.Tasks, taskIdx)
	}

	if err := s.store.Save(ctx, s.progress); err != nil {
		s.progress = prevProgress
		s.boss = prevBoss
		return nil, err
	}

	res := &CompleteResult{
		Quest:        q,
		XPAwarded:    q.XPReward,
		LevelBefore:  levelBefore,
		LevelAfter:   s.progress.Level,
		LevelUp:      s.progress.Level > levelBefore,
		Damage:       prevBoss.HP - s.boss.HP,
		BossHP:       s.boss.HP,
		BossDefeated: defeated,
	}
	s.record(ctx, res)
	return res, nil
}

// record appends to the journal. History is secondary to progress, so a
// failed append is logged and does not fail the completion.
func (s *Service) record(ctx context.Context, res *CompleteResult) {
	if s.journal == nil {
		return
	}
	_, err := s.journal.Append(ctx, storage.Completion{
		QuestID:     res.Quest.ID,
		Name:        res.Quest.Name,
		Kind:        string(res.Quest.Kind),
		XPAwarded:   res.XPAwarded,
		Damage:      res.Damage,
		LevelAfter:  res.LevelAfter,
		Boss:        s.boss.Name,
		Defeated:    res.BossDefeated,
		CompletedAt: s.now(),
	})
	if err != nil {
		log.Printf("journal: %v", err)
	}
}

// AddTask validates and appends a custom task, then persists.
func (s *Service) AddTask(ctx context.Context, name string, xpReward, bossDamage int) (*storage.Task, error) {
	in, err := ValidateTaskInput(name, xpReward, bossDamage)
	if err != nil {
		return nil, err
	}
	t := storage.Task{
		ID:         newTaskID(),
		Name:       in.Name,
		XPReward:   in.XPReward,
		BossDamage: in.BossDamage,
	}

	prev := s.progress.Tasks
	s.progress.Tasks = append(append([]storage.Task(nil), prev...), t)
	if err := s.store.Save(ctx, s.progress); err != nil {
		s.progress.Tasks = prev
		return nil, err
	}
	s.publish()
	return &t, nil
}

// RemoveTask drops a custom task without granting rewards.
func (s *Service) RemoveTask(ctx context.Context, id string) (*storage.Task, error) {
	idx, err := s.findTask(id)
	if err != nil {
		return nil, err
	}
	prev := s.progress.Tasks
	removed := prev[idx]
	s.progress.Tasks = removeAt(prev, idx)
	if err := s.store.Save(ctx, s.progress); err != nil {
		s.progress.Tasks = prev
		return nil, err
	}
	s.publish()
	return &removed, nil
}

// removeAt returns a new slice without element i; the input is untouched.
func removeAt(tasks []storage.Task, i int) []storage.Task {
	out := make([]storage.Task, 0, len(tasks)-1)
	out = append(out, tasks[:i]...)
	return append(out, tasks[i+1:]...)
}
