package engine

import "questboss/internal/storage"

// Achievement represents a badge the player can earn.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      bool
}

// AchievementChecker calculates which achievements the player has earned
// from current progress and the completion history.
type AchievementChecker struct {
	progress *storage.Progress
	stats    storage.JournalStats
}

func NewAchievementChecker(progress *storage.Progress, stats storage.JournalStats) *AchievementChecker {
	return &AchievementChecker{progress: progress, stats: stats}
}

// GetAchievements returns all achievements with their earned status.
func (c *AchievementChecker) GetAchievements() []Achievement {
	return []Achievement{
		// Level milestones
		c.levelAchievement("getting_started", "Getting Started", "Reach level 2", "🌱", 2),
		c.levelAchievement("on_the_path", "On the Path", "Reach level 5", "🌳", 5),
		c.levelAchievement("seasoned", "Seasoned Adventurer", "Reach level 10", "⭐", 10),
		c.levelAchievement("veteran", "Veteran", "Reach level 20", "🌟", 20),

		// Completion milestones
		c.countAchievement("first_quest", "First Quest", "Complete 1 quest", "✓", c.stats.Completions, 1),
		c.countAchievement("productive", "Productive", "Complete 10 quests", "📋", c.stats.Completions, 10),
		c.countAchievement("achiever", "Achiever", "Complete 50 quests", "🏅", c.stats.Completions, 50),
		c.countAchievement("routine", "Creature of Habit", "Complete 25 daily quests", "🔁", c.stats.DailyCompletions, 25),

		// Boss fights
		c.countAchievement("giant_slayer", "Giant Slayer", "Defeat a weekly boss", "⚔️", c.stats.BossDefeats, 1),
		c.countAchievement("boss_hunter", "Boss Hunter", "Defeat 5 weekly bosses", "🏆", c.stats.BossDefeats, 5),
		c.countAchievement("heavy_hitter", "Heavy Hitter", "Deal 1000 total damage", "💥", c.stats.TotalDamage, 1000),
	}
}

// CountEarned returns how many achievements have been earned.
func (c *AchievementChecker) CountEarned() int {
	count := 0
	for _, a := range c.GetAchievements() {
		if a.Earned {
			count++
		}
	}
	return count
}

func (c *AchievementChecker) levelAchievement(id, name, desc, icon string, level int) Achievement {
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: c.progress.Level >= level}
}

func (c *AchievementChecker) countAchievement(id, name, desc, icon string, have, want int) Achievement {
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: have >= want}
}
