package engine

import "strings"

// TaskInput is a validated custom task definition.
type TaskInput struct {
	Name       string
	XPReward   int
	BossDamage int
}

// ValidateTaskInput is the boundary for every XP/damage value coming from
// outside the engine.
func ValidateTaskInput(name string, xpReward, bossDamage int) (TaskInput, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return TaskInput{}, &ValidationError{Field: "name", Reason: "is required"}
	}
	if xpReward < 0 {
		return TaskInput{}, &ValidationError{Field: "xp_reward", Reason: "must not be negative"}
	}
	if bossDamage < 0 {
		return TaskInput{}, &ValidationError{Field: "boss_damage", Reason: "must not be negative"}
	}
	return TaskInput{Name: n, XPReward: xpReward, BossDamage: bossDamage}, nil
}
