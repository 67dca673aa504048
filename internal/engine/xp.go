package engine

import "questboss/internal/storage"

const (
	// Each level-up multiplies xp_needed by GrowthNum/GrowthDen (1.2),
	// rounded down. Integer math keeps the curve exact.
	GrowthNum = 6
	GrowthDen = 5
)

// NextXPNeeded returns the threshold for the level after one with xpNeeded.
func NextXPNeeded(xpNeeded int) int {
	next := xpNeeded * GrowthNum / GrowthDen
	if next <= xpNeeded {
		// Tiny thresholds would otherwise stall; keep the curve strictly increasing.
		next = xpNeeded + 1
	}
	return next
}

// GrantXP adds amount and rolls any overflow into level-ups. A single grant
// may cross several thresholds. It returns the number of levels gained.
func GrantXP(p *storage.Progress, amount int) int {
	if amount > 0 {
		p.XP += amount
	}
	gained := 0
	for p.XP >= p.XPNeeded {
		p.XP -= p.XPNeeded
		p.Level++
		p.XPNeeded = NextXPNeeded(p.XPNeeded)
		gained++
	}
	return gained
}

// XPNeededForLevel returns the threshold at the given level starting from
// the default curve.
func XPNeededForLevel(level int) int {
	need := storage.DefaultXPNeeded
	for l := storage.DefaultLevel; l < level; l++ {
		need = NextXPNeeded(need)
	}
	return need
}

// TotalXP returns all XP earned to reach the current state on the default curve.
func TotalXP(p *storage.Progress) int {
	total := p.XP
	need := storage.DefaultXPNeeded
	for l := storage.DefaultLevel; l < p.Level; l++ {
		total += need
		need = NextXPNeeded(need)
	}
	return total
}
