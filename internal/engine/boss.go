package engine

import "time"

// BossDef is a catalog entry. Image is an asset reference resolved by the
// presentation layer.
type BossDef struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	MaxHP int    `json:"max_hp" yaml:"max_hp" toml:"max_hp"`
	Image string `json:"image,omitempty" yaml:"image" toml:"image"`
}

// DefaultBosses is the weekly rotation, indexed by ISO week mod length.
var DefaultBosses = []BossDef{
	{Name: "Procrastinator", MaxHP: 100, Image: "bosses/procrastinator.png"},
	{Name: "Doomscroller", MaxHP: 120, Image: "bosses/doomscroller.png"},
	{Name: "Clutter Golem", MaxHP: 150, Image: "bosses/clutter_golem.png"},
	{Name: "Inbox Hydra", MaxHP: 180, Image: "bosses/inbox_hydra.png"},
	{Name: "Burnout Wraith", MaxHP: 200, Image: "bosses/burnout_wraith.png"},
}

// Boss is the session's adversary. HP stays within [0, MaxHP].
type Boss struct {
	BossDef
	HP   int
	Week int
}

// SelectBoss picks the default catalog's boss for today's ISO week.
func SelectBoss(today time.Time) BossDef {
	return selectBoss(DefaultBosses, today)
}

func selectBoss(catalog []BossDef, today time.Time) BossDef {
	_, week := today.ISOWeek()
	return catalog[week%len(catalog)]
}

func NewBoss(def BossDef, today time.Time) Boss {
	_, week := today.ISOWeek()
	return Boss{BossDef: def, HP: def.MaxHP, Week: week}
}

func (b *Boss) Defeated() bool { return b.HP == 0 }

// ApplyDamage lowers HP, clamped at zero. Non-positive amounts are ignored,
// matching GrantXP. It reports true only on the hit that takes the boss from
// alive to defeated.
func (b *Boss) ApplyDamage(amount int) bool {
	if b.HP == 0 || amount <= 0 {
		return false
	}
	b.HP -= amount
	if b.HP < 0 {
		b.HP = 0
	}
	if b.HP > b.MaxHP {
		b.HP = b.MaxHP
	}
	return b.HP == 0
}
