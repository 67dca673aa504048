package engine

// BossView is the read-only boss state shown to the player.
type BossView struct {
	Name     string `json:"name"`
	Image    string `json:"image,omitempty"`
	HP       int    `json:"hp"`
	MaxHP    int    `json:"max_hp"`
	Week     int    `json:"week"`
	Defeated bool   `json:"defeated"`
}

type DailyView struct {
	Quest
	Done bool `json:"done"`
}

// Snapshot is everything a presentation layer needs to render.
type Snapshot struct {
	Level    int         `json:"level"`
	XP       int         `json:"xp"`
	XPNeeded int         `json:"xp_needed"`
	Boss     BossView    `json:"boss"`
	Tasks    []Quest     `json:"tasks"`
	Dailies  []DailyView `json:"dailies"`
}

func (s *Service) Snapshot() Snapshot {
	s.rollDay()
	dailies := make([]DailyView, 0, len(s.catalog.Dailies))
	for _, d := range s.catalog.Dailies {
		dailies = append(dailies, DailyView{Quest: d.Quest(), Done: s.doneToday[d.Code]})
	}
	return Snapshot{
		Level:    s.progress.Level,
		XP:       s.progress.XP,
		XPNeeded: s.progress.XPNeeded,
		Boss: BossView{
			Name:     s.boss.Name,
			Image:    s.boss.Image,
			HP:       s.boss.HP,
			MaxHP:    s.boss.MaxHP,
			Week:     s.boss.Week,
			Defeated: s.boss.Defeated(),
		},
		Tasks:   s.Tasks(),
		Dailies: dailies,
	}
}

// Subscribe registers fn to receive a snapshot after every mutation.
// Callbacks run synchronously on the mutating goroutine.
func (s *Service) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

func (s *Service) publish() {
	if len(s.subs) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, fn := range s.subs {
		fn(snap)
	}
}
