package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"questboss/internal/storage"
)

// Journal records completions. It is optional; a nil journal disables history.
type Journal interface {
	Append(ctx context.Context, c storage.Completion) (int64, error)
}

type Option func(*Service)

func WithCatalog(c Catalog) Option { return func(s *Service) { s.catalog = c } }

func WithJournal(j Journal) Option { return func(s *Service) { s.journal = j } }

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// Service owns the session state: persisted progress, the week's boss and
// which daily quests were done today. It is not safe for concurrent use;
// callers serialize access.
type Service struct {
	store   storage.Store
	journal Journal
	catalog Catalog
	now     func() time.Time

	progress  *storage.Progress
	boss      Boss
	day       string
	doneToday map[string]bool
	recovered error

	subs    map[int]func(Snapshot)
	nextSub int
}

// Open loads progress from store and starts a session. A corrupt state file
// is not fatal: the session starts from defaults and Recovered reports why.
func Open(ctx context.Context, store storage.Store, opts ...Option) (*Service, error) {
	s := &Service{
		store:     store,
		catalog:   DefaultCatalog(),
		now:       time.Now,
		doneToday: map[string]bool{},
		subs:      map[int]func(Snapshot){},
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.catalog.Validate(); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	p, err := store.Load(ctx)
	if err != nil {
		var cerr *storage.CorruptStateError
		if !errors.As(err, &cerr) {
			return nil, fmt.Errorf("load progress: %w", err)
		}
		s.recovered = cerr
		p = storage.DefaultProgress()
	}
	// Files written by hand or older builds may hold xp >= xp_needed.
	GrantXP(p, 0)
	s.progress = p

	now := s.now()
	s.boss = NewBoss(s.catalog.SelectBoss(now), now)
	s.day = dayKey(now)
	return s, nil
}

// Recovered returns the *storage.CorruptStateError the session recovered
// from at startup, or nil.
func (s *Service) Recovered() error { return s.recovered }

func (s *Service) Catalog() Catalog { return s.catalog }

// Progress returns a copy of the current progress.
func (s *Service) Progress() *storage.Progress { return s.progress.Clone() }

func (s *Service) Boss() Boss { return s.boss }

func (s *Service) Level() int    { return s.progress.Level }
func (s *Service) XP() int       { return s.progress.XP }
func (s *Service) XPNeeded() int { return s.progress.XPNeeded }

// Tasks returns the custom tasks in insertion order.
func (s *Service) Tasks() []Quest {
	out := make([]Quest, 0, len(s.progress.Tasks))
	for _, t := range s.progress.Tasks {
		out = append(out, customQuest(t))
	}
	return out
}

// RemainingDailies returns today's daily quests not yet completed in this
// session. The list resets when the local date changes.
func (s *Service) RemainingDailies() []Quest {
	s.rollDay()
	var out []Quest
	for _, d := range s.catalog.Dailies {
		if s.doneToday[d.Code] {
			continue
		}
		out = append(out, d.Quest())
	}
	return out
}

// Reset replaces progress with defaults and saves it.
func (s *Service) Reset(ctx context.Context) error {
	before := s.progress
	s.progress = storage.DefaultProgress()
	if err := s.store.Save(ctx, s.progress); err != nil {
		s.progress = before
		return err
	}
	s.publish()
	return nil
}

func (s *Service) rollDay() {
	today := dayKey(s.now())
	if today != s.day {
		s.day = today
		s.doneToday = map[string]bool{}
	}
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// findTask resolves a custom task by full id or unique id prefix.
func (s *Service) findTask(id string) (int, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return -1, ErrTaskNotFound
	}
	match := -1
	for i, t := range s.progress.Tasks {
		if t.ID == id {
			return i, nil
		}
		if strings.HasPrefix(t.ID, id) {
			if match >= 0 {
				return -1, ErrAmbiguousTaskID
			}
			match = i
		}
	}
	if match < 0 {
		return -1, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return match, nil
}
