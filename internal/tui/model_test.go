package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"questboss/internal/engine"
	"questboss/internal/storage"
)

func newTestModel(t *testing.T) (boardModel, *engine.Service) {
	t.Helper()
	ctx := context.Background()
	store := storage.NewFileStore(filepath.Join(t.TempDir(), storage.ProgressFileName))
	now := time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)
	svc, err := engine.Open(ctx, store, engine.WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return newBoardModel(ctx, svc), svc
}

func press(t *testing.T, m boardModel, keys ...string) boardModel {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(boardModel)
	}
	return m
}

func TestBoardCompletesSelectedDaily(t *testing.T) {
	m, svc := newTestModel(t)

	m = press(t, m, "c")
	if svc.XP() != engine.DefaultDailyQuests[0].XPReward {
		t.Fatalf("xp=%d after completing first daily", svc.XP())
	}
	if !m.snap.Dailies[0].Done {
		t.Fatalf("first daily not marked done in snapshot")
	}

	m = press(t, m, "c")
	if !strings.Contains(m.lastLog, "Already done") {
		t.Fatalf("lastLog=%q", m.lastLog)
	}
}

func TestBoardRemovesOnlyCustomTasks(t *testing.T) {
	m, svc := newTestModel(t)
	if _, err := svc.AddTask(context.Background(), "Sort photos", 5, 5); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	m = press(t, m, "r")

	m = press(t, m, "x")
	if !strings.Contains(m.lastLog, "cannot be removed") {
		t.Fatalf("lastLog=%q", m.lastLog)
	}

	for range engine.DefaultDailyQuests {
		m = press(t, m, "j")
	}
	m = press(t, m, "x")
	if len(svc.Tasks()) != 0 {
		t.Fatalf("task not removed")
	}
	if svc.XP() != 0 {
		t.Fatalf("remove granted xp")
	}
	if m.selected != len(engine.DefaultDailyQuests)-1 {
		t.Fatalf("selection not clamped: %d", m.selected)
	}
}

func TestBoardView(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	for _, want := range []string{"Weekly Boss", "Level 1", "Daily Quests", "Custom Tasks"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}
