package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"questboss/internal/engine"
	"questboss/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	snap     engine.Snapshot
	selected int

	lastLog string
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	m := boardModel{
		ctx:     ctx,
		svc:     svc,
		snap:    svc.Snapshot(),
		lastLog: "Loaded.",
	}
	if err := svc.Recovered(); err != nil {
		m.lastLog = ui.IconWarn + " Started fresh: " + err.Error()
	}
	return m
}

func (m boardModel) Init() tea.Cmd {
	return nil
}

// questRow is one selectable line: a daily quest or a custom task.
type questRow struct {
	quest engine.Quest
	done  bool
}

func (m boardModel) rows() []questRow {
	out := make([]questRow, 0, len(m.snap.Dailies)+len(m.snap.Tasks))
	for _, d := range m.snap.Dailies {
		out = append(out, questRow{quest: d.Quest, done: d.Done})
	}
	for _, t := range m.snap.Tasks {
		out = append(out, questRow{quest: t})
	}
	return out
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		rows := m.rows()
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.snap = m.svc.Snapshot()
			m.clampSelection()
			m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
			return m, nil
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(rows)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ", "enter":
			if m.selected < 0 || m.selected >= len(rows) {
				return m, nil
			}
			row := rows[m.selected]
			if row.done {
				m.lastLog = "Already done today."
				return m, nil
			}
			return m.dispatch(engine.Command{Action: engine.ActionComplete, TaskID: row.quest.ID}), nil
		case "x", "delete":
			if m.selected < 0 || m.selected >= len(rows) {
				return m, nil
			}
			row := rows[m.selected]
			if row.quest.Kind != engine.QuestKindCustom {
				m.lastLog = "Daily quests cannot be removed."
				return m, nil
			}
			return m.dispatch(engine.Command{Action: engine.ActionRemove, TaskID: row.quest.ID}), nil
		}
	}
	return m, nil
}

func (m boardModel) dispatch(cmd engine.Command) boardModel {
	res, err := m.svc.Dispatch(m.ctx, cmd)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrQuestDoneToday):
			m.lastLog = "Already done today."
		default:
			m.lastLog = "Failed: " + err.Error()
		}
		return m
	}
	m.snap = res.Snapshot
	m.clampSelection()
	m.lastLog = describe(res)
	return m
}

func describe(res *engine.CommandResult) string {
	if res.Removed != nil {
		return fmt.Sprintf("%s Removed %q", ui.IconTrash, res.Removed.Name)
	}
	c := res.Completed
	line := fmt.Sprintf("%s %s: +%d XP, %d damage", ui.IconDone, c.Quest.Name, c.XPAwarded, c.Damage)
	if c.LevelUp {
		line += fmt.Sprintf("  %s %d → %d", ui.BadgeLevelUp, c.LevelBefore, c.LevelAfter)
	}
	if c.BossDefeated {
		line += "  " + ui.BadgeDefeated
	}
	return line
}

func (m *boardModel) clampSelection() {
	n := len(m.rows())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m boardModel) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderQuests())
	b.WriteString("\n")
	b.WriteString(ui.Muted.Render("j/k move · c/space complete · x remove task · r refresh · q quit"))
	b.WriteString("\n\n")
	b.WriteString(m.lastLog)
	b.WriteString("\n")
	return b.String()
}

func (m boardModel) renderHeader() string {
	boss := m.snap.Boss
	bossLine := fmt.Sprintf("%s Weekly Boss: %s  %s %d/%d", ui.IconBoss, ui.Title.Render(boss.Name), ui.HPBar(boss.HP, boss.MaxHP, 24), boss.HP, boss.MaxHP)
	if boss.Defeated {
		bossLine = ui.BadgeDefeated + "  " + ui.Muted.Render(boss.Name)
	}
	xpLine := fmt.Sprintf("Level %d  %s %d/%d XP", m.snap.Level, ui.Bar(m.snap.XP, m.snap.XPNeeded, 24), m.snap.XP, m.snap.XPNeeded)
	return ui.Panel.Render(bossLine + "\n" + xpLine)
}

func (m boardModel) renderQuests() string {
	rows := m.rows()
	var out []string
	out = append(out, ui.H2.Render("Daily Quests"))
	printedCustom := false
	for i, r := range rows {
		if r.quest.Kind == engine.QuestKindCustom && !printedCustom {
			out = append(out, "", ui.H2.Render("Custom Tasks"))
			printedCustom = true
		}
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		status := " "
		if r.done {
			status = ui.IconDone
		}
		line := fmt.Sprintf("%s%s %s %s", cursor, status, r.quest.Name, ui.Muted.Render(fmt.Sprintf("(+%d XP, %d dmg)", r.quest.XPReward, r.quest.BossDamage)))
		if i == m.selected {
			line = ui.SelectedRow.Render(line)
		}
		out = append(out, line)
	}
	if !printedCustom {
		out = append(out, "", ui.H2.Render("Custom Tasks"), ui.Muted.Render("(none yet, try: qb add \"Task\")"))
	}
	return strings.Join(out, "\n")
}
