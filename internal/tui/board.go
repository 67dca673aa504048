package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"questboss/internal/engine"
)

// RunBoard opens the dashboard. All service calls happen on the update loop.
func RunBoard(ctx context.Context, svc *engine.Service, out io.Writer) error {
	m := newBoardModel(ctx, svc)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
