package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"teddy/internal/engine"
)

// RunBoard opens the dashboard and polls reminders every pollInterval while it is open.
func RunBoard(ctx context.Context, svc *engine.Service, out io.Writer, pollInterval time.Duration) error {
	m := newBoardModel(ctx, svc, pollInterval)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
