package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/rowswipe/internal/logging"
)

// Run starts the full-screen list and blocks until the user quits.
func Run(ctx context.Context, store Store, settings Settings) error {
	model, err := New(ctx, store, settings, logging.With("component", "tui"))
	if err != nil {
		return err
	}
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	model.close()
	return nil
}

// close releases every row session.
func (m *Model) close() {
	for _, r := range m.rows {
		r.session.Close()
	}
	m.rows = nil
}
