package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/rowswipe/internal/inbox"
)

// frameMsg advances every settling row by one frame.
type frameMsg struct{}

// itemsLoadedMsg carries a fresh list from the store.
type itemsLoadedMsg struct {
	items []inbox.Item
	err   error
}

// actionDoneMsg reports the result of a store write started by a zone.
type actionDoneMsg struct {
	op  string
	id  int64
	err error
}

// clearStatusMsg hides the status line once its message expired.
type clearStatusMsg struct{}

func frameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return frameMsg{} })
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func loadItemsCmd(ctx context.Context, store Store) tea.Cmd {
	return func() tea.Msg {
		items, err := store.List(ctx)
		return itemsLoadedMsg{items: items, err: err}
	}
}

func actionCmd(ctx context.Context, op string, id int64, fn func(context.Context, int64) error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{op: op, id: id, err: fn(ctx, id)}
	}
}
