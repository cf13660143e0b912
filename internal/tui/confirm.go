package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/cristianoliveira/rowswipe/internal/swipe"
)

// confirmPrompt is the modal shown for zones that require confirmation.
// The form owns the keyboard until it completes or is aborted.
type confirmPrompt struct {
	req    swipe.ConfirmRequest
	title  string
	answer bool
	form   *huh.Form
}

func newConfirmPrompt(req swipe.ConfirmRequest, title string, width int) *confirmPrompt {
	p := &confirmPrompt{req: req, title: title}
	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative(req.Zone.Label).
				Negative("Cancel").
				Value(&p.answer),
		),
	).WithShowHelp(false).WithWidth(width)
	return p
}

// update forwards msg to the form. done is set once the prompt has an answer.
func (p *confirmPrompt) update(msg tea.Msg) (cmd tea.Cmd, done bool) {
	model, cmd := p.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		p.form = f
	}
	switch p.form.State {
	case huh.StateCompleted:
		return cmd, true
	case huh.StateAborted:
		p.answer = false
		return cmd, true
	}
	return cmd, false
}

func (p *confirmPrompt) view() string {
	return p.form.View()
}

// promptTitle phrases the question for a zone acting on an item.
func promptTitle(zone swipe.ActionZone, title string) string {
	switch zone.ID {
	case zoneLeave:
		return fmt.Sprintf("Leave %q? You will stop receiving its messages.", title)
	case zoneDelete:
		return fmt.Sprintf("Delete %q? This cannot be undone.", title)
	default:
		return fmt.Sprintf("%s %q?", zone.Label, title)
	}
}
