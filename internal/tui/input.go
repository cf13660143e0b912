package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/rowswipe/internal/swipe"
)

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.moveCursor(-1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.moveCursor(1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.press(msg.X, msg.Y)
	case msg.Action == tea.MouseActionMotion:
		m.drag(msg.X, msg.Y)
	case msg.Action == tea.MouseActionRelease:
		m.release(msg.X, msg.Y)
	}
}

// rowAt maps a screen line to a row index.
func (m *Model) rowAt(y int) (int, bool) {
	if y < headerLines {
		return 0, false
	}
	line := (y - headerLines) / rowHeight
	if line >= m.visibleRows() {
		return 0, false
	}
	i := m.top + line
	if i >= len(m.rows) {
		return 0, false
	}
	return i, true
}

func (m *Model) press(x, y int) {
	i, ok := m.rowAt(y)
	if !ok {
		return
	}
	r := m.rows[i]
	m.closeOthers(r)
	// A row collapsing after an action cannot be grabbed.
	if !r.session.Grant() {
		return
	}
	m.gesture = &gesture{row: r, x: x, y: y, start: m.now()}
}

func (m *Model) drag(x, y int) {
	g := m.gesture
	if g == nil {
		return
	}
	dx, dy := x-g.x, y-g.y
	if g.row.session.Move(float64(dx), float64(dy)) != swipe.MoveYielded {
		return
	}
	// Rows above may have been removed since the press.
	if i, ok := m.indexOf(g.row); ok {
		m.setCursor(i + dy/rowHeight)
	}
}

func (m *Model) release(x, y int) {
	g := m.gesture
	if g == nil {
		return
	}
	m.gesture = nil
	dx, dy := x-g.x, y-g.y
	g.row.session.Release(float64(dx), float64(dy), m.now().Sub(g.start))
	if dx != 0 || dy != 0 {
		return
	}

	// A click without travel: hit a revealed zone, or select the row and
	// close it when it was open.
	if _, ok := g.row.session.TapAt(float64(x), float64(m.width)); ok {
		return
	}
	if i, ok := m.indexOf(g.row); ok {
		m.setCursor(i)
	}
	if g.row.session.Stable() != swipe.Idle {
		_ = g.row.session.ForceState(swipe.Idle)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, keys.Reload):
		return loadItemsCmd(m.ctx, m.store)
	case key.Matches(msg, keys.SwipeLeft):
		m.swipeKey(swipe.SideLeft)
	case key.Matches(msg, keys.SwipeRight):
		m.swipeKey(swipe.SideRight)
	case key.Matches(msg, keys.Close):
		if r := m.current(); r != nil {
			_ = r.session.ForceState(swipe.Idle)
		}
	case key.Matches(msg, keys.Open):
		m.tapRevealed(false)
	case key.Matches(msg, keys.Force):
		m.tapRevealed(true)
	case key.Matches(msg, keys.MarkRead):
		r := m.current()
		if r == nil {
			return nil
		}
		if _, ok := r.session.Layout().Zone(zoneRead); !ok {
			m.status.Info("Nothing to mark as read")
			return nil
		}
		m.flick(r, swipe.SideRight)
	}
	return nil
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "n", "N":
		m.answerPrompt(false)
		return nil
	case "y", "Y":
		m.answerPrompt(true)
		return nil
	}
	return m.updatePrompt(msg)
}

// swipeKey moves the current row one step toward side: an open row on the
// other side closes, a sticky side opens, and a flick-to-act side fires.
func (m *Model) swipeKey(side swipe.Side) {
	r := m.current()
	if r == nil {
		return
	}
	opposite := swipe.RevealedRight
	target := swipe.RevealedLeft
	if side == swipe.SideRight {
		opposite, target = swipe.RevealedLeft, swipe.RevealedRight
	}
	layout := r.session.Layout()
	switch {
	case r.session.Stable() == opposite:
		_ = r.session.ForceState(swipe.Idle)
	case layout.Reachable(target):
		m.closeOthers(r)
		_ = r.session.ForceState(target)
	case layout.Has(side):
		m.flick(r, side)
	}
}

// flick replays a short drag across the inner zone of side, which fires
// flick-to-act zones through the same release path as the mouse.
func (m *Model) flick(r *row, side swipe.Side) {
	zones := r.session.Layout().Zones(side)
	if len(zones) == 0 || !r.session.Grant() {
		return
	}
	m.closeOthers(r)
	dx := zones[0].Width
	if side == swipe.SideLeft {
		dx = -dx
	}
	r.session.Move(dx/2, 0)
	r.session.Move(dx, 0)
	r.session.Release(dx, 0, keyGesture)
}

// tapRevealed taps a zone of the current row's open side: the force zone
// when force is set, the innermost zone otherwise.
func (m *Model) tapRevealed(force bool) {
	r := m.current()
	if r == nil {
		return
	}
	side := swipe.SideLeft
	switch r.session.Stable() {
	case swipe.RevealedLeft:
	case swipe.RevealedRight:
		side = swipe.SideRight
	default:
		m.status.Info("Swipe the row open first (h)")
		return
	}
	layout := r.session.Layout()
	if force {
		if z, ok := layout.ForceZone(side); ok {
			r.session.Tap(z.ID)
		}
		return
	}
	if zones := layout.Zones(side); len(zones) > 0 {
		r.session.Tap(zones[0].ID)
	}
}
