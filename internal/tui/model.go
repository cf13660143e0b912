// Package tui implements the interactive inbox: a list of rows that can be
// swiped to reveal actions, driven by mouse drags or the keyboard.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/rowswipe/internal/errors"
	"github.com/cristianoliveira/rowswipe/internal/inbox"
	"github.com/cristianoliveira/rowswipe/internal/logging"
	"github.com/cristianoliveira/rowswipe/internal/swipe"
)

const (
	headerLines   = 2
	footerLines   = 2
	rowHeight     = 2
	defaultWidth  = 80
	defaultHeight = 24
	statusTTL     = 4 * time.Second
	// keyGesture is the duration of the synthetic drag used by keyboard
	// shortcuts that fire flick-to-act zones.
	keyGesture = 120 * time.Millisecond
)

// Store is the part of the inbox the list reads and writes.
type Store interface {
	List(ctx context.Context) ([]inbox.Item, error)
	MarkRead(ctx context.Context, id int64) error
	Leave(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// row pairs an item with the swipe state of its line in the list.
type row struct {
	item    inbox.Item
	session *swipe.Session
}

// removal tracks a leave/delete until both the store write and the collapse
// animation finished; the row is dropped only then.
type removal struct {
	op        string
	written   bool
	collapsed bool
}

// gesture is a mouse drag in progress.
type gesture struct {
	row   *row
	x, y  int
	start time.Time
}

// Model is the bubbletea model of the inbox list.
type Model struct {
	ctx      context.Context
	store    Store
	settings Settings
	log      logging.Logger

	rows          []*row
	cursor        int
	top           int
	width, height int
	loaded        bool

	gesture  *gesture
	prompt   *confirmPrompt
	removals map[int64]*removal
	// queued collects commands produced by engine callbacks during Update.
	queued  []tea.Cmd
	ticking bool

	status *errors.TUIHandler
	help   help.Model
	now    func() time.Time
}

// New returns a model reading from store. The list is loaded by Init.
func New(ctx context.Context, store Store, settings Settings, log logging.Logger) (*Model, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.GetGlobal()
	}
	m := &Model{
		ctx:      ctx,
		store:    store,
		settings: settings,
		log:      log,
		width:    defaultWidth,
		height:   defaultHeight,
		removals: make(map[int64]*removal),
		help:     help.New(),
		now:      time.Now,
	}
	m.status = errors.NewTUIHandler(func(errors.Message) {
		m.queued = append(m.queued, clearStatusAfter(statusTTL))
	})
	return m, nil
}

// Init loads the list.
func (m *Model) Init() tea.Cmd {
	return loadItemsCmd(m.ctx, m.store)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.scrollToCursor()
	case itemsLoadedMsg:
		m.handleItemsLoaded(msg)
	case actionDoneMsg:
		m.handleActionDone(msg)
	case frameMsg:
		m.ticking = false
		for _, r := range m.rows {
			r.session.Tick()
		}
	case clearStatusMsg:
		// Re-render only; View drops expired messages.
	case tea.MouseMsg:
		if m.prompt == nil {
			m.handleMouse(msg)
		}
	case tea.KeyMsg:
		if m.prompt != nil {
			cmd = m.handlePromptKey(msg)
		} else {
			cmd = m.handleKey(msg)
		}
	default:
		if m.prompt != nil {
			cmd = m.updatePrompt(msg)
		}
	}
	return m, m.flush(cmd)
}

// flush batches cmd with everything queued by callbacks and keeps the
// frame clock running while any row animates.
func (m *Model) flush(cmd tea.Cmd) tea.Cmd {
	cmds := append(m.queued, cmd)
	m.queued = nil
	if !m.ticking && m.animating() {
		m.ticking = true
		cmds = append(cmds, frameCmd(m.settings.frameInterval()))
	}
	return tea.Batch(cmds...)
}

func (m *Model) animating() bool {
	for _, r := range m.rows {
		if r.session.Animating() {
			return true
		}
	}
	return false
}

func (m *Model) handleItemsLoaded(msg itemsLoadedMsg) {
	if msg.err != nil {
		errors.Report(m.status, "load inbox", msg.err)
		m.log.Error("load inbox failed", "error", msg.err)
		return
	}

	existing := make(map[int64]*row, len(m.rows))
	for _, r := range m.rows {
		existing[r.item.ID] = r
	}
	next := make([]*row, 0, len(msg.items))
	for _, item := range msg.items {
		if r, ok := existing[item.ID]; ok {
			delete(existing, item.ID)
			r.item = item
			if item.Kind == inbox.KindConversation {
				_ = r.session.SetZoneAvailable(zoneRead, item.UnreadCount > 0)
			}
			next = append(next, r)
			continue
		}
		r, err := m.newRow(item)
		if err != nil {
			errors.Report(m.status, fmt.Sprintf("show %q", item.Title), err)
			continue
		}
		next = append(next, r)
	}
	for id, r := range existing {
		r.session.Close()
		delete(m.removals, id)
	}

	m.rows = next
	m.loaded = true
	m.dropStale()
	m.setCursor(m.cursor)
}

// dropStale forgets the gesture and prompt of rows that left the list.
func (m *Model) dropStale() {
	if m.gesture != nil && m.gesture.row.session.Closed() {
		m.gesture = nil
	}
	if m.prompt != nil {
		if id, ok := m.prompt.req.Subject.(int64); !ok || m.rowByID(id) == nil {
			m.prompt = nil
		}
	}
}

func (m *Model) handleActionDone(msg actionDoneMsg) {
	r := m.rowByID(msg.id)
	if msg.err != nil {
		errors.Report(m.status, opVerb(msg.op)+" failed", msg.err)
		m.log.Warn("row action failed", "op", msg.op, "item", msg.id, "error", msg.err)
		delete(m.removals, msg.id)
		if r != nil {
			_ = r.session.ForceState(swipe.Idle)
		}
		m.queued = append(m.queued, loadItemsCmd(m.ctx, m.store))
		return
	}

	if msg.op == zoneRead {
		if r != nil {
			r.item.UnreadCount = 0
			_ = r.session.SetZoneAvailable(zoneRead, false)
		}
		m.status.Success("Marked as read")
		return
	}

	rm, ok := m.removals[msg.id]
	if !ok {
		return
	}
	rm.written = true
	m.status.Success(opVerb(msg.op) + " done")
	if rm.collapsed {
		m.finishRemoval(msg.id)
	}
}

func opVerb(op string) string {
	switch op {
	case zoneLeave:
		return "Leave"
	case zoneDelete:
		return "Delete"
	case zoneRead:
		return "Mark read"
	default:
		return op
	}
}

// newRow builds the swipe session for an item.
func (m *Model) newRow(item inbox.Item) (*row, error) {
	opts := m.settings.Swipe
	opts.Zones = m.settings.zones(item)
	for i := range opts.Zones {
		m.bindZone(&opts.Zones[i])
	}
	opts.Confirmer = swipe.ConfirmFunc(m.confirm)
	opts.Logger = m.log.With("item", item.ID)
	opts.OnActionTriggered = func(z swipe.ActionZone, subject any) {
		m.log.Info("row action", "zone", z.ID, "item", subject)
	}
	session, err := swipe.NewSession(opts, item.ID)
	if err != nil {
		return nil, err
	}
	return &row{item: item, session: session}, nil
}

func (m *Model) bindZone(z *swipe.ActionZone) {
	switch z.ID {
	case zoneLeave:
		z.OnTrigger = m.removeWith(zoneLeave, m.store.Leave)
		z.AfterSettle = m.collapsed
	case zoneDelete:
		z.OnTrigger = m.removeWith(zoneDelete, m.store.Delete)
		z.AfterSettle = m.collapsed
	case zoneRead:
		z.OnTrigger = func(subject any) {
			id := subject.(int64)
			m.queued = append(m.queued, actionCmd(m.ctx, zoneRead, id, m.store.MarkRead))
		}
	}
}

func (m *Model) removeWith(op string, fn func(context.Context, int64) error) func(any) {
	return func(subject any) {
		id := subject.(int64)
		m.removals[id] = &removal{op: op}
		m.queued = append(m.queued, actionCmd(m.ctx, op, id, fn))
	}
}

// collapsed runs when a removed row finished animating back to Idle.
func (m *Model) collapsed(subject any) {
	id := subject.(int64)
	rm, ok := m.removals[id]
	if !ok {
		return
	}
	rm.collapsed = true
	if rm.written {
		m.finishRemoval(id)
	}
}

func (m *Model) finishRemoval(id int64) {
	delete(m.removals, id)
	for i, r := range m.rows {
		if r.item.ID != id {
			continue
		}
		r.session.Close()
		m.rows = append(m.rows[:i], m.rows[i+1:]...)
		break
	}
	m.dropStale()
	m.setCursor(m.cursor)
}

// confirm implements swipe.Confirmer with a modal huh form.
func (m *Model) confirm(req swipe.ConfirmRequest) {
	title := ""
	if id, ok := req.Subject.(int64); ok {
		if r := m.rowByID(id); r != nil {
			title = r.item.Title
		}
	}
	m.prompt = newConfirmPrompt(req, promptTitle(req.Zone, title), m.width)
	m.queued = append(m.queued, m.prompt.form.Init())
}

func (m *Model) answerPrompt(ok bool) {
	p := m.prompt
	if p == nil {
		return
	}
	m.prompt = nil
	p.req.Resolve(ok)
}

func (m *Model) updatePrompt(msg tea.Msg) tea.Cmd {
	cmd, done := m.prompt.update(msg)
	if done {
		m.answerPrompt(m.prompt.answer)
	}
	return cmd
}

func (m *Model) rowByID(id int64) *row {
	for _, r := range m.rows {
		if r.item.ID == id {
			return r
		}
	}
	return nil
}

func (m *Model) indexOf(target *row) (int, bool) {
	for i, r := range m.rows {
		if r == target {
			return i, true
		}
	}
	return 0, false
}

func (m *Model) current() *row {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor]
}

// closeOthers settles every open row except keep back to Idle, so at most
// one row shows its actions.
func (m *Model) closeOthers(keep *row) {
	for _, r := range m.rows {
		if r != keep && r.session.Stable() != swipe.Idle {
			_ = r.session.ForceState(swipe.Idle)
		}
	}
}

func (m *Model) visibleRows() int {
	n := (m.height - headerLines - footerLines) / rowHeight
	if n < 1 {
		return 1
	}
	return n
}

func (m *Model) setCursor(i int) {
	if i >= len(m.rows) {
		i = len(m.rows) - 1
	}
	if i < 0 {
		i = 0
	}
	m.cursor = i
	m.scrollToCursor()
}

func (m *Model) moveCursor(delta int) {
	m.setCursor(m.cursor + delta)
}

func (m *Model) scrollToCursor() {
	visible := m.visibleRows()
	if m.cursor < m.top {
		m.top = m.cursor
	}
	if m.cursor >= m.top+visible {
		m.top = m.cursor - visible + 1
	}
	if maxTop := len(m.rows) - visible; m.top > maxTop {
		m.top = maxTop
	}
	if m.top < 0 {
		m.top = 0
	}
}
