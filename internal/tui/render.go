package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/rowswipe/internal/errors"
	"github.com/cristianoliveira/rowswipe/internal/inbox"
	"github.com/cristianoliveira/rowswipe/internal/swipe"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	rowBackground = "#1e1e2e"
	labelColor    = "#f5f5f5"
	// iconEmphasis is the icon scale from which a zone label is shouted.
	iconEmphasis = 1.15
)

var zoneColors = map[string]string{
	zoneLeave:  "#e8913a",
	zoneDelete: "#d9434f",
	zoneRead:   "#3a7be8",
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	previewStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyles  = map[errors.MessageType]lipgloss.Style{
		errors.MessageTypeError:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		errors.MessageTypeWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		errors.MessageTypeInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		errors.MessageTypeSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	}
)

// View renders the TUI.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(m.header()))
	b.WriteString("\n\n")

	switch {
	case !m.loaded:
		b.WriteString(emptyStyle.Render("Loading…"))
		b.WriteString("\n")
	case len(m.rows) == 0:
		b.WriteString(emptyStyle.Render("Inbox is empty"))
		b.WriteString("\n")
	default:
		end := m.top + m.visibleRows()
		if end > len(m.rows) {
			end = len(m.rows)
		}
		for i := m.top; i < end; i++ {
			lines := m.renderRow(m.rows[i], i == m.cursor)
			b.WriteString(lines[0])
			b.WriteString("\n")
			b.WriteString(lines[1])
			b.WriteString("\n")
		}
	}

	if m.prompt != nil {
		b.WriteString(m.prompt.view())
		return b.String()
	}
	if msg, ok := m.status.Current(statusTTL); ok {
		b.WriteString(statusStyles[msg.Type].Render(msg.Text))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

func (m *Model) header() string {
	unread := 0
	for _, r := range m.rows {
		unread += r.item.UnreadCount
	}
	if unread == 0 {
		return "Inbox"
	}
	return fmt.Sprintf("Inbox (%d unread)", unread)
}

// renderRow draws the two lines of a row, shifted by its offset, with the
// revealed zones filling the uncovered cells.
func (m *Model) renderRow(r *row, selected bool) [2]string {
	width := m.width
	style := r.session.Styles()
	shift := int(math.Round(style.Offset))
	if shift > width {
		shift = width
	}
	if shift < -width {
		shift = -width
	}

	body := bodyLines(r.item, width)
	revealed := shift
	side := swipe.SideRight
	if shift < 0 {
		revealed = -shift
		side = swipe.SideLeft
	}
	if revealed == 0 {
		return [2]string{styleBody(body[0], selected, true), styleBody(body[1], selected, false)}
	}

	strip := zoneStrip(r.session.Layout(), style, side, revealed)
	rounded := style.CornerRadius >= 0.5
	var out [2]string
	for line := 0; line < 2; line++ {
		cells := []rune(body[line])
		edge := edgeGlyph(side, line, rounded)
		var text string
		if side == swipe.SideLeft {
			// The body slides left; the strip sits on the right.
			text = string(cells[revealed:])
			text = replaceLast(text, edge)
			out[line] = styleBody(text, selected, line == 0) + strip[line]
		} else {
			text = string(cells[:width-revealed])
			text = replaceFirst(text, edge)
			out[line] = strip[line] + styleBody(text, selected, line == 0)
		}
	}
	return out
}

func styleBody(text string, selected, first bool) string {
	switch {
	case selected:
		return selectedStyle.Render(text)
	case first:
		return titleStyle.Render(text)
	default:
		return previewStyle.Render(text)
	}
}

// bodyLines lays out the title and preview lines padded to width cells.
func bodyLines(item inbox.Item, width int) [2]string {
	marker := "▤"
	if item.Kind == inbox.KindConversation {
		marker = "○"
		if item.UnreadCount > 0 {
			marker = "●"
		}
	}
	title := fmt.Sprintf(" %s %s", marker, item.Title)
	if item.UnreadCount > 0 {
		title += fmt.Sprintf(" (%d)", item.UnreadCount)
	}
	return [2]string{fit(title, width), fit("   "+item.Preview, width)}
}

// edgeGlyph draws the row edge next to the revealed strip, rounded until
// the row is pulled open to the side total.
func edgeGlyph(side swipe.Side, line int, rounded bool) rune {
	if !rounded {
		return '│'
	}
	if side == swipe.SideLeft {
		return [2]rune{'╮', '╯'}[line]
	}
	return [2]rune{'╭', '╰'}[line]
}

type segment struct {
	zone  swipe.ZoneStyle
	label string
	cells int
}

// zoneStrip renders the zones of side into revealed cells. Zones fill
// outward from the row edge; past the side total the force zone grows.
func zoneStrip(layout swipe.Layout, rs swipe.RowStyle, side swipe.Side, revealed int) [2]string {
	zones := layout.Zones(side)
	magnitude := math.Abs(rs.Offset)
	total := layout.Total(side)

	var segs []segment
	var widths []float64
	for _, z := range zones {
		zs, ok := findZoneStyle(rs, z.ID)
		if !ok {
			continue
		}
		w := zs.Visible
		if magnitude > total {
			w = zs.Grow * magnitude
		}
		segs = append(segs, segment{zone: zs, label: z.Label})
		widths = append(widths, w)
	}
	for i, c := range distribute(widths, revealed) {
		segs[i].cells = c
	}

	// Screen order runs left to right; zones on the left side are laid out
	// from the right edge.
	if side == swipe.SideLeft {
		for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
			segs[i], segs[j] = segs[j], segs[i]
		}
	}

	var top, bottom strings.Builder
	used := 0
	for _, s := range segs {
		if s.cells <= 0 {
			continue
		}
		used += s.cells
		bg := lipgloss.NewStyle().Background(lipgloss.Color(zoneShade(s.zone))).Foreground(lipgloss.Color(labelColor))
		label := s.label
		if s.zone.IconScale >= iconEmphasis {
			label = strings.ToUpper(label)
			bg = bg.Bold(true)
		}
		top.WriteString(bg.Render(center(label, s.cells)))
		bottom.WriteString(bg.Render(strings.Repeat(" ", s.cells)))
	}
	// Cells not covered by any zone, e.g. the overscroll of a side without
	// a force zone.
	if pad := revealed - used; pad > 0 {
		fill := lipgloss.NewStyle().Background(lipgloss.Color(rowBackground)).Render(strings.Repeat(" ", pad))
		if side == swipe.SideLeft {
			return [2]string{fill + top.String(), fill + bottom.String()}
		}
		return [2]string{top.String() + fill, bottom.String() + fill}
	}
	return [2]string{top.String(), bottom.String()}
}

func findZoneStyle(rs swipe.RowStyle, id string) (swipe.ZoneStyle, bool) {
	for _, z := range rs.Zones {
		if z.ID == id {
			return z, true
		}
	}
	return swipe.ZoneStyle{}, false
}

// zoneShade fades the zone color in from the row background by opacity and
// darkens it toward black as the row nears the force threshold.
func zoneShade(zs swipe.ZoneStyle) string {
	base, err := colorful.Hex(zoneColors[zs.ID])
	if err != nil {
		base = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	}
	bg, _ := colorful.Hex(rowBackground)
	c := bg.BlendLab(base, zs.Opacity)
	if zs.Darken > 0 {
		c = c.BlendLab(colorful.Color{}, zs.Darken)
	}
	return c.Clamped().Hex()
}

// distribute rounds widths to whole cells summing to at most total,
// carrying the rounding error forward so boundaries do not drift.
func distribute(widths []float64, total int) []int {
	out := make([]int, len(widths))
	acc, prev := 0.0, 0
	for i, w := range widths {
		acc += w
		edge := int(math.Round(acc))
		if edge > total {
			edge = total
		}
		out[i] = edge - prev
		if out[i] < 0 {
			out[i] = 0
		}
		prev += out[i]
	}
	return out
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) > width {
		if width == 1 {
			return "…"
		}
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}

func center(label string, width int) string {
	runes := []rune(label)
	if len(runes) > width {
		if width < 3 {
			return strings.Repeat(" ", width)
		}
		runes = runes[:width]
	}
	left := (width - len(runes)) / 2
	return strings.Repeat(" ", left) + string(runes) + strings.Repeat(" ", width-left-len(runes))
}

func replaceLast(s string, r rune) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[len(runes)-1] = r
	return string(runes)
}

func replaceFirst(s string, r rune) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = r
	return string(runes)
}
