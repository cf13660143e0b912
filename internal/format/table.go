package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/rowswipe/internal/inbox"
)

var headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))

// TableColumn is one column of a table.
type TableColumn struct {
	// Name is the column name displayed in the header.
	Name string

	// Width is the column width in characters.
	Width int

	// Alignment is "left" or "right".
	Alignment string

	// Extractor extracts the cell text from an item.
	Extractor func(inbox.Item) string
}

// TableFormatter prints items as a table with a header row.
type TableFormatter struct {
	columns []TableColumn
}

// NewTableFormatter creates a table formatter with the default columns.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{columns: []TableColumn{
		{Name: "ID", Width: 4, Alignment: "right", Extractor: func(i inbox.Item) string {
			return strconv.FormatInt(i.ID, 10)
		}},
		{Name: "DATE", Width: 16, Extractor: func(i inbox.Item) string {
			return i.CreatedAt.Local().Format(dateLayout)
		}},
		{Name: "KIND", Width: 12, Extractor: func(i inbox.Item) string {
			return string(i.Kind)
		}},
		{Name: "UNREAD", Width: 6, Alignment: "right", Extractor: func(i inbox.Item) string {
			if i.Kind != inbox.KindConversation {
				return "-"
			}
			return strconv.Itoa(i.UnreadCount)
		}},
		{Name: "TITLE", Width: 32, Extractor: func(i inbox.Item) string {
			return i.Title
		}},
	}}
}

// WithColumns appends custom columns.
func (f *TableFormatter) WithColumns(columns ...TableColumn) *TableFormatter {
	f.columns = append(f.columns, columns...)
	return f
}

// FormatItems formats items as a table. An empty list prints nothing.
func (f *TableFormatter) FormatItems(items []inbox.Item, writer io.Writer) error {
	if len(items) == 0 {
		return nil
	}
	names := make([]string, len(f.columns))
	rules := make([]string, len(f.columns))
	for i, c := range f.columns {
		names[i] = cell(c.Name, c.Width, c.Alignment)
		rules[i] = strings.Repeat("-", c.Width)
	}
	if _, err := fmt.Fprintln(writer, headerStyle.Render(strings.Join(names, "  "))); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(writer, headerStyle.Render(strings.Join(rules, "  "))); err != nil {
		return err
	}

	cells := make([]string, len(f.columns))
	for _, item := range items {
		for i, c := range f.columns {
			cells[i] = cell(c.Extractor(item), c.Width, c.Alignment)
		}
		if _, err := fmt.Fprintln(writer, strings.TrimRight(strings.Join(cells, "  "), " ")); err != nil {
			return err
		}
	}
	return nil
}

func cell(s string, width int, alignment string) string {
	s = truncate(s, width)
	pad := width - len([]rune(s))
	if pad <= 0 {
		return s
	}
	if alignment == "right" {
		return strings.Repeat(" ", pad) + s
	}
	return s + strings.Repeat(" ", pad)
}
