// Package format provides output formatting for inbox items printed by CLI
// commands.
package format

import (
	"io"

	"github.com/cristianoliveira/rowswipe/internal/inbox"
)

// Formatter writes a list of items.
type Formatter interface {
	FormatItems(items []inbox.Item, writer io.Writer) error
}

// FormatterType names an output style.
type FormatterType string

const (
	// FormatterTypeSimple prints ID, date, kind and title on one line.
	FormatterTypeSimple FormatterType = "simple"

	// FormatterTypeTable prints a table with headers.
	FormatterTypeTable FormatterType = "table"

	// FormatterTypeCompact prints only titles.
	FormatterTypeCompact FormatterType = "compact"

	// FormatterTypeJSON prints the items as a JSON array.
	FormatterTypeJSON FormatterType = "json"
)

// Types lists every supported formatter, in help order.
func Types() []FormatterType {
	return []FormatterType{FormatterTypeSimple, FormatterTypeTable, FormatterTypeCompact, FormatterTypeJSON}
}

// NewFormatter creates a formatter of the given type. Unknown types fall
// back to simple.
func NewFormatter(formatterType FormatterType) Formatter {
	switch formatterType {
	case FormatterTypeTable:
		return NewTableFormatter()
	case FormatterTypeCompact:
		return &CompactFormatter{}
	case FormatterTypeJSON:
		return &JSONFormatter{}
	default:
		return &SimpleFormatter{}
	}
}

// Valid reports whether name is a supported formatter type.
func Valid(name string) bool {
	for _, ft := range Types() {
		if string(ft) == name {
			return true
		}
	}
	return false
}
