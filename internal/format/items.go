package format

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/cristianoliveira/rowswipe/internal/inbox"
)

const dateLayout = "2006-01-02 15:04"

// SimpleFormatter prints one line per item.
type SimpleFormatter struct{}

// FormatItems formats items in simple format.
func (f *SimpleFormatter) FormatItems(items []inbox.Item, writer io.Writer) error {
	for _, item := range items {
		_, err := fmt.Fprintf(writer, "%-4d  %-16s  %-12s  %s%s\n",
			item.ID, item.CreatedAt.Local().Format(dateLayout), item.Kind, truncate(item.Title, 50), unreadSuffix(item))
		if err != nil {
			return err
		}
	}
	return nil
}

// CompactFormatter prints titles only.
type CompactFormatter struct{}

// FormatItems formats items in compact format.
func (f *CompactFormatter) FormatItems(items []inbox.Item, writer io.Writer) error {
	for _, item := range items {
		if _, err := fmt.Fprintln(writer, truncate(item.Title, 60)); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter prints items as an indented JSON array.
type JSONFormatter struct{}

type jsonItem struct {
	ID          int64      `json:"id"`
	Kind        inbox.Kind `json:"kind"`
	Title       string     `json:"title"`
	Preview     string     `json:"preview,omitempty"`
	UnreadCount int        `json:"unread_count"`
	CreatedAt   time.Time  `json:"created_at"`
}

// FormatItems formats items as JSON.
func (f *JSONFormatter) FormatItems(items []inbox.Item, writer io.Writer) error {
	out := make([]jsonItem, 0, len(items))
	for _, item := range items {
		out = append(out, jsonItem(item))
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal items to JSON: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		return err
	}
	_, err = fmt.Fprintln(writer)
	return err
}

func unreadSuffix(item inbox.Item) string {
	if item.UnreadCount == 0 {
		return ""
	}
	return fmt.Sprintf(" (%d unread)", item.UnreadCount)
}

// truncate shortens s to max runes, ending with "...".
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
