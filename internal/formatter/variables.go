package formatter

import (
	"fmt"
	"strconv"

	"github.com/cristianoliveira/rowswipe/internal/inbox"
)

// Summary holds the values template variables resolve to.
type Summary struct {
	TotalCount        int
	UnreadCount       int
	UnreadItems       int
	ConversationCount int
	RecordCount       int
	LatestTitle       string
}

// Summarize counts the listed items. items must be newest first, as
// returned by the store.
func Summarize(items []inbox.Item) Summary {
	s := Summary{TotalCount: len(items)}
	for _, item := range items {
		switch item.Kind {
		case inbox.KindConversation:
			s.ConversationCount++
		case inbox.KindRecord:
			s.RecordCount++
		}
		if item.UnreadCount > 0 {
			s.UnreadCount += item.UnreadCount
			s.UnreadItems++
		}
	}
	if len(items) > 0 {
		s.LatestTitle = items[0].Title
	}
	return s
}

var resolvers = map[string]func(Summary) string{
	"total-count":        func(s Summary) string { return strconv.Itoa(s.TotalCount) },
	"unread-count":       func(s Summary) string { return strconv.Itoa(s.UnreadCount) },
	"unread-items":       func(s Summary) string { return strconv.Itoa(s.UnreadItems) },
	"conversation-count": func(s Summary) string { return strconv.Itoa(s.ConversationCount) },
	"record-count":       func(s Summary) string { return strconv.Itoa(s.RecordCount) },
	"latest-title":       func(s Summary) string { return s.LatestTitle },
	"has-unread":         func(s Summary) string { return strconv.FormatBool(s.UnreadCount > 0) },
}

// Variables lists the supported variable names in a stable order.
func Variables() []string {
	return []string{
		"total-count",
		"unread-count",
		"unread-items",
		"conversation-count",
		"record-count",
		"latest-title",
		"has-unread",
	}
}

func known(name string) bool {
	_, ok := resolvers[name]
	return ok
}

// Resolve returns the value of a variable.
func (s Summary) Resolve(name string) (string, error) {
	fn, ok := resolvers[name]
	if !ok {
		return "", fmt.Errorf("unknown variable: %s", name)
	}
	return fn(s), nil
}
