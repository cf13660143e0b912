package search

import (
	"strings"

	"github.com/cristianoliveira/rowswipe/internal/inbox"
)

// TokenProvider splits the query on whitespace; every token must match
// some field. The tokens "read" and "unread" filter on unread state, and
// "conversation" and "record" filter on kind.
type TokenProvider struct {
	opts Options
}

// NewTokenProvider creates a new token search provider.
func NewTokenProvider(opts ...Option) Provider {
	return &TokenProvider{opts: applyOptions(opts)}
}

// Match returns true if item passes the special tokens and every text token
// is found in at least one field.
func (p *TokenProvider) Match(item inbox.Item, query string) bool {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return true
	}

	var readFilter, unreadFilter bool
	var kind inbox.Kind
	var text []string
	for _, token := range tokens {
		switch lower := strings.ToLower(token); lower {
		case "read":
			readFilter = true
		case "unread":
			unreadFilter = true
		case string(inbox.KindConversation), string(inbox.KindRecord):
			kind = inbox.Kind(lower)
		default:
			if p.opts.CaseInsensitive {
				token = lower
			}
			text = append(text, token)
		}
	}

	// Both read and unread cancel out.
	if readFilter && unreadFilter {
		readFilter, unreadFilter = false, false
	}
	if readFilter && item.UnreadCount > 0 {
		return false
	}
	if unreadFilter && item.UnreadCount == 0 {
		return false
	}
	if kind != "" && item.Kind != kind {
		return false
	}

	for _, token := range text {
		if !p.matchToken(item, token) {
			return false
		}
	}
	return true
}

func (p *TokenProvider) matchToken(item inbox.Item, token string) bool {
	for _, field := range p.opts.Fields {
		value := fieldValue(item, field)
		if value == "" {
			continue
		}
		if p.opts.CaseInsensitive {
			value = strings.ToLower(value)
		}
		if strings.Contains(value, token) {
			return true
		}
	}
	return false
}

// Name returns the provider name.
func (p *TokenProvider) Name() string {
	return "token"
}
