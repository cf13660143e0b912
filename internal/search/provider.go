// Package search matches inbox items against a query. Substring, regex and
// token strategies share the Provider interface.
package search

import (
	"fmt"

	"github.com/cristianoliveira/rowswipe/internal/inbox"
)

// Provider matches items against a query.
type Provider interface {
	// Match reports whether item matches query. An empty query matches
	// everything.
	Match(item inbox.Item, query string) bool

	// Name returns the provider name.
	Name() string
}

// Options configures a provider.
type Options struct {
	CaseInsensitive bool
	Fields          []string // "title", "preview", "kind"
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{
		CaseInsensitive: true,
		Fields:          []string{"title", "preview"},
	}
}

// Option modifies search options.
type Option func(*Options)

// WithCaseInsensitive sets case-insensitive search.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

// WithFields sets the fields to search in.
func WithFields(fields []string) Option {
	return func(o *Options) {
		o.Fields = fields
	}
}

func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// fieldValue returns the text of a named field.
func fieldValue(item inbox.Item, field string) string {
	switch field {
	case "title":
		return item.Title
	case "preview":
		return item.Preview
	case "kind":
		return string(item.Kind)
	default:
		return ""
	}
}

// New returns the provider called name: substring, regex or token.
func New(name string, opts ...Option) (Provider, error) {
	switch name {
	case "substring":
		return NewSubstringProvider(opts...), nil
	case "regex":
		return NewRegexProvider(opts...), nil
	case "token", "":
		return NewTokenProvider(opts...), nil
	default:
		return nil, fmt.Errorf("search: unknown provider %q", name)
	}
}

// Filter returns the items p matches, in order.
func Filter(p Provider, items []inbox.Item, query string) []inbox.Item {
	out := make([]inbox.Item, 0, len(items))
	for _, item := range items {
		if p.Match(item, query) {
			out = append(out, item)
		}
	}
	return out
}
