package search

import (
	"testing"

	"github.com/cristianoliveira/rowswipe/internal/inbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items() []inbox.Item {
	return []inbox.Item{
		{ID: 1, Kind: inbox.KindConversation, Title: "Class 4b parents", Preview: "Excursion forms due Friday", UnreadCount: 3},
		{ID: 2, Kind: inbox.KindRecord, Title: "Absence note", Preview: "Sick leave, 1 day"},
		{ID: 3, Kind: inbox.KindConversation, Title: "Football club", Preview: "Training moves to the gym"},
	}
}

func ids(list []inbox.Item) []int64 {
	out := []int64{}
	for _, item := range list {
		out = append(out, item.ID)
	}
	return out
}

func TestSubstringProvider(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		query string
		want  []int64
	}{
		{"empty query matches all", nil, "", []int64{1, 2, 3}},
		{"title", nil, "club", []int64{3}},
		{"preview", nil, "friday", []int64{1}},
		{"case sensitive", []Option{WithCaseInsensitive(false)}, "friday", []int64{}},
		{"kind field", []Option{WithFields([]string{"kind"})}, "record", []int64{2}},
		{"unknown field", []Option{WithFields([]string{"sender"})}, "a", []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewSubstringProvider(tt.opts...)
			assert.Equal(t, tt.want, ids(Filter(p, items(), tt.query)))
		})
	}
}

func TestRegexProvider(t *testing.T) {
	p := NewRegexProvider()
	assert.Equal(t, []int64{1, 3}, ids(Filter(p, items(), `^(class|football)`)))
	assert.Equal(t, []int64{}, ids(Filter(p, items(), `([`)))

	_, err := p.(*RegexProvider).Compile(`([`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pattern")
}

func TestRegexProviderCachesPatterns(t *testing.T) {
	p := NewRegexProvider().(*RegexProvider)
	first, err := p.Compile("note")
	require.NoError(t, err)
	second, err := p.Compile("note")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestTokenProvider(t *testing.T) {
	tests := []struct {
		query string
		want  []int64
	}{
		{"", []int64{1, 2, 3}},
		{"unread", []int64{1}},
		{"read", []int64{2, 3}},
		{"read unread", []int64{1, 2, 3}},
		{"conversation", []int64{1, 3}},
		{"record leave", []int64{2}},
		{"class forms", []int64{1}},
		{"class gym", []int64{}},
		{"unread football", []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(NewTokenProvider(), items(), tt.query)))
		})
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"substring", "regex", "token"} {
		p, err := New(name)
		require.NoError(t, err)
		assert.Equal(t, name, p.Name())
	}
	p, err := New("")
	require.NoError(t, err)
	assert.Equal(t, "token", p.Name())

	_, err = New("fuzzy")
	require.Error(t, err)
}
