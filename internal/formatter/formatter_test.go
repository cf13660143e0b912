package formatter

import (
	"testing"

	"github.com/cristianoliveira/rowswipe/internal/inbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() Summary {
	return Summarize([]inbox.Item{
		{ID: 3, Kind: inbox.KindConversation, Title: "Football club", UnreadCount: 1},
		{ID: 2, Kind: inbox.KindRecord, Title: "Absence note"},
		{ID: 1, Kind: inbox.KindConversation, Title: "Class 4b parents", UnreadCount: 3},
	})
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{
		TotalCount:        3,
		UnreadCount:       4,
		UnreadItems:       2,
		ConversationCount: 2,
		RecordCount:       1,
		LatestTitle:       "Football club",
	}, sample())
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestParse(t *testing.T) {
	assert.Equal(t, []string{"unread-count", "latest-title"}, Parse("{{unread-count}} {{latest-title}} {{unread-count}}"))
	assert.Empty(t, Parse("no variables"))
}

func TestRender(t *testing.T) {
	tests := []struct {
		template string
		want     string
		wantErr  string
	}{
		{"[{{unread-count}}] {{latest-title}}", "[4] Football club", ""},
		{"{{has-unread}}/{{total-count}}", "true/3", ""},
		{"plain", "plain", ""},
		{"{{unread-count}", "", "mismatched variable delimiters"},
		{"{{sender}}", "", "unknown variable: sender"},
	}
	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			got, err := Render(tt.template, sample())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEveryVariableResolves(t *testing.T) {
	for _, name := range Variables() {
		_, err := sample().Resolve(name)
		assert.NoError(t, err, name)
	}
	_, err := sample().Resolve("nope")
	assert.Error(t, err)
}

func TestPresets(t *testing.T) {
	r := NewPresetRegistry()
	names := []string{}
	for _, p := range r.List() {
		names = append(names, p.Name)
		_, err := Render(p.Template, sample())
		assert.NoError(t, err, p.Name)
	}
	assert.Equal(t, []string{"compact", "detailed", "count-only", "json"}, names)

	p, err := r.Get("json")
	require.NoError(t, err)
	out, err := Render(p.Template, sample())
	require.NoError(t, err)
	assert.JSONEq(t, `{"unread":4,"total":3,"conversations":2,"records":1}`, out)

	_, err = r.Get("levels")
	assert.Error(t, err)
}

func TestRegister(t *testing.T) {
	r := NewPresetRegistry()
	require.NoError(t, r.Register(Preset{Name: "compact", Template: "{{unread-count}}!"}))
	p, err := r.Get("compact")
	require.NoError(t, err)
	assert.Equal(t, "{{unread-count}}!", p.Template)
	assert.Len(t, r.List(), 4, "replacing keeps the order")

	assert.Error(t, r.Register(Preset{Template: "x"}))
	assert.Error(t, r.Register(Preset{Name: "empty"}))
	assert.Error(t, r.Register(Preset{Name: "bad", Template: "{{nope}}"}))
}
