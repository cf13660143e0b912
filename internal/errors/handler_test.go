package errors

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingOutput struct {
	calls []string
}

func (r *recordingOutput) Error(msgs ...string)   { r.calls = append(r.calls, "error:"+msgs[0]) }
func (r *recordingOutput) Warning(msgs ...string) { r.calls = append(r.calls, "warning:"+msgs[0]) }
func (r *recordingOutput) Info(msgs ...string)    { r.calls = append(r.calls, "info:"+msgs[0]) }
func (r *recordingOutput) Success(msgs ...string) { r.calls = append(r.calls, "success:"+msgs[0]) }

func TestCLIHandlerForwards(t *testing.T) {
	out := &recordingOutput{}
	h := NewCLIHandler(out)

	h.Error("e")
	h.Warning("w")
	h.Info("i")
	h.Success("s")

	assert.Equal(t, []string{"error:e", "warning:w", "info:i", "success:s"}, out.calls)
}

func TestReport(t *testing.T) {
	out := &recordingOutput{}
	h := NewCLIHandler(out)

	assert.False(t, Report(h, "delete", nil))
	assert.Empty(t, out.calls)

	assert.True(t, Report(h, "delete", fmt.Errorf("row 3: %w", errors.New("locked"))))
	assert.Equal(t, []string{"error:delete: row 3: locked"}, out.calls)
}

func TestTUIHandlerHistory(t *testing.T) {
	var seen []Message
	h := NewTUIHandler(func(msg Message) { seen = append(seen, msg) })

	_, ok := h.Latest()
	assert.False(t, ok)

	h.Info("loaded")
	h.Error("mark read failed")

	latest, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, "mark read failed", latest.Text)
	assert.Equal(t, MessageTypeError, latest.Type)
	assert.Len(t, seen, 2)
	assert.Len(t, h.All(), 2)

	h.Clear()
	assert.Empty(t, h.All())
}

func TestTUIHandlerCapsHistory(t *testing.T) {
	h := NewTUIHandler(nil)
	for i := 0; i < maxMessages+5; i++ {
		h.Warning(fmt.Sprint(i))
	}
	all := h.All()
	require.Len(t, all, maxMessages)
	assert.Equal(t, "5", all[0].Text)
}

func TestTUIHandlerCurrentExpires(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	h := NewTUIHandler(nil)
	h.now = func() time.Time { return now }

	h.Success("deleted")
	msg, ok := h.Current(3 * time.Second)
	require.True(t, ok)
	assert.Equal(t, "deleted", msg.Text)

	now = now.Add(4 * time.Second)
	_, ok = h.Current(3 * time.Second)
	assert.False(t, ok)
}
