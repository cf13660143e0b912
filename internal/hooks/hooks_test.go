package hooks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cristianoliveira/rowswipe/internal/inbox"
	"github.com/cristianoliveira/rowswipe/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type warnLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *warnLogger) Debug(string, ...any) {}
func (l *warnLogger) Info(string, ...any)  {}
func (l *warnLogger) Error(string, ...any) {}

func (l *warnLogger) Warn(msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprint(append([]any{msg}, args...)...))
}

func (l *warnLogger) With(...any) logging.Logger { return l }
func (l *warnLogger) Shutdown() error            { return nil }

func (l *warnLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.warns)
}

func writeScript(t *testing.T, dir, point, name, body string, mode os.FileMode) {
	t.Helper()
	pointDir := filepath.Join(dir, point)
	require.NoError(t, os.MkdirAll(pointDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pointDir, name), []byte("#!/bin/sh\n"+body+"\n"), mode))
}

func newRunner(t *testing.T, cfg Config) (*Runner, *warnLogger) {
	t.Helper()
	log := &warnLogger{}
	return NewRunner(cfg, log), log
}

func TestRunWithoutDirIsNoop(t *testing.T) {
	r, _ := newRunner(t, Config{})
	assert.NoError(t, r.Run(context.Background(), PostAdd, nil))

	var nilRunner *Runner
	assert.NoError(t, nilRunner.Run(context.Background(), PostAdd, nil))
	nilRunner.Wait()
}

func TestRunPassesItemEnvironment(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writeScript(t, dir, PostDelete, "10-record.sh",
		fmt.Sprintf(`echo "$HOOK_POINT $ITEM_ID $ITEM_KIND $ITEM_TITLE $ITEM_UNREAD_COUNT" >> %q`, out), 0o755)

	r, _ := newRunner(t, Config{Dir: dir, FailureMode: FailWarn})
	item := inbox.Item{ID: 7, Kind: inbox.KindConversation, Title: "Class 4b", UnreadCount: 2}
	require.NoError(t, r.Run(context.Background(), PostDelete, ItemEnv(item)))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "post-delete 7 conversation Class 4b 2\n", string(data))
}

func TestRunOrderAndSkipsNonExecutable(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writeScript(t, dir, PostAdd, "20-second.sh", fmt.Sprintf("echo second >> %q", out), 0o755)
	writeScript(t, dir, PostAdd, "10-first.sh", fmt.Sprintf("echo first >> %q", out), 0o755)
	writeScript(t, dir, PostAdd, "15-disabled.sh", fmt.Sprintf("echo disabled >> %q", out), 0o644)

	r, _ := newRunner(t, Config{Dir: dir})
	require.NoError(t, r.Run(context.Background(), PostAdd, nil))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
}

func TestFailureModes(t *testing.T) {
	tests := []struct {
		mode    string
		wantErr bool
		warns   int
	}{
		{FailAbort, true, 1},
		{FailWarn, false, 1},
		{FailIgnore, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			dir := t.TempDir()
			out := filepath.Join(t.TempDir(), "out")
			writeScript(t, dir, PostLeave, "10-fail.sh", "echo nope; exit 3", 0o755)
			writeScript(t, dir, PostLeave, "20-after.sh", fmt.Sprintf("echo ran >> %q", out), 0o755)

			r, log := newRunner(t, Config{Dir: dir, FailureMode: tt.mode})
			err := r.Run(context.Background(), PostLeave, nil)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "hook 10-fail.sh failed")
				assert.NoFileExists(t, out, "abort stops later scripts")
			} else {
				require.NoError(t, err)
				assert.FileExists(t, out)
			}
			assert.Equal(t, tt.warns, log.count())
		})
	}
}

func TestTimeoutKillsHook(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, PostRead, "slow.sh", "sleep 5", 0o755)

	r, log := newRunner(t, Config{Dir: dir, FailureMode: FailAbort, Timeout: 100 * time.Millisecond})
	start := time.Now()
	err := r.Run(context.Background(), PostRead, nil)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 4*time.Second)
	assert.Equal(t, 1, log.count())
}

func TestAsyncHooks(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writeScript(t, dir, PostAdd, "async.sh", fmt.Sprintf("sleep 0.2; echo done >> %q", out), 0o755)

	r, _ := newRunner(t, Config{Dir: dir, Async: true, FailureMode: FailAbort})
	require.NoError(t, r.Run(context.Background(), PostAdd, nil))
	r.Wait()

	assert.Zero(t, r.Pending())
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "done\n", string(data))
}

func TestMaxAsyncHooks(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 3; i++ {
		writeScript(t, dir, PostAdd, fmt.Sprintf("%d.sh", i), "sleep 0.3", 0o755)
	}

	r, log := newRunner(t, Config{Dir: dir, Async: true, MaxAsync: 2})
	require.NoError(t, r.Run(context.Background(), PostAdd, nil))
	assert.LessOrEqual(t, r.Pending(), 2)
	r.Wait()

	require.Equal(t, 1, log.count())
	assert.True(t, strings.HasPrefix(log.warns[0], "too many async hooks pending"))
}

func TestItemEnv(t *testing.T) {
	env := ItemEnv(inbox.Item{ID: 3, Kind: inbox.KindRecord, Title: "Absence note"})
	assert.Equal(t, map[string]string{
		"ITEM_ID":           "3",
		"ITEM_KIND":         "record",
		"ITEM_TITLE":        "Absence note",
		"ITEM_UNREAD_COUNT": "0",
	}, env)
}
