package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/cristianoliveira/rowswipe/internal/hooks"
	"github.com/cristianoliveira/rowswipe/internal/inbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempClient(t *testing.T) *storeClient {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inbox.db")
	return &storeClient{open: func() (*inbox.Store, error) { return inbox.Open(path) }}
}

func TestStoreClientRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := tempClient(t)

	n, err := c.SeedItems(ctx)
	require.NoError(t, err)
	assert.Positive(t, n)

	added, err := c.AddItem(ctx, inbox.Item{Kind: inbox.KindRecord, Title: "Permission slip"})
	require.NoError(t, err)
	assert.NotZero(t, added.ID)

	items, err := c.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, n+1)
	assert.Equal(t, "Permission slip", items[0].Title)

	again, err := c.SeedItems(ctx)
	require.NoError(t, err)
	assert.Zero(t, again)
}

func TestStoreClientOpenError(t *testing.T) {
	c := &storeClient{open: func() (*inbox.Store, error) { return inbox.Open("") }}
	_, err := c.ListItems(context.Background())
	require.Error(t, err)
}

func TestAddRunsPostAddHook(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	pointDir := filepath.Join(dir, hooks.PostAdd)
	require.NoError(t, os.MkdirAll(pointDir, 0o755))
	script := "#!/bin/sh\necho \"$ITEM_ID $ITEM_TITLE\" >> " + out + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(pointDir, "log.sh"), []byte(script), 0o755))

	c := tempClient(t)
	c.hooks = func() *hooks.Runner { return hooks.NewRunner(hooks.Config{Dir: dir}, nil) }
	added, err := c.AddItem(context.Background(), inbox.Item{Kind: inbox.KindRecord, Title: "Permission slip"})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%d Permission slip\n", added.ID), string(data))
}

func TestHookedStoreRunsHooksAfterActions(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	for _, point := range []string{hooks.PostRead, hooks.PostLeave, hooks.PostDelete} {
		pointDir := filepath.Join(dir, point)
		require.NoError(t, os.MkdirAll(pointDir, 0o755))
		script := "#!/bin/sh\necho \"$HOOK_POINT $ITEM_TITLE $ITEM_UNREAD_COUNT\" >> " + out + "\n"
		require.NoError(t, os.WriteFile(filepath.Join(pointDir, "log.sh"), []byte(script), 0o755))
	}

	ctx := context.Background()
	s, err := inbox.Open(filepath.Join(t.TempDir(), "inbox.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	a, err := s.Add(ctx, inbox.Item{Kind: inbox.KindConversation, Title: "Club", UnreadCount: 2})
	require.NoError(t, err)
	b, err := s.Add(ctx, inbox.Item{Kind: inbox.KindRecord, Title: "Note"})
	require.NoError(t, err)

	hs := &hookedStore{Store: s, hooks: hooks.NewRunner(hooks.Config{Dir: dir}, nil)}
	require.NoError(t, hs.MarkRead(ctx, a.ID))
	require.NoError(t, hs.Leave(ctx, a.ID))
	require.NoError(t, hs.Delete(ctx, b.ID))
	require.ErrorIs(t, hs.Delete(ctx, b.ID), inbox.ErrItemNotFound)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "post-read Club 0\npost-leave Club 0\npost-delete Note 0\n", string(data))
}
