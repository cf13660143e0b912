package main

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/rowswipe/internal/config"
	"github.com/cristianoliveira/rowswipe/internal/hooks"
	"github.com/cristianoliveira/rowswipe/internal/inbox"
	"github.com/cristianoliveira/rowswipe/internal/logging"
	"github.com/cristianoliveira/rowswipe/internal/tui"
)

// storeClient opens the configured inbox for each call. Commands are built
// before the configuration loads, so paths are read late.
type storeClient struct {
	open  func() (*inbox.Store, error)
	hooks func() *hooks.Runner
}

func newStoreClient() *storeClient {
	return &storeClient{
		open: func() (*inbox.Store, error) {
			return inbox.Open(config.Get("db_path", ""))
		},
		hooks: func() *hooks.Runner {
			return hooks.NewRunner(hooks.FromGlobalConfig(), nil)
		},
	}
}

func (c *storeClient) withStore(fn func(*inbox.Store) error) (err error) {
	s, err := c.open()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(s)
}

func (c *storeClient) runner() *hooks.Runner {
	if c.hooks == nil {
		return nil
	}
	return c.hooks()
}

func (c *storeClient) AddItem(ctx context.Context, item inbox.Item) (added inbox.Item, err error) {
	err = c.withStore(func(s *inbox.Store) error {
		added, err = s.Add(ctx, item)
		return err
	})
	if err != nil {
		return added, err
	}
	r := c.runner()
	defer r.Wait()
	if err := r.Run(ctx, hooks.PostAdd, hooks.ItemEnv(added)); err != nil {
		return added, fmt.Errorf("item %d added: %w", added.ID, err)
	}
	return added, nil
}

func (c *storeClient) ListItems(ctx context.Context) (items []inbox.Item, err error) {
	err = c.withStore(func(s *inbox.Store) error {
		items, err = s.List(ctx)
		return err
	})
	return items, err
}

func (c *storeClient) SeedItems(ctx context.Context) (n int, err error) {
	err = c.withStore(func(s *inbox.Store) error {
		n, err = s.Seed(ctx)
		return err
	})
	return n, err
}

func (c *storeClient) RunTUI(ctx context.Context, settings tui.Settings) error {
	r := c.runner()
	defer r.Wait()
	return c.withStore(func(s *inbox.Store) error {
		return tui.Run(ctx, &hookedStore{Store: s, hooks: r}, settings)
	})
}

// hookedStore runs the post-* hooks after successful row actions. Hook
// failures are logged only: the row change already happened.
type hookedStore struct {
	*inbox.Store
	hooks *hooks.Runner
}

func (s *hookedStore) MarkRead(ctx context.Context, id int64) error {
	return s.act(ctx, hooks.PostRead, id, s.Store.MarkRead)
}

func (s *hookedStore) Leave(ctx context.Context, id int64) error {
	return s.act(ctx, hooks.PostLeave, id, s.Store.Leave)
}

func (s *hookedStore) Delete(ctx context.Context, id int64) error {
	return s.act(ctx, hooks.PostDelete, id, s.Store.Delete)
}

func (s *hookedStore) act(ctx context.Context, point string, id int64, fn func(context.Context, int64) error) error {
	// Read first: deleted items cannot be described afterwards.
	item, getErr := s.Get(ctx, id)
	if err := fn(ctx, id); err != nil {
		return err
	}
	if getErr != nil {
		item = inbox.Item{ID: id}
	}
	if point == hooks.PostRead {
		item.UnreadCount = 0
	}
	if err := s.hooks.Run(ctx, point, hooks.ItemEnv(item)); err != nil {
		logging.Warn("hook failed after row action", "point", point, "item", id, "error", err)
	}
	return nil
}

var client = newStoreClient()
