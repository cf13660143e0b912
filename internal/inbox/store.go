// Package inbox stores the conversations and records shown in the list.
package inbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Kind distinguishes the two row types of the inbox.
type Kind string

const (
	KindConversation Kind = "conversation"
	KindRecord       Kind = "record"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindConversation || k == KindRecord
}

// Item is one row of the inbox.
type Item struct {
	ID          int64
	Kind        Kind
	Title       string
	Preview     string
	UnreadCount int
	CreatedAt   time.Time
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS items (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	kind         TEXT    NOT NULL CHECK (kind IN ('conversation', 'record')),
	title        TEXT    NOT NULL,
	preview      TEXT    NOT NULL DEFAULT '',
	unread_count INTEGER NOT NULL DEFAULT 0 CHECK (unread_count >= 0),
	state        TEXT    NOT NULL DEFAULT 'active' CHECK (state IN ('active', 'left')),
	created_at   TEXT    NOT NULL,
	updated_at   TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_items_state_created ON items(state, created_at);
`

// Fixed width so that created_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store is a SQLite-backed inbox.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates or opens the inbox database at dbPath.
func Open(dbPath string) (*Store, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("inbox: db path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("inbox: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("inbox: open db: %w", err)
	}
	// One connection keeps PRAGMAs and writes on the same handle.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("inbox: set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("inbox: create schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Add inserts item and returns it with its ID and creation time filled in.
// A zero CreatedAt is replaced with the current time.
func (s *Store) Add(ctx context.Context, item Item) (Item, error) {
	if err := validate(item); err != nil {
		return Item{}, err
	}
	now := s.now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO items (kind, title, preview, unread_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		string(item.Kind), item.Title, item.Preview, item.UnreadCount,
		item.CreatedAt.UTC().Format(timeLayout), now.Format(timeLayout))
	if err != nil {
		return Item{}, fmt.Errorf("inbox: add item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Item{}, fmt.Errorf("inbox: add item: %w", err)
	}
	item.ID = id
	item.CreatedAt = item.CreatedAt.UTC()
	return item, nil
}

func validate(item Item) error {
	switch {
	case !item.Kind.Valid():
		return fmt.Errorf("inbox: %w: unknown kind %q", ErrInvalidItem, item.Kind)
	case strings.TrimSpace(item.Title) == "":
		return fmt.Errorf("inbox: %w: title cannot be empty", ErrInvalidItem)
	case item.UnreadCount < 0:
		return fmt.Errorf("inbox: %w: negative unread count", ErrInvalidItem)
	case item.Kind == KindRecord && item.UnreadCount > 0:
		return fmt.Errorf("inbox: %w: records have no unread messages", ErrInvalidItem)
	}
	return nil
}

// List returns the active items, newest first.
func (s *Store) List(ctx context.Context) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, title, preview, unread_count, created_at
		 FROM items WHERE state = 'active'
		 ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("inbox: list items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("inbox: list items: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("inbox: list items: %w", err)
	}
	return items, nil
}

// Get returns the active item with the given ID.
func (s *Store) Get(ctx context.Context, id int64) (Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, kind, title, preview, unread_count, created_at
		 FROM items WHERE id = ? AND state = 'active'`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Item{}, fmt.Errorf("inbox: get item: %w: id %d", ErrItemNotFound, id)
	}
	if err != nil {
		return Item{}, fmt.Errorf("inbox: get item: %w", err)
	}
	return item, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (Item, error) {
	var (
		item    Item
		kind    string
		created string
	)
	if err := row.Scan(&item.ID, &kind, &item.Title, &item.Preview, &item.UnreadCount, &created); err != nil {
		return Item{}, err
	}
	item.Kind = Kind(kind)
	t, err := time.Parse(timeLayout, created)
	if err != nil {
		return Item{}, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	item.CreatedAt = t
	return item, nil
}

// MarkRead clears the unread count of a conversation.
func (s *Store) MarkRead(ctx context.Context, id int64) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if item.Kind != KindConversation {
		return fmt.Errorf("inbox: mark read: %w: %s", ErrUnsupportedKind, item.Kind)
	}
	if item.UnreadCount == 0 {
		return fmt.Errorf("inbox: mark read: %w: id %d", ErrAlreadyRead, id)
	}
	return s.update(ctx, "mark read", id,
		`UPDATE items SET unread_count = 0, updated_at = ? WHERE id = ? AND state = 'active'`)
}

// Leave removes the current user from a conversation. The row stays in the
// database but is no longer listed.
func (s *Store) Leave(ctx context.Context, id int64) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if item.Kind != KindConversation {
		return fmt.Errorf("inbox: leave: %w: %s", ErrUnsupportedKind, item.Kind)
	}
	return s.update(ctx, "leave", id,
		`UPDATE items SET state = 'left', updated_at = ? WHERE id = ? AND state = 'active'`)
}

// Delete removes an item permanently.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ? AND state = 'active'`, id)
	if err != nil {
		return fmt.Errorf("inbox: delete: %w", err)
	}
	return expectOne(res, "delete", id)
}

func (s *Store) update(ctx context.Context, op string, id int64, query string) error {
	res, err := s.db.ExecContext(ctx, query, s.now().Format(timeLayout), id)
	if err != nil {
		return fmt.Errorf("inbox: %s: %w", op, err)
	}
	return expectOne(res, op, id)
}

func expectOne(res sql.Result, op string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("inbox: %s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("inbox: %s: %w: id %d", op, ErrItemNotFound, id)
	}
	return nil
}
