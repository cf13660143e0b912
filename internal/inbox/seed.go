package inbox

import (
	"context"
	"fmt"
	"time"
)

var demoItems = []Item{
	{Kind: KindConversation, Title: "Class 4b parents", Preview: "Reminder: excursion forms are due Friday", UnreadCount: 3},
	{Kind: KindConversation, Title: "Ms. Okafor", Preview: "Thanks, see you at the parent evening", UnreadCount: 0},
	{Kind: KindRecord, Title: "Absence note 12 March", Preview: "Sick leave, 1 day"},
	{Kind: KindConversation, Title: "Football club", Preview: "Training moves to the gym on Tuesday", UnreadCount: 1},
	{Kind: KindRecord, Title: "Report card term 1", Preview: "Available for download"},
	{Kind: KindConversation, Title: "School office", Preview: "Your address change was processed", UnreadCount: 0},
}

// Seed fills an empty inbox with demo items and returns how many were added.
// A non-empty inbox is left untouched.
func (s *Store) Seed(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("inbox: seed: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	base := s.now()
	for i, item := range demoItems {
		// Spread timestamps so the list order matches the slice order.
		item.CreatedAt = base.Add(-time.Duration(i) * time.Hour)
		if _, err := s.Add(ctx, item); err != nil {
			return i, fmt.Errorf("inbox: seed: %w", err)
		}
	}
	return len(demoItems), nil
}
