package inbox

import "errors"

var (
	// ErrItemNotFound indicates that no active item has the given ID.
	ErrItemNotFound = errors.New("item not found")
	// ErrInvalidItem indicates an item that cannot be stored.
	ErrInvalidItem = errors.New("invalid item")
	// ErrUnsupportedKind indicates an operation the item's kind does not offer,
	// e.g. leaving a record.
	ErrUnsupportedKind = errors.New("operation not supported for item kind")
	// ErrAlreadyRead indicates a mark-read on an item without unread messages.
	ErrAlreadyRead = errors.New("item already read")
)
