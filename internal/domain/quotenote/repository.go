package quotenote

import "context"

// Repository defines the interface for quote note persistence.
type Repository interface {
	Create(ctx context.Context, n *Note) error
	ListByQuote(ctx context.Context, quoteID string) ([]*Note, error)
	// ListUnreadForUser returns unread client notes across all of the user's
	// quotes, newest first. Backs the dashboard notification poller.
	ListUnreadForUser(ctx context.Context, userID string) ([]*Note, error)
	MarkRead(ctx context.Context, quoteID string) error
}
