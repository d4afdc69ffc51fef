package quote

import (
	"context"
	"time"

	"github.com/quoteflow/quote-service/internal/types"
)

// Repository defines the interface for quote persistence.
type Repository interface {
	// Quote operations
	Create(ctx context.Context, q *Quote) error
	Get(ctx context.Context, id string) (*Quote, error)
	GetByShareToken(ctx context.Context, token string) (*Quote, error)
	Update(ctx context.Context, q *Quote) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, userID string, filter *types.QuoteFilter) ([]*Quote, error)
	Count(ctx context.Context, userID string, filter *types.QuoteFilter) (int, error)
	// CountCreatedSince counts the user's quotes created at or after the given
	// instant. Used for the monthly free-tier quota.
	CountCreatedSince(ctx context.Context, userID string, since time.Time) (int, error)
	// CountByClient counts quotes referencing a client.
	CountByClient(ctx context.Context, clientID string) (int, error)

	// UpdateStatusIfCurrent transitions the quote's status only if it still has
	// the expected current status, returning false when another writer won.
	UpdateStatusIfCurrent(ctx context.Context, id string, from, to types.QuoteStatus, at time.Time) (bool, error)

	// Accept atomically moves a sent quote to accepted and records who accepted
	// and when. Returns false without error when the quote was not in sent
	// status, so a repeat accept is a no-op.
	Accept(ctx context.Context, id string, acceptedName string, at time.Time) (bool, error)

	// RecordView increments the view counter and stamps first-view time.
	RecordView(ctx context.Context, id string, at time.Time) error

	// Line item operations
	ReplaceLineItems(ctx context.Context, quoteID string, items []*LineItem) error
	ListLineItems(ctx context.Context, quoteID string) ([]*LineItem, error)
}
