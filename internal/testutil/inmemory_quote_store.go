package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/quoteflow/quote-service/internal/domain/quote"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/types"
)

// InMemoryQuoteStore implements quote.Repository
type InMemoryQuoteStore struct {
	*InMemoryStore[*quote.Quote]

	mu    sync.Mutex
	items map[string][]*quote.LineItem
}

func NewInMemoryQuoteStore() *InMemoryQuoteStore {
	return &InMemoryQuoteStore{
		InMemoryStore: NewInMemoryStore[*quote.Quote](),
		items:         make(map[string][]*quote.LineItem),
	}
}

func copyQuote(q *quote.Quote) *quote.Quote {
	if q == nil {
		return nil
	}
	out := *q
	out.LineItems = lo.Map(q.LineItems, func(li *quote.LineItem, _ int) *quote.LineItem {
		c := *li
		return &c
	})
	return &out
}

func (s *InMemoryQuoteStore) Create(ctx context.Context, q *quote.Quote) error {
	return s.InMemoryStore.Create(ctx, q.ID, copyQuote(q))
}

func (s *InMemoryQuoteStore) Get(ctx context.Context, id string) (*quote.Quote, error) {
	q, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyQuote(q), nil
}

func (s *InMemoryQuoteStore) GetByShareToken(ctx context.Context, token string) (*quote.Quote, error) {
	matches, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, q *quote.Quote, _ interface{}) bool {
		return q.ShareToken != "" && q.ShareToken == token
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ierr.NewError("quote not found").Mark(ierr.ErrNotFound)
	}
	return copyQuote(matches[0]), nil
}

func (s *InMemoryQuoteStore) Update(ctx context.Context, q *quote.Quote) error {
	return s.InMemoryStore.Update(ctx, q.ID, copyQuote(q))
}

func (s *InMemoryQuoteStore) Delete(ctx context.Context, id string) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
	return nil
}

func quoteFilterFn(userID string, filter *types.QuoteFilter) FilterFunc[*quote.Quote] {
	return func(_ context.Context, q *quote.Quote, _ interface{}) bool {
		if q.UserID != userID {
			return false
		}
		if filter == nil {
			return true
		}
		if st := filter.StatusOrEmpty(); st != "" && q.Status != st {
			return false
		}
		if filter.Currency != "" && q.Currency != filter.Currency {
			return false
		}
		return true
	}
}

func (s *InMemoryQuoteStore) List(ctx context.Context, userID string, filter *types.QuoteFilter) ([]*quote.Quote, error) {
	quotes, err := s.InMemoryStore.List(ctx, nil, quoteFilterFn(userID, filter), func(a, b *quote.Quote) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(quotes, func(q *quote.Quote, _ int) *quote.Quote {
		return copyQuote(q)
	}), nil
}

func (s *InMemoryQuoteStore) Count(ctx context.Context, userID string, filter *types.QuoteFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, nil, quoteFilterFn(userID, filter))
}

func (s *InMemoryQuoteStore) CountCreatedSince(ctx context.Context, userID string, since time.Time) (int, error) {
	return s.InMemoryStore.Count(ctx, nil, func(_ context.Context, q *quote.Quote, _ interface{}) bool {
		return q.UserID == userID && !q.CreatedAt.Before(since)
	})
}

func (s *InMemoryQuoteStore) CountByClient(ctx context.Context, clientID string) (int, error) {
	return s.InMemoryStore.Count(ctx, nil, func(_ context.Context, q *quote.Quote, _ interface{}) bool {
		return q.ClientID == clientID
	})
}

func (s *InMemoryQuoteStore) UpdateStatusIfCurrent(ctx context.Context, id string, from, to types.QuoteStatus, at time.Time) (bool, error) {
	s.InMemoryStore.mu.Lock()
	defer s.InMemoryStore.mu.Unlock()

	q, exists := s.InMemoryStore.items[id]
	if !exists {
		return false, ierr.NewError("quote not found").Mark(ierr.ErrNotFound)
	}
	if q.Status != from {
		return false, nil
	}
	q.Status = to
	q.UpdatedAt = at
	return true, nil
}

func (s *InMemoryQuoteStore) Accept(ctx context.Context, id string, acceptedName string, at time.Time) (bool, error) {
	s.InMemoryStore.mu.Lock()
	defer s.InMemoryStore.mu.Unlock()

	q, exists := s.InMemoryStore.items[id]
	if !exists {
		return false, ierr.NewError("quote not found").Mark(ierr.ErrNotFound)
	}
	if q.Status != types.QuoteStatusSent {
		return false, nil
	}
	q.Status = types.QuoteStatusAccepted
	q.AcceptedName = acceptedName
	q.AcceptedAt = &at
	q.UpdatedAt = at
	return true, nil
}

func (s *InMemoryQuoteStore) RecordView(ctx context.Context, id string, at time.Time) error {
	s.InMemoryStore.mu.Lock()
	defer s.InMemoryStore.mu.Unlock()

	q, exists := s.InMemoryStore.items[id]
	if !exists {
		return ierr.NewError("quote not found").Mark(ierr.ErrNotFound)
	}
	if q.ViewedAt == nil {
		q.ViewedAt = &at
	}
	q.ViewCount++
	return nil
}

func (s *InMemoryQuoteStore) ReplaceLineItems(ctx context.Context, quoteID string, items []*quote.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[quoteID] = lo.Map(items, func(li *quote.LineItem, _ int) *quote.LineItem {
		c := *li
		c.QuoteID = quoteID
		return &c
	})
	return nil
}

func (s *InMemoryQuoteStore) ListLineItems(ctx context.Context, quoteID string) ([]*quote.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return lo.Map(s.items[quoteID], func(li *quote.LineItem, _ int) *quote.LineItem {
		c := *li
		return &c
	}), nil
}

func (s *InMemoryQuoteStore) Clear() {
	s.InMemoryStore.Clear()
	s.mu.Lock()
	s.items = make(map[string][]*quote.LineItem)
	s.mu.Unlock()
}
