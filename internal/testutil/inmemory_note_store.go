package testutil

import (
	"context"

	"github.com/samber/lo"

	"github.com/quoteflow/quote-service/internal/domain/quotenote"
	"github.com/quoteflow/quote-service/internal/types"
)

// InMemoryNoteStore implements quotenote.Repository. It needs the quote store
// to resolve which quotes belong to a user for the unread listing.
type InMemoryNoteStore struct {
	*InMemoryStore[*quotenote.Note]

	quotes *InMemoryQuoteStore
}

func NewInMemoryNoteStore(quotes *InMemoryQuoteStore) *InMemoryNoteStore {
	return &InMemoryNoteStore{
		InMemoryStore: NewInMemoryStore[*quotenote.Note](),
		quotes:        quotes,
	}
}

func copyNote(n *quotenote.Note) *quotenote.Note {
	if n == nil {
		return nil
	}
	out := *n
	return &out
}

func (s *InMemoryNoteStore) Create(ctx context.Context, n *quotenote.Note) error {
	return s.InMemoryStore.Create(ctx, n.ID, copyNote(n))
}

func (s *InMemoryNoteStore) ListByQuote(ctx context.Context, quoteID string) ([]*quotenote.Note, error) {
	notes, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, n *quotenote.Note, _ interface{}) bool {
		return n.QuoteID == quoteID
	}, func(a, b *quotenote.Note) bool {
		return a.CreatedAt.Before(b.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(notes, func(n *quotenote.Note, _ int) *quotenote.Note {
		return copyNote(n)
	}), nil
}

func (s *InMemoryNoteStore) ListUnreadForUser(ctx context.Context, userID string) ([]*quotenote.Note, error) {
	owned, err := s.quotes.List(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]struct{}, len(owned))
	for _, q := range owned {
		ids[q.ID] = struct{}{}
	}

	notes, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, n *quotenote.Note, _ interface{}) bool {
		if n.AuthorType != types.NoteAuthorClient || n.Read {
			return false
		}
		_, ok := ids[n.QuoteID]
		return ok
	}, func(a, b *quotenote.Note) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(notes, func(n *quotenote.Note, _ int) *quotenote.Note {
		return copyNote(n)
	}), nil
}

func (s *InMemoryNoteStore) MarkRead(ctx context.Context, quoteID string) error {
	s.InMemoryStore.mu.Lock()
	defer s.InMemoryStore.mu.Unlock()

	for _, n := range s.InMemoryStore.items {
		if n.QuoteID == quoteID && n.AuthorType == types.NoteAuthorClient {
			n.Read = true
		}
	}
	return nil
}
