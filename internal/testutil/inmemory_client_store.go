package testutil

import (
	"context"

	"github.com/samber/lo"

	"github.com/quoteflow/quote-service/internal/domain/client"
)

// InMemoryClientStore implements client.Repository
type InMemoryClientStore struct {
	*InMemoryStore[*client.Client]
}

func NewInMemoryClientStore() *InMemoryClientStore {
	return &InMemoryClientStore{
		InMemoryStore: NewInMemoryStore[*client.Client](),
	}
}

func copyClient(c *client.Client) *client.Client {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}

func (s *InMemoryClientStore) Create(ctx context.Context, c *client.Client) error {
	return s.InMemoryStore.Create(ctx, c.ID, copyClient(c))
}

func (s *InMemoryClientStore) Get(ctx context.Context, id string) (*client.Client, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyClient(c), nil
}

func (s *InMemoryClientStore) Update(ctx context.Context, c *client.Client) error {
	return s.InMemoryStore.Update(ctx, c.ID, copyClient(c))
}

func (s *InMemoryClientStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func clientOwnerFilterFn(userID string) FilterFunc[*client.Client] {
	return func(_ context.Context, c *client.Client, _ interface{}) bool {
		return c.UserID == userID
	}
}

func (s *InMemoryClientStore) List(ctx context.Context, userID string) ([]*client.Client, error) {
	clients, err := s.InMemoryStore.List(ctx, nil, clientOwnerFilterFn(userID), func(a, b *client.Client) bool {
		return a.Name < b.Name
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(clients, func(c *client.Client, _ int) *client.Client {
		return copyClient(c)
	}), nil
}

func (s *InMemoryClientStore) Count(ctx context.Context, userID string) (int, error) {
	return s.InMemoryStore.Count(ctx, nil, clientOwnerFilterFn(userID))
}
