package testutil

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/quoteflow/quote-service/internal/domain/apikey"
	ierr "github.com/quoteflow/quote-service/internal/errors"
)

// InMemoryAPIKeyStore implements apikey.Repository
type InMemoryAPIKeyStore struct {
	*InMemoryStore[*apikey.APIKey]
}

func NewInMemoryAPIKeyStore() *InMemoryAPIKeyStore {
	return &InMemoryAPIKeyStore{
		InMemoryStore: NewInMemoryStore[*apikey.APIKey](),
	}
}

func copyAPIKey(k *apikey.APIKey) *apikey.APIKey {
	if k == nil {
		return nil
	}
	out := *k
	return &out
}

func (s *InMemoryAPIKeyStore) Create(ctx context.Context, k *apikey.APIKey) error {
	return s.InMemoryStore.Create(ctx, k.ID, copyAPIKey(k))
}

func (s *InMemoryAPIKeyStore) Get(ctx context.Context, id string) (*apikey.APIKey, error) {
	k, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyAPIKey(k), nil
}

func (s *InMemoryAPIKeyStore) GetByHashedKey(ctx context.Context, hashedKey string) (*apikey.APIKey, error) {
	matches, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, k *apikey.APIKey, _ interface{}) bool {
		return k.HashedKey == hashedKey
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ierr.NewError("api key not found").Mark(ierr.ErrNotFound)
	}
	return copyAPIKey(matches[0]), nil
}

func (s *InMemoryAPIKeyStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryAPIKeyStore) List(ctx context.Context, userID string) ([]*apikey.APIKey, error) {
	keys, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, k *apikey.APIKey, _ interface{}) bool {
		return k.UserID == userID
	}, func(a, b *apikey.APIKey) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(keys, func(k *apikey.APIKey, _ int) *apikey.APIKey {
		return copyAPIKey(k)
	}), nil
}

func (s *InMemoryAPIKeyStore) TouchLastUsed(ctx context.Context, id string, at time.Time) error {
	s.InMemoryStore.mu.Lock()
	defer s.InMemoryStore.mu.Unlock()

	k, exists := s.InMemoryStore.items[id]
	if !exists {
		return ierr.NewError("api key not found").Mark(ierr.ErrNotFound)
	}
	k.LastUsedAt = &at
	return nil
}
