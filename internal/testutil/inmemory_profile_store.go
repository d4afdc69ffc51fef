package testutil

import (
	"context"
	"time"

	ierr "github.com/quoteflow/quote-service/internal/errors"

	"github.com/quoteflow/quote-service/internal/domain/profile"
	"github.com/quoteflow/quote-service/internal/types"
)

// InMemoryProfileStore implements profile.Repository
type InMemoryProfileStore struct {
	*InMemoryStore[*profile.Profile]
}

func NewInMemoryProfileStore() *InMemoryProfileStore {
	return &InMemoryProfileStore{
		InMemoryStore: NewInMemoryStore[*profile.Profile](),
	}
}

func copyProfile(p *profile.Profile) *profile.Profile {
	if p == nil {
		return nil
	}
	out := *p
	return &out
}

func (s *InMemoryProfileStore) Create(ctx context.Context, p *profile.Profile) error {
	return s.InMemoryStore.Create(ctx, p.ID, copyProfile(p))
}

func (s *InMemoryProfileStore) Get(ctx context.Context, id string) (*profile.Profile, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyProfile(p), nil
}

func (s *InMemoryProfileStore) GetByEmail(ctx context.Context, email string) (*profile.Profile, error) {
	matches, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, p *profile.Profile, _ interface{}) bool {
		return p.Email == email
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ierr.NewError("profile not found").Mark(ierr.ErrNotFound)
	}
	return copyProfile(matches[0]), nil
}

func (s *InMemoryProfileStore) Update(ctx context.Context, p *profile.Profile) error {
	return s.InMemoryStore.Update(ctx, p.ID, copyProfile(p))
}

func (s *InMemoryProfileStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryProfileStore) UpdatePlan(ctx context.Context, id string, plan types.PlanTier, stripeSubscriptionID string) error {
	s.InMemoryStore.mu.Lock()
	defer s.InMemoryStore.mu.Unlock()

	p, exists := s.InMemoryStore.items[id]
	if !exists {
		return ierr.NewError("profile not found").Mark(ierr.ErrNotFound)
	}
	p.Plan = plan
	p.StripeSubscriptionID = stripeSubscriptionID
	p.UpdatedAt = time.Now().UTC()
	return nil
}
