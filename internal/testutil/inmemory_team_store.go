package testutil

import (
	"context"
	"sync"

	"github.com/samber/lo"

	"github.com/quoteflow/quote-service/internal/domain/team"
	ierr "github.com/quoteflow/quote-service/internal/errors"
)

// InMemoryTeamStore implements team.Repository
type InMemoryTeamStore struct {
	*InMemoryStore[*team.Team]

	mu      sync.Mutex
	members map[string]*team.Member
}

func NewInMemoryTeamStore() *InMemoryTeamStore {
	return &InMemoryTeamStore{
		InMemoryStore: NewInMemoryStore[*team.Team](),
		members:       make(map[string]*team.Member),
	}
}

func copyTeam(t *team.Team) *team.Team {
	if t == nil {
		return nil
	}
	out := *t
	out.Members = lo.Map(t.Members, func(m *team.Member, _ int) *team.Member {
		c := *m
		return &c
	})
	return &out
}

func (s *InMemoryTeamStore) Create(ctx context.Context, t *team.Team) error {
	return s.InMemoryStore.Create(ctx, t.ID, copyTeam(t))
}

func (s *InMemoryTeamStore) Get(ctx context.Context, id string) (*team.Team, error) {
	t, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyTeam(t), nil
}

func (s *InMemoryTeamStore) GetByOwner(ctx context.Context, ownerID string) (*team.Team, error) {
	matches, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, t *team.Team, _ interface{}) bool {
		return t.OwnerID == ownerID
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ierr.NewError("team not found").Mark(ierr.ErrNotFound)
	}
	return copyTeam(matches[0]), nil
}

func (s *InMemoryTeamStore) Update(ctx context.Context, t *team.Team) error {
	return s.InMemoryStore.Update(ctx, t.ID, copyTeam(t))
}

func (s *InMemoryTeamStore) Delete(ctx context.Context, id string) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	for mid, m := range s.members {
		if m.TeamID == id {
			delete(s.members, mid)
		}
	}
	s.mu.Unlock()
	return nil
}

func (s *InMemoryTeamStore) AddMember(ctx context.Context, m *team.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.members[m.ID]; exists {
		return ierr.NewError("member already exists").Mark(ierr.ErrAlreadyExists)
	}
	c := *m
	s.members[m.ID] = &c
	return nil
}

func (s *InMemoryTeamStore) UpdateMember(ctx context.Context, m *team.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.members[m.ID]; !exists {
		return ierr.NewError("member not found").Mark(ierr.ErrNotFound)
	}
	c := *m
	s.members[m.ID] = &c
	return nil
}

func (s *InMemoryTeamStore) RemoveMember(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.members[id]; !exists {
		return ierr.NewError("member not found").Mark(ierr.ErrNotFound)
	}
	delete(s.members, id)
	return nil
}

func (s *InMemoryTeamStore) ListMembers(ctx context.Context, teamID string) ([]*team.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*team.Member, 0)
	for _, m := range s.members {
		if m.TeamID == teamID {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}

func (s *InMemoryTeamStore) CountMembers(ctx context.Context, teamID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, m := range s.members {
		if m.TeamID == teamID {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryTeamStore) Clear() {
	s.InMemoryStore.Clear()
	s.mu.Lock()
	s.members = make(map[string]*team.Member)
	s.mu.Unlock()
}
