package team

import "context"

// Repository defines the interface for team persistence.
type Repository interface {
	Create(ctx context.Context, t *Team) error
	Get(ctx context.Context, id string) (*Team, error)
	GetByOwner(ctx context.Context, ownerID string) (*Team, error)
	Update(ctx context.Context, t *Team) error
	Delete(ctx context.Context, id string) error

	AddMember(ctx context.Context, m *Member) error
	UpdateMember(ctx context.Context, m *Member) error
	RemoveMember(ctx context.Context, id string) error
	ListMembers(ctx context.Context, teamID string) ([]*Member, error)
	CountMembers(ctx context.Context, teamID string) (int, error)
}
