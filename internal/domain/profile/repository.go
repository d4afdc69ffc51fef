package profile

import (
	"context"

	"github.com/quoteflow/quote-service/internal/types"
)

// Repository defines the interface for profile persistence.
type Repository interface {
	Create(ctx context.Context, p *Profile) error
	Get(ctx context.Context, id string) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
	Delete(ctx context.Context, id string) error

	// UpdatePlan changes only the subscription fields, used by the billing
	// webhook so it cannot clobber concurrent profile edits.
	UpdatePlan(ctx context.Context, id string, plan types.PlanTier, stripeSubscriptionID string) error
}
