package auth

import (
	"context"

	"github.com/quoteflow/quote-service/internal/config"
)

// Claims is what token validation yields: the identity requests run as.
type Claims struct {
	UserID string
	Email  string
}

// Provider abstracts the identity backend. Supabase is the only production
// implementation; tests use a static provider.
type Provider interface {
	// ValidateToken verifies a bearer token and extracts its claims.
	ValidateToken(ctx context.Context, token string) (*Claims, error)
	// DeleteUser removes the auth-side account during account deletion.
	DeleteUser(ctx context.Context, userID string) error
}

// NewProvider selects the provider from configuration.
func NewProvider(cfg *config.Configuration) Provider {
	return NewSupabaseAuth(cfg)
}
