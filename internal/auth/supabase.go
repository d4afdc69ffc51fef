package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v4"
	supa "github.com/nedpals/supabase-go"

	"github.com/quoteflow/quote-service/internal/config"
	ierr "github.com/quoteflow/quote-service/internal/errors"
)

type supabaseAuth struct {
	cfg    config.AuthConfig
	client *supa.Client
}

// NewSupabaseAuth verifies access tokens locally against the project's JWT
// secret and uses the admin client only for account deletion.
func NewSupabaseAuth(cfg *config.Configuration) Provider {
	var client *supa.Client
	if cfg.Auth.SupabaseURL != "" {
		client = supa.CreateClient(cfg.Auth.SupabaseURL, cfg.Auth.SupabaseServiceKey)
	}
	return &supabaseAuth{
		cfg:    cfg.Auth,
		client: client,
	}
}

func (s *supabaseAuth) ValidateToken(_ context.Context, token string) (*Claims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewError("unexpected signing method").
				WithReportableDetails(map[string]any{"alg": t.Header["alg"]}).
				Mark(ierr.ErrUnauthorized)
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid or expired token").
			Mark(ierr.ErrUnauthorized)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid or expired token").
			Mark(ierr.ErrUnauthorized)
	}

	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return nil, ierr.NewError("token missing subject").
			WithHint("Invalid or expired token").
			Mark(ierr.ErrUnauthorized)
	}

	email, _ := claims["email"].(string)
	return &Claims{UserID: userID, Email: email}, nil
}

func (s *supabaseAuth) DeleteUser(ctx context.Context, userID string) error {
	if s.client == nil {
		return ierr.NewError("supabase admin client not configured").
			Mark(ierr.ErrSystem)
	}
	if err := s.client.Admin.DeleteUser(ctx, userID); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete account").
			Mark(ierr.ErrSystem)
	}
	return nil
}
