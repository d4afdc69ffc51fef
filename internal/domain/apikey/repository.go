package apikey

import (
	"context"
	"time"
)

// Repository defines the interface for API key persistence.
type Repository interface {
	Create(ctx context.Context, k *APIKey) error
	Get(ctx context.Context, id string) (*APIKey, error)
	GetByHashedKey(ctx context.Context, hashedKey string) (*APIKey, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, userID string) ([]*APIKey, error)
	TouchLastUsed(ctx context.Context, id string, at time.Time) error
}
