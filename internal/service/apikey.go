package service

import (
	"context"
	"strings"
	"time"

	"github.com/quoteflow/quote-service/internal/api/dto"
	"github.com/quoteflow/quote-service/internal/domain/apikey"
	"github.com/quoteflow/quote-service/internal/entitlement"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/types"
)

// apiKeySecretPrefix marks generated keys so they are recognizable in logs
// and secret scanners.
const apiKeySecretPrefix = "qf_"

type APIKeyService interface {
	CreateAPIKey(ctx context.Context, req dto.CreateAPIKeyRequest) (*dto.CreateAPIKeyResponse, error)
	ListAPIKeys(ctx context.Context) ([]*dto.APIKeyResponse, error)
	DeleteAPIKey(ctx context.Context, id string) error
	// Authenticate resolves a presented key to its owner, touching last_used_at.
	Authenticate(ctx context.Context, key string) (*apikey.APIKey, error)
}

type apiKeyService struct {
	ServiceParams
}

func NewAPIKeyService(params ServiceParams) APIKeyService {
	return &apiKeyService{ServiceParams: params}
}

func (s *apiKeyService) CreateAPIKey(ctx context.Context, req dto.CreateAPIKeyRequest) (*dto.CreateAPIKeyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkPlan(ctx); err != nil {
		return nil, err
	}

	raw := apiKeySecretPrefix + strings.ToLower(types.GenerateUUID())
	k := &apikey.APIKey{
		ID:        types.GenerateUUIDWithPrefix(types.PrefixAPIKey),
		UserID:    types.GetUserID(ctx),
		Name:      req.Name,
		Prefix:    raw[:8],
		HashedKey: apikey.HashKey(raw),
		BaseModel: types.GetDefaultBaseModel(ctx),
	}

	if err := s.APIKeyRepo.Create(ctx, k); err != nil {
		return nil, err
	}

	s.Logger.Infow("api key created", "key_id", k.ID, "user_id", k.UserID)
	return &dto.CreateAPIKeyResponse{APIKey: k, Key: raw}, nil
}

func (s *apiKeyService) ListAPIKeys(ctx context.Context) ([]*dto.APIKeyResponse, error) {
	if err := s.checkPlan(ctx); err != nil {
		return nil, err
	}

	keys, err := s.APIKeyRepo.List(ctx, types.GetUserID(ctx))
	if err != nil {
		return nil, err
	}
	out := make([]*dto.APIKeyResponse, 0, len(keys))
	for _, k := range keys {
		out = append(out, &dto.APIKeyResponse{APIKey: k})
	}
	return out, nil
}

func (s *apiKeyService) DeleteAPIKey(ctx context.Context, id string) error {
	k, err := s.APIKeyRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if k.UserID != types.GetUserID(ctx) {
		return ierr.NewError("api key not found").
			WithHint("API key not found").
			Mark(ierr.ErrNotFound)
	}
	return s.APIKeyRepo.Delete(ctx, id)
}

func (s *apiKeyService) Authenticate(ctx context.Context, key string) (*apikey.APIKey, error) {
	if !strings.HasPrefix(key, apiKeySecretPrefix) {
		return nil, ierr.NewError("invalid api key").
			WithHint("Invalid API key").
			Mark(ierr.ErrUnauthorized)
	}

	k, err := s.APIKeyRepo.GetByHashedKey(ctx, apikey.HashKey(key))
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.NewError("invalid api key").
				WithHint("Invalid API key").
				Mark(ierr.ErrUnauthorized)
		}
		return nil, err
	}

	if err := s.APIKeyRepo.TouchLastUsed(ctx, k.ID, time.Now().UTC()); err != nil {
		s.Logger.Warnw("failed to touch api key", "key_id", k.ID, "error", err)
	}
	return k, nil
}

func (s *apiKeyService) checkPlan(ctx context.Context) error {
	prof, err := NewProfileService(s.ServiceParams).GetProfile(ctx)
	if err != nil {
		return err
	}
	return entitlement.CheckFeature(prof.Plan, types.FeatureAPIKeys)
}
