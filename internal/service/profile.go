package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quoteflow/quote-service/internal/api/dto"
	"github.com/quoteflow/quote-service/internal/cache"
	"github.com/quoteflow/quote-service/internal/domain/profile"
	"github.com/quoteflow/quote-service/internal/entitlement"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/types"
)

// DefaultBrandColor is the out-of-the-box accent. Only writes that change it
// hit the pro gate.
const DefaultBrandColor = "#0F6FFF"

type ProfileService interface {
	// GetProfile returns the caller's profile, provisioning one with defaults
	// on first access.
	GetProfile(ctx context.Context) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
}

type profileService struct {
	ServiceParams
}

func NewProfileService(params ServiceParams) ProfileService {
	return &profileService{ServiceParams: params}
}

func (s *profileService) GetProfile(ctx context.Context) (*dto.ProfileResponse, error) {
	userID := types.GetUserID(ctx)

	key := cache.GenerateKey(cache.PrefixProfile, userID)
	if cached, ok := s.Cache.Get(ctx, key); ok {
		if p, ok := cached.(*profile.Profile); ok {
			return dto.NewProfileResponse(p), nil
		}
	}

	p, err := s.ProfileRepo.Get(ctx, userID)
	if err != nil {
		if !ierr.IsNotFound(err) {
			return nil, err
		}
		p, err = s.provision(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	s.Cache.Set(ctx, key, p, cache.DefaultExpiration)
	return dto.NewProfileResponse(p), nil
}

func (s *profileService) provision(ctx context.Context, userID string) (*profile.Profile, error) {
	p := &profile.Profile{
		ID:                  userID,
		Email:               types.GetUserEmail(ctx),
		Plan:                types.PlanFree,
		DefaultCurrency:     types.CurrencyJMD,
		DefaultTaxRate:      decimal.NewFromInt(15),
		DefaultValidityDays: 30,
		BrandColor:          DefaultBrandColor,
		BaseModel:           types.GetDefaultBaseModel(ctx),
	}

	s.Logger.Infow("provisioning profile", "user_id", userID)

	if err := s.ProfileRepo.Create(ctx, p); err != nil {
		// lost a provisioning race; the winner's row is fine
		if existing, getErr := s.ProfileRepo.Get(ctx, userID); getErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return p, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	userID := types.GetUserID(ctx)
	p, err := s.ProfileRepo.Get(ctx, userID)
	if err != nil {
		if !ierr.IsNotFound(err) {
			return nil, err
		}
		p, err = s.provision(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	if req.BrandColor != nil && *req.BrandColor != DefaultBrandColor {
		if err := entitlement.CheckFeature(p.Plan, types.FeatureBrandColor); err != nil {
			return nil, err
		}
	}
	if req.LogoURL != nil {
		if err := entitlement.CheckFeature(p.Plan, types.FeatureLogoUpload); err != nil {
			return nil, err
		}
	}
	if req.TouchesViewTracking() {
		if err := entitlement.CheckFeature(p.Plan, types.FeatureViewTracking); err != nil {
			return nil, err
		}
	}

	req.Apply(p)
	p.UpdatedAt = time.Now().UTC()

	if err := s.ProfileRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixProfile, userID))
	return dto.NewProfileResponse(p), nil
}
