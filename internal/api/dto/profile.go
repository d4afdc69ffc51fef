package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/quoteflow/quote-service/internal/domain/profile"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/types"
)

type UpdateProfileRequest struct {
	FullName            *string          `json:"full_name" validate:"omitempty,max=200"`
	BusinessName        *string          `json:"business_name" validate:"omitempty,max=200"`
	Phone               *string          `json:"phone" validate:"omitempty,max=50"`
	DefaultCurrency     *types.Currency  `json:"default_currency"`
	DefaultTaxRate      *decimal.Decimal `json:"default_tax_rate"`
	DefaultValidityDays *int             `json:"default_validity_days" validate:"omitempty,min=1,max=365"`
	DefaultTerms        *string          `json:"default_terms" validate:"omitempty,max=5000"`
	RequireSignature    *bool            `json:"require_signature"`
	TrackViews          *bool            `json:"track_views"`
	BrandColor          *string          `json:"brand_color" validate:"omitempty,hexcolor"`
	LogoURL             *string          `json:"logo_url" validate:"omitempty,url"`
}

type ProfileResponse struct {
	*profile.Profile
	IsPro bool `json:"is_pro"`
}

func NewProfileResponse(p *profile.Profile) *ProfileResponse {
	return &ProfileResponse{Profile: p, IsPro: p.IsPro()}
}

func (r *UpdateProfileRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Please check the profile fields").
			Mark(ierr.ErrValidation)
	}
	if r.DefaultCurrency != nil {
		if err := r.DefaultCurrency.Validate(); err != nil {
			return err
		}
	}
	if r.DefaultTaxRate != nil && r.DefaultTaxRate.IsNegative() {
		return ierr.NewError("tax rate cannot be negative").
			WithHint("Tax rate must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TouchesBranding reports whether the update writes a pro-gated field.
func (r *UpdateProfileRequest) TouchesBranding() bool {
	return r.BrandColor != nil || r.LogoURL != nil
}

// TouchesViewTracking reports whether the update enables view tracking.
func (r *UpdateProfileRequest) TouchesViewTracking() bool {
	return r.TrackViews != nil && *r.TrackViews
}

// Apply copies the set fields onto the profile.
func (r *UpdateProfileRequest) Apply(p *profile.Profile) {
	if r.FullName != nil {
		p.FullName = *r.FullName
	}
	if r.BusinessName != nil {
		p.BusinessName = *r.BusinessName
	}
	if r.Phone != nil {
		p.Phone = *r.Phone
	}
	if r.DefaultCurrency != nil {
		p.DefaultCurrency = *r.DefaultCurrency
	}
	if r.DefaultTaxRate != nil {
		p.DefaultTaxRate = *r.DefaultTaxRate
	}
	if r.DefaultValidityDays != nil {
		p.DefaultValidityDays = *r.DefaultValidityDays
	}
	if r.DefaultTerms != nil {
		p.DefaultTerms = *r.DefaultTerms
	}
	if r.RequireSignature != nil {
		p.RequireSignature = *r.RequireSignature
	}
	if r.TrackViews != nil {
		p.TrackViews = *r.TrackViews
	}
	if r.BrandColor != nil {
		p.BrandColor = *r.BrandColor
	}
	if r.LogoURL != nil {
		p.LogoURL = *r.LogoURL
	}
	p.Touch()
}
