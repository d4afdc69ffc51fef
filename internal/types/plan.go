package types

import (
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/samber/lo"
)

// PlanTier is the subscription plan attached to a profile.
type PlanTier string

const (
	PlanFree     PlanTier = "free"
	PlanPro      PlanTier = "pro"
	PlanBusiness PlanTier = "business"
)

func (p PlanTier) String() string {
	return string(p)
}

func (p PlanTier) Validate() error {
	allowed := []PlanTier{PlanFree, PlanPro, PlanBusiness}
	if !lo.Contains(allowed, p) {
		return ierr.NewError("invalid plan").
			WithHint("Please provide a valid plan").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// AtLeast reports whether the tier includes everything the given tier does.
// Ordering: free < pro < business.
func (p PlanTier) AtLeast(other PlanTier) bool {
	return p.rank() >= other.rank()
}

func (p PlanTier) rank() int {
	switch p {
	case PlanBusiness:
		return 2
	case PlanPro:
		return 1
	default:
		return 0
	}
}

// Feature is a plan-gated capability.
type Feature string

const (
	FeatureBrandColor   Feature = "brand_color"
	FeatureLogoUpload   Feature = "logo_upload"
	FeatureViewTracking Feature = "view_tracking"
	FeatureAPIKeys      Feature = "api_keys"
	FeatureTeamMembers  Feature = "team_members"
)
