// Package entitlement is the single source of truth for plan gating. Services
// call it before creating quotes or exposing plan-locked features; handlers
// translate its errors straight onto the wire.
package entitlement

import (
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/types"
)

// FreeQuoteLimit is the number of quotes a free plan may create per calendar
// month. The window is the UTC month of the quote's creation time.
const FreeQuoteLimit = 3

// featurePlans maps each gated feature to the minimum plan that unlocks it.
var featurePlans = map[types.Feature]types.PlanTier{
	types.FeatureBrandColor:   types.PlanPro,
	types.FeatureLogoUpload:   types.PlanPro,
	types.FeatureViewTracking: types.PlanPro,
	types.FeatureAPIKeys:      types.PlanBusiness,
	types.FeatureTeamMembers:  types.PlanBusiness,
}

// RequiredPlan returns the minimum plan for a feature. Unknown features
// require the business plan so that a missing mapping fails closed.
func RequiredPlan(feature types.Feature) types.PlanTier {
	if plan, ok := featurePlans[feature]; ok {
		return plan
	}
	return types.PlanBusiness
}

// CanCreateQuote reports whether a plan may create another quote given the
// number already created in the current calendar month. Paid plans are
// unlimited.
func CanCreateQuote(plan types.PlanTier, quotesThisMonth int) bool {
	if plan != types.PlanFree {
		return true
	}
	return quotesThisMonth < FreeQuoteLimit
}

// CheckQuoteCreation is CanCreateQuote as an error. The returned error carries
// the free_tier_limit wire code and maps to HTTP 402.
func CheckQuoteCreation(plan types.PlanTier, quotesThisMonth int) error {
	if CanCreateQuote(plan, quotesThisMonth) {
		return nil
	}
	return ierr.NewError("free plan quote limit reached").
		WithHint("You've reached the free plan limit of 3 quotes this month. Upgrade to Pro for unlimited quotes.").
		WithReportableDetails(map[string]any{
			"limit": FreeQuoteLimit,
			"used":  quotesThisMonth,
		}).
		Mark(ierr.ErrFreeTierLimit)
}

// CheckFeature returns nil when the plan unlocks the feature, otherwise an
// error marked pro_required or business_required depending on the plan the
// feature needs.
func CheckFeature(plan types.PlanTier, feature types.Feature) error {
	required := RequiredPlan(feature)
	if plan.AtLeast(required) {
		return nil
	}

	mark := ierr.ErrProRequired
	hint := "This feature requires the Pro plan. Upgrade to unlock it."
	if required == types.PlanBusiness {
		mark = ierr.ErrBusinessRequired
		hint = "This feature requires the Business plan. Upgrade to unlock it."
	}
	return ierr.NewError("feature requires a higher plan").
		WithHint(hint).
		WithReportableDetails(map[string]any{
			"feature":       feature,
			"required_plan": required,
			"current_plan":  plan,
		}).
		Mark(mark)
}
