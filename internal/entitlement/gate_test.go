package entitlement

import (
	"testing"

	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestCanCreateQuote(t *testing.T) {
	tests := []struct {
		name            string
		plan            types.PlanTier
		quotesThisMonth int
		want            bool
	}{
		{name: "free under limit", plan: types.PlanFree, quotesThisMonth: 2, want: true},
		{name: "free at limit", plan: types.PlanFree, quotesThisMonth: 3, want: false},
		{name: "free over limit", plan: types.PlanFree, quotesThisMonth: 7, want: false},
		{name: "pro unlimited", plan: types.PlanPro, quotesThisMonth: 999, want: true},
		{name: "business unlimited", plan: types.PlanBusiness, quotesThisMonth: 999, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanCreateQuote(tt.plan, tt.quotesThisMonth))
		})
	}
}

func TestCheckQuoteCreation(t *testing.T) {
	assert.NoError(t, CheckQuoteCreation(types.PlanFree, 0))

	err := CheckQuoteCreation(types.PlanFree, 3)
	assert.Error(t, err)
	assert.True(t, ierr.IsFreeTierLimit(err))
	assert.Equal(t, "free_tier_limit", ierr.CodeFromErr(err))
	assert.Equal(t, 402, ierr.HTTPStatusFromErr(err))
}

func TestRequiredPlan(t *testing.T) {
	assert.Equal(t, types.PlanPro, RequiredPlan(types.FeatureBrandColor))
	assert.Equal(t, types.PlanPro, RequiredPlan(types.FeatureLogoUpload))
	assert.Equal(t, types.PlanPro, RequiredPlan(types.FeatureViewTracking))
	assert.Equal(t, types.PlanBusiness, RequiredPlan(types.FeatureAPIKeys))
	assert.Equal(t, types.PlanBusiness, RequiredPlan(types.FeatureTeamMembers))

	// unknown features fail closed
	assert.Equal(t, types.PlanBusiness, RequiredPlan(types.Feature("unknown")))
}

func TestCheckFeature(t *testing.T) {
	// free plan denied pro features with pro_required
	err := CheckFeature(types.PlanFree, types.FeatureBrandColor)
	assert.True(t, ierr.IsProRequired(err))
	assert.Equal(t, "pro_required", ierr.CodeFromErr(err))

	// pro plan denied business features with business_required
	err = CheckFeature(types.PlanPro, types.FeatureAPIKeys)
	assert.True(t, ierr.IsBusinessRequired(err))
	assert.Equal(t, 402, ierr.HTTPStatusFromErr(err))

	// business unlocks everything
	assert.NoError(t, CheckFeature(types.PlanBusiness, types.FeatureAPIKeys))
	assert.NoError(t, CheckFeature(types.PlanBusiness, types.FeatureBrandColor))

	// pro unlocks pro features
	assert.NoError(t, CheckFeature(types.PlanPro, types.FeatureViewTracking))
}
