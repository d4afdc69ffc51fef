package profile

import (
	"time"

	"github.com/quoteflow/quote-service/internal/types"
	"github.com/shopspring/decimal"
)

// Profile is the freelancer's account settings: business identity, quote
// defaults, and the subscription plan the entitlement gate reads.
type Profile struct {
	// ID matches the auth provider's user id.
	ID           string         `db:"id" json:"id"`
	Email        string         `db:"email" json:"email"`
	FullName     string         `db:"full_name" json:"full_name"`
	BusinessName string         `db:"business_name" json:"business_name,omitempty"`
	Phone        string         `db:"phone" json:"phone,omitempty"`
	Plan         types.PlanTier `db:"plan" json:"plan"`

	// Quote defaults applied when the builder starts a new quote.
	DefaultCurrency     types.Currency  `db:"default_currency" json:"default_currency"`
	DefaultTaxRate      decimal.Decimal `db:"default_tax_rate" json:"default_tax_rate"`
	DefaultValidityDays int             `db:"default_validity_days" json:"default_validity_days"`
	DefaultTerms        string          `db:"default_terms" json:"default_terms,omitempty"`

	// RequireSignature makes the public accept endpoint insist on a typed name.
	RequireSignature bool `db:"require_signature" json:"require_signature"`
	// TrackViews enables view counting on the public quote page (pro gated).
	TrackViews bool `db:"track_views" json:"track_views"`

	// Pro-gated branding.
	BrandColor string `db:"brand_color" json:"brand_color,omitempty"`
	LogoURL    string `db:"logo_url" json:"logo_url,omitempty"`

	// Stripe linkage for the billing flow.
	StripeCustomerID     string     `db:"stripe_customer_id" json:"-"`
	StripeSubscriptionID string     `db:"stripe_subscription_id" json:"-"`
	PlanRenewsAt         *time.Time `db:"plan_renews_at" json:"plan_renews_at,omitempty"`

	types.BaseModel
}

// IsPro reports whether the profile is on a paid plan.
func (p *Profile) IsPro() bool {
	return p.Plan.AtLeast(types.PlanPro)
}
