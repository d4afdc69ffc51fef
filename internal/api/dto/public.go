package dto

import (
	"time"

	"github.com/quoteflow/quote-service/internal/domain/quote"
	"github.com/quoteflow/quote-service/internal/types"
	"github.com/shopspring/decimal"
)

// PublicQuoteResponse is what the share page sees: the quote plus the issuer's
// public branding, minus anything owner-internal.
type PublicQuoteResponse struct {
	QuoteNumber  string              `json:"quote_number"`
	Title        string              `json:"title"`
	Status       types.QuoteStatus   `json:"status"`
	Badge        types.Badge         `json:"badge"`
	Currency     types.Currency      `json:"currency"`
	TaxRate      decimal.Decimal     `json:"tax_rate"`
	TaxExempt    bool                `json:"tax_exempt"`
	Subtotal     decimal.Decimal     `json:"subtotal"`
	TaxAmount    decimal.Decimal     `json:"tax_amount"`
	Total        decimal.Decimal     `json:"total"`
	ExpiresAt time.Time `json:"expires_at"`
	Terms     string    `json:"terms,omitempty"`

	Deposit          decimal.Decimal `json:"deposit"`
	PaymentMethod    string          `json:"payment_method,omitempty"`
	DeliveryTimeline string          `json:"delivery_timeline,omitempty"`
	Revisions        int             `json:"revisions"`

	LineItems    []*quote.LineItem   `json:"line_items"`
	ExpiryBanner *types.ExpiryBanner `json:"expiry_banner,omitempty"`
	AcceptedAt   *time.Time          `json:"accepted_at,omitempty"`
	AcceptedName string              `json:"accepted_name,omitempty"`

	BusinessName     string `json:"business_name,omitempty"`
	BrandColor       string `json:"brand_color,omitempty"`
	LogoURL          string `json:"logo_url,omitempty"`
	RequireSignature bool   `json:"require_signature"`
}

type AcceptQuoteRequest struct {
	SignatureName string `json:"signature_name" validate:"omitempty,max=200"`
}

// AcceptQuoteResponse is identical whether this call performed the transition
// or the quote was already accepted, so repeat accepts are safe.
type AcceptQuoteResponse struct {
	Accepted    bool   `json:"accepted"`
	QuoteNumber string `json:"quote_number"`
	Message     string `json:"message"`
}
