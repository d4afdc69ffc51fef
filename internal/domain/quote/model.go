package quote

import (
	"time"

	"github.com/quoteflow/quote-service/internal/types"
	"github.com/shopspring/decimal"
)

// Quote is a priced offer a freelancer sends to a client. Money fields are
// stored denormalized and recomputed from the line items on every write.
type Quote struct {
	ID          string            `db:"id" json:"id"`
	UserID      string            `db:"user_id" json:"user_id"`
	ClientID    string            `db:"client_id" json:"client_id"`
	QuoteNumber string            `db:"quote_number" json:"quote_number"`
	Title       string            `db:"title" json:"title"`
	Status      types.QuoteStatus `db:"status" json:"status"`
	Currency    types.Currency    `db:"currency" json:"currency"`
	TaxRate     decimal.Decimal   `db:"tax_rate" json:"tax_rate"`
	// TaxExempt zeroes the tax amount regardless of the stored rate.
	TaxExempt bool            `db:"tax_exempt" json:"tax_exempt"`
	Subtotal  decimal.Decimal `db:"subtotal" json:"subtotal"`
	TaxAmount decimal.Decimal `db:"tax_amount" json:"tax_amount"`
	Total     decimal.Decimal `db:"total" json:"total"`
	// ValidityDays drives ExpiresAt; editing it on a draft recomputes the
	// expiry from creation time.
	ValidityDays int `db:"validity_days" json:"validity_days"`
	// ExpiresAt is the last calendar day the quote can be accepted on.
	ExpiresAt  time.Time `db:"expires_at" json:"expires_at"`
	ShareToken string    `db:"share_token" json:"share_token"`
	Terms      string    `db:"terms" json:"terms"`

	// Optional commercial terms carried verbatim onto the rendered quote.
	Deposit          decimal.Decimal `db:"deposit" json:"deposit"`
	PaymentMethod    string          `db:"payment_method" json:"payment_method,omitempty"`
	DeliveryTimeline string          `db:"delivery_timeline" json:"delivery_timeline,omitempty"`
	Revisions        int             `db:"revisions" json:"revisions"`

	// Per-quote acceptance and tracking toggles, seeded from the profile
	// defaults at creation.
	RequireSignature bool `db:"require_signature" json:"require_signature"`
	TrackViews       bool `db:"track_views" json:"track_views"`
	SendReminder     bool `db:"send_reminder" json:"send_reminder"`

	Paid   bool       `db:"paid" json:"paid"`
	PaidAt *time.Time `db:"paid_at" json:"paid_at,omitempty"`
	SentAt     *time.Time `db:"sent_at" json:"sent_at,omitempty"`
	AcceptedAt *time.Time `db:"accepted_at" json:"accepted_at,omitempty"`
	// AcceptedName is the name typed by the client when accepting.
	AcceptedName string     `db:"accepted_name" json:"accepted_name,omitempty"`
	ViewedAt     *time.Time `db:"viewed_at" json:"viewed_at,omitempty"`
	ViewCount    int        `db:"view_count" json:"view_count"`

	// LineItems are loaded alongside the quote, not stored on this row.
	LineItems []*LineItem `db:"-" json:"line_items,omitempty"`

	types.BaseModel
}

// LineItem is one billable row on a quote.
type LineItem struct {
	ID          string          `db:"id" json:"id"`
	QuoteID     string          `db:"quote_id" json:"quote_id"`
	Description string          `db:"description" json:"description"`
	Quantity    decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	Position    int             `db:"position" json:"position"`
}

// Amount is quantity times unit price, unrounded.
func (li *LineItem) Amount() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// Totals is the money summary derived from a quote's line items.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals derives the money summary for a set of line items and a tax
// rate expressed in percent. The subtotal is the unrounded sum of line
// amounts; only the tax is rounded, to two decimals half away from zero; the
// total is subtotal plus rounded tax. Exempt quotes carry zero tax whatever
// the stored rate.
func ComputeTotals(items []*LineItem, taxRate decimal.Decimal, taxExempt bool) Totals {
	subtotal := decimal.Zero
	for _, li := range items {
		subtotal = subtotal.Add(li.Amount())
	}

	tax := decimal.Zero
	if !taxExempt {
		tax = subtotal.Mul(taxRate).Div(decimal.NewFromInt(100)).Round(2)
	}

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// ApplyTotals recomputes the quote's money fields from its line items.
func (q *Quote) ApplyTotals() {
	t := ComputeTotals(q.LineItems, q.TaxRate, q.TaxExempt)
	q.Subtotal = t.Subtotal
	q.TaxAmount = t.Tax
	q.Total = t.Total
}

// IsEditable reports whether the quote's contents may still change. Only
// drafts are editable; sending freezes the quote.
func (q *Quote) IsEditable() bool {
	return q.Status == types.QuoteStatusDraft
}

// IsExpired reports whether the quote's validity window has passed at the
// given instant, using calendar days in the given location.
func (q *Quote) IsExpired(now time.Time, loc *time.Location) bool {
	return types.DaysRemaining(now, q.ExpiresAt, loc) < 0
}

// ExpiryBanner classifies the quote's remaining validity for display. The
// validity window shown in the neutral banner is measured from sent time, or
// creation time for drafts.
func (q *Quote) ExpiryBanner(now time.Time, loc *time.Location) types.ExpiryBanner {
	start := q.CreatedAt
	if q.SentAt != nil {
		start = *q.SentAt
	}
	validity := types.DaysRemaining(start, q.ExpiresAt, loc)
	return types.BuildExpiryBanner(now, q.ExpiresAt, validity, loc)
}

// Badge resolves the quote's display badge, with paid taking precedence over
// the accepted status.
func (q *Quote) Badge() types.Badge {
	return types.ResolveBadge(q.Status, q.Paid)
}
