package dto

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/quoteflow/quote-service/internal/domain/client"
	"github.com/quoteflow/quote-service/internal/domain/quote"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/types"
)

type LineItemRequest struct {
	Description string          `json:"description" validate:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"required"`
}

type CreateQuoteRequest struct {
	ClientID     string          `json:"client_id" validate:"required"`
	Title        string          `json:"title" validate:"required,max=200"`
	Currency     types.Currency  `json:"currency" validate:"required"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	TaxExempt    bool            `json:"tax_exempt"`
	ValidityDays int             `json:"validity_days" validate:"omitempty,min=1,max=365"`
	Terms        string          `json:"terms" validate:"omitempty,max=5000"`

	Deposit          decimal.Decimal `json:"deposit"`
	PaymentMethod    string          `json:"payment_method" validate:"omitempty,max=200"`
	DeliveryTimeline string          `json:"delivery_timeline" validate:"omitempty,max=200"`
	Revisions        int             `json:"revisions" validate:"omitempty,min=0,max=100"`

	// Nil toggles inherit the profile defaults.
	RequireSignature *bool `json:"require_signature"`
	TrackViews       *bool `json:"track_views"`
	SendReminder     bool  `json:"send_reminder"`

	LineItems []LineItemRequest `json:"line_items" validate:"required,min=1,dive"`
}

type UpdateQuoteRequest struct {
	ClientID     *string          `json:"client_id"`
	Title        *string          `json:"title" validate:"omitempty,max=200"`
	Currency     *types.Currency  `json:"currency"`
	TaxRate      *decimal.Decimal `json:"tax_rate"`
	TaxExempt    *bool            `json:"tax_exempt"`
	ValidityDays *int             `json:"validity_days" validate:"omitempty,min=1,max=365"`
	Terms        *string          `json:"terms" validate:"omitempty,max=5000"`

	Deposit          *decimal.Decimal `json:"deposit"`
	PaymentMethod    *string          `json:"payment_method" validate:"omitempty,max=200"`
	DeliveryTimeline *string          `json:"delivery_timeline" validate:"omitempty,max=200"`
	Revisions        *int             `json:"revisions" validate:"omitempty,min=0,max=100"`

	RequireSignature *bool `json:"require_signature"`
	TrackViews       *bool `json:"track_views"`
	SendReminder     *bool `json:"send_reminder"`

	LineItems []LineItemRequest `json:"line_items" validate:"omitempty,min=1,dive"`
}

type SendQuoteRequest struct {
	Channel        types.SendChannel `json:"channel" validate:"required"`
	RecipientEmail string            `json:"recipient_email" validate:"omitempty,email"`
	RecipientPhone string            `json:"recipient_phone" validate:"omitempty,max=50"`
}

type SendQuoteResponse struct {
	Message   string            `json:"message"`
	QuoteLink string            `json:"quote_link"`
	Channel   types.SendChannel `json:"channel"`
	// WhatsAppLink is set only for the whatsapp channel.
	WhatsAppLink string `json:"whatsapp_link,omitempty"`
}

type QuoteResponse struct {
	*quote.Quote
	Badge  types.Badge    `json:"badge"`
	Client *client.Client `json:"client,omitempty"`
	// ExpiryBanner is present on sent quotes that are still open.
	ExpiryBanner *types.ExpiryBanner `json:"expiry_banner,omitempty"`
}

// NewQuoteResponse decorates a quote with its derived display state.
func NewQuoteResponse(q *quote.Quote, now time.Time, loc *time.Location) *QuoteResponse {
	resp := &QuoteResponse{
		Quote: q,
		Badge: q.Badge(),
	}
	if q.Status == types.QuoteStatusSent {
		banner := q.ExpiryBanner(now, loc)
		resp.ExpiryBanner = &banner
	}
	return resp
}

func (r *CreateQuoteRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Please check the quote fields").
			Mark(ierr.ErrValidation)
	}
	if err := r.Currency.Validate(); err != nil {
		return err
	}
	for _, li := range r.LineItems {
		if li.Quantity.IsNegative() || li.UnitPrice.IsNegative() {
			return ierr.NewError("line item amounts cannot be negative").
				WithHint("Quantities and prices must be zero or positive").
				Mark(ierr.ErrValidation)
		}
	}
	if r.TaxRate.IsNegative() || r.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
		return ierr.NewError("tax rate must be between 0 and 100").
			WithHint("Tax rate is a percentage between 0 and 100").
			Mark(ierr.ErrValidation)
	}
	if r.Deposit.IsNegative() {
		return ierr.NewError("deposit cannot be negative").
			WithHint("Deposit must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToQuote builds the draft. Totals, quote number, and expiry are filled by
// the service.
func (r *CreateQuoteRequest) ToQuote(ctx context.Context) *quote.Quote {
	q := &quote.Quote{
		ID:               types.GenerateUUIDWithPrefix(types.PrefixQuote),
		UserID:           types.GetUserID(ctx),
		ClientID:         r.ClientID,
		Title:            r.Title,
		Status:           types.QuoteStatusDraft,
		Currency:         r.Currency,
		TaxRate:          r.TaxRate,
		TaxExempt:        r.TaxExempt,
		Terms:            r.Terms,
		Deposit:          r.Deposit,
		PaymentMethod:    r.PaymentMethod,
		DeliveryTimeline: r.DeliveryTimeline,
		Revisions:        r.Revisions,
		SendReminder:     r.SendReminder,
		BaseModel:        types.GetDefaultBaseModel(ctx),
	}
	for i, li := range r.LineItems {
		q.LineItems = append(q.LineItems, &quote.LineItem{
			ID:          types.GenerateUUID(),
			QuoteID:     q.ID,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Position:    i,
		})
	}
	return q
}

func (r *UpdateQuoteRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Please check the quote fields").
			Mark(ierr.ErrValidation)
	}
	if r.Currency != nil {
		if err := r.Currency.Validate(); err != nil {
			return err
		}
	}
	for _, li := range r.LineItems {
		if li.Quantity.IsNegative() || li.UnitPrice.IsNegative() {
			return ierr.NewError("line item amounts cannot be negative").
				WithHint("Quantities and prices must be zero or positive").
				Mark(ierr.ErrValidation)
		}
	}
	if r.TaxRate != nil && (r.TaxRate.IsNegative() || r.TaxRate.GreaterThan(decimal.NewFromInt(100))) {
		return ierr.NewError("tax rate must be between 0 and 100").
			WithHint("Tax rate is a percentage between 0 and 100").
			Mark(ierr.ErrValidation)
	}
	if r.Deposit != nil && r.Deposit.IsNegative() {
		return ierr.NewError("deposit cannot be negative").
			WithHint("Deposit must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *SendQuoteRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Please check the send fields").
			Mark(ierr.ErrValidation)
	}
	if err := r.Channel.Validate(); err != nil {
		return err
	}
	if r.Channel == types.SendChannelEmail && r.RecipientEmail == "" {
		return ierr.NewError("recipient email is required").
			WithHint("Provide a recipient email for the email channel").
			Mark(ierr.ErrValidation)
	}
	return nil
}
