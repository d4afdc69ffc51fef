package dto

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/quoteflow/quote-service/internal/domain/template"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/types"
)

type CreateTemplateRequest struct {
	Name        string            `json:"name" validate:"required,max=200"`
	Description string            `json:"description" validate:"omitempty,max=1000"`
	TaxRate     decimal.Decimal   `json:"tax_rate"`
	Terms       string            `json:"terms" validate:"omitempty,max=5000"`
	LineItems   []LineItemRequest `json:"line_items" validate:"required,min=1,dive"`
}

// TemplateFromQuoteRequest snapshots an existing quote's rows into a
// template.
type TemplateFromQuoteRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	QuoteID string `json:"quote_id" validate:"required"`
}

type TemplateResponse struct {
	*template.Template
}

func (r *CreateTemplateRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Please check the template fields").
			Mark(ierr.ErrValidation)
	}
	if r.TaxRate.IsNegative() {
		return ierr.NewError("tax rate cannot be negative").
			WithHint("Tax rate must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *TemplateFromQuoteRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Please check the template fields").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateTemplateRequest) ToTemplate(ctx context.Context) *template.Template {
	t := &template.Template{
		ID:          types.GenerateUUIDWithPrefix(types.PrefixTemplate),
		UserID:      types.GetUserID(ctx),
		Name:        r.Name,
		Description: r.Description,
		TaxRate:     r.TaxRate,
		Terms:       r.Terms,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
	for i, li := range r.LineItems {
		t.LineItems = append(t.LineItems, &template.LineItem{
			ID:          types.GenerateUUID(),
			TemplateID:  t.ID,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Position:    i,
		})
	}
	return t
}
