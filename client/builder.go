package client

import (
	"context"

	"github.com/samber/lo"

	"github.com/quoteflow/quote-service/internal/api/dto"
	"github.com/quoteflow/quote-service/internal/builder"
)

// Submit sends a completed builder to the API, creating a new quote or
// updating the draft the builder was loaded from. The builder state is never
// touched, so a rejected submission (validation, free-tier quota) leaves the
// user on the review step with everything they entered intact.
func (c *Client) Submit(ctx context.Context, b *builder.State) (*dto.QuoteResponse, error) {
	req, err := b.BuildRequest()
	if err != nil {
		return nil, err
	}

	items := lo.Map(req.Items, func(li builder.LineItemInput, _ int) dto.LineItemRequest {
		return dto.LineItemRequest{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
		}
	})

	if req.IsEdit() {
		return c.UpdateQuote(ctx, req.QuoteID, dto.UpdateQuoteRequest{
			ClientID:     &req.ClientID,
			Title:        &req.Title,
			Currency:     &req.Currency,
			TaxRate:      &req.TaxRate,
			TaxExempt:    &req.TaxExempt,
			ValidityDays: &req.ValidityDays,
			Terms:        &req.Terms,
			LineItems:    items,
		})
	}
	return c.CreateQuote(ctx, dto.CreateQuoteRequest{
		ClientID:     req.ClientID,
		Title:        req.Title,
		Currency:     req.Currency,
		TaxRate:      req.TaxRate,
		TaxExempt:    req.TaxExempt,
		ValidityDays: req.ValidityDays,
		Terms:        req.Terms,
		LineItems:    items,
	})
}
