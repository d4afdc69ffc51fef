package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/quoteflow/quote-service/internal/api/dto"
	"github.com/quoteflow/quote-service/internal/types"
)

// AcceptQuote accepts a shared quote on the client's behalf.
//
// Acceptance is idempotent on the server, which makes a failed-looking call
// ambiguous: a timeout after the request left the process may still have
// accepted the quote. On a transport failure AcceptQuote re-fetches the public
// quote once and, if it now reads accepted, reports success instead of the
// error. Any other failure is returned as-is.
func (c *Client) AcceptQuote(ctx context.Context, token string, req dto.AcceptQuoteRequest) (*dto.AcceptQuoteResponse, error) {
	var out dto.AcceptQuoteResponse
	err := c.do(ctx, http.MethodPost, "/q/"+url.PathEscape(token)+"/accept", req, &out)
	if err == nil {
		return &out, nil
	}
	if !IsRetryable(err) {
		return nil, err
	}

	pub, fetchErr := c.GetPublicQuote(ctx, token)
	if fetchErr != nil || pub.Status != types.QuoteStatusAccepted {
		// Outcome still unknown; surface the original failure.
		return nil, err
	}
	return &dto.AcceptQuoteResponse{
		Accepted:    true,
		QuoteNumber: pub.QuoteNumber,
		Message:     "Quote accepted",
	}, nil
}
