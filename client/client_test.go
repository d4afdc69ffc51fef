package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quoteflow/quote-service/internal/api/dto"
	"github.com/quoteflow/quote-service/internal/domain/profile"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/types"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL, Token: "test-token", MaxRetries: 1})
	require.NoError(t, err)
	return c, srv
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestErrorEnvelopeMapsToAPIError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusPaymentRequired, dto.Err(ierr.ErrCodeFreeTierLimit, "You have reached the free plan limit of 3 quotes this month"))
	}))

	_, err := c.CreateQuote(context.Background(), dto.CreateQuoteRequest{
		ClientID: "client_1",
		Title:    "Site build",
		Currency: types.CurrencyJMD,
		LineItems: []dto.LineItemRequest{
			{Description: "Work", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
		},
	})
	require.Error(t, err)
	assert.True(t, IsFreeTierLimit(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ierr.ErrCodeFreeTierLimit, apiErr.Code)
	assert.Equal(t, http.StatusPaymentRequired, apiErr.Status)
	assert.Contains(t, apiErr.Message, "free plan limit")
}

func TestSuccessEnvelopeDecodesData(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, dto.OK(dto.NewProfileResponse(&profile.Profile{
			FullName:        "Andre Wilson",
			Plan:            types.PlanFree,
			DefaultCurrency: types.CurrencyJMD,
		})))
	}))

	profile, err := c.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Andre Wilson", profile.FullName)
	assert.Equal(t, types.PlanFree, profile.Plan)
}

func TestAPIKeyHeaderWinsOverToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "qf_testkey", r.Header.Get("x-api-key"))
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, dto.OK([]*dto.ClientResponse{}))
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL, Token: "ignored", APIKey: "qf_testkey", MaxRetries: 1})
	require.NoError(t, err)

	_, err = c.ListClients(context.Background())
	require.NoError(t, err)
}

func TestListQuotesEncodesFilter(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sent", r.URL.Query().Get("status"))
		assert.Equal(t, "USD", r.URL.Query().Get("currency"))
		writeJSON(w, http.StatusOK, dto.OK([]*dto.QuoteResponse{}))
	}))

	_, err := c.ListQuotes(context.Background(), &types.QuoteFilter{
		Status:   types.QuoteStatusSent,
		Currency: types.CurrencyUSD,
	})
	require.NoError(t, err)
}

func TestAcceptQuoteSurfacesExpired(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusGone, dto.Err(ierr.ErrCodeQuoteExpired, "This quote has expired"))
	}))

	_, err := c.AcceptQuote(context.Background(), "tok_1", dto.AcceptQuoteRequest{SignatureName: "Jane"})
	require.Error(t, err)
	assert.True(t, IsQuoteExpired(err))
	assert.False(t, IsRetryable(err))
}

// The accept call is idempotent server-side, so a dropped connection is
// resolved by re-reading the public quote: if it now reads accepted, the
// accept landed.
func TestAcceptQuoteReconcilesDroppedConnection(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			panic(http.ErrAbortHandler)
		}
		writeJSON(w, http.StatusOK, dto.OK(dto.PublicQuoteResponse{
			QuoteNumber:  "QF-9KX2M4",
			Status:       types.QuoteStatusAccepted,
			AcceptedName: "Jane",
		}))
	}))

	resp, err := c.AcceptQuote(context.Background(), "tok_1", dto.AcceptQuoteRequest{SignatureName: "Jane"})
	require.NoError(t, err)
	assert.True(t, resp.Accepted)
	assert.Equal(t, "QF-9KX2M4", resp.QuoteNumber)
}

func TestAcceptQuoteKeepsErrorWhenOutcomeUnknown(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			panic(http.ErrAbortHandler)
		}
		// Re-fetch shows the accept never landed.
		writeJSON(w, http.StatusOK, dto.OK(dto.PublicQuoteResponse{
			QuoteNumber: "QF-9KX2M4",
			Status:      types.QuoteStatusSent,
		}))
	}))

	_, err := c.AcceptQuote(context.Background(), "tok_1", dto.AcceptQuoteRequest{SignatureName: "Jane"})
	require.Error(t, err)
	assert.True(t, IsRetryable(err))
}

func TestUnreadPollerReportsEachQuoteOnce(t *testing.T) {
	var polls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		polls.Add(1)
		writeJSON(w, http.StatusOK, dto.OK(dto.UnreadMessagesResponse{
			Quotes: []dto.UnreadQuote{
				{QuoteID: "quote_1", QuoteNumber: "QF-AAAAAA", UnreadCount: 2},
				{QuoteID: "quote_2", QuoteNumber: "QF-BBBBBB", UnreadCount: 1},
			},
			Total: 3,
		}))
	}))

	var notified atomic.Int32
	p := NewUnreadPoller(c, 10*time.Millisecond, func(q dto.UnreadQuote) {
		notified.Add(1)
	})
	p.Start(context.Background())
	time.Sleep(80 * time.Millisecond)
	p.Stop()

	assert.GreaterOrEqual(t, polls.Load(), int32(2), "poller should have polled more than once")
	assert.Equal(t, int32(2), notified.Load(), "each quote notifies exactly once")
}

func TestUnreadPollerSkipsOverlappingTicks(t *testing.T) {
	var polls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		polls.Add(1)
		time.Sleep(60 * time.Millisecond)
		writeJSON(w, http.StatusOK, dto.OK(dto.UnreadMessagesResponse{}))
	}))

	p := NewUnreadPoller(c, 10*time.Millisecond, func(dto.UnreadQuote) {})
	p.Start(context.Background())
	time.Sleep(130 * time.Millisecond)
	p.Stop()

	// Twelve ticks elapsed but slow responses keep at most one request in
	// flight, so overlapping ticks are dropped.
	assert.LessOrEqual(t, polls.Load(), int32(4))
}
