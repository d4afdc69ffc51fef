// Package client is the Go SDK for the QuoteFlow API. It speaks the JSON
// envelope every endpoint answers with and surfaces failures as APIError
// values carrying the server's machine code.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/quoteflow/quote-service/internal/api/dto"
	"github.com/quoteflow/quote-service/internal/httpclient"
	"github.com/quoteflow/quote-service/internal/types"
)

const (
	defaultTimeout = 30 * time.Second
	defaultRetries = 3
)

// Config configures a Client. Exactly one of Token or APIKey should be set.
type Config struct {
	BaseURL string
	// Token is a Supabase access token sent as a Bearer credential.
	Token string
	// APIKey is a programmatic key sent in the x-api-key header.
	APIKey string

	Timeout    time.Duration
	MaxRetries int

	// HTTPClient overrides the default retrying transport.
	HTTPClient httpclient.Client
}

// Client is a QuoteFlow API client.
type Client struct {
	baseURL string
	token   string
	apiKey  string
	http    httpclient.Client
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("client: BaseURL is required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	retries := cfg.MaxRetries
	if retries == 0 {
		retries = defaultRetries
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = httpclient.NewClient(retries, timeout)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		apiKey:  cfg.APIKey,
		http:    hc,
	}, nil
}

// envelope mirrors the server's response shape with the data left raw until
// the caller's type is known.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// do performs a request and decodes the envelope into out (which may be nil).
// Transport failures come back as *RetryableError; server failures as
// *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}

	headers := map[string]string{"Content-Type": "application/json"}
	if c.apiKey != "" {
		headers["x-api-key"] = c.apiKey
	} else if c.token != "" {
		headers["Authorization"] = "Bearer " + c.token
	}

	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method:  method,
		URL:     c.baseURL + path,
		Headers: headers,
		Body:    payload,
	})
	if err != nil {
		return &RetryableError{Err: err}
	}

	var env envelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return &RetryableError{Err: err}
	}

	if !env.Success {
		return &APIError{Code: env.Error, Message: env.Message, Status: resp.StatusCode}
	}
	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

// Quotes

func (c *Client) CreateQuote(ctx context.Context, req dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	var out dto.QuoteResponse
	if err := c.do(ctx, http.MethodPost, "/quotes", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetQuote(ctx context.Context, id string) (*dto.QuoteResponse, error) {
	var out dto.QuoteResponse
	if err := c.do(ctx, http.MethodGet, "/quotes/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListQuotes(ctx context.Context, filter *types.QuoteFilter) ([]*dto.QuoteResponse, error) {
	path := "/quotes"
	if filter != nil {
		q := url.Values{}
		if filter.Status != "" {
			q.Set("status", string(filter.Status))
		}
		if filter.Currency != "" {
			q.Set("currency", string(filter.Currency))
		}
		if len(q) > 0 {
			path += "?" + q.Encode()
		}
	}
	var out []*dto.QuoteResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateQuote(ctx context.Context, id string, req dto.UpdateQuoteRequest) (*dto.QuoteResponse, error) {
	var out dto.QuoteResponse
	if err := c.do(ctx, http.MethodPatch, "/quotes/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteQuote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/quotes/"+url.PathEscape(id), nil, nil)
}

func (c *Client) DuplicateQuote(ctx context.Context, id string) (*dto.QuoteResponse, error) {
	var out dto.QuoteResponse
	if err := c.do(ctx, http.MethodPost, "/quotes/"+url.PathEscape(id)+"/duplicate", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MarkPaid(ctx context.Context, id string) (*dto.QuoteResponse, error) {
	var out dto.QuoteResponse
	if err := c.do(ctx, http.MethodPost, "/quotes/"+url.PathEscape(id)+"/mark-paid", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SendQuote(ctx context.Context, id string, req dto.SendQuoteRequest) (*dto.SendQuoteResponse, error) {
	var out dto.SendQuoteResponse
	if err := c.do(ctx, http.MethodPost, "/quotes/"+url.PathEscape(id)+"/send", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Clients

func (c *Client) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error) {
	var out dto.ClientResponse
	if err := c.do(ctx, http.MethodPost, "/clients", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListClients(ctx context.Context) ([]*dto.ClientResponse, error) {
	var out []*dto.ClientResponse
	if err := c.do(ctx, http.MethodGet, "/clients", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Profile

func (c *Client) GetProfile(ctx context.Context) (*dto.ProfileResponse, error) {
	var out dto.ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	var out dto.ProfileResponse
	if err := c.do(ctx, http.MethodPut, "/profile", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dashboard

func (c *Client) GetDashboardStats(ctx context.Context, currency types.Currency) (*dto.DashboardStats, error) {
	path := "/dashboard"
	if currency != "" {
		path += "?currency=" + url.QueryEscape(string(currency))
	}
	var out dto.DashboardStats
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetUnreadMessages(ctx context.Context) (*dto.UnreadMessagesResponse, error) {
	var out dto.UnreadMessagesResponse
	if err := c.do(ctx, http.MethodGet, "/dashboard/unread-messages", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Public share-page endpoints. These need no credentials.

func (c *Client) GetPublicQuote(ctx context.Context, token string) (*dto.PublicQuoteResponse, error) {
	var out dto.PublicQuoteResponse
	if err := c.do(ctx, http.MethodGet, "/q/"+url.PathEscape(token), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePublicNote(ctx context.Context, token string, req dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	var out dto.NoteResponse
	if err := c.do(ctx, http.MethodPost, "/q/"+url.PathEscape(token)+"/notes", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
