package httpclient

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	ierr "github.com/quoteflow/quote-service/internal/errors"
)

// Request represents an HTTP request.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// Response represents an HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
}

// Client interface for making HTTP requests.
type Client interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// RetryableClient implements Client with transparent retries on transient
// failures. Used by the SDK and outbound integrations.
type RetryableClient struct {
	client *retryablehttp.Client
}

// NewRetryableClient builds a client with sane defaults: 3 retries with
// exponential backoff, 30s per-attempt timeout, no retry on 4xx.
func NewRetryableClient() Client {
	return NewClient(3, 30*time.Second)
}

// NewClient builds a client with an explicit retry budget and per-attempt
// timeout.
func NewClient(retryMax int, timeout time.Duration) Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = retryMax
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.HTTPClient.Timeout = timeout
	rc.Logger = nil
	return &RetryableClient{client: rc}
}

// Send makes an HTTP request and returns the response.
func (c *RetryableClient) Send(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrHTTPClient)
	}

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("The request could not be completed").
			Mark(ierr.ErrHTTPClient)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to read the response").
			Mark(ierr.ErrHTTPClient)
	}

	headers := make(map[string]string, len(resp.Header))
	for k := range resp.Header {
		headers[k] = resp.Header.Get(k)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		Headers:    headers,
	}, nil
}
