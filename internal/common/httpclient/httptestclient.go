package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
)

// TestHTTPClient serves requests directly from an http.Handler.
// It uses httptest.NewRecorder to capture responses without making network calls.
type TestHTTPClient struct {
	baseURL *url.URL
	handler http.Handler
}

// NewTestClient creates a test client that resolves paths against serverURL and
// dispatches every request to handler.
func NewTestClient(serverURL string, handler http.Handler) (*TestHTTPClient, error) {
	if handler == nil {
		return nil, fmt.Errorf("handler is required")
	}
	u, err := parseServerURL(serverURL)
	if err != nil {
		return nil, err
	}
	return &TestHTTPClient{
		baseURL: u,
		handler: handler,
	}, nil
}

// DoRequest builds the request exactly like HTTPClient and records the handler's response.
func (c *TestHTTPClient) DoRequest(ctx context.Context, opts RequestOptions) (*Response, error) {
	req, err := newRequest(ctx, c.baseURL, opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	rr := httptest.NewRecorder()
	c.handler.ServeHTTP(rr, req)
	result := rr.Result()

	return &Response{
		StatusCode: result.StatusCode,
		Header:     result.Header,
		Body:       rr.Body.Bytes(),
	}, nil
}
