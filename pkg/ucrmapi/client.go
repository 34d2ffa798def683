// Package ucrmapi is the client plugins use to call the UCRM REST API.
//
// A Client is created from a plugin root with Create, which reads the plugin's
// ucrm.json, or from an existing transport with New. Every call performs exactly
// one HTTP request authenticated with the plugin's app key and returns a Result
// decoded according to the response content type.
package ucrmapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/ubnt/ucrm-plugin-sdk-go/internal/common/httpclient"
	"github.com/ubnt/ucrm-plugin-sdk-go/pkg/pluginconfig"
)

// AppKeyHeader is the header carrying the plugin app key on every request.
const AppKeyHeader = "x-auth-app-key"

type (
	// Transport performs a single HTTP exchange against the API base URL.
	Transport = httpclient.HTTPClientInterface
	// RequestDescriptor describes one outbound request.
	RequestDescriptor = httpclient.RequestOptions
	// Response is the raw response returned by a Transport.
	Response = httpclient.Response
	// QueryParam is one query string parameter.
	QueryParam = httpclient.QueryParam
	// Query is an ordered list of query parameters; the order is kept on the wire.
	Query = httpclient.QueryParams
)

// Client calls the UCRM API on behalf of a plugin.
// It has no mutable state and is safe for concurrent use.
type Client struct {
	transport Transport
	appKey    string
}

// New returns a client that sends requests through transport, authenticated with appKey.
func New(transport Transport, appKey string) (*Client, error) {
	if transport == nil {
		return nil, ErrInvalidClient.Msg("transport is required")
	}
	if appKey == "" {
		return nil, ErrInvalidClient.Msg("app key is required")
	}
	return &Client{
		transport: transport,
		appKey:    appKey,
	}, nil
}

// Create resolves the plugin configuration found in rootPath and returns a client bound
// to the configured UCRM API URL. Configuration errors are returned unchanged and match
// ErrInvalidPluginRootPath or ErrConfiguration.
func Create(rootPath string, opts ...Option) (*Client, error) {
	cfg, err := pluginconfig.Resolve(rootPath)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg, opts...)
}

// NewFromConfig builds a client from an already resolved plugin configuration.
func NewFromConfig(cfg *pluginconfig.PluginConfiguration, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfiguration.Msg("plugin configuration is required")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	transport, err := httpclient.NewClientWithOptions(cfg.APIBaseURL(), httpclient.ClientOptions{
		DisableCertValidation: !o.verifyTLS,
		Timeout:               o.timeout,
		HTTPClient:            o.httpClient,
	})
	if err != nil {
		return nil, ErrConfiguration.Err(err)
	}
	return New(transport, cfg.AppKey())
}

// AppKey returns the key the client authenticates with.
func (c *Client) AppKey() string {
	return c.appKey
}

// Get sends a GET request with the query parameters in the given order.
func (c *Client) Get(ctx context.Context, endpoint string, query Query) (*Result, error) {
	return c.do(ctx, RequestDescriptor{
		Method: http.MethodGet,
		Path:   endpoint,
		Query:  query,
	})
}

// Post sends data as a JSON body in a POST request.
func (c *Client) Post(ctx context.Context, endpoint string, data any) (*Result, error) {
	return c.doJSON(ctx, http.MethodPost, endpoint, data)
}

// Patch sends data as a JSON body in a PATCH request.
func (c *Client) Patch(ctx context.Context, endpoint string, data any) (*Result, error) {
	return c.doJSON(ctx, http.MethodPatch, endpoint, data)
}

// Delete sends a DELETE request without a body.
func (c *Client) Delete(ctx context.Context, endpoint string) (*Result, error) {
	return c.do(ctx, RequestDescriptor{
		Method: http.MethodDelete,
		Path:   endpoint,
	})
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, data any) (*Result, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, ErrInvalidPayload.Err(err)
	}
	req := RequestDescriptor{
		Method: method,
		Path:   endpoint,
		Body:   body,
		Header: http.Header{},
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(ctx, req)
}

func (c *Client) do(ctx context.Context, req RequestDescriptor) (*Result, error) {
	if req.Header == nil {
		req.Header = http.Header{}
	}
	req.Header.Set(AppKeyHeader, c.appKey)

	resp, err := c.transport.DoRequest(ctx, req)
	if err != nil {
		if errors.Is(err, httpclient.ErrInvalidEndpoint) {
			return nil, ErrInvalidEndpoint.Err(err)
		}
		return nil, &TransportError{
			Method:   req.Method,
			Endpoint: req.Path,
			Err:      err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{
			Method:     req.Method,
			Endpoint:   req.Path,
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
		}
	}
	return decodeResponse(req.Method, req.Path, resp)
}
