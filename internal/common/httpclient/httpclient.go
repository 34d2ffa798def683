// Package httpclient provides the HTTP transport used by the UCRM API client.
// A client is bound to a single base URL at construction; each call performs
// exactly one request and returns the raw response. Interpreting status codes and
// bodies is left to the caller.
package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// QueryParam is a single query string parameter.
type QueryParam struct {
	Key   string
	Value string
}

// QueryParams is an ordered list of query parameters. Unlike url.Values,
// the encoded form keeps the order in which the parameters were added.
type QueryParams []QueryParam

// Add returns q with the parameter appended.
func (q QueryParams) Add(key, value string) QueryParams {
	return append(q, QueryParam{Key: key, Value: value})
}

// Encode encodes the parameters in order as "k1=v1&k2=v2".
func (q QueryParams) Encode() string {
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// RequestOptions describes a single request.
type RequestOptions struct {
	Method string      // HTTP method
	Path   string      // endpoint path, relative to the base URL
	Query  QueryParams // optional query parameters
	Body   []byte      // optional request body; nil means no body
	Header http.Header // request headers
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// ContentType returns the Content-Type header of the response.
func (r *Response) ContentType() string {
	return r.Header.Get("Content-Type")
}

// ClientOptions contains options for configuring the HTTP client.
type ClientOptions struct {
	DisableCertValidation bool          // If true, skips TLS certificate validation
	Timeout               time.Duration // Overall request timeout; zero means none
	HTTPClient            *http.Client  // Use this client instead of building one; other options are ignored
}

// HTTPClient performs requests against a fixed base URL.
// It holds no mutable state and is safe for concurrent use.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewClient creates a client bound to serverURL. For https URLs certificate
// validation is disabled unless options say otherwise, since the host application
// usually serves its local endpoint with a self-signed certificate.
func NewClient(serverURL string, opts ...ClientOptions) (*HTTPClient, error) {
	clientOpts := ClientOptions{}
	if strings.HasPrefix(serverURL, "https://") {
		clientOpts.DisableCertValidation = true
	}
	if len(opts) > 0 {
		clientOpts = opts[0]
	}
	return NewClientWithOptions(serverURL, clientOpts)
}

// NewClientWithOptions creates a client bound to serverURL using exactly the given options.
func NewClientWithOptions(serverURL string, opts ClientOptions) (*HTTPClient, error) {
	u, err := parseServerURL(serverURL)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
		if opts.DisableCertValidation {
			transport := http.DefaultTransport.(*http.Transport).Clone()
			transport.TLSClientConfig = &tls.Config{
				InsecureSkipVerify: true,
			}
			httpClient.Transport = transport
		}
	}

	return &HTTPClient{
		baseURL:    u,
		httpClient: httpClient,
	}, nil
}

func parseServerURL(serverURL string) (*url.URL, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server URL %q: scheme must be http or https", serverURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q: missing host", serverURL)
	}
	return u, nil
}

// resolveEndpoint resolves endpoint relative to the base URL. Absolute URLs and
// dot segments that climb above the base path are rejected.
func resolveEndpoint(base *url.URL, endpoint string) (*url.URL, error) {
	b := *base
	b.RawQuery = ""
	b.Fragment = ""
	if !strings.HasSuffix(b.Path, "/") {
		b.Path += "/"
		b.RawPath = ""
	}

	ref, err := url.Parse(strings.TrimPrefix(endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidEndpoint, endpoint, err)
	}
	if ref.Scheme != "" || ref.Host != "" || ref.Opaque != "" {
		return nil, fmt.Errorf("%w %q: must be relative to %s", ErrInvalidEndpoint, endpoint, b.String())
	}
	ref.Fragment = ""

	u := b.ResolveReference(ref)
	if !strings.HasPrefix(u.Path, b.Path) {
		return nil, fmt.Errorf("%w %q: leaves %s", ErrInvalidEndpoint, endpoint, b.Path)
	}
	return u, nil
}

// ServerURL returns the base URL the client is bound to.
func (c *HTTPClient) ServerURL() string {
	return c.baseURL.String()
}

// DoRequest sends the request and reads the whole response body.
// An error is returned only when no complete response was received;
// non-2xx responses are returned as is.
func (c *HTTPClient) DoRequest(ctx context.Context, opts RequestOptions) (*Response, error) {
	req, err := newRequest(ctx, c.baseURL, opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	log.Debug().
		Str("method", opts.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api request")

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// ErrInvalidEndpoint is returned when a request path cannot be resolved inside the base URL.
var ErrInvalidEndpoint = errors.New("invalid endpoint")

// newRequest resolves opts.Path against base as a relative reference and builds the http.Request.
// The path is kept as given, including a trailing slash. A query in the path comes before opts.Query.
func newRequest(ctx context.Context, base *url.URL, opts RequestOptions) (*http.Request, error) {
	u, err := resolveEndpoint(base, opts.Path)
	if err != nil {
		return nil, err
	}

	if len(opts.Query) > 0 {
		if u.RawQuery != "" {
			u.RawQuery += "&" + opts.Query.Encode()
		} else {
			u.RawQuery = opts.Query.Encode()
		}
	}

	var body io.Reader
	if opts.Body != nil {
		body = bytes.NewReader(opts.Body)
	}
	req, err := http.NewRequestWithContext(ctx, opts.Method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, vs := range opts.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return req, nil
}
