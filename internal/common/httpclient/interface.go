package httpclient

import "context"

// HTTPClientInterface is implemented by the network client and the handler-backed test client.
type HTTPClientInterface interface {
	// DoRequest performs one request and returns the complete response.
	// Errors mean no response was received.
	DoRequest(ctx context.Context, opts RequestOptions) (*Response, error)
}

var _ HTTPClientInterface = &HTTPClient{}
var _ HTTPClientInterface = &TestHTTPClient{}
