package ucrmapi

import (
	"net/http"
	"time"
)

// Option configures the transport built by Create and NewFromConfig.
type Option func(*options)

type options struct {
	verifyTLS  bool
	timeout    time.Duration
	httpClient *http.Client
}

// Certificates are not verified by default: plugins talk to UCRM's local
// endpoint, which typically uses a self-signed certificate.
func defaultOptions() options {
	return options{
		verifyTLS: false,
		timeout:   0,
	}
}

// WithTimeout bounds every request, including reading the response body.
// Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithTLSVerification enables or disables verification of the server certificate.
func WithTLSVerification(verify bool) Option {
	return func(o *options) {
		o.verifyTLS = verify
	}
}

// WithHTTPClient makes the transport use hc. Timeout and TLS options are then ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}
