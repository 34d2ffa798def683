package ucrmapi

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/ubnt/ucrm-plugin-sdk-go/internal/common/apperrors"
	"github.com/ubnt/ucrm-plugin-sdk-go/pkg/pluginconfig"
)

// Configuration errors returned by Create, re-exported from pluginconfig.
var (
	ErrInvalidPluginRootPath = pluginconfig.ErrInvalidPluginRootPath
	ErrConfiguration         = pluginconfig.ErrConfiguration
)

var (
	// ErrAPI is the base error for failures of an API call.
	ErrAPI apperrors.Error = apperrors.New("ucrm api error")

	// ErrAPIRequest matches every *RequestError: the server answered with a non-2xx status.
	ErrAPIRequest apperrors.Error = ErrAPI.New("api request failed")

	// ErrResponseDecoding matches every *DecodingError: the server declared JSON but sent something else.
	ErrResponseDecoding apperrors.Error = ErrAPI.New("unable to decode api response")

	// ErrTransport matches every *TransportError: no response was received.
	ErrTransport apperrors.Error = ErrAPI.New("api transport failure")

	// ErrInvalidPayload is returned when request data cannot be encoded as JSON.
	ErrInvalidPayload apperrors.Error = ErrAPI.New("request data is not JSON serializable")

	// ErrInvalidEndpoint is returned before any request is sent when the endpoint is an
	// absolute URL or climbs above the API base path.
	ErrInvalidEndpoint apperrors.Error = ErrAPI.New("invalid endpoint")

	// ErrNotJSON is returned by Result.Decode for text results.
	ErrNotJSON apperrors.Error = ErrAPI.New("response is not JSON")

	// ErrInvalidClient is returned by New for a nil transport or an empty app key.
	ErrInvalidClient apperrors.Error = ErrAPI.New("invalid client")
)

// RequestError is returned when the API responds with a status outside the 2xx range.
type RequestError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Body       []byte
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: api responded with status %d: %s", e.Method, e.Endpoint, e.StatusCode, truncate(e.Body, 256))
}

func (e *RequestError) Is(target error) bool {
	return target == ErrAPIRequest || target == ErrAPI
}

// DecodingError is returned when a response declared as JSON cannot be parsed.
type DecodingError struct {
	Method      string
	Endpoint    string
	StatusCode  int
	ContentType string
	Body        []byte
	Err         error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("%s %s: unable to decode %s response: %v", e.Method, e.Endpoint, e.ContentType, e.Err)
}

func (e *DecodingError) Unwrap() error { return e.Err }

func (e *DecodingError) Is(target error) bool {
	return target == ErrResponseDecoding || target == ErrAPI
}

// TransportError is returned when the request could not be sent or no complete
// response was received, for example on connection refused, DNS failure or timeout.
type TransportError struct {
	Method   string
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport || target == ErrAPI
}

// Timeout reports whether the failure was caused by a timeout or an expired context deadline.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
