package ucrmapi

import (
	"bytes"
	"mime"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/ubnt/ucrm-plugin-sdk-go/internal/common/httpclient"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ResultKind tells how a response body was interpreted.
type ResultKind int

const (
	// KindText means the body is returned verbatim as text.
	KindText ResultKind = iota
	// KindJSON means the body was parsed as JSON.
	KindJSON
)

func (k ResultKind) String() string {
	if k == KindJSON {
		return "json"
	}
	return "text"
}

// Result is a successfully received and decoded response.
// Its content type decides the kind: JSON content types yield KindJSON, everything else KindText.
type Result struct {
	kind        ResultKind
	statusCode  int
	contentType string
	raw         []byte
	value       any
}

// Kind returns whether the result was decoded as text or JSON.
func (r *Result) Kind() ResultKind { return r.kind }

// IsJSON reports whether the response declared a JSON content type.
func (r *Result) IsJSON() bool { return r.kind == KindJSON }

// StatusCode returns the 2xx status the API responded with.
func (r *Result) StatusCode() int { return r.statusCode }

// ContentType returns the Content-Type header of the response, possibly empty.
func (r *Result) ContentType() string { return r.contentType }

// Raw returns the undecoded response body.
func (r *Result) Raw() []byte { return r.raw }

// Text returns the body as a string, regardless of kind.
func (r *Result) Text() string { return string(r.raw) }

// Value returns the decoded JSON value (map[string]any, []any, string, float64, bool or nil)
// for JSON results, and the body string for text results.
// Numbers are float64, so integers beyond 2^53 lose precision; use Decode into
// int64 fields or json.Number to keep them exact.
func (r *Result) Value() any {
	if r.kind == KindJSON {
		return r.value
	}
	return string(r.raw)
}

// Decode unmarshals a JSON result into v.
func (r *Result) Decode(v any) error {
	if r.kind != KindJSON {
		return ErrNotJSON.Msg("response content type is " + r.contentType)
	}
	if len(bytes.TrimSpace(r.raw)) == 0 {
		return nil
	}
	return json.Unmarshal(r.raw, v)
}

// isJSONContentType accepts application/json and structured syntax variants such as
// application/problem+json. Parameters like charset are ignored.
func isJSONContentType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// decodeResponse turns a 2xx response into a Result.
func decodeResponse(method, endpoint string, resp *httpclient.Response) (*Result, error) {
	r := &Result{
		kind:        KindText,
		statusCode:  resp.StatusCode,
		contentType: resp.ContentType(),
		raw:         resp.Body,
	}
	if !isJSONContentType(r.contentType) {
		return r, nil
	}

	r.kind = KindJSON
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return r, nil
	}
	if err := json.Unmarshal(resp.Body, &r.value); err != nil {
		return nil, &DecodingError{
			Method:      method,
			Endpoint:    endpoint,
			StatusCode:  resp.StatusCode,
			ContentType: r.contentType,
			Body:        resp.Body,
			Err:         err,
		}
	}
	return r, nil
}
