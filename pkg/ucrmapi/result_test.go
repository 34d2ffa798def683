package ucrmapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ubnt/ucrm-plugin-sdk-go/internal/common/httpclient"
)

func TestIsJSONContentType(t *testing.T) {
	tests := map[string]bool{
		"application/json":                  true,
		"application/json; charset=utf-8":   true,
		"Application/JSON":                  true,
		"application/problem+json":          true,
		"application/vnd.api+json; q=0.9":   true,
		"application/json;;broken":          true,
		"text/plain":                        false,
		"text/json-ish":                     false,
		"application/javascript":            false,
		"":                                  false,
		"application/x-www-form-urlencoded": false,
	}
	for contentType, expected := range tests {
		t.Run(contentType, func(t *testing.T) {
			assert.Equal(t, expected, isJSONContentType(contentType))
		})
	}
}

func response(status int, contentType, body string) *httpclient.Response {
	h := http.Header{}
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return &httpclient.Response{StatusCode: status, Header: h, Body: []byte(body)}
}

func TestDecodeResponse(t *testing.T) {
	t.Run("json scalar", func(t *testing.T) {
		r, err := decodeResponse(http.MethodGet, "version", response(http.StatusOK, "application/json", `"2.14.0"`))
		require.NoError(t, err)
		assert.Equal(t, "2.14.0", r.Value())
		assert.Equal(t, "json", r.Kind().String())
	})

	t.Run("empty json body", func(t *testing.T) {
		r, err := decodeResponse(http.MethodDelete, "clients/1", response(http.StatusOK, "application/json", "  "))
		require.NoError(t, err)
		assert.True(t, r.IsJSON())
		assert.Nil(t, r.Value())
		var v map[string]any
		assert.NoError(t, r.Decode(&v))
		assert.Nil(t, v)
	})

	t.Run("large integers", func(t *testing.T) {
		r, err := decodeResponse(http.MethodGet, "clients/1", response(http.StatusOK, "application/json", `{"id":9007199254740993}`))
		require.NoError(t, err)
		assert.Equal(t, float64(9007199254740992), r.Value().(map[string]any)["id"])

		var typed struct {
			ID int64 `json:"id"`
		}
		require.NoError(t, r.Decode(&typed))
		assert.Equal(t, int64(9007199254740993), typed.ID)
	})

	t.Run("text is returned unmodified", func(t *testing.T) {
		body := "  line one\nline two\n"
		r, err := decodeResponse(http.MethodGet, "export", response(http.StatusOK, "text/csv", body))
		require.NoError(t, err)
		assert.Equal(t, body, r.Value())
		assert.Equal(t, []byte(body), r.Raw())
		assert.Equal(t, "text/csv", r.ContentType())
		assert.Equal(t, "text", r.Kind().String())
	})

	t.Run("trailing garbage is a decoding error", func(t *testing.T) {
		_, err := decodeResponse(http.MethodGet, "clients", response(http.StatusOK, "application/json", `[1] [2]`))
		assert.ErrorIs(t, err, ErrResponseDecoding)
	})
}

func TestResultDecode(t *testing.T) {
	r, err := decodeResponse(http.MethodGet, "clients", response(http.StatusOK, "application/json", `[{"id":1,"firstName":"John"},{"id":2,"firstName":"Jane"}]`))
	require.NoError(t, err)

	var clients []struct {
		ID        int    `json:"id"`
		FirstName string `json:"firstName"`
	}
	require.NoError(t, r.Decode(&clients))
	require.Len(t, clients, 2)
	assert.Equal(t, 2, clients[1].ID)
	assert.Equal(t, "Jane", clients[1].FirstName)

	text, err := decodeResponse(http.MethodGet, "clients", response(http.StatusOK, "text/plain", `[]`))
	require.NoError(t, err)
	assert.ErrorIs(t, text.Decode(&clients), ErrNotJSON)
}
