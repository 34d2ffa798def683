package ucrmapi

import (
	"bytes"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"github.com/ubnt/ucrm-plugin-sdk-go/internal/common/httpclient"
)

const testAppKey = "testAppKey/xyz"

type recordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     string
}

type cannedResponse struct {
	status      int
	contentType string
	body        string
}

// fakeUcrm is an in-memory UCRM API. It records every request it receives.
type fakeUcrm struct {
	mu       sync.Mutex
	requests []recordedRequest
	clients  cannedResponse
	router   chi.Router
}

func newFakeUcrm() *fakeUcrm {
	f := &fakeUcrm{
		clients: cannedResponse{status: http.StatusOK, contentType: "application/json", body: `[]`},
	}

	r := chi.NewRouter()
	r.Use(f.record)
	r.Route("/api/v1.0", func(r chi.Router) {
		r.Get("/clients", func(w http.ResponseWriter, _ *http.Request) {
			f.mu.Lock()
			resp := f.clients
			f.mu.Unlock()
			writeCanned(w, resp)
		})
		r.Post("/clients", func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			writeCanned(w, cannedResponse{status: http.StatusCreated, contentType: "application/json", body: string(body)})
		})
		r.Patch("/clients/{id}", func(w http.ResponseWriter, r *http.Request) {
			writeCanned(w, cannedResponse{status: http.StatusOK, contentType: "application/json; charset=utf-8", body: `{"id":` + chi.URLParam(r, "id") + `}`})
		})
		r.Delete("/clients/{id}", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		r.Get("/broken", func(w http.ResponseWriter, _ *http.Request) {
			writeCanned(w, cannedResponse{status: http.StatusOK, contentType: "application/json", body: `{"id": 1,`})
		})
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeCanned(w, cannedResponse{status: http.StatusNotFound, contentType: "application/json", body: `{"code":404,"message":"Not found."}`})
	})
	f.router = r
	return f
}

func (f *fakeUcrm) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}
		f.mu.Lock()
		f.requests = append(f.requests, recordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
			Body:     string(body),
		})
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (f *fakeUcrm) respondToClients(resp cannedResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients = resp
}

func (f *fakeUcrm) lastRequest(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests, "no request reached the server")
	return f.requests[len(f.requests)-1]
}

func (f *fakeUcrm) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func writeCanned(w http.ResponseWriter, resp cannedResponse) {
	if resp.contentType != "" {
		w.Header().Set("Content-Type", resp.contentType)
	}
	w.WriteHeader(resp.status)
	_, _ = io.WriteString(w, resp.body)
}

// newTestClient returns a client wired to a fresh fake UCRM through the recorder transport.
func newTestClient(t *testing.T) (*Client, *fakeUcrm) {
	t.Helper()
	f := newFakeUcrm()
	transport, err := httpclient.NewTestClient("http://ucrm.local/api/v1.0/", f.router)
	require.NoError(t, err)
	c, err := New(transport, testAppKey)
	require.NoError(t, err)
	return c, f
}
