// Package helpers provides common test utilities for gather.
//
// This package includes a fake backend serving all four services plus the
// place search, configuration pointing at it, and assertion helpers for
// the client's error kinds.
package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/forgo/gather/internal/config"
	"github.com/forgo/gather/internal/model"
)

// ============================================================================
// Fake Backend
// ============================================================================

// Request is one request received by the fake backend
type Request struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	Body          []byte
}

// Backend is an httptest server standing in for every gather backend.
// Routes use net/http patterns such as "GET /api/v1/events/{id}".
type Backend struct {
	*httptest.Server

	mux      *http.ServeMux
	mu       sync.Mutex
	requests []Request
}

// NewBackend starts a fake backend that is closed when the test ends
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{mux: http.NewServeMux()}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		b.mu.Lock()
		b.requests = append(b.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			Body:          body,
		})
		b.mu.Unlock()
		b.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.Close)
	return b
}

// Handle registers a handler for pattern
func (b *Backend) Handle(pattern string, h http.HandlerFunc) {
	b.mux.HandleFunc(pattern, h)
}

// JSON registers a route answering with a fixed JSON body
func (b *Backend) JSON(pattern string, status int, body any) {
	b.Handle(pattern, func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, status, body)
	})
}

// Requests returns every request received so far
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request{}, b.requests...)
}

// Count returns how many requests matched method and path
func (b *Backend) Count(method, path string) int {
	n := 0
	for _, r := range b.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// Config returns a configuration pointing every service at the backend.
// The place search lives under /places.
func (b *Backend) Config(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Env: "test",
		Services: config.ServicesConfig{
			AuthURL:   b.URL,
			UsersURL:  b.URL,
			GroupsURL: b.URL,
			EventsURL: b.URL,
			APIPrefix: "/api/v1",
		},
		HTTP: config.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "gather-test"},
		Places: config.PlacesConfig{
			URL:      b.URL + "/places",
			Language: "ru",
			Limit:    6,
		},
		Display: config.DisplayConfig{MobileMaxWidth: 767, Timezone: "UTC", Locale: "ru_RU"},
		Log:     config.LogConfig{Level: "error"},
	}
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// ============================================================================
// Error Assertion Helpers
// ============================================================================

// AssertKind checks that err is a *model.Error of the given kind
func AssertKind(t *testing.T, err error, kind model.ErrorKind) {
	t.Helper()

	var merr *model.Error
	if !errors.As(err, &merr) {
		t.Fatalf("expected a %s error, got %v", kind, err)
	}
	if merr.Kind != kind {
		t.Errorf("expected error kind %s, got %s (%v)", kind, merr.Kind, err)
	}
}

// AssertValidationError checks for a validation error on a specific field
func AssertValidationError(t *testing.T, err error, field string) {
	t.Helper()

	var merr *model.Error
	if !errors.As(err, &merr) || merr.Kind != model.KindValidationFailure {
		t.Fatalf("expected a validation error, got %v", err)
	}
	for _, fe := range merr.Fields {
		if fe.Field == field {
			return
		}
	}
	t.Errorf("expected validation error on field %q, but not found. Errors: %+v", field, merr.Fields)
}

// ============================================================================
// Utility Helpers
// ============================================================================

// StringPtr returns a pointer to the string
func StringPtr(s string) *string {
	return &s
}

// IntPtr returns a pointer to the int
func IntPtr(i int) *int {
	return &i
}
