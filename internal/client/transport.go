package client

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Middleware wraps an http.RoundTripper
type Middleware func(http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to http.RoundTripper
type RoundTripperFunc func(*http.Request) (*http.Response, error)

// RoundTrip implements http.RoundTripper
func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Chain applies middlewares to a transport in order; the first runs outermost
func Chain(base http.RoundTripper, middlewares ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	for i := len(middlewares) - 1; i >= 0; i-- {
		base = middlewares[i](base)
	}
	return base
}

// contextKey is a type for context keys to avoid collisions
type contextKey string

const RequestIDKey contextKey = "requestID"

// WithRequestID pins the request id used for requests made with ctx
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// GetRequestID extracts the request ID from context
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// RequestID tags each outbound request with an X-Request-ID, reusing one
// from the context when present.
func RequestID(next http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		if r.Header.Get("X-Request-ID") != "" {
			return next.RoundTrip(r)
		}
		requestID := GetRequestID(r.Context())
		if requestID == "" {
			requestID = uuid.New().String()
		}
		r = r.Clone(WithRequestID(r.Context(), requestID))
		r.Header.Set("X-Request-ID", requestID)
		return next.RoundTrip(r)
	})
}

// UserAgent sets the User-Agent header. Nominatim's usage policy requires one.
func UserAgent(agent string) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if agent == "" || r.Header.Get("User-Agent") != "" {
				return next.RoundTrip(r)
			}
			r = r.Clone(r.Context())
			r.Header.Set("User-Agent", agent)
			return next.RoundTrip(r)
		})
	}
}

// Logger logs request details using structured logging
func Logger(log *slog.Logger) Middleware {
	if log == nil {
		log = slog.Default()
	}
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()

			resp, err := next.RoundTrip(r)

			attrs := []any{
				slog.String("method", r.Method),
				slog.String("host", r.URL.Host),
				slog.String("path", r.URL.Path),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", r.Header.Get("X-Request-ID")),
			}
			if err != nil {
				log.Warn("request failed", append(attrs, slog.String("error", err.Error()))...)
				return resp, err
			}
			log.Debug("request", append(attrs, slog.Int("status", resp.StatusCode))...)
			return resp, nil
		})
	}
}

// NewHTTPClient builds the outbound client used by every backend client
func NewHTTPClient(timeout time.Duration, userAgent string, log *slog.Logger) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: Chain(http.DefaultTransport, RequestID, UserAgent(userAgent), Logger(log)),
	}
}
