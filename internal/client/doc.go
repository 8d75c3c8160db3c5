// Package client implements the remote resource clients for the gather
// backends: auth, users, groups and events, plus a Nominatim-compatible
// place-search client.
//
// Every client method takes an explicit model.Session. When the session is
// authenticated its user identifier is sent as the bare Authorization header
// value; the backends do not use signed tokens.
//
// # Failures
//
// Clients return *model.Error values:
//
//   - transport errors, and non-2xx responses without a readable message,
//     are network failures
//   - non-2xx responses carrying a message (JSON "message", RFC 9457
//     "detail"/"title", or plain text) are server rejections
//
// Nothing is retried.
//
// # Transport
//
// NewHTTPClient wraps http.DefaultTransport in a middleware chain that tags
// requests with an X-Request-ID, sets the User-Agent and logs each round trip:
//
//	hc := client.NewHTTPClient(10*time.Second, "gather-cli/1.0", slog.Default())
//	b := client.NewBackendsWithClient(cfg, hc)
package client
