// Package config manages configuration for the gather client.
//
// Configuration is read from an optional .env file (loaded into the process
// environment first) and then from GATHER_* environment variables through
// viper, falling back to defaults suited to a local development stack.
//
//	cfg, err := config.Load()
//	if err != nil { ... }
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
//   - ServicesConfig: base URLs of the auth, users, groups and events backends
//   - HTTPConfig: outbound client timeout and User-Agent
//   - PlacesConfig: place-search endpoint, language, debounce and rate
//   - SessionConfig: location of the local session store
//   - DisplayConfig: mobile breakpoint, time zone and locale
//
// # Environment Variables
//
//	GATHER_ENV               - development, production or test (default: development)
//	GATHER_AUTH_URL          - auth service (default: http://localhost:8001)
//	GATHER_USERS_URL         - users service (default: http://localhost:8002)
//	GATHER_GROUPS_URL        - groups service (default: http://localhost:8003)
//	GATHER_EVENTS_URL        - events service (default: http://localhost:8005)
//	GATHER_API_PREFIX        - path prefix for every backend (default: /api/v1)
//	GATHER_HTTP_TIMEOUT      - per-request timeout (default: 10s)
//	GATHER_PLACES_URL        - Nominatim-compatible search service
//	GATHER_PLACES_DEBOUNCE   - address input debounce (default: 350ms)
//	GATHER_SESSION_PATH      - bbolt file holding the current user
//	GATHER_MOBILE_MAX_WIDTH  - widths up to this are mobile (default: 767)
//	GATHER_TIMEZONE          - IANA zone for date filters and input (default: Local)
//	GATHER_LOCALE            - date rendering locale (default: ru_RU)
//	GATHER_LOG_LEVEL         - debug, info, warn or error (default: info)
package config
