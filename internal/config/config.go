package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration key read from the environment
const EnvPrefix = "GATHER"

// Config holds all application configuration
type Config struct {
	Env      string
	Services ServicesConfig
	HTTP     HTTPConfig
	Places   PlacesConfig
	Session  SessionConfig
	Display  DisplayConfig
	Log      LogConfig
}

// ServicesConfig holds the base URLs of the four backends
type ServicesConfig struct {
	AuthURL   string
	UsersURL  string
	GroupsURL string
	EventsURL string
	APIPrefix string
}

// HTTPConfig holds outbound HTTP client settings
type HTTPConfig struct {
	Timeout   time.Duration
	UserAgent string
}

// PlacesConfig holds place-search (Nominatim) settings
type PlacesConfig struct {
	URL      string
	Language string
	Limit    int
	Debounce time.Duration
	Rate     float64 // requests per second
}

// SessionConfig holds where the current-user identifier is kept
type SessionConfig struct {
	Path string
}

// DisplayConfig holds viewport and formatting settings
type DisplayConfig struct {
	MobileMaxWidth int
	Timezone       string
	Locale         string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// Load reads configuration from an optional .env file and the environment,
// with sensible defaults.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path. A missing file is not an error.
func LoadFile(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	return bindConfig(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")

	v.SetDefault("auth.url", "http://localhost:8001")
	v.SetDefault("users.url", "http://localhost:8002")
	v.SetDefault("groups.url", "http://localhost:8003")
	v.SetDefault("events.url", "http://localhost:8005")
	v.SetDefault("api.prefix", "/api/v1")

	v.SetDefault("http.timeout", 10*time.Second)
	v.SetDefault("user.agent", "gather-cli/1.0")

	v.SetDefault("places.url", "https://nominatim.openstreetmap.org")
	v.SetDefault("places.language", "ru")
	v.SetDefault("places.limit", 6)
	v.SetDefault("places.debounce", 350*time.Millisecond)
	v.SetDefault("places.rate", 1.0)

	v.SetDefault("session.path", defaultSessionPath())

	v.SetDefault("mobile.max.width", 767)
	v.SetDefault("timezone", "Local")
	v.SetDefault("locale", "ru_RU")

	v.SetDefault("log.level", "info")
}

func bindConfig(v *viper.Viper) *Config {
	return &Config{
		Env: v.GetString("env"),
		Services: ServicesConfig{
			AuthURL:   v.GetString("auth.url"),
			UsersURL:  v.GetString("users.url"),
			GroupsURL: v.GetString("groups.url"),
			EventsURL: v.GetString("events.url"),
			APIPrefix: v.GetString("api.prefix"),
		},
		HTTP: HTTPConfig{
			Timeout:   v.GetDuration("http.timeout"),
			UserAgent: v.GetString("user.agent"),
		},
		Places: PlacesConfig{
			URL:      v.GetString("places.url"),
			Language: v.GetString("places.language"),
			Limit:    v.GetInt("places.limit"),
			Debounce: v.GetDuration("places.debounce"),
			Rate:     v.GetFloat64("places.rate"),
		},
		Session: SessionConfig{
			Path: v.GetString("session.path"),
		},
		Display: DisplayConfig{
			MobileMaxWidth: v.GetInt("mobile.max.width"),
			Timezone:       v.GetString("timezone"),
			Locale:         v.GetString("locale"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
	}
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "gather-session.db"
	}
	return dir + string(os.PathSeparator) + "gather" + string(os.PathSeparator) + "session.db"
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Location resolves the configured display time zone
func (c *Config) Location() (*time.Location, error) {
	if c.Display.Timezone == "" || c.Display.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Display.Timezone)
}

// LogLevel parses the configured log level
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Env != "development" && c.Env != "production" && c.Env != "test" {
		errs = append(errs, fmt.Errorf("GATHER_ENV must be 'development', 'production', or 'test', got '%s'", c.Env))
	}

	// Service URLs
	for key, raw := range map[string]string{
		"GATHER_AUTH_URL":   c.Services.AuthURL,
		"GATHER_USERS_URL":  c.Services.UsersURL,
		"GATHER_GROUPS_URL": c.Services.GroupsURL,
		"GATHER_EVENTS_URL": c.Services.EventsURL,
		"GATHER_PLACES_URL": c.Places.URL,
	} {
		if err := validateURL(raw); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}
	if c.Services.APIPrefix != "" && !strings.HasPrefix(c.Services.APIPrefix, "/") {
		errs = append(errs, errors.New("GATHER_API_PREFIX must start with '/'"))
	}

	if c.HTTP.Timeout <= 0 {
		errs = append(errs, errors.New("GATHER_HTTP_TIMEOUT must be positive"))
	}

	// Place search
	if c.Places.Limit <= 0 {
		errs = append(errs, errors.New("GATHER_PLACES_LIMIT must be positive"))
	}
	if c.Places.Debounce < 0 {
		errs = append(errs, errors.New("GATHER_PLACES_DEBOUNCE must not be negative"))
	}
	if c.Places.Rate <= 0 {
		errs = append(errs, errors.New("GATHER_PLACES_RATE must be positive"))
	}

	if c.Session.Path == "" {
		errs = append(errs, errors.New("GATHER_SESSION_PATH is required"))
	}

	if c.Display.MobileMaxWidth <= 0 {
		errs = append(errs, errors.New("GATHER_MOBILE_MAX_WIDTH must be positive"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("GATHER_TIMEZONE: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func validateURL(raw string) error {
	if raw == "" {
		return errors.New("is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("host is required")
	}
	return nil
}
