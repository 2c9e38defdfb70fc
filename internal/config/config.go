package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Auth     AuthConfig
	Latency  LatencyConfig
	Funding  FundingConfig
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr string
}

// DatabaseConfig contains the database connection settings.
type DatabaseConfig struct {
	URL             string
	UseMock         bool
	PreferencesPath string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// LoggingConfig controls the global logger.
type LoggingConfig struct {
	Level string
}

// AuthConfig groups authentication related settings.
type AuthConfig struct {
	Session SessionConfig
}

// SessionConfig controls the HTTP session cookie.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// LatencyConfig holds the artificial delays that stand in for network calls.
type LatencyConfig struct {
	Login    time.Duration
	Feed     time.Duration
	Students time.Duration
}

// FundingConfig limits how often a single client may submit funding.
type FundingConfig struct {
	RatePerMinute int
}

const (
	defaultAddr             = ":8080"
	defaultSessionLifetime  = 12 * time.Hour
	defaultSessionCookie    = "dsfs_session"
	defaultLoginLatency     = time.Second
	defaultFeedLatency      = time.Second
	defaultStudentsLatency  = 800 * time.Millisecond
	defaultFundingPerMinute = 30
)

// Load inspects the environment and builds a Config value.
func Load() (Config, error) {
	cfg := Config{}

	cfg.Server = ServerConfig{
		Addr: firstNonEmpty(
			os.Getenv("SERVER_ADDR"),
			os.Getenv("ADDR"),
			defaultAddr,
		),
	}

	url := firstNonEmpty(os.Getenv("DATABASE_URL"), os.Getenv("DB_URL"))
	cfg.Database = DatabaseConfig{
		URL:             url,
		UseMock:         parseBoolWithDefault(os.Getenv("DATABASE_USE_MOCK"), strings.TrimSpace(url) == ""),
		PreferencesPath: strings.TrimSpace(os.Getenv("PREFERENCES_DB_PATH")),
		MaxIdleConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_IDLE_CONNS"), 0),
		MaxOpenConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_OPEN_CONNS"), 0),
		ConnMaxLifetime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_LIFETIME"), 0),
		ConnMaxIdleTime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_IDLE_TIME"), 0),
	}

	cfg.Logging = LoggingConfig{
		Level: strings.ToLower(strings.TrimSpace(firstNonEmpty(os.Getenv("LOG_LEVEL"), "info"))),
	}

	cfg.Auth = AuthConfig{
		Session: SessionConfig{
			Lifetime:     parseDurationWithDefault(os.Getenv("SESSION_LIFETIME"), defaultSessionLifetime),
			CookieName:   firstNonEmpty(os.Getenv("SESSION_COOKIE_NAME"), defaultSessionCookie),
			CookieDomain: strings.TrimSpace(os.Getenv("SESSION_COOKIE_DOMAIN")),
			CookieSecure: parseBoolWithDefault(os.Getenv("SESSION_COOKIE_SECURE"), false),
		},
	}

	cfg.Latency = LatencyConfig{
		Login:    parseDurationWithDefault(os.Getenv("LATENCY_LOGIN"), defaultLoginLatency),
		Feed:     parseDurationWithDefault(os.Getenv("LATENCY_FEED"), defaultFeedLatency),
		Students: parseDurationWithDefault(os.Getenv("LATENCY_STUDENTS"), defaultStudentsLatency),
	}

	cfg.Funding = FundingConfig{
		RatePerMinute: parseIntWithDefault(os.Getenv("FUNDING_RATE_PER_MINUTE"), defaultFundingPerMinute),
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}
	if !cfg.Database.UseMock && strings.TrimSpace(cfg.Database.URL) == "" {
		return Config{}, fmt.Errorf("database URL must be set when the mock database is disabled")
	}
	if cfg.Latency.Login < 0 || cfg.Latency.Feed < 0 || cfg.Latency.Students < 0 {
		return Config{}, fmt.Errorf("latency values must not be negative")
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func parseIntWithDefault(value string, def int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseDurationWithDefault(value string, def time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseBoolWithDefault(value string, def bool) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return parsed
}
