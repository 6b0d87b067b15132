package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/net/idna"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// WeatherConfig holds the settings of the outbound weather provider.
type WeatherConfig struct {
	BaseURL string
	APIKey  string
	Days    int
	Timeout time.Duration
}

// RedisConfig enables the forecast cache when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	Env               string
	Port              string
	Weather           WeatherConfig
	DatabaseURL       string
	Redis             RedisConfig
	JWTSecret         string
	TokenTTL          time.Duration
	AdminEmail        string
	AdminPasswordHash string
	RateLimitSearch   RateLimitConfig
	ZipkinURL         string
}

// Load reads config.json from CONFIG_DIR (or the working directory) and lets
// environment variables override every key.
func Load() (*Config, error) {
	return LoadFrom(getEnv("CONFIG_DIR", "."))
}

// LoadFrom is Load with an explicit directory for config.json.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(dir)
	v.AutomaticEnv()

	v.SetDefault("env", "development")
	v.SetDefault("port", "8080")
	v.SetDefault("forecast_days", 7)
	v.SetDefault("weather_timeout", "15s")
	v.SetDefault("redis_db", 0)
	v.SetDefault("cache_ttl", "10m")
	v.SetDefault("jwt_secret", "dev-secret")
	v.SetDefault("jwt_ttl", "24h")
	v.SetDefault("rate_limit_search", "30/min")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		Env:  v.GetString("env"),
		Port: v.GetString("port"),
		Weather: WeatherConfig{
			APIKey:  strings.TrimSpace(v.GetString("weather_api_key")),
			Days:    v.GetInt("forecast_days"),
			Timeout: parseDuration(v.GetString("weather_timeout"), 15*time.Second),
		},
		DatabaseURL: v.GetString("database_url"),
		Redis: RedisConfig{
			Addr:     v.GetString("redis_addr"),
			Password: v.GetString("redis_password"),
			DB:       v.GetInt("redis_db"),
			TTL:      parseDuration(v.GetString("cache_ttl"), 10*time.Minute),
		},
		JWTSecret:         v.GetString("jwt_secret"),
		TokenTTL:          parseDuration(v.GetString("jwt_ttl"), 24*time.Hour),
		AdminEmail:        strings.TrimSpace(v.GetString("admin_email")),
		AdminPasswordHash: v.GetString("admin_password_hash"),
		ZipkinURL:         v.GetString("zipkin_url"),
	}

	baseURL, err := normalizeBaseURL(v.GetString("weather_api_url"))
	if err != nil {
		return nil, fmt.Errorf("invalid weather_api_url: %w", err)
	}
	cfg.Weather.BaseURL = baseURL

	if cfg.Weather.APIKey == "" {
		return nil, errors.New("weather_api_key is required")
	}
	if cfg.Weather.Days <= 0 {
		cfg.Weather.Days = 7
	}

	rl, err := parseRateLimit(v.GetString("rate_limit_search"))
	if err != nil {
		return nil, fmt.Errorf("invalid rate_limit_search value: %w", err)
	}
	cfg.RateLimitSearch = rl

	return cfg, nil
}

// normalizeBaseURL requires an absolute http(s) URL and converts an
// internationalized host to its ASCII form.
func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("value is required")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Hostname() == "" {
		return "", errors.New("missing host")
	}

	host, err := idna.Lookup.ToASCII(u.Hostname())
	if err != nil {
		return "", fmt.Errorf("invalid host: %w", err)
	}
	if port := u.Port(); port != "" {
		host = net.JoinHostPort(host, port)
	}
	u.Host = host

	return u.String(), nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
