package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skyfinder/weather-search/internal/weather"
)

// ForecastCache keeps provider forecasts in Redis for a fixed TTL.
type ForecastCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New connects to Redis and verifies the connection with a ping.
func New(ctx context.Context, addr, password string, db int, ttl time.Duration, logger *slog.Logger) (*ForecastCache, error) {
	if addr == "" {
		return nil, errors.New("redis address must not be empty")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewWithClient(client, ttl, logger), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, ttl time.Duration, logger *slog.Logger) *ForecastCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ForecastCache{client: client, ttl: ttl, logger: logger}
}

// Close releases the underlying Redis client.
func (c *ForecastCache) Close() error {
	return c.client.Close()
}

// Get returns nil, nil when the place is not cached.
func (c *ForecastCache) Get(ctx context.Context, place string) (*weather.Forecast, error) {
	key := ForecastKey(place)
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read forecast from redis: %w", err)
	}

	var forecast weather.Forecast
	if err := json.Unmarshal(val, &forecast); err != nil {
		return nil, fmt.Errorf("decode cached forecast: %w", err)
	}

	c.logger.Debug("forecast served from cache", "key", key)
	return &forecast, nil
}

// Set stores forecast under place for the cache TTL. A nil forecast is ignored.
func (c *ForecastCache) Set(ctx context.Context, place string, forecast *weather.Forecast) error {
	if forecast == nil {
		return nil
	}
	data, err := json.Marshal(forecast)
	if err != nil {
		return fmt.Errorf("encode forecast: %w", err)
	}

	key := ForecastKey(place)
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("write forecast to redis: %w", err)
	}

	c.logger.Debug("forecast cached", "key", key, "ttl", c.ttl)
	return nil
}

// Ping reports whether Redis is reachable.
func (c *ForecastCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// ForecastKey builds the cache key for a place; lookups are case- and
// whitespace-insensitive.
func ForecastKey(place string) string {
	return "weather:forecast:" + strings.Join(strings.Fields(strings.ToLower(place)), " ")
}

var _ weather.ForecastCache = (*ForecastCache)(nil)
