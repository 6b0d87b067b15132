package weather

import (
	"context"
	"log/slog"
)

// ForecastCache stores forecasts by place. Get returns nil, nil on a miss.
type ForecastCache interface {
	Get(ctx context.Context, place string) (*Forecast, error)
	Set(ctx context.Context, place string, forecast *Forecast) error
}

// CachedFetcher serves forecasts from a cache and falls back to the wrapped
// fetcher. Only present forecasts are stored; cache failures never hide a
// provider answer.
type CachedFetcher struct {
	next   Fetcher
	cache  ForecastCache
	logger *slog.Logger
}

// NewCachedFetcher wraps next with cache.
func NewCachedFetcher(next Fetcher, cache ForecastCache, logger *slog.Logger) *CachedFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedFetcher{next: next, cache: cache, logger: logger}
}

// FetchWeather implements Fetcher.
func (f *CachedFetcher) FetchWeather(ctx context.Context, place string) (*Forecast, bool) {
	cached, err := f.cache.Get(ctx, place)
	if err != nil {
		f.logger.Warn("forecast cache read failed", "place", place, "error", err)
	}
	if cached != nil {
		return cached, true
	}

	forecast, ok := f.next.FetchWeather(ctx, place)
	if !ok {
		return nil, false
	}

	if err := f.cache.Set(ctx, place, forecast); err != nil {
		f.logger.Warn("forecast cache write failed", "place", place, "error", err)
	}
	return forecast, true
}

var _ Fetcher = (*CachedFetcher)(nil)
