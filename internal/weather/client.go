package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/skyfinder/weather-search/internal/weather"

// Fetcher returns the forecast for a place, or false when none is available.
type Fetcher interface {
	FetchWeather(ctx context.Context, place string) (*Forecast, bool)
}

// Config describes how to reach the provider.
type Config struct {
	BaseURL string
	APIKey  string
	Days    int
	Timeout time.Duration
}

// Client queries the daily forecast endpoint of the provider.
type Client struct {
	client  *http.Client
	baseURL *url.URL
	apiKey  string
	days    int
	tracer  trace.Tracer
	logger  *slog.Logger
}

// NewClient validates cfg and builds a client. A nil httpClient gets a
// default client using cfg.Timeout.
func NewClient(httpClient *http.Client, cfg Config, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("weather base URL must not be empty")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("weather API key must not be empty")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse weather base URL: %w", err)
	}
	if cfg.Days <= 0 {
		cfg.Days = 7
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		client:  httpClient,
		baseURL: base,
		apiKey:  cfg.APIKey,
		days:    cfg.Days,
		tracer:  otel.Tracer(tracerName),
		logger:  logger,
	}, nil
}

// FetchWeather issues one GET for place. Non-200 responses, transport faults,
// empty payloads and undecodable bodies all report an absent forecast.
func (c *Client) FetchWeather(ctx context.Context, place string) (*Forecast, bool) {
	ctx, span := c.tracer.Start(ctx, "weather.fetch", trace.WithAttributes(attribute.String("weather.place", place)))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(place), nil)
	if err != nil {
		c.fail(span, "build weather request", place, err)
		return nil, false
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = c.redact(urlErr.URL)
		}
		c.fail(span, "weather request failed", place, err)
		return nil, false
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode != http.StatusOK {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logger.Info("weather provider returned no forecast", "place", place, "status", resp.StatusCode)
		return nil, false
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		c.fail(span, "decode weather response", place, err)
		return nil, false
	}
	if isEmptyPayload(raw) {
		c.logger.Info("weather provider returned an empty payload", "place", place)
		return nil, false
	}

	var forecast Forecast
	if err := json.Unmarshal(raw, &forecast); err != nil {
		c.fail(span, "decode weather response", place, err)
		return nil, false
	}

	return &forecast, true
}

// isEmptyPayload reports whether a 200 body carries nothing: null or an
// object without members.
func isEmptyPayload(raw json.RawMessage) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false
	}
	return len(fields) == 0
}

func (c *Client) requestURL(place string) string {
	u := *c.baseURL
	q := u.Query()
	q.Set("city", place)
	q.Set("key", c.apiKey)
	q.Set("days", strconv.Itoa(c.days))
	u.RawQuery = q.Encode()
	return u.String()
}

// redact hides the API key before a URL reaches logs or spans.
func (c *Client) redact(raw string) string {
	return strings.ReplaceAll(raw, url.QueryEscape(c.apiKey), "REDACTED")
}

func (c *Client) fail(span trace.Span, msg, place string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	c.logger.Warn(msg, "place", place, "error", err)
}

var _ Fetcher = (*Client)(nil)
