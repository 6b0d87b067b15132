package service

import (
	"context"
	"log/slog"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/skyfinder/weather-search/internal/country"
	"github.com/skyfinder/weather-search/internal/dto"
	"github.com/skyfinder/weather-search/internal/entity"
	"github.com/skyfinder/weather-search/internal/weather"
)

// CountryResolver resolves country names to records and alpha-2 codes to names.
type CountryResolver interface {
	Info(name string) (country.Record, error)
	Name(alpha2 string) (string, bool)
}

// SearchRecorder persists search outcomes.
type SearchRecorder interface {
	Record(ctx context.Context, req dto.SearchRequest, result entity.WeatherResult) error
}

// SearchService dispatches a form submission to the city or country lookup.
type SearchService struct {
	fetcher   weather.Fetcher
	countries CountryResolver
	history   SearchRecorder
	logger    *slog.Logger
}

// NewSearchService wires the dispatcher. history may be nil.
func NewSearchService(fetcher weather.Fetcher, countries CountryResolver, history SearchRecorder, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchService{
		fetcher:   fetcher,
		countries: countries,
		history:   history,
		logger:    logger,
	}
}

// Search runs a single lookup. It never fails; lookup misses are reported
// through the result's error message.
func (s *SearchService) Search(ctx context.Context, req dto.SearchRequest) entity.WeatherResult {
	var result entity.WeatherResult
	if req.SearchByCountry {
		result = s.searchCountry(ctx, req.Location)
	} else {
		result = s.searchCity(ctx, req.Location)
	}

	if s.history != nil {
		if err := s.history.Record(ctx, req, result); err != nil {
			s.logger.Warn("record search failed", "location", req.Location, "error", err)
		}
	}
	return result
}

func (s *SearchService) searchCountry(ctx context.Context, name string) entity.WeatherResult {
	record, err := s.countries.Info(name)
	if err != nil {
		return entity.WeatherResult{ErrorMessage: entity.MessageCountryNotFound}
	}

	// A failed fetch for the capital still reports the country.
	forecast, _ := s.fetcher.FetchWeather(ctx, record.Capital)
	return entity.WeatherResult{
		Forecast:        forecast,
		CountryName:     record.Name,
		DisplayLocation: titleCase(record.Capital),
	}
}

func (s *SearchService) searchCity(ctx context.Context, city string) entity.WeatherResult {
	forecast, ok := s.fetcher.FetchWeather(ctx, city)
	if !ok {
		return entity.WeatherResult{ErrorMessage: entity.MessageCityNotFound}
	}

	name, _ := s.countries.Name(forecast.CountryCode)
	return entity.WeatherResult{
		Forecast:        forecast,
		CountryName:     name,
		DisplayLocation: titleCase(city),
	}
}

// titleCase upper-cases the first letter of each word and lower-cases the rest.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
