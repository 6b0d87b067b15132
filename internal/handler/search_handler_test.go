package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/skyfinder/weather-search/internal/country"
	"github.com/skyfinder/weather-search/internal/service"
	"github.com/skyfinder/weather-search/internal/view"
	"github.com/skyfinder/weather-search/internal/weather"
)

type stubFetcher map[string]*weather.Forecast

func (s stubFetcher) FetchWeather(ctx context.Context, place string) (*weather.Forecast, bool) {
	forecast, ok := s[place]
	return forecast, ok
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	renderer, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	e := echo.New()
	e.Renderer = renderer
	return e
}

func newSearchHandler(t *testing.T) *SearchHandler {
	t.Helper()
	catalog, err := country.NewCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	fetcher := stubFetcher{
		"Paris": {CityName: "Paris", CountryCode: "FR", Days: []weather.Day{{ValidDate: "2026-10-15", MaxTemp: 17}}},
	}
	return NewSearchHandler(service.NewSearchService(fetcher, catalog, nil, nil))
}

func formRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func jsonRequest(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestSearchHandler_Index(t *testing.T) {
	e := newTestEcho(t)
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	if err := newSearchHandler(t).Index(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `name="input_location"`) {
		t.Fatalf("expected search page, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestSearchHandler_Submit(t *testing.T) {
	tests := map[string]struct {
		form       url.Values
		expectCode int
		expectBody string
	}{
		"city found": {
			form:       url.Values{"input_location": {"Paris"}},
			expectCode: http.StatusOK,
			expectBody: "Paris, France",
		},
		"country found": {
			form:       url.Values{"input_location": {"france"}, "search_by_country": {"on"}},
			expectCode: http.StatusOK,
			expectBody: "2026-10-15",
		},
		"city not found": {
			form:       url.Values{"input_location": {"Atlantis"}},
			expectCode: http.StatusOK,
			expectBody: "City not found, please try again.",
		},
		"country not found": {
			form:       url.Values{"input_location": {"Atlantis"}, "search_by_country": {"true"}},
			expectCode: http.StatusOK,
			expectBody: "Country not found, please try again.",
		},
		"flag off searches city": {
			form:       url.Values{"input_location": {"France"}, "search_by_country": {"off"}},
			expectCode: http.StatusOK,
			expectBody: "City not found, please try again.",
		},
		"missing location": {
			form:       url.Values{"search_by_country": {"on"}},
			expectCode: http.StatusBadRequest,
			expectBody: MessageMissingLocation,
		},
	}

	handler := newSearchHandler(t)
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := newTestEcho(t)
			rec := httptest.NewRecorder()
			c := e.NewContext(formRequest("/", tt.form), rec)

			if err := handler.Submit(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d", tt.expectCode, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.expectBody) {
				t.Fatalf("expected body to contain %q, got %s", tt.expectBody, rec.Body.String())
			}
		})
	}
}

func TestSearchHandler_Search(t *testing.T) {
	tests := map[string]struct {
		req           *http.Request
		expectCode    int
		expectMessage string
		expectCountry string
		expectDisplay string
	}{
		"json city": {
			req:           jsonRequest("/api/search", `{"input_location":"Paris"}`),
			expectCode:    http.StatusOK,
			expectCountry: "France",
			expectDisplay: "Paris",
		},
		"json country with string flag": {
			req:           jsonRequest("/api/search", `{"input_location":"FRANCE","search_by_country":"on"}`),
			expectCode:    http.StatusOK,
			expectCountry: "France",
			expectDisplay: "Paris",
		},
		"form country": {
			req:           formRequest("/api/search", url.Values{"input_location": {"Japan"}, "search_by_country": {"1"}}),
			expectCode:    http.StatusOK,
			expectCountry: "Japan",
			expectDisplay: "Tokyo",
		},
		"city not found": {
			req:           jsonRequest("/api/search", `{"input_location":"Atlantis","search_by_country":false}`),
			expectCode:    http.StatusNotFound,
			expectMessage: "City not found, please try again.",
		},
		"country not found": {
			req:           jsonRequest("/api/search", `{"input_location":"Atlantis","search_by_country":true}`),
			expectCode:    http.StatusNotFound,
			expectMessage: "Country not found, please try again.",
		},
		"missing location": {
			req:           jsonRequest("/api/search", `{"search_by_country":true}`),
			expectCode:    http.StatusBadRequest,
			expectMessage: "input_location is required",
		},
		"invalid json": {
			req:           jsonRequest("/api/search", `{`),
			expectCode:    http.StatusBadRequest,
			expectMessage: "invalid payload",
		},
	}

	handler := newSearchHandler(t)
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(tt.req, rec)

			if err := handler.Search(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d: %s", tt.expectCode, rec.Code, rec.Body.String())
			}

			var payload struct {
				Status  string `json:"status"`
				Message string `json:"message"`
				Data    struct {
					CountryName     string `json:"country_name"`
					DisplayLocation string `json:"display_location"`
				} `json:"data"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if tt.expectMessage != "" {
				if payload.Status != "error" || payload.Message != tt.expectMessage {
					t.Fatalf("unexpected error payload: %+v", payload)
				}
				return
			}
			if payload.Data.CountryName != tt.expectCountry || payload.Data.DisplayLocation != tt.expectDisplay {
				t.Fatalf("unexpected data: %+v", payload.Data)
			}
		})
	}
}
