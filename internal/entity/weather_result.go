package entity

import "github.com/skyfinder/weather-search/internal/weather"

// Messages shown to the user when a search cannot be resolved.
const (
	MessageCountryNotFound = "Country not found, please try again."
	MessageCityNotFound    = "City not found, please try again."
)

// WeatherResult is the normalized outcome of a search. An empty ErrorMessage
// means the search succeeded; Forecast may still be nil for country searches
// whose capital had no forecast.
type WeatherResult struct {
	Forecast        *weather.Forecast `json:"forecast,omitempty"`
	CountryName     string            `json:"country_name"`
	DisplayLocation string            `json:"display_location"`
	ErrorMessage    string            `json:"error_message,omitempty"`
}

// Failed reports whether the result carries a user-facing error.
func (r WeatherResult) Failed() bool {
	return r.ErrorMessage != ""
}
