package entity

import (
	"time"

	"github.com/google/uuid"
)

// SearchRecord is one entry of the search history.
type SearchRecord struct {
	ID              uuid.UUID `json:"id"`
	Location        string    `json:"location"`
	SearchByCountry bool      `json:"search_by_country"`
	CountryName     string    `json:"country_name"`
	DisplayLocation string    `json:"display_location"`
	ErrorMessage    *string   `json:"error_message,omitempty"`
	Found           bool      `json:"found"`
	CreatedAt       time.Time `json:"created_at"`
}
