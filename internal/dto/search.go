package dto

import (
	"strings"
)

// SearchRequest is a single form submission.
type SearchRequest struct {
	Location        string `json:"input_location"`
	SearchByCountry bool   `json:"search_by_country"`
}

// SearchPayload is the JSON body accepted by the search API. The flag stays
// untyped so clients may send a boolean, a number or a checkbox string.
type SearchPayload struct {
	Location        *string `json:"input_location"`
	SearchByCountry any     `json:"search_by_country"`
}

// Request converts the payload, reporting false when input_location is missing.
func (p SearchPayload) Request() (SearchRequest, bool) {
	if p.Location == nil {
		return SearchRequest{}, false
	}
	return SearchRequest{
		Location:        strings.TrimSpace(*p.Location),
		SearchByCountry: FlagValue(p.SearchByCountry),
	}, true
}

// ParseFlag interprets a checkbox-style form value. Absent or empty values
// and the usual negative spellings ("0", "false", "off", "no") are false;
// anything else is true. This is stricter than plain non-empty truthiness,
// under which "false" would enable country search.
func ParseFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "0", "false", "off", "no":
		return false
	default:
		return true
	}
}

// FlagValue applies ParseFlag semantics to a decoded JSON value.
func FlagValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return ParseFlag(val)
	default:
		return true
	}
}
