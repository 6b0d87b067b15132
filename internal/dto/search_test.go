package dto

import "testing"

func TestParseFlag(t *testing.T) {
	tests := map[string]bool{
		"":      false,
		"   ":   false,
		"0":     false,
		"false": false,
		"OFF":   false,
		"no":    false,
		"on":    true,
		"1":     true,
		"true":  true,
		"yes":   true,
		"x":     true,
	}
	for input, want := range tests {
		if got := ParseFlag(input); got != want {
			t.Fatalf("ParseFlag(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestFlagValue(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{nil, false},
		{true, true},
		{false, false},
		{float64(0), false},
		{float64(1), true},
		{"on", true},
		{"false", false},
		{map[string]any{}, true},
	}
	for _, tt := range tests {
		if got := FlagValue(tt.in); got != tt.want {
			t.Fatalf("FlagValue(%#v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSearchPayloadRequest(t *testing.T) {
	if _, ok := (SearchPayload{}).Request(); ok {
		t.Fatalf("expected missing location to be rejected")
	}

	loc := "  Paris "
	req, ok := SearchPayload{Location: &loc, SearchByCountry: "on"}.Request()
	if !ok {
		t.Fatalf("expected request")
	}
	if req.Location != "Paris" || !req.SearchByCountry {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestHistoryFilterClamp(t *testing.T) {
	if got := (HistoryFilter{}).Clamp().Limit; got != 50 {
		t.Fatalf("expected default 50, got %d", got)
	}
	if got := (HistoryFilter{Limit: 10_000}).Clamp().Limit; got != 500 {
		t.Fatalf("expected max 500, got %d", got)
	}
	if got := (HistoryFilter{Limit: 20}).Clamp().Limit; got != 20 {
		t.Fatalf("expected 20, got %d", got)
	}
}
