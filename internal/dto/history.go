package dto

// HistoryFilter limits the search history listing.
type HistoryFilter struct {
	Limit int
}

// Clamp applies the default and maximum page size.
func (f HistoryFilter) Clamp() HistoryFilter {
	switch {
	case f.Limit <= 0:
		f.Limit = 50
	case f.Limit > 500:
		f.Limit = 500
	}
	return f
}
