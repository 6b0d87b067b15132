package service

import (
	"context"
	"errors"

	"github.com/skyfinder/weather-search/internal/dto"
	"github.com/skyfinder/weather-search/internal/entity"
	"github.com/skyfinder/weather-search/internal/repository"
)

// ErrHistoryDisabled is returned when no database is configured.
var ErrHistoryDisabled = errors.New("search history is disabled")

// HistoryService reads the stored search history.
type HistoryService struct {
	repo repository.SearchesRepository
}

// NewHistoryService constructs a HistoryService. repo may be nil.
func NewHistoryService(repo repository.SearchesRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

// List returns the most recent searches, newest first.
func (s *HistoryService) List(ctx context.Context, filter dto.HistoryFilter) ([]entity.SearchRecord, error) {
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}
	return s.repo.ListRecent(ctx, filter.Clamp().Limit)
}
