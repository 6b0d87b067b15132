package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/skyfinder/weather-search/internal/dto"
	"github.com/skyfinder/weather-search/internal/service"
)

// HistoryHandler exposes the search history to admins.
type HistoryHandler struct {
	service *service.HistoryService
}

// NewHistoryHandler constructs a HistoryHandler.
func NewHistoryHandler(service *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// List handles GET /admin/searches requests.
func (h *HistoryHandler) List(c echo.Context) error {
	filter := dto.HistoryFilter{Limit: parseIntDefault(c.QueryParam("limit"), 0)}.Clamp()

	records, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrHistoryDisabled) {
			return Error(c, http.StatusServiceUnavailable, "search history is disabled")
		}
		return Error(c, http.StatusInternalServerError, "unable to load search history")
	}

	return Success(c, http.StatusOK, "", map[string]any{
		"searches": records,
		"limit":    filter.Limit,
	})
}

func parseIntDefault(value string, fallback int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
