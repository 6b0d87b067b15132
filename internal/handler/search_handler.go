package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/skyfinder/weather-search/internal/dto"
	"github.com/skyfinder/weather-search/internal/service"
	"github.com/skyfinder/weather-search/internal/view"
)

// MessageMissingLocation is shown when the form omits input_location.
const MessageMissingLocation = "Please enter a city or country name."

var (
	errMissingLocation = errors.New("input_location is required")
	errInvalidPayload  = errors.New("invalid payload")
)

// SearchHandler serves the search page and the JSON search API.
type SearchHandler struct {
	service *service.SearchService
}

// NewSearchHandler constructs a SearchHandler.
func NewSearchHandler(service *service.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

// Index handles GET / requests.
func (h *SearchHandler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, view.IndexPage, view.Page{})
}

// Submit handles POST / form submissions and renders the result page.
func (h *SearchHandler) Submit(c echo.Context) error {
	req, err := bindSearchRequest(c)
	if err != nil {
		return c.Render(http.StatusBadRequest, view.IndexPage, view.Page{Message: MessageMissingLocation})
	}

	result := h.service.Search(c.Request().Context(), req)
	return c.Render(http.StatusOK, view.IndexPage, view.Page{
		Query:     req,
		Result:    result,
		Submitted: true,
	})
}

// Search handles POST /api/search requests.
func (h *SearchHandler) Search(c echo.Context) error {
	req, err := bindSearchRequest(c)
	if err != nil {
		switch {
		case errors.Is(err, errMissingLocation):
			return Error(c, http.StatusBadRequest, "input_location is required")
		default:
			return Error(c, http.StatusBadRequest, "invalid payload")
		}
	}

	result := h.service.Search(c.Request().Context(), req)
	if result.Failed() {
		return Error(c, http.StatusNotFound, result.ErrorMessage)
	}
	return Success(c, http.StatusOK, "search completed", result)
}

// bindSearchRequest reads input_location and search_by_country from a JSON or
// form body.
func bindSearchRequest(c echo.Context) (dto.SearchRequest, error) {
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		var payload dto.SearchPayload
		if err := c.Bind(&payload); err != nil {
			return dto.SearchRequest{}, errInvalidPayload
		}
		req, ok := payload.Request()
		if !ok {
			return dto.SearchRequest{}, errMissingLocation
		}
		return req, nil
	}

	params, err := c.FormParams()
	if err != nil {
		return dto.SearchRequest{}, errInvalidPayload
	}
	values, ok := params["input_location"]
	if !ok || len(values) == 0 {
		return dto.SearchRequest{}, errMissingLocation
	}
	return dto.SearchRequest{
		Location:        strings.TrimSpace(values[0]),
		SearchByCountry: dto.ParseFlag(params.Get("search_by_country")),
	}, nil
}
