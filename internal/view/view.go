package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/skyfinder/weather-search/internal/dto"
	"github.com/skyfinder/weather-search/internal/entity"
)

// IndexPage is the name of the search page template.
const IndexPage = "index.html"

//go:embed templates/*.html
var templateFS embed.FS

// Page is the data rendered by the search page.
type Page struct {
	Query     dto.SearchRequest
	Result    entity.WeatherResult
	Submitted bool
	// Message reports request problems that happen before a search runs.
	Message string
}

// Error returns the message to show above the form, if any.
func (p Page) Error() string {
	if p.Message != "" {
		return p.Message
	}
	return p.Result.ErrorMessage
}

// Renderer renders the embedded templates for echo.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"temp":  formatTemp,
		"upper": strings.ToUpper,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

func formatTemp(v float64) string {
	return fmt.Sprintf("%.1f°C", v)
}

var _ echo.Renderer = (*Renderer)(nil)
