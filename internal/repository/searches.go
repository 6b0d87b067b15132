package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/skyfinder/weather-search/internal/dto"
	"github.com/skyfinder/weather-search/internal/entity"
)

// DB is the subset of pgxpool.Pool used by the repositories.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const searchesSchema = `
CREATE TABLE IF NOT EXISTS searches (
    id UUID PRIMARY KEY,
    location TEXT NOT NULL,
    search_by_country BOOLEAN NOT NULL DEFAULT FALSE,
    country_name TEXT NOT NULL DEFAULT '',
    display_location TEXT NOT NULL DEFAULT '',
    error_message TEXT,
    found BOOLEAN NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS searches_created_at_idx ON searches (created_at DESC);`

// SearchesRepository declares the search history operations.
type SearchesRepository interface {
	Record(ctx context.Context, req dto.SearchRequest, result entity.WeatherResult) error
	ListRecent(ctx context.Context, limit int) ([]entity.SearchRecord, error)
}

// PGXSearchesRepository stores the search history in PostgreSQL.
type PGXSearchesRepository struct {
	pool DB
	now  func() time.Time
}

// NewPGXSearchesRepository instantiates a search history repository.
func NewPGXSearchesRepository(pool DB) *PGXSearchesRepository {
	return &PGXSearchesRepository{pool: pool, now: time.Now}
}

// EnsureSchema creates the searches table when it does not exist.
func (r *PGXSearchesRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, searchesSchema); err != nil {
		return fmt.Errorf("create searches table: %w", err)
	}
	return nil
}

// Record inserts one search outcome.
func (r *PGXSearchesRepository) Record(ctx context.Context, req dto.SearchRequest, result entity.WeatherResult) error {
	var errMsg *string
	if result.Failed() {
		msg := result.ErrorMessage
		errMsg = &msg
	}

	_, err := r.pool.Exec(ctx, `
        INSERT INTO searches (id, location, search_by_country, country_name, display_location, error_message, found, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `, uuid.New(), req.Location, req.SearchByCountry, result.CountryName, result.DisplayLocation, errMsg, result.Forecast != nil, r.now().UTC())
	if err != nil {
		return fmt.Errorf("insert search: %w", err)
	}
	return nil
}

// ListRecent returns the newest searches first.
func (r *PGXSearchesRepository) ListRecent(ctx context.Context, limit int) ([]entity.SearchRecord, error) {
	limit = dto.HistoryFilter{Limit: limit}.Clamp().Limit

	rows, err := r.pool.Query(ctx, `
        SELECT id, location, search_by_country, country_name, display_location, error_message, found, created_at
        FROM searches
        ORDER BY created_at DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("list searches: %w", err)
	}
	defer rows.Close()

	records := make([]entity.SearchRecord, 0, limit)
	for rows.Next() {
		var rec entity.SearchRecord
		if err := rows.Scan(&rec.ID, &rec.Location, &rec.SearchByCountry, &rec.CountryName, &rec.DisplayLocation, &rec.ErrorMessage, &rec.Found, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan search row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate searches: %w", err)
	}
	return records, nil
}
