package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/skyfinder/weather-search/internal/dto"
	"github.com/skyfinder/weather-search/internal/entity"
	"github.com/skyfinder/weather-search/internal/weather"
)

type stubPool struct {
	queryRowFunc func(ctx context.Context, query string, args ...any) pgx.Row
	queryFunc    func(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	execFunc     func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
}

func (s *stubPool) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	if s.queryRowFunc != nil {
		return s.queryRowFunc(ctx, query, args...)
	}
	return &stubRow{scan: func(dest ...any) error { return nil }}
}

func (s *stubPool) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	if s.queryFunc != nil {
		return s.queryFunc(ctx, query, args...)
	}
	return nil, errors.New("query not implemented")
}

func (s *stubPool) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	if s.execFunc != nil {
		return s.execFunc(ctx, query, args...)
	}
	return pgconn.CommandTag{}, errors.New("exec not implemented")
}

type stubRow struct {
	scan func(dest ...any) error
}

func (s *stubRow) Scan(dest ...any) error {
	if s.scan != nil {
		return s.scan(dest...)
	}
	return nil
}

type stubRows struct {
	scans  []func(dest ...any) error
	idx    int
	err    error
	closed bool
}

func (s *stubRows) Close() { s.closed = true }

func (s *stubRows) Err() error { return s.err }

func (s *stubRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (s *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (s *stubRows) Next() bool {
	if s.err != nil {
		return false
	}
	if s.idx < len(s.scans) {
		s.idx++
		return true
	}
	return false
}

func (s *stubRows) Scan(dest ...any) error {
	if s.idx == 0 || s.idx > len(s.scans) {
		return errors.New("scan called out of order")
	}
	return s.scans[s.idx-1](dest...)
}

func (s *stubRows) Values() ([]any, error) { return nil, nil }

func (s *stubRows) RawValues() [][]byte { return nil }

func (s *stubRows) Conn() *pgx.Conn { return nil }

func TestPGXSearchesRepository_EnsureSchema(t *testing.T) {
	var executed string
	repo := NewPGXSearchesRepository(&stubPool{
		execFunc: func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
			executed = query
			return pgconn.NewCommandTag("CREATE TABLE"), nil
		},
	})
	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(executed, "CREATE TABLE IF NOT EXISTS searches") {
		t.Fatalf("unexpected schema statement: %s", executed)
	}

	repo = NewPGXSearchesRepository(&stubPool{
		execFunc: func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, errors.New("permission denied")
		},
	})
	if err := repo.EnsureSchema(context.Background()); err == nil || !strings.Contains(err.Error(), "create searches table") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestPGXSearchesRepository_Record(t *testing.T) {
	fixed := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	var got []any
	repo := NewPGXSearchesRepository(&stubPool{
		execFunc: func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
			got = args
			return pgconn.NewCommandTag("INSERT 0 1"), nil
		},
	})
	repo.now = func() time.Time { return fixed }

	result := entity.WeatherResult{
		Forecast:        &weather.Forecast{CountryCode: "FR"},
		CountryName:     "France",
		DisplayLocation: "Paris",
	}
	if err := repo.Record(context.Background(), dto.SearchRequest{Location: "paris"}, result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 8 {
		t.Fatalf("expected 8 args, got %d", len(got))
	}
	if _, ok := got[0].(uuid.UUID); !ok {
		t.Fatalf("expected generated uuid, got %T", got[0])
	}
	if got[1] != "paris" || got[3] != "France" || got[4] != "Paris" || got[6] != true {
		t.Fatalf("unexpected args: %v", got)
	}
	if ts, ok := got[7].(time.Time); !ok || !ts.Equal(fixed) {
		t.Fatalf("unexpected args: %v", got)
	}
	if msg, _ := got[5].(*string); msg != nil {
		t.Fatalf("expected nil error message, got %q", *msg)
	}

	failed := entity.WeatherResult{ErrorMessage: entity.MessageCityNotFound}
	if err := repo.Record(context.Background(), dto.SearchRequest{Location: "Atlantis"}, failed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg, _ := got[5].(*string); msg == nil || *msg != entity.MessageCityNotFound {
		t.Fatalf("expected error message to be stored, got %v", got[5])
	}
	if got[6] != false {
		t.Fatalf("expected found=false")
	}
}

func TestPGXSearchesRepository_RecordError(t *testing.T) {
	repo := NewPGXSearchesRepository(&stubPool{
		execFunc: func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, &pgconn.PgError{Code: "42P01", Message: "relation \"searches\" does not exist"}
		},
	})
	err := repo.Record(context.Background(), dto.SearchRequest{Location: "Paris"}, entity.WeatherResult{})
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "42P01" {
		t.Fatalf("expected wrapped pg error, got %v", err)
	}
}

func TestPGXSearchesRepository_ListRecent(t *testing.T) {
	id := uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	created := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
	msg := entity.MessageCountryNotFound

	rows := &stubRows{scans: []func(dest ...any) error{
		func(dest ...any) error {
			*dest[0].(*uuid.UUID) = id
			*dest[1].(*string) = "paris"
			*dest[2].(*bool) = false
			*dest[3].(*string) = "France"
			*dest[4].(*string) = "Paris"
			*dest[6].(*bool) = true
			*dest[7].(*time.Time) = created
			return nil
		},
		func(dest ...any) error {
			*dest[1].(*string) = "Atlantis"
			*dest[2].(*bool) = true
			*dest[5].(**string) = &msg
			return nil
		},
	}}

	var limitArg any
	repo := NewPGXSearchesRepository(&stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			limitArg = args[0]
			return rows, nil
		},
	})

	records, err := repo.ListRecent(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limitArg != 50 {
		t.Fatalf("expected default limit 50, got %v", limitArg)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != id || records[0].CountryName != "France" || !records[0].Found || !records[0].CreatedAt.Equal(created) {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if records[1].ErrorMessage == nil || *records[1].ErrorMessage != msg || records[1].Found {
		t.Fatalf("unexpected second record: %+v", records[1])
	}
	if !rows.closed {
		t.Fatalf("expected rows to be closed")
	}
}

func TestPGXSearchesRepository_ListRecentErrors(t *testing.T) {
	repo := NewPGXSearchesRepository(&stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			return nil, errors.New("connection refused")
		},
	})
	if _, err := repo.ListRecent(context.Background(), 10); err == nil {
		t.Fatalf("expected query error")
	}

	repo = NewPGXSearchesRepository(&stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			return &stubRows{scans: []func(dest ...any) error{
				func(dest ...any) error { return errors.New("bad column") },
			}}, nil
		},
	})
	if _, err := repo.ListRecent(context.Background(), 10); err == nil || !strings.Contains(err.Error(), "scan search row") {
		t.Fatalf("expected scan error, got %v", err)
	}

	repo = NewPGXSearchesRepository(&stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			return &stubRows{err: errors.New("conn reset")}, nil
		},
	})
	if _, err := repo.ListRecent(context.Background(), 10); err == nil || !strings.Contains(err.Error(), "iterate searches") {
		t.Fatalf("expected iteration error, got %v", err)
	}
}
