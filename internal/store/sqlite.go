package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/JonMunkholm/committees/internal/table"
)

// SQLite serves records from an embedded database.
type SQLite struct {
	db *sql.DB
}

// placeholder matches $N parameters.
var placeholder = regexp.MustCompile(`\$(\d+)`)

// rebind rewrites $N placeholders as SQLite's ?N.
func rebind(q string) string {
	return placeholder.ReplaceAllString(q, "?$1")
}

// OpenSQLite opens the database at path and optionally applies the embedded
// schema and seed. In-memory databases are private to one connection, so
// the pool is pinned to a single connection for them.
func OpenSQLite(ctx context.Context, path string, opts Options) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if path == ":memory:" || strings.Contains(path, "mode=memory") {
		db.SetMaxOpenConns(1)
	} else if opts.MaxConns > 0 {
		db.SetMaxOpenConns(int(opts.MaxConns))
	}
	if opts.MaxConnLifetime > 0 {
		db.SetConnMaxLifetime(opts.MaxConnLifetime)
	}
	if opts.MaxConnIdleTime > 0 {
		db.SetConnMaxIdleTime(opts.MaxConnIdleTime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	s := &SQLite{db: db}
	if opts.Seed {
		if err := s.seed(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}
	return s, nil
}

func (s *SQLite) seed(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, seedSQL); err != nil {
		return fmt.Errorf("apply seed: %w", err)
	}
	return nil
}

// Records runs the query for endpoint.
func (s *SQLite) Records(ctx context.Context, endpoint string) ([]table.Record, error) {
	q, err := lookup(endpoint)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, rebind(q.SQL), q.Args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", endpoint, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	recs := []table.Record{}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		rec := make(table.Record, len(cols))
		for i, name := range cols {
			rec[name] = recordValue(values[i])
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return recs, nil
}

// SetRecommendation stores value for applicationID.
func (s *SQLite) SetRecommendation(ctx context.Context, applicationID, value string) error {
	res, err := s.db.ExecContext(ctx, rebind(setRecommendationSQL), value, applicationID)
	if err != nil {
		return fmt.Errorf("update recommendation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update recommendation: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: application %s", ErrNotFound, applicationID)
	}
	return nil
}

// Ping verifies the database is reachable.
func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
