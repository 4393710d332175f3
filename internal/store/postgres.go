package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/committees/internal/table"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

// Postgres serves records from a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
	db   DBTX
}

// OpenPostgres creates the pool, verifies the connection and optionally
// applies the embedded schema and seed.
func OpenPostgres(ctx context.Context, dsn string, opts Options) (*Postgres, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if opts.MaxConns > 0 {
		poolCfg.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		poolCfg.MinConns = opts.MinConns
	}
	if opts.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = opts.MaxConnLifetime
	}
	if opts.MaxConnIdleTime > 0 {
		poolCfg.MaxConnIdleTime = opts.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Postgres{pool: pool, db: pool}
	if opts.Seed {
		if err := s.seed(ctx); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return s, nil
}

// NewPostgres wraps an existing connection or transaction.
func NewPostgres(db DBTX) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) seed(ctx context.Context) error {
	// Without arguments pgx uses the simple protocol, which accepts
	// multiple statements per call.
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	if _, err := s.db.Exec(ctx, seedSQL); err != nil {
		return fmt.Errorf("apply seed: %w", err)
	}
	return nil
}

// Records runs the query for endpoint.
func (s *Postgres) Records(ctx context.Context, endpoint string) ([]table.Record, error) {
	q, err := lookup(endpoint)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", endpoint, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	recs := []table.Record{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row values: %w", err)
		}
		rec := make(table.Record, len(fields))
		for i, fd := range fields {
			rec[fd.Name] = recordValue(values[i])
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return recs, nil
}

// SetRecommendation stores value for applicationID.
func (s *Postgres) SetRecommendation(ctx context.Context, applicationID, value string) error {
	tag, err := s.db.Exec(ctx, setRecommendationSQL, value, applicationID)
	if err != nil {
		return fmt.Errorf("update recommendation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: application %s", ErrNotFound, applicationID)
	}
	return nil
}

// Ping verifies the database is reachable.
func (s *Postgres) Ping(ctx context.Context) error {
	var one int
	return s.db.QueryRow(ctx, pingSQL).Scan(&one)
}

// Close releases the pool, if this store owns one.
func (s *Postgres) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
