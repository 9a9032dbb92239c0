package catalog

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) ListSortedByName(ctx context.Context) ([]Entry, error) {
	var out []Entry

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT name, info, pricing, unit_price
			FROM products
			ORDER BY name ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Entry, 0, 16)
		for rows.Next() {
			e, err := scanEntry(rows)
			if err != nil {
				return err
			}
			out = append(out, e)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) Get(ctx context.Context, name string) (Entry, bool, error) {
	var (
		e   Entry
		err error
	)

	err = withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		row := s.db.QueryRowContext(ctx, `
			SELECT name, info, pricing, unit_price
			FROM products
			WHERE name = $1
		`, name)
		e, err = scanEntry(row)
		return err
	})

	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var (
		e       Entry
		pricing string
	)
	if err := row.Scan(&e.Name, &e.Info, &pricing, &e.UnitPrice); err != nil {
		return Entry{}, err
	}
	e.Pricing = Pricing(pricing)
	return e, nil
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
