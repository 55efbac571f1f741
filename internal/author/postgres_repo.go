package author

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresPools hands out the shared pool. dbconn.Manager implements it.
type PostgresPools interface {
	Session() (*pgxpool.Pool, error)
}

type PostgresRepo struct {
	pools   PostgresPools
	timeout time.Duration
}

func NewPostgresRepo(pools PostgresPools, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{pools: pools, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) query(ctx context.Context, sql string, args ...any) ([]Author, error) {
	db, err := r.pools.Session()
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := db.Query(timeoutCtx, sql, args...)
	if err != nil {
		return nil, err
	}
	authors, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Author, error) {
		var a Author
		err := row.Scan(&a.ID, &a.FirstName, &a.LastName)
		return a, err
	})
	if err != nil {
		return nil, err
	}
	if authors == nil {
		authors = []Author{}
	}
	return authors, nil
}

func (r *PostgresRepo) List(ctx context.Context) ([]Author, error) {
	const sql = `
		SELECT id::text, first_name, last_name
		FROM authors
		ORDER BY created_at, id`

	authors, err := r.query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return authors, nil
}

// ListByLastName matches last_name with plain equality, which is
// case-sensitive under the default collation.
func (r *PostgresRepo) ListByLastName(ctx context.Context, lastName string) ([]Author, error) {
	const sql = `
		SELECT id::text, first_name, last_name
		FROM authors
		WHERE last_name = $1
		ORDER BY created_at, id`

	authors, err := r.query(ctx, sql, lastName)
	if err != nil {
		return nil, fmt.Errorf("list authors by last name: %w", err)
	}
	return authors, nil
}

func (r *PostgresRepo) Create(ctx context.Context, a *Author) error {
	const sql = `
		INSERT INTO authors (first_name, last_name)
		VALUES ($1, $2)
		RETURNING id::text`

	db, err := r.pools.Session()
	if err != nil {
		return fmt.Errorf("create author: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := db.QueryRow(timeoutCtx, sql, a.FirstName, a.LastName).Scan(&a.ID); err != nil {
		return fmt.Errorf("create author: %w", err)
	}
	return nil
}
