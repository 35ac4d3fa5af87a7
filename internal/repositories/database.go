package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the query surface shared by *pgxpool.Pool and pgx.Tx. Repositories are
// built over it so the same SQL runs standalone or inside a unit of work.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Pool adds transaction scoping on top of DB.
type Pool interface {
	DB
	Begin(ctx context.Context) (pgx.Tx, error)
}

// placeholderCondition builds an equality condition against the n-th
// positional parameter for dynamically assembled filters.
func placeholderCondition(column string, n int) string {
	return fmt.Sprintf("%s = $%d", column, n)
}

// WithinTx runs fn inside a single transaction: every read-check and write in
// fn is durably applied on commit, or none is. Any error from fn rolls the
// whole unit of work back and is returned unchanged.
func WithinTx(ctx context.Context, pool Pool, fn func(tx DB) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
