package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/prajan97/diamond-intel/pkg/types"
)

// execute runs a single mutating statement and, when it touched any row,
// persists the store file. A persist failure is returned but the statement
// stays applied in memory; the next successful persist writes it out.
// The caller must hold b.mu write lock.
func (b *Backend) execute(ctx context.Context, query sq.Sqlizer) (sql.Result, error) {
	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building statement: %w", err)
	}
	res, err := b.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return res, nil
	}
	if err := b.persistLocked(ctx); err != nil {
		b.logPersistFailure(err)
		return nil, err
	}
	return res, nil
}

// inTx runs fn inside one transaction and persists the store file after the
// commit. A failing statement rolls back everything fn did. A persist
// failure after the commit leaves the changes in memory, as in execute.
// The caller must hold b.mu write lock.
func (b *Backend) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := b.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	if err := b.persistLocked(ctx); err != nil {
		b.logPersistFailure(err)
		return err
	}
	return nil
}

// execTx runs a built statement inside tx.
func execTx(ctx context.Context, tx *sqlx.Tx, query sq.Sqlizer) (sql.Result, error) {
	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building statement: %w", err)
	}
	return tx.ExecContext(ctx, stmt, args...)
}

// fetchOne runs query and maps the first row onto a T. It returns
// types.ErrNotFound when no row matches.
func fetchOne[T any](ctx context.Context, q sqlx.QueryerContext, query sq.Sqlizer) (*T, error) {
	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}
	var rec T
	if err := sqlx.GetContext(ctx, q, &rec, stmt, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// fetchAll runs query and maps every row onto a T, in result order. The
// returned slice is never nil.
func fetchAll[T any](ctx context.Context, q sqlx.QueryerContext, query sq.Sqlizer) ([]T, error) {
	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}
	recs := []T{}
	if err := sqlx.SelectContext(ctx, q, &recs, stmt, args...); err != nil {
		return nil, err
	}
	return recs, nil
}
