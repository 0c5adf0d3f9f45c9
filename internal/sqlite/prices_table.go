package sqlite

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/prajan97/diamond-intel/pkg/types"
)

var priceColumns = []string{
	"id", "shape", "carat_min", "carat_max", "color", "clarity",
	"price_per_carat", "source", "notes", "date_logged",
}

func (b *Backend) priceQuery() sq.SelectBuilder {
	return b.sb.Select(priceColumns...).From("price_log")
}

// ListPrices returns price observations matching filter. Entries logged on
// the same day come back highest id first.
func (b *Backend) ListPrices(ctx context.Context, filter types.PriceFilter) ([]types.PriceLogEntry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	q := b.priceQuery()
	if filter.Shape != "" {
		q = q.Where(sq.Eq{"shape": filter.Shape})
	}
	prices, err := fetchAll[types.PriceLogEntry](ctx, b.db, q.OrderBy("date_logged DESC", "id DESC"))
	if err != nil {
		return nil, fmt.Errorf("listing prices: %w", err)
	}
	return prices, nil
}

// CreatePrice logs a price observation. carat_max defaults to carat_min and
// date_logged to today.
func (b *Backend) CreatePrice(ctx context.Context, in types.PriceInput) (*types.PriceLogEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	res, err := b.execute(ctx, b.sb.Insert("price_log").
		Columns(
			"shape", "carat_min", "carat_max", "color", "clarity",
			"price_per_carat", "source", "notes", "date_logged",
		).
		Values(
			in.Shape, in.CaratMin, sq.Expr("COALESCE(?, ?)", in.CaratMax, in.CaratMin),
			in.Color, in.Clarity, in.PricePerCarat, in.Source, in.Notes,
			sq.Expr("COALESCE(?, ?)", in.DateLogged, b.today()),
		))
	if err != nil {
		return nil, fmt.Errorf("logging price: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return b.getPrice(ctx, b.db, id)
}

func (b *Backend) getPrice(ctx context.Context, q sqlx.QueryerContext, id int64) (*types.PriceLogEntry, error) {
	return fetchOne[types.PriceLogEntry](ctx, q, b.priceQuery().Where(sq.Eq{"id": id}))
}
