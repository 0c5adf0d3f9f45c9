package sqlite

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"github.com/prajan97/diamond-intel/pkg/types"
)

// recentLimit is how many stones and deals the dashboard lists.
const recentLimit = 5

// Stats computes the dashboard snapshot: one aggregate query per table plus
// the most recent stones and deals.
func (b *Backend) Stats(ctx context.Context) (*types.Stats, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	stats := &types.Stats{}

	inventory := b.sb.Select().
		Column("COUNT(*) AS total").
		Column(countWhere("status = ?", "available"), types.StoneAvailable).
		Column(countWhere("status = ?", "reserved"), types.StoneReserved).
		Column(countWhere("status = ?", "sold"), types.StoneSold).
		Column("COALESCE(SUM(CASE WHEN status = ? THEN asking_price END), 0) AS available_value", types.StoneAvailable).
		From("stones")
	if err := aggregate(ctx, b.db, &stats.Inventory, inventory); err != nil {
		return nil, fmt.Errorf("inventory stats: %w", err)
	}

	deals := b.sb.Select().
		Column("COUNT(*) AS total").
		Column(countWhere("status IN (?, ?, ?)", "active"), lo.ToAnySlice(types.ActiveDealStatuses)...).
		Column(countWhere("status = ?", "completed"), types.DealCompleted).
		Column("COALESCE(SUM(CASE WHEN status = ? THEN final_price END), 0) AS revenue", types.DealCompleted).
		Column("COALESCE(SUM(CASE WHEN status = ? THEN commission END), 0) AS commission", types.DealCompleted).
		From("deals")
	if err := aggregate(ctx, b.db, &stats.Deals, deals); err != nil {
		return nil, fmt.Errorf("deal stats: %w", err)
	}

	contacts := b.sb.Select().
		Column("COUNT(*) AS total").
		Column(countWhere("type = ?", "buyers"), types.ContactBuyer).
		Column(countWhere("type = ?", "suppliers"), types.ContactSupplier).
		From("contacts")
	if err := aggregate(ctx, b.db, &stats.Contacts, contacts); err != nil {
		return nil, fmt.Errorf("contact stats: %w", err)
	}

	var err error
	stats.RecentStones, err = fetchAll[types.Stone](ctx, b.db,
		b.stoneQuery().OrderBy(newestStonesFirst...).Limit(recentLimit))
	if err != nil {
		return nil, fmt.Errorf("recent stones: %w", err)
	}
	stats.RecentDeals, err = fetchAll[types.Deal](ctx, b.db,
		b.dealQuery().OrderBy(newestDealsFirst...).Limit(recentLimit))
	if err != nil {
		return nil, fmt.Errorf("recent deals: %w", err)
	}
	return stats, nil
}

// countWhere builds a column counting the rows that satisfy cond.
func countWhere(cond, alias string) string {
	return fmt.Sprintf("COALESCE(SUM(CASE WHEN %s THEN 1 ELSE 0 END), 0) AS %s", cond, alias)
}

// aggregate scans a single aggregate row into dest. A query that yields no
// row leaves dest at its zero value.
func aggregate[T any](ctx context.Context, q sqlx.QueryerContext, dest *T, query sq.Sqlizer) error {
	row, err := fetchOne[T](ctx, q, query)
	if errors.Is(err, types.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	*dest = *row
	return nil
}

