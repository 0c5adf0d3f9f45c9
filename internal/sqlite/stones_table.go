package sqlite

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/prajan97/diamond-intel/pkg/types"
)

// stoneColumns selects a stone with its supplier's name.
var stoneColumns = []string{
	"s.id", "s.carat", "s.shape", "s.color", "s.clarity", "s.cut",
	"s.certification", "s.cert_number", "s.asking_price", "s.cost_price",
	"s.source", "s.supplier_id", "s.status", "s.notes", "s.date_added",
	"s.date_updated", "c.name AS supplier_name",
}

func (b *Backend) stoneQuery() sq.SelectBuilder {
	return b.sb.Select(stoneColumns...).
		From("stones s").
		LeftJoin("contacts c ON c.id = s.supplier_id")
}

// newestStonesFirst orders stones by date added, breaking ties by id.
var newestStonesFirst = []string{"s.date_added DESC", "s.id DESC"}

// ListStones returns stones matching filter, newest first.
func (b *Backend) ListStones(ctx context.Context, filter types.StoneFilter) ([]types.Stone, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	q := b.stoneQuery()
	if filter.Status != "" {
		q = q.Where(sq.Eq{"s.status": filter.Status})
	}
	if filter.Shape != "" {
		q = q.Where(sq.Eq{"s.shape": filter.Shape})
	}
	if filter.SupplierID != nil {
		q = q.Where(sq.Eq{"s.supplier_id": *filter.SupplierID})
	}
	stones, err := fetchAll[types.Stone](ctx, b.db, q.OrderBy(newestStonesFirst...))
	if err != nil {
		return nil, fmt.Errorf("listing stones: %w", err)
	}
	return stones, nil
}

// GetStone returns a single stone.
func (b *Backend) GetStone(ctx context.Context, id int64) (*types.Stone, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkAttached(); err != nil {
		return nil, err
	}
	return b.getStone(ctx, b.db, id)
}

func (b *Backend) getStone(ctx context.Context, q sqlx.QueryerContext, id int64) (*types.Stone, error) {
	return fetchOne[types.Stone](ctx, q, b.stoneQuery().Where(sq.Eq{"s.id": id}))
}

// CreateStone inserts a stone. Status defaults to Available; date_added and
// date_updated are both stamped with today's date.
func (b *Backend) CreateStone(ctx context.Context, in types.StoneInput) (*types.Stone, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	today := b.today()
	res, err := b.execute(ctx, b.sb.Insert("stones").
		Columns(
			"carat", "shape", "color", "clarity", "cut", "certification",
			"cert_number", "asking_price", "cost_price", "source", "supplier_id",
			"status", "notes", "date_added", "date_updated",
		).
		Values(
			in.Carat, in.Shape, in.Color, in.Clarity, in.Cut, in.Certification,
			in.CertNumber, in.AskingPrice, in.CostPrice, in.Source, in.SupplierID,
			sq.Expr("COALESCE(?, ?)", in.Status, types.StoneAvailable), in.Notes, today, today,
		))
	if err != nil {
		return nil, fmt.Errorf("creating stone: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return b.getStone(ctx, b.db, id)
}

// UpdateStone replaces every mutable field of a stone and re-stamps
// date_updated. A nil Status keeps the current status. It returns
// types.ErrNotFound when id does not exist.
func (b *Backend) UpdateStone(ctx context.Context, id int64, in types.StoneInput) (*types.Stone, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	res, err := b.execute(ctx, b.sb.Update("stones").
		Set("carat", in.Carat).
		Set("shape", in.Shape).
		Set("color", in.Color).
		Set("clarity", in.Clarity).
		Set("cut", in.Cut).
		Set("certification", in.Certification).
		Set("cert_number", in.CertNumber).
		Set("asking_price", in.AskingPrice).
		Set("cost_price", in.CostPrice).
		Set("source", in.Source).
		Set("supplier_id", in.SupplierID).
		Set("status", sq.Expr("COALESCE(?, status)", in.Status)).
		Set("notes", in.Notes).
		Set("date_updated", b.today()).
		Where(sq.Eq{"id": id}))
	if err != nil {
		return nil, fmt.Errorf("updating stone %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, types.ErrNotFound
	}
	return b.getStone(ctx, b.db, id)
}

// DeleteStone removes a stone. Deals that reference it are left in place.
// Deleting a missing id is not an error.
func (b *Backend) DeleteStone(ctx context.Context, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkAttached(); err != nil {
		return err
	}
	if _, err := b.execute(ctx, b.sb.Delete("stones").Where(sq.Eq{"id": id})); err != nil {
		return fmt.Errorf("deleting stone %d: %w", id, err)
	}
	return nil
}

// setStoneStatus moves a stone to status inside tx. A missing stone is
// ignored: deals may point at stones that were deleted.
func (b *Backend) setStoneStatus(ctx context.Context, tx *sqlx.Tx, stoneID int64, status string) error {
	_, err := execTx(ctx, tx, b.sb.Update("stones").
		Set("status", status).
		Where(sq.Eq{"id": stoneID}))
	if err != nil {
		return fmt.Errorf("setting stone %d to %s: %w", stoneID, status, err)
	}
	return nil
}
