package sqlite

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/prajan97/diamond-intel/pkg/types"
)

// dealColumns selects a deal with the stone and buyer fields shown next to it.
var dealColumns = []string{
	"d.id", "d.stone_id", "d.buyer_id", "d.status", "d.asking_price",
	"d.offered_price", "d.final_price", "d.commission", "d.commission_percent",
	"d.notes", "d.date_started", "d.date_closed",
	"s.carat AS stone_carat", "s.shape AS stone_shape", "s.color AS stone_color",
	"s.clarity AS stone_clarity", "s.cert_number AS stone_cert_number",
	"c.name AS buyer_name", "c.company AS buyer_company",
}

func (b *Backend) dealQuery() sq.SelectBuilder {
	return b.sb.Select(dealColumns...).
		From("deals d").
		LeftJoin("stones s ON s.id = d.stone_id").
		LeftJoin("contacts c ON c.id = d.buyer_id")
}

// newestDealsFirst orders deals by start date, breaking ties by id.
var newestDealsFirst = []string{"d.date_started DESC", "d.id DESC"}

// ListDeals returns deals matching filter, newest first.
func (b *Backend) ListDeals(ctx context.Context, filter types.DealFilter) ([]types.Deal, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	q := b.dealQuery()
	if filter.Status != "" {
		q = q.Where(sq.Eq{"d.status": filter.Status})
	}
	deals, err := fetchAll[types.Deal](ctx, b.db, q.OrderBy(newestDealsFirst...))
	if err != nil {
		return nil, fmt.Errorf("listing deals: %w", err)
	}
	return deals, nil
}

// GetDeal returns a single deal.
func (b *Backend) GetDeal(ctx context.Context, id int64) (*types.Deal, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkAttached(); err != nil {
		return nil, err
	}
	return b.getDeal(ctx, b.db, id)
}

func (b *Backend) getDeal(ctx context.Context, q sqlx.QueryerContext, id int64) (*types.Deal, error) {
	return fetchOne[types.Deal](ctx, q, b.dealQuery().Where(sq.Eq{"d.id": id}))
}

// CreateDeal opens a deal and reserves its stone in the same transaction.
// Status defaults to Pending, commission_percent to 3 and asking_price to
// the stone's asking price.
func (b *Backend) CreateDeal(ctx context.Context, in types.DealInput) (*types.Deal, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	var id int64
	err := b.inTx(ctx, func(tx *sqlx.Tx) error {
		res, err := execTx(ctx, tx, b.sb.Insert("deals").
			Columns(
				"stone_id", "buyer_id", "status", "asking_price", "offered_price",
				"commission_percent", "notes", "date_started",
			).
			Values(
				in.StoneID, in.BuyerID,
				sq.Expr("COALESCE(?, ?)", in.Status, types.DealPending),
				sq.Expr("COALESCE(?, (SELECT asking_price FROM stones WHERE id = ?))", in.AskingPrice, in.StoneID),
				in.OfferedPrice,
				sq.Expr("COALESCE(?, ?)", in.CommissionPercent, types.DefaultCommissionPercent),
				in.Notes, b.today(),
			))
		if err != nil {
			return fmt.Errorf("creating deal: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}
		if in.StoneID != nil {
			return b.setStoneStatus(ctx, tx, *in.StoneID, types.StoneReserved)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b.getDeal(ctx, b.db, id)
}

// UpdateDeal moves a deal to a new status. Closing it as Completed or Lost
// stamps date_closed with today and marks the stone Sold or Available; any
// other status clears date_closed and leaves the stone alone. Closing an
// already closed deal repeats both effects. The commission is the explicit
// value if given, else final_price times the deal's commission percent.
func (b *Backend) UpdateDeal(ctx context.Context, id int64, in types.DealUpdate) (*types.Deal, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	err := b.inTx(ctx, func(tx *sqlx.Tx) error {
		current, err := b.getDeal(ctx, tx, id)
		if err != nil {
			return err
		}

		status := lo.FromPtrOr(in.Status, current.Status)
		var dateClosed *string
		if types.IsClosed(status) {
			dateClosed = lo.ToPtr(b.today())
		}

		_, err = execTx(ctx, tx, b.sb.Update("deals").
			Set("status", status).
			Set("offered_price", in.OfferedPrice).
			Set("final_price", in.FinalPrice).
			Set("commission", types.ResolveCommission(in.Commission, in.FinalPrice, current.CommissionPercent)).
			Set("notes", in.Notes).
			Set("date_closed", dateClosed).
			Where(sq.Eq{"id": id}))
		if err != nil {
			return fmt.Errorf("updating deal %d: %w", id, err)
		}

		stoneStatus, closes := types.StoneStatusOnClose(status)
		if closes && current.StoneID != nil {
			return b.setStoneStatus(ctx, tx, *current.StoneID, stoneStatus)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b.getDeal(ctx, b.db, id)
}

// DeleteDeal returns the deal's stone to Available, whatever the deal's
// status, and removes the deal. Deleting a missing id is not an error.
func (b *Backend) DeleteDeal(ctx context.Context, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkAttached(); err != nil {
		return err
	}

	err := b.inTx(ctx, func(tx *sqlx.Tx) error {
		current, err := b.getDeal(ctx, tx, id)
		if err != nil {
			return err
		}
		if current.StoneID != nil {
			if err := b.setStoneStatus(ctx, tx, *current.StoneID, types.StoneAvailable); err != nil {
				return err
			}
		}
		if _, err := execTx(ctx, tx, b.sb.Delete("deals").Where(sq.Eq{"id": id})); err != nil {
			return fmt.Errorf("deleting deal %d: %w", id, err)
		}
		return nil
	})
	if errors.Is(err, types.ErrNotFound) {
		b.logger.Debug("delete of missing deal", zap.Int64("id", id))
		return nil
	}
	return err
}
