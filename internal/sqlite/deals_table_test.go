package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prajan97/diamond-intel/pkg/types"
)

// dealFixture creates a stone and a buyer and returns their ids.
func dealFixture(t *testing.T, b *Backend) (stoneID, buyerID int64) {
	t.Helper()
	ctx := context.Background()
	stone, err := b.CreateStone(ctx, stoneInput())
	require.NoError(t, err)
	buyer, err := b.CreateContact(ctx, contactInput(types.ContactBuyer))
	require.NoError(t, err)
	return stone.ID, buyer.ID
}

func stoneStatus(t *testing.T, b *Backend, id int64) string {
	t.Helper()
	s, err := b.GetStone(context.Background(), id)
	require.NoError(t, err)
	return s.Status
}

func TestDeals_CreateReservesStone(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBackend(t)
	stoneID, buyerID := dealFixture(t, b)

	deal, err := b.CreateDeal(ctx, types.DealInput{StoneID: &stoneID, BuyerID: &buyerID})
	require.NoError(t, err)

	assert.Equal(t, types.DealPending, deal.Status)
	assert.Equal(t, types.DefaultCommissionPercent, deal.CommissionPercent)
	assert.Equal(t, 12500.0, lo.FromPtr(deal.AskingPrice), "asking price comes from the stone")
	assert.Equal(t, testToday, deal.DateStarted)
	assert.Nil(t, deal.DateClosed)
	assert.Equal(t, "Round", lo.FromPtr(deal.StoneShape))
	assert.NotNil(t, deal.BuyerName)

	assert.Equal(t, types.StoneReserved, stoneStatus(t, b, stoneID))
}

func TestDeals_CreateExplicitFields(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBackend(t)
	stoneID, buyerID := dealFixture(t, b)

	deal, err := b.CreateDeal(ctx, types.DealInput{
		StoneID:           &stoneID,
		BuyerID:           &buyerID,
		Status:            lo.ToPtr(types.DealNegotiating),
		AskingPrice:       lo.ToPtr(13000.0),
		OfferedPrice:      lo.ToPtr(11800.0),
		CommissionPercent: lo.ToPtr(2.5),
	})
	require.NoError(t, err)
	assert.Equal(t, types.DealNegotiating, deal.Status)
	assert.Equal(t, 13000.0, lo.FromPtr(deal.AskingPrice))
	assert.Equal(t, 11800.0, lo.FromPtr(deal.OfferedPrice))
	assert.Equal(t, 2.5, deal.CommissionPercent)
}

func TestDeals_FailedCreateLeavesStoneAlone(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBackend(t)
	stoneID, buyerID := dealFixture(t, b)

	_, err := b.CreateDeal(ctx, types.DealInput{StoneID: &stoneID, BuyerID: &buyerID, Status: lo.ToPtr("Haggling")})
	require.Error(t, err)

	assert.Equal(t, types.StoneAvailable, stoneStatus(t, b, stoneID))
	deals, err := b.ListDeals(ctx, types.DealFilter{})
	require.NoError(t, err)
	assert.Empty(t, deals)
}

func TestDeals_UpdateTransitions(t *testing.T) {
	tests := []struct {
		name        string
		status      string
		stoneStatus string
		closed      bool
	}{
		{"completed sells the stone", types.DealCompleted, types.StoneSold, true},
		{"lost releases the stone", types.DealLost, types.StoneAvailable, true},
		{"agreed keeps the reservation", types.DealAgreed, types.StoneReserved, false},
		{"negotiating keeps the reservation", types.DealNegotiating, types.StoneReserved, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			b, _ := newTestBackend(t)
			stoneID, buyerID := dealFixture(t, b)

			deal, err := b.CreateDeal(ctx, types.DealInput{StoneID: &stoneID, BuyerID: &buyerID})
			require.NoError(t, err)

			updated, err := b.UpdateDeal(ctx, deal.ID, types.DealUpdate{Status: lo.ToPtr(tt.status)})
			require.NoError(t, err)

			assert.Equal(t, tt.status, updated.Status)
			assert.Equal(t, tt.stoneStatus, stoneStatus(t, b, stoneID))
			if tt.closed {
				assert.Equal(t, testToday, lo.FromPtr(updated.DateClosed))
			} else {
				assert.Nil(t, updated.DateClosed)
			}
		})
	}
}

func TestDeals_Commission(t *testing.T) {
	tests := []struct {
		name   string
		update types.DealUpdate
		want   *float64
	}{
		{
			name:   "computed from final price",
			update: types.DealUpdate{FinalPrice: lo.ToPtr(1000.0)},
			want:   lo.ToPtr(50.0),
		},
		{
			name:   "explicit wins",
			update: types.DealUpdate{FinalPrice: lo.ToPtr(1000.0), Commission: lo.ToPtr(75.0)},
			want:   lo.ToPtr(75.0),
		},
		{
			name:   "unset without final price",
			update: types.DealUpdate{},
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			b, _ := newTestBackend(t)
			stoneID, buyerID := dealFixture(t, b)

			deal, err := b.CreateDeal(ctx, types.DealInput{StoneID: &stoneID, BuyerID: &buyerID, CommissionPercent: lo.ToPtr(5.0)})
			require.NoError(t, err)

			tt.update.Status = lo.ToPtr(types.DealCompleted)
			updated, err := b.UpdateDeal(ctx, deal.ID, tt.update)
			require.NoError(t, err)
			assert.Equal(t, tt.want, updated.Commission)
		})
	}
}

func TestDeals_ReopenAndReclose(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBackend(t)
	stoneID, buyerID := dealFixture(t, b)

	deal, err := b.CreateDeal(ctx, types.DealInput{StoneID: &stoneID, BuyerID: &buyerID})
	require.NoError(t, err)

	_, err = b.UpdateDeal(ctx, deal.ID, types.DealUpdate{Status: lo.ToPtr(types.DealLost)})
	require.NoError(t, err)

	// Reopening clears date_closed but does not re-reserve the stone.
	reopened, err := b.UpdateDeal(ctx, deal.ID, types.DealUpdate{Status: lo.ToPtr(types.DealNegotiating)})
	require.NoError(t, err)
	assert.Nil(t, reopened.DateClosed)
	assert.Equal(t, types.StoneAvailable, stoneStatus(t, b, stoneID))

	// Closing again re-stamps date_closed and re-applies the stone status.
	b.now = func() time.Time { return testClock().AddDate(0, 0, 1) }
	closed, err := b.UpdateDeal(ctx, deal.ID, types.DealUpdate{Status: lo.ToPtr(types.DealCompleted), FinalPrice: lo.ToPtr(12000.0)})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", lo.FromPtr(closed.DateClosed))
	assert.Equal(t, types.StoneSold, stoneStatus(t, b, stoneID))
	assert.Equal(t, 360.0, lo.FromPtr(closed.Commission))
}

func TestDeals_UpdateKeepsStatusWhenOmitted(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBackend(t)
	stoneID, buyerID := dealFixture(t, b)

	deal, err := b.CreateDeal(ctx, types.DealInput{StoneID: &stoneID, BuyerID: &buyerID, Status: lo.ToPtr(types.DealAgreed)})
	require.NoError(t, err)

	updated, err := b.UpdateDeal(ctx, deal.ID, types.DealUpdate{OfferedPrice: lo.ToPtr(12100.0), Notes: lo.ToPtr("counter sent")})
	require.NoError(t, err)
	assert.Equal(t, types.DealAgreed, updated.Status)
	assert.Equal(t, 12100.0, lo.FromPtr(updated.OfferedPrice))
	assert.Equal(t, "counter sent", lo.FromPtr(updated.Notes))
}

func TestDeals_UpdateMissing(t *testing.T) {
	b, _ := newTestBackend(t)
	_, err := b.UpdateDeal(context.Background(), 7, types.DealUpdate{Status: lo.ToPtr(types.DealCompleted)})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestDeals_DeleteReleasesStone(t *testing.T) {
	for _, status := range []string{types.DealPending, types.DealCompleted, types.DealLost} {
		t.Run(status, func(t *testing.T) {
			ctx := context.Background()
			b, _ := newTestBackend(t)
			stoneID, buyerID := dealFixture(t, b)

			deal, err := b.CreateDeal(ctx, types.DealInput{StoneID: &stoneID, BuyerID: &buyerID})
			require.NoError(t, err)
			_, err = b.UpdateDeal(ctx, deal.ID, types.DealUpdate{Status: lo.ToPtr(status)})
			require.NoError(t, err)

			require.NoError(t, b.DeleteDeal(ctx, deal.ID))
			assert.Equal(t, types.StoneAvailable, stoneStatus(t, b, stoneID))

			_, err = b.GetDeal(ctx, deal.ID)
			assert.ErrorIs(t, err, types.ErrNotFound)
		})
	}
}

func TestDeals_DeleteMissing(t *testing.T) {
	b, _ := newTestBackend(t)
	assert.NoError(t, b.DeleteDeal(context.Background(), 99))
}

func TestDeals_DanglingStone(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBackend(t)
	stoneID, buyerID := dealFixture(t, b)

	deal, err := b.CreateDeal(ctx, types.DealInput{StoneID: &stoneID, BuyerID: &buyerID})
	require.NoError(t, err)
	require.NoError(t, b.DeleteStone(ctx, stoneID))

	got, err := b.GetDeal(ctx, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, stoneID, lo.FromPtr(got.StoneID))
	assert.Nil(t, got.StoneShape)

	_, err = b.UpdateDeal(ctx, deal.ID, types.DealUpdate{Status: lo.ToPtr(types.DealCompleted)})
	require.NoError(t, err)
	require.NoError(t, b.DeleteDeal(ctx, deal.ID))
}

func TestDeals_ListFilterAndOrder(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBackend(t)

	var ids []int64
	for _, status := range []string{types.DealPending, types.DealAgreed, types.DealPending} {
		stoneID, buyerID := dealFixture(t, b)
		d, err := b.CreateDeal(ctx, types.DealInput{StoneID: &stoneID, BuyerID: &buyerID, Status: lo.ToPtr(status)})
		require.NoError(t, err)
		ids = append(ids, d.ID)
	}

	all, err := b.ListDeals(ctx, types.DealFilter{})
	require.NoError(t, err)
	assert.Equal(t, []int64{ids[2], ids[1], ids[0]}, lo.Map(all, func(d types.Deal, _ int) int64 { return d.ID }))

	pending, err := b.ListDeals(ctx, types.DealFilter{Status: types.DealPending})
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}
