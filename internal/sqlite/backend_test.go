// Tests for the SQLite ledger backend: attach, detach and store file
// persistence.
package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prajan97/diamond-intel/pkg/types"
)

// testToday is the date every test backend stamps on new rows.
const testToday = "2026-03-14"

func testClock() time.Time {
	return time.Date(2026, 3, 14, 15, 4, 5, 0, time.UTC)
}

// newTestBackend attaches a backend to a fresh store in a temp dir.
func newTestBackend(t *testing.T) (*Backend, types.Config) {
	t.Helper()
	cfg := types.Config{DataDir: t.TempDir()}
	b := NewBackend(WithClock(testClock))
	require.NoError(t, b.Attach(cfg))
	t.Cleanup(func() { b.Detach() })
	return b, cfg
}

func stoneInput() types.StoneInput {
	return types.StoneInput{
		Carat:         lo.ToPtr(1.01),
		Shape:         lo.ToPtr("Round"),
		Color:         lo.ToPtr("F"),
		Clarity:       lo.ToPtr("VS1"),
		Cut:           lo.ToPtr("Excellent"),
		Certification: lo.ToPtr("GIA"),
		CertNumber:    lo.ToPtr(gofakeit.Numerify("##########")),
		AskingPrice:   lo.ToPtr(12500.0),
		CostPrice:     lo.ToPtr(10000.0),
		Source:        lo.ToPtr("Antwerp"),
		Notes:         lo.ToPtr(gofakeit.Sentence(6)),
	}
}

func contactInput(kind string) types.ContactInput {
	return types.ContactInput{
		Name:     lo.ToPtr(gofakeit.Name()),
		Company:  lo.ToPtr(gofakeit.Company()),
		Type:     lo.ToPtr(kind),
		Email:    lo.ToPtr(gofakeit.Email()),
		Phone:    lo.ToPtr(gofakeit.Phone()),
		Location: lo.ToPtr(gofakeit.City()),
	}
}

func TestBackend_AttachCreatesStoreFile(t *testing.T) {
	b, cfg := newTestBackend(t)

	path := filepath.Join(cfg.DataDir, types.DefaultDatabaseFile)
	assert.Equal(t, path, b.Path())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "new store should be written out immediately")
}

func TestBackend_DoubleAttach(t *testing.T) {
	b, cfg := newTestBackend(t)
	assert.ErrorIs(t, b.Attach(cfg), types.ErrAlreadyAttached)
}

func TestBackend_AttachInvalidConfig(t *testing.T) {
	b := NewBackend()
	err := b.Attach(types.Config{DataDir: t.TempDir(), DatabaseFile: "../escape.db"})
	assert.ErrorIs(t, err, types.ErrDatabaseFileInvalid)
	assert.Equal(t, "", b.Path())
}

func TestBackend_Detach(t *testing.T) {
	b, _ := newTestBackend(t)

	require.NoError(t, b.Detach())
	// Idempotent
	require.NoError(t, b.Detach())
	assert.Equal(t, "", b.Path())

	ctx := context.Background()
	_, err := b.ListStones(ctx, types.StoneFilter{})
	assert.ErrorIs(t, err, types.ErrDetached)
	_, err = b.CreateContact(ctx, contactInput(types.ContactBuyer))
	assert.ErrorIs(t, err, types.ErrDetached)
	assert.ErrorIs(t, b.DeleteDeal(ctx, 1), types.ErrDetached)
}

func TestBackend_ReattachLoadsStore(t *testing.T) {
	ctx := context.Background()
	b, cfg := newTestBackend(t)

	supplier, err := b.CreateContact(ctx, contactInput(types.ContactSupplier))
	require.NoError(t, err)
	in := stoneInput()
	in.SupplierID = &supplier.ID
	first, err := b.CreateStone(ctx, in)
	require.NoError(t, err)
	second, err := b.CreateStone(ctx, stoneInput())
	require.NoError(t, err)
	require.NoError(t, b.DeleteStone(ctx, second.ID))
	require.NoError(t, b.Detach())

	reopened := NewBackend(WithClock(testClock))
	require.NoError(t, reopened.Attach(cfg))
	defer reopened.Detach()

	stones, err := reopened.ListStones(ctx, types.StoneFilter{})
	require.NoError(t, err)
	require.Len(t, stones, 1)
	assert.Equal(t, *first, stones[0])

	// Ids of deleted rows are not handed out again.
	third, err := reopened.CreateStone(ctx, stoneInput())
	require.NoError(t, err)
	assert.Equal(t, second.ID+1, third.ID)
}

func TestBackend_EveryWriteReachesDisk(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBackend(t)

	countOnDisk := func(table string) int {
		t.Helper()
		db, err := sqlx.Open("sqlite", b.Path())
		require.NoError(t, err)
		defer db.Close()
		var n int
		require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM "+table))
		return n
	}

	stone, err := b.CreateStone(ctx, stoneInput())
	require.NoError(t, err)
	assert.Equal(t, 1, countOnDisk(tableStones))

	buyer, err := b.CreateContact(ctx, contactInput(types.ContactBuyer))
	require.NoError(t, err)
	assert.Equal(t, 1, countOnDisk(tableContacts))

	_, err = b.CreateDeal(ctx, types.DealInput{StoneID: &stone.ID, BuyerID: &buyer.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, countOnDisk(tableDeals))

	_, err = b.CreatePrice(ctx, types.PriceInput{Shape: lo.ToPtr("Oval"), CaratMin: lo.ToPtr(1.0), PricePerCarat: lo.ToPtr(6400.0)})
	require.NoError(t, err)
	assert.Equal(t, 1, countOnDisk(tablePriceLog))

	require.NoError(t, b.DeleteStone(ctx, stone.ID))
	assert.Equal(t, 0, countOnDisk(tableStones))
}

func TestBackend_AttachCorruptStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, types.DefaultDatabaseFile)
	require.NoError(t, os.WriteFile(path, []byte("this is not a sqlite database, just text"), 0o644))

	b := NewBackend()
	err := b.Attach(types.Config{DataDir: dir})
	require.Error(t, err)
	assert.Equal(t, "", b.Path())

	// The corrupt file is left for the operator to inspect.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "not a sqlite database")
}

func TestBackend_AttachEmptyFileIsNewStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, types.DefaultDatabaseFile)
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{DataDir: dir}))
	defer b.Detach()

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestBackend_PersistFailureKeepsCommittedRow(t *testing.T) {
	ctx := context.Background()
	b, cfg := newTestBackend(t)
	path := filepath.Join(cfg.DataDir, types.DefaultDatabaseFile)

	// A non-empty directory where the store file belongs makes the rename fail.
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.MkdirAll(filepath.Join(path, "blocker"), 0o755))

	_, err := b.CreateStone(ctx, stoneInput())
	require.Error(t, err)

	stones, err := b.ListStones(ctx, types.StoneFilter{})
	require.NoError(t, err)
	assert.Len(t, stones, 1, "the write committed in memory before persisting failed")

	require.NoError(t, os.RemoveAll(path))
	_, err = b.CreateStone(ctx, stoneInput())
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	reopened := NewBackend(WithClock(testClock))
	require.NoError(t, reopened.Attach(cfg))
	defer reopened.Detach()
	stones, err = reopened.ListStones(ctx, types.StoneFilter{})
	require.NoError(t, err)
	assert.Len(t, stones, 2, "the next successful write carries the earlier row to disk")
}
