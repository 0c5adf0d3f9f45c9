package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadDatabaseFile_PartialSchema loads a store file written by an older
// build that only had the stones table.
func TestLoadDatabaseFile_PartialSchema(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "old.db")

	old, err := sqlx.Open("sqlite", path)
	require.NoError(t, err)
	_, err = old.Exec(`CREATE TABLE stones (
		id INTEGER PRIMARY KEY AUTOINCREMENT, carat REAL, shape TEXT, color TEXT,
		clarity TEXT, cut TEXT, certification TEXT, cert_number TEXT,
		asking_price REAL, cost_price REAL, source TEXT, supplier_id INTEGER,
		status TEXT, notes TEXT, date_added TEXT, date_updated TEXT)`)
	require.NoError(t, err)
	_, err = old.Exec(`INSERT INTO stones (carat, shape, status, date_added, date_updated)
		VALUES (0.9, 'Emerald', 'Available', '2025-06-01', '2025-06-01')`)
	require.NoError(t, err)
	require.NoError(t, old.Close())

	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()
	require.NoError(t, createSchema(ctx, db))

	require.NoError(t, loadDatabaseFile(ctx, db, path))

	var shape string
	require.NoError(t, db.Get(&shape, "SELECT shape FROM stones WHERE id = 1"))
	assert.Equal(t, "Emerald", shape)

	var contacts int
	require.NoError(t, db.Get(&contacts, "SELECT COUNT(*) FROM contacts"))
	assert.Zero(t, contacts)

	// The store file is detached again after loading.
	var attached []string
	require.NoError(t, db.Select(&attached, "SELECT name FROM pragma_database_list"))
	assert.Equal(t, []string{"main"}, attached)
}
