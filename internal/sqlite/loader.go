package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
)

// loadDatabaseFile copies every table of the store file at path into the
// in-memory database. The file is attached as "disk", checked, copied in one
// transaction and detached again. Tables missing from the file
// are left empty.
func loadDatabaseFile(ctx context.Context, db *sqlx.DB, path string) error {
	if _, err := db.ExecContext(ctx, "ATTACH DATABASE ? AS disk", path); err != nil {
		return fmt.Errorf("attaching store file: %w", err)
	}
	defer db.ExecContext(context.WithoutCancel(ctx), "DETACH DATABASE disk")

	var check string
	if err := db.GetContext(ctx, &check, "PRAGMA disk.quick_check"); err != nil {
		return fmt.Errorf("checking store file: %w", err)
	}
	if check != "ok" {
		return fmt.Errorf("store file failed integrity check: %s", check)
	}

	var present []string
	if err := db.SelectContext(ctx, &present, "SELECT name FROM disk.sqlite_master WHERE type = 'table'"); err != nil {
		return fmt.Errorf("listing store tables: %w", err)
	}
	inFile := make(map[string]bool, len(present))
	for _, name := range present {
		inFile[name] = true
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, mapping := range tableColumns {
		if !inFile[mapping.table] {
			continue
		}
		cols := strings.Join(mapping.columns, ", ")
		copySQL := fmt.Sprintf("INSERT INTO main.%s (%s) SELECT %s FROM disk.%s", mapping.table, cols, cols, mapping.table)
		if _, err := tx.ExecContext(ctx, copySQL); err != nil {
			return fmt.Errorf("loading %s: %w", mapping.table, err)
		}
	}

	// Keep AUTOINCREMENT counters so ids of deleted rows are not reused.
	if inFile["sqlite_sequence"] {
		if _, err := tx.ExecContext(ctx, "DELETE FROM main.sqlite_sequence"); err != nil {
			return fmt.Errorf("resetting sequences: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO main.sqlite_sequence (name, seq) SELECT name, seq FROM disk.sqlite_sequence"); err != nil {
			return fmt.Errorf("loading sequences: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

// loadJSONLDir replaces the contents of every table with the records of the
// matching <table>.jsonl file in dir, in one transaction. Missing files leave
// their table empty, unknown fields are ignored and a malformed line fails
// the whole load.
func loadJSONLDir(ctx context.Context, tx *sqlx.Tx, dir string) (map[string]int, error) {
	loaded := make(map[string]int, len(tableColumns))
	for _, mapping := range tableColumns {
		records, err := readJSONL(filepath.Join(dir, mapping.table+jsonlExt))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", mapping.table, err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+mapping.table); err != nil {
			return nil, fmt.Errorf("clearing %s: %w", mapping.table, err)
		}
		n, err := insertRecords(ctx, tx, mapping.table, mapping.columns, records)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", mapping.table, err)
		}
		loaded[mapping.table] = n
	}
	return loaded, nil
}

// insertRecords inserts parsed JSONL records into a table. Only the listed
// columns are extracted; absent keys insert NULL.
func insertRecords(ctx context.Context, tx *sqlx.Tx, table string, columns []string, records []json.RawMessage) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	insertSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return 0, fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	inserted := 0
	for _, rec := range records {
		var obj map[string]any
		if err := json.Unmarshal(rec, &obj); err != nil {
			return inserted, fmt.Errorf("decoding %s record: %w", table, err)
		}
		args := make([]any, len(columns))
		for i, col := range columns {
			args[i] = obj[col]
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return inserted, fmt.Errorf("inserting into %s: %w", table, err)
		}
		inserted++
	}
	return inserted, nil
}
