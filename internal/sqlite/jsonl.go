package sqlite

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const jsonlExt = ".jsonl"

// ErrMalformedRecord marks a JSONL line that is not a JSON object.
var ErrMalformedRecord = errors.New("malformed JSONL record")

// ExportJSONL writes every table to <dir>/<table>.jsonl, one JSON object per
// row ordered by id. Each file is replaced atomically.
func (b *Backend) ExportJSONL(ctx context.Context, dir string) (map[string]int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkAttached(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	written := make(map[string]int, len(tableColumns))
	for _, mapping := range tableColumns {
		records, err := dumpTable(ctx, b.db, mapping.table, mapping.columns)
		if err != nil {
			return nil, err
		}
		if err := writeJSONL(filepath.Join(dir, mapping.table+jsonlExt), records); err != nil {
			return nil, fmt.Errorf("writing %s: %w", mapping.table, err)
		}
		written[mapping.table] = len(records)
	}
	return written, nil
}

// ImportJSONL replaces the store contents with the JSONL files in dir and
// persists the result. Either every table is replaced or none is.
func (b *Backend) ImportJSONL(ctx context.Context, dir string) (map[string]int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	var loaded map[string]int
	err := b.inTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		loaded, err = loadJSONLDir(ctx, tx, dir)
		return err
	})
	if err != nil {
		return nil, err
	}
	b.logger.Info("store imported", zap.String("dir", dir), zap.Any("rows", loaded))
	return loaded, nil
}

// dumpTable reads every row of table as a JSON object keyed by column name.
func dumpTable(ctx context.Context, db *sqlx.DB, table string, columns []string) ([]json.RawMessage, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", strings.Join(columns, ", "), table)
	rows, err := db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		row := make(map[string]any, len(columns))
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", table, err)
		}
		for k, v := range row {
			if raw, ok := v.([]byte); ok {
				row[k] = string(raw)
			}
		}
		data, err := json.Marshal(row)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s row: %w", table, err)
		}
		records = append(records, data)
	}
	return records, rows.Err()
}

// readJSONL reads a JSONL file and returns each non-empty line as a
// json.RawMessage. A line that is not a JSON object fails the read with its
// line number. A missing file yields no records.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) || line[0] != '{' {
			return nil, fmt.Errorf("%s line %d: %w", filepath.Base(path), lineNo, ErrMalformedRecord)
		}
		records = append(records, json.RawMessage(bytes.Clone(line)))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(msg string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w", msg, err)
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail("writing record", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail("writing newline", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
