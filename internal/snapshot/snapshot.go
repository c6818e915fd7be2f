// Package snapshot copies the record stores into a SQLite database for
// reporting and ad-hoc queries. The flat files stay the source of truth;
// each export rebuilds the tables from scratch.
package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/rcliao/hms/internal/database"
	"github.com/rcliao/hms/internal/record"
)

// Table reports how many rows were exported to one table.
type Table struct {
	Name string `json:"table"`
	Rows int    `json:"rows"`
}

// Export writes every handle to the SQLite file at dbPath, one table per
// entity with one TEXT column per field. Absent values become NULL.
func Export(ctx context.Context, dbPath string, handles ...database.Handle) ([]Table, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var out []Table
	for _, h := range handles {
		n, err := exportTable(ctx, tx, h)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", h.Name(), err)
		}
		out = append(out, Table{Name: tableName(h.Name()), Rows: n})
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

func exportTable(ctx context.Context, tx *sql.Tx, h database.Handle) (int, error) {
	table := tableName(h.Name())
	cols := h.Columns()

	quoted := make([]string, len(cols))
	defs := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quote(c)
		defs[i] = quote(c) + " TEXT"
		marks[i] = "?"
	}
	defs[0] += " PRIMARY KEY"

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS `+quote(table)); err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE %s (%s)`, quote(table), strings.Join(defs, ", "))); err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		quote(table), strings.Join(quoted, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	rows := 0
	for _, m := range h.Mappings() {
		args := make([]any, len(cols))
		for i, c := range cols {
			v, ok := m.Get(c)
			if !ok || v == record.Empty {
				args[i] = nil
				continue
			}
			args[i] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return rows, err
		}
		rows++
	}
	return rows, nil
}

// tableName turns "appointment-outcome" into "appointment_outcome".
func tableName(entity string) string {
	return strings.ReplaceAll(entity, "-", "_")
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
