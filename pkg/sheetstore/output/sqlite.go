package output

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

// WriteSQLite writes a sheet export into table of the SQLite database at
// path, replacing any previous table of that name. Every column is TEXT;
// an "ordinal" column holds the 1-based listing position of each row in the
// sheet, so a row keeps the ordinal "list" shows for it even when the header
// row was split off.
func WriteSQLite(path, table string, e SheetExport) (int, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return 0, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	columns := columnNames(e)

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DROP TABLE IF EXISTS " + quoteIdent(table)); err != nil {
		return 0, fmt.Errorf("dropping table: %w", err)
	}

	defs := []string{quoteIdent("ordinal") + " INTEGER PRIMARY KEY"}
	for _, c := range columns {
		defs = append(defs, quoteIdent(c)+" TEXT")
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(table), strings.Join(defs, ", "))
	if _, err := tx.Exec(create); err != nil {
		return 0, fmt.Errorf("creating table: %w", err)
	}

	names := []string{quoteIdent("ordinal")}
	marks := []string{"?"}
	for _, c := range columns {
		names = append(names, quoteIdent(c))
		marks = append(marks, "?")
	}
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(names, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	first := 1
	if e.Header != nil {
		first = 2
	}

	args := make([]any, len(columns)+1)
	for i, row := range e.Rows {
		args[0] = first + i
		for j := range columns {
			if j < len(row) {
				args[j+1] = row[j]
			} else {
				args[j+1] = nil
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			return 0, fmt.Errorf("inserting row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return len(e.Rows), nil
}

// columnNames names the export's columns from its header, falling back to
// c1, c2, ... for blank, duplicate or missing names.
func columnNames(e SheetExport) []string {
	width := len(e.Header)
	for _, r := range e.Rows {
		if len(r) > width {
			width = len(r)
		}
	}

	seen := map[string]bool{"ordinal": true}
	names := make([]string, width)
	for i := range names {
		name := ""
		if i < len(e.Header) {
			name = strings.TrimSpace(e.Header[i])
		}
		for n := i + 1; name == "" || seen[strings.ToLower(name)]; n++ {
			name = "c" + strconv.Itoa(n)
		}
		seen[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
