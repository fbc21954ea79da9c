package sheetstore

import (
	"fmt"

	"github.com/ukaji3/sheetstore-go/pkg/sheetstore/models"
)

// EnsureHeader makes the canonical header the first row of sheet. It
// reports whether a header row was inserted.
//
// The header is inserted as row 1 ahead of existing rows, which keep their
// RowIndex. When row 1 already holds something other than the header the
// sheet is left alone and ErrHeaderConflict is returned.
func (s *Store) EnsureHeader(sheet string) (bool, error) {
	inserted := false
	err := s.update("ensure header", func(doc *models.Document) (bool, error) {
		sh, err := findSheet(doc, sheet)
		if err != nil {
			return false, err
		}

		if len(sh.Rows) > 0 {
			first, _ := sh.Rows[0].Values(doc.Strings)
			if IsHeader(first) {
				return false, nil
			}
			if sh.Row(1) != nil {
				return false, fmt.Errorf("%w (sheet %q)", ErrHeaderConflict, sh.Name)
			}
		}

		sh.InsertRow(0, models.NewRow(1, Headers(), doc.Strings))
		inserted = true
		return true, nil
	})
	if inserted {
		s.log.Info("header row inserted", "sheet", sheet)
	}
	return inserted, err
}

// IsHeader reports whether values start with the canonical header.
func IsHeader(values []string) bool {
	if len(values) < EntryColumns {
		return false
	}
	for i, h := range entryHeaders {
		if values[i] != h {
			return false
		}
	}
	return true
}
