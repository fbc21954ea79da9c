package sheetstore

import (
	"fmt"
	"unicode/utf8"

	"github.com/ukaji3/sheetstore-go/pkg/sheetstore/models"
)

// Ordinal is the 1-based position of a row in the current listing of a
// sheet. Unlike models.RowIndex it shifts when earlier rows are deleted.
type Ordinal int

// ordinalToRowIndex finds the row an ordinal currently points at and its
// position in the row collection.
func ordinalToRowIndex(sh *models.Sheet, ord Ordinal) (models.RowIndex, int, bool) {
	if ord < 1 || int(ord) > len(sh.Rows) {
		return 0, 0, false
	}
	pos := int(ord) - 1
	return sh.Rows[pos].Index, pos, true
}

// validateValues rejects values that would not read back unchanged.
func validateValues(values []string) error {
	for i, v := range values {
		if !utf8.ValidString(v) {
			return fmt.Errorf("%w (column %d: %q)", ErrInvalidText, i+1, v)
		}
	}
	return nil
}

// Append adds a row holding values after the last row of sheet and returns
// its RowIndex, one greater than the largest in the sheet. Values must be
// valid UTF-8.
func (s *Store) Append(sheet string, values []string) (models.RowIndex, error) {
	if err := validateValues(values); err != nil {
		return 0, err
	}
	var idx models.RowIndex
	err := s.update("append", func(doc *models.Document) (bool, error) {
		sh, err := findSheet(doc, sheet)
		if err != nil {
			return false, err
		}
		idx = sh.MaxRowIndex() + 1
		sh.Rows = append(sh.Rows, models.NewRow(idx, values, doc.Strings))
		return true, nil
	})
	if err != nil {
		return 0, err
	}
	s.log.Debug("row appended", "sheet", sheet, "row_index", int(idx), "cells", len(values))
	return idx, nil
}

// List returns every row of sheet as text, in row order. Cells whose text
// cannot be resolved read as empty strings.
func (s *Store) List(sheet string) ([][]string, error) {
	var out [][]string
	err := s.view(func(doc *models.Document) error {
		sh, err := findSheet(doc, sheet)
		if err != nil {
			return err
		}
		out = make([][]string, 0, len(sh.Rows))
		for _, r := range sh.Rows {
			values, err := r.Values(doc.Strings)
			if err != nil {
				s.log.Warn("unresolved cell text", "sheet", sh.Name, "row_index", int(r.Index), "error", err)
			}
			out = append(out, values)
		}
		return nil
	})
	return out, err
}

// ReplaceByOrdinal replaces the cells of the row at position ord of the
// listing with values. The row keeps its RowIndex. It reports false, and
// leaves the document untouched, when no row is at that position. Values
// must be valid UTF-8.
func (s *Store) ReplaceByOrdinal(sheet string, ord Ordinal, values []string) (bool, error) {
	if err := validateValues(values); err != nil {
		return false, err
	}
	found := false
	err := s.update("replace", func(doc *models.Document) (bool, error) {
		sh, err := findSheet(doc, sheet)
		if err != nil {
			return false, err
		}
		idx, pos, ok := ordinalToRowIndex(sh, ord)
		if !ok {
			return false, nil
		}
		sh.Rows[pos].SetValues(values, doc.Strings)
		found = true
		s.log.Debug("row replaced", "sheet", sh.Name, "ordinal", int(ord), "row_index", int(idx))
		return true, nil
	})
	return found, err
}

// DeleteByOrdinal removes the row at position ord of the listing. Other
// rows keep their RowIndex. It reports false when no row is at that position.
func (s *Store) DeleteByOrdinal(sheet string, ord Ordinal) (bool, error) {
	found := false
	err := s.update("delete", func(doc *models.Document) (bool, error) {
		sh, err := findSheet(doc, sheet)
		if err != nil {
			return false, err
		}
		idx, pos, ok := ordinalToRowIndex(sh, ord)
		if !ok {
			return false, nil
		}
		sh.RemoveRow(pos)
		found = true
		s.log.Debug("row deleted", "sheet", sh.Name, "ordinal", int(ord), "row_index", int(idx))
		return true, nil
	})
	return found, err
}
