// Package models defines the in-memory spreadsheet document and the
// JSON views produced by inspection.
package models

import "strings"

// RowIndex is the persisted 1-based row number of a row within its sheet.
// It never changes once assigned.
type RowIndex int

// Document is a workbook: its sheets and the string table they share.
type Document struct {
	// Sheets in workbook order.
	Sheets []*Sheet
	// Strings is shared by every sheet of the document.
	Strings *StringTable
}

// Sheet is a named worksheet and its rows in collection order.
type Sheet struct {
	// ID is the workbook-unique sheet identifier.
	ID int
	// Name is unique within the document, compared case-insensitively.
	Name string
	// Rows in collection order.
	Rows []*Row
}

// NewDocument returns an empty document with an empty string table.
func NewDocument() *Document {
	return &Document{Strings: NewStringTable()}
}

// Sheet returns the sheet whose name matches case-insensitively, or nil.
func (d *Document) Sheet(name string) *Sheet {
	for _, s := range d.Sheets {
		if strings.EqualFold(s.Name, name) {
			return s
		}
	}
	return nil
}

// EnsureSheet returns the named sheet, creating an empty one with the next
// sheet ID when none matches.
func (d *Document) EnsureSheet(name string) (*Sheet, bool) {
	if s := d.Sheet(name); s != nil {
		return s, false
	}
	next := 0
	for _, s := range d.Sheets {
		if s.ID > next {
			next = s.ID
		}
	}
	s := &Sheet{ID: next + 1, Name: name}
	d.Sheets = append(d.Sheets, s)
	return s, true
}

// MaxRowIndex returns the largest RowIndex in the sheet, or 0 when it has no rows.
func (s *Sheet) MaxRowIndex() RowIndex {
	var max RowIndex
	for _, r := range s.Rows {
		if r.Index > max {
			max = r.Index
		}
	}
	return max
}

// Row returns the row holding index, or nil.
func (s *Sheet) Row(index RowIndex) *Row {
	for _, r := range s.Rows {
		if r.Index == index {
			return r
		}
	}
	return nil
}

// InsertRow places r at position pos of the row collection.
func (s *Sheet) InsertRow(pos int, r *Row) {
	s.Rows = append(s.Rows, nil)
	copy(s.Rows[pos+1:], s.Rows[pos:])
	s.Rows[pos] = r
}

// RemoveRow drops the row at position pos of the row collection.
func (s *Sheet) RemoveRow(pos int) {
	s.Rows = append(s.Rows[:pos], s.Rows[pos+1:]...)
}
