package models

import "errors"

// Row is one worksheet row.
type Row struct {
	// Index is the persisted row number.
	Index RowIndex
	// Cells in column order.
	Cells []Cell
}

// Cell holds one value of a row. Its A1 reference is derived from Column
// and the owning row's Index whenever it is needed.
type Cell struct {
	// Column is the zero-based column offset.
	Column int
	// Shared reports whether the value lives in the string table.
	Shared bool
	// Handle is the string table handle when Shared is set.
	Handle int
	// Text is the literal value of a cell that is not shared.
	Text string
	// Type is the cell type attribute a non-shared cell was read with
	// ("n", "str", "inlineStr", ...), kept so the cell is written back as read.
	Type string
}

// NewRow builds a row at index whose cells hold values, interned in st.
func NewRow(index RowIndex, values []string, st *StringTable) *Row {
	r := &Row{Index: index}
	r.SetValues(values, st)
	return r
}

// SetValues discards the row's cells and rebuilds them from values.
func (r *Row) SetValues(values []string, st *StringTable) {
	r.Cells = make([]Cell, len(values))
	for i, v := range values {
		r.Cells[i] = Cell{Column: i, Shared: true, Handle: st.Intern(v)}
	}
}

// Value returns the cell's text.
func (c Cell) Value(st *StringTable) (string, error) {
	if !c.Shared {
		return c.Text, nil
	}
	return st.Resolve(c.Handle)
}

// Values renders the row as text by column. Columns between cells read as
// empty strings. Cells whose handle cannot be resolved also read as empty;
// the returned error reports them.
func (r *Row) Values(st *StringTable) ([]string, error) {
	width := 0
	for _, c := range r.Cells {
		if c.Column+1 > width {
			width = c.Column + 1
		}
	}
	out := make([]string, width)
	var errs []error
	for _, c := range r.Cells {
		v, err := c.Value(st)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out[c.Column] = v
	}
	return out, errors.Join(errs...)
}
