// Package output serializes store contents for other tools.
package output

import "encoding/json"

// SheetExport is the exported contents of one sheet.
type SheetExport struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheet is the sheet name.
	Sheet string `json:"sheet"`
	// Header holds the column names when the first row is a header.
	Header []string `json:"header,omitempty"`
	// Rows holds the data rows in listing order.
	Rows [][]string `json:"rows"`
}

// NewSheetExport splits rows into header and data when header is set.
func NewSheetExport(book, sheet string, rows [][]string, header bool) SheetExport {
	e := SheetExport{BookName: book, Sheet: sheet, Rows: rows}
	if header && len(rows) > 0 {
		e.Header = rows[0]
		e.Rows = rows[1:]
	}
	if e.Rows == nil {
		e.Rows = [][]string{}
	}
	return e
}

// ToJSON serializes v, indented when pretty is set.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
