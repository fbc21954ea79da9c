package models

// SheetData represents the inspected contents of a single sheet.
type SheetData struct {
	// ID is the workbook sheet identifier.
	ID int `json:"id"`
	// Header reports whether the first row is the canonical entry header.
	Header bool `json:"header"`
	// Rows contains non-empty rows with cell text and links.
	Rows []CellRow `json:"rows,omitempty"`
	// TableCandidates contains cell ranges likely representing tables.
	TableCandidates []string `json:"table_candidates,omitempty"`
}
