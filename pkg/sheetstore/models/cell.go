package models

// CellRow represents a single non-empty row as seen by a spreadsheet reader.
type CellRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// C maps column index (1-based, as string) to cell text.
	C map[string]string `json:"c"`
	// Links maps column index to hyperlink URL (optional).
	Links map[string]string `json:"links,omitempty"`
}
