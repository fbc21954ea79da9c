package sheetstore

import (
	"fmt"
	"path/filepath"

	"github.com/ukaji3/sheetstore-go/pkg/sheetstore/models"
	"github.com/ukaji3/sheetstore-go/pkg/sheetstore/parser"
	"github.com/xuri/excelize/v2"
)

// Inspect reads the document at path through excelize, the way a
// spreadsheet application would see it, and returns a per-sheet view.
func Inspect(path string, opts InspectOptions) (*models.WorkbookData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, newDocumentError(path, "open", err)
	}
	defer f.Close()

	ids := make(map[string]int)
	for id, name := range f.GetSheetMap() {
		ids[name] = id
	}

	sheets := make(map[string]models.SheetData)
	for _, sheetName := range f.GetSheetList() {
		grid, err := parser.ReadRows(f, sheetName)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", sheetName, err)
		}

		rows, err := parser.ExtractCells(f, sheetName, grid, opts.ShouldIncludeLinks())
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", sheetName, err)
		}

		data := models.SheetData{
			ID:     ids[sheetName],
			Header: len(grid) > 0 && IsHeader(grid[0]),
			Rows:   rows,
		}
		if opts.ShouldDetectTables() {
			data.TableCandidates = parser.DetectTables(grid, opts.tableParams())
		}
		sheets[sheetName] = data
	}

	return &models.WorkbookData{
		BookName: filepath.Base(path),
		Sheets:   sheets,
	}, nil
}
