package parser

import (
	"strconv"

	"github.com/ukaji3/sheetstore-go/pkg/sheetstore/models"
	"github.com/xuri/excelize/v2"
)

// ReadRows returns the raw text grid of a sheet as excelize sees it.
// Values are unformatted; every cell is text.
func ReadRows(f *excelize.File, sheetName string) ([][]string, error) {
	return f.GetRows(sheetName, excelize.Options{RawCellValue: true})
}

// ExtractCells converts a text grid read from sheetName into CellRows,
// skipping rows that hold no text.
func ExtractCells(f *excelize.File, sheetName string, rows [][]string, includeLinks bool) ([]models.CellRow, error) {
	var result []models.CellRow
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1 // 1-based row index
		cellMap := make(map[string]string)
		linkMap := make(map[string]string)

		for colIdx, cellValue := range row {
			if cellValue == "" {
				continue
			}
			colStr := strconv.Itoa(colIdx + 1) // 1-based column index as string
			cellMap[colStr] = cellValue

			if includeLinks {
				cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
				if err != nil {
					return nil, err
				}
				hasLink, target, err := f.GetCellHyperLink(sheetName, cellName)
				if err == nil && hasLink && target != "" {
					linkMap[colStr] = target
				}
			}
		}

		if len(cellMap) == 0 {
			continue
		}
		cellRow := models.CellRow{R: rowNum, C: cellMap}
		if len(linkMap) > 0 {
			cellRow.Links = linkMap
		}
		result = append(result, cellRow)
	}

	return result, nil
}
