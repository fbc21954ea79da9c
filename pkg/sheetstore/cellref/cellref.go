// Package cellref converts between zero-based column / 1-based row
// coordinates and A1-style cell references.
package cellref

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ColumnName returns the bijective base-26 letters for a zero-based column
// (0 -> "A", 25 -> "Z", 26 -> "AA").
func ColumnName(column int) string {
	if column < 0 {
		panic(fmt.Sprintf("cellref: negative column %d", column))
	}
	var buf [16]byte
	i := len(buf)
	for n := column + 1; n > 0; {
		digit := (n - 1) % 26
		i--
		buf[i] = byte('A' + digit)
		n = (n - 1 - digit) / 26
	}
	return string(buf[i:])
}

// Reference returns the A1-style reference for a zero-based column and a
// 1-based row. There is no upper bound on the column.
func Reference(column, row int) string {
	if row < 1 {
		panic(fmt.Sprintf("cellref: row %d is not 1-based", row))
	}
	return ColumnName(column) + strconv.Itoa(row)
}

// Parse is the inverse of Reference for references a spreadsheet
// application can produce. It returns the zero-based column and the 1-based row.
func Parse(ref string) (column, row int, err error) {
	col, row, err := excelize.CellNameToCoordinates(ref)
	if err != nil {
		return 0, 0, err
	}
	return col - 1, row, nil
}
