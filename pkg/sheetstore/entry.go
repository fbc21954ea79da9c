package sheetstore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/sheetstore-go/pkg/sheetstore/models"
)

// EntryColumns is the number of columns an EntryRecord occupies.
const EntryColumns = 13

var entryHeaders = [EntryColumns]string{
	"Date", "Shift", "CodeReference", "MachineNumber", "Area",
	"AutoAdjustment", "TopTec", "FinalTester", "Packaging",
	"QuantityInput", "QuantityGood", "QuantityBad", "Reject",
}

// Headers returns the canonical header row, one name per EntryRecord field.
func Headers() []string {
	h := entryHeaders
	return h[:]
}

// EntryRecord is one production log entry.
type EntryRecord struct {
	Date           string // "2006-01-02" preferred
	Shift          string
	CodeReference  string
	MachineNumber  string
	Area           string // e.g. "Backend 1"
	AutoAdjustment string
	TopTec         string
	FinalTester    string
	Packaging      string
	QuantityInput  int
	QuantityGood   int
	QuantityBad    int
	Reject         int
}

// Values renders the record as a row in header order.
func (e EntryRecord) Values() []string {
	return []string{
		e.Date,
		e.Shift,
		e.CodeReference,
		e.MachineNumber,
		e.Area,
		e.AutoAdjustment,
		e.TopTec,
		e.FinalTester,
		e.Packaging,
		strconv.Itoa(e.QuantityInput),
		strconv.Itoa(e.QuantityGood),
		strconv.Itoa(e.QuantityBad),
		strconv.Itoa(e.Reject),
	}
}

// ParseEntry rebuilds a record from a listed row. Missing trailing columns
// read as empty text or zero; extra columns are ignored.
func ParseEntry(values []string) (EntryRecord, error) {
	col := func(i int) string {
		if i < len(values) {
			return values[i]
		}
		return ""
	}

	e := EntryRecord{
		Date:           col(0),
		Shift:          col(1),
		CodeReference:  col(2),
		MachineNumber:  col(3),
		Area:           col(4),
		AutoAdjustment: col(5),
		TopTec:         col(6),
		FinalTester:    col(7),
		Packaging:      col(8),
	}

	quantities := []*int{&e.QuantityInput, &e.QuantityGood, &e.QuantityBad, &e.Reject}
	for i, dst := range quantities {
		text := strings.TrimSpace(col(9 + i))
		if text == "" {
			continue
		}
		n, err := strconv.Atoi(text)
		if err != nil {
			return EntryRecord{}, fmt.Errorf("%s: %q is not an integer", entryHeaders[9+i], text)
		}
		*dst = n
	}
	return e, nil
}

// AppendEntry appends e to sheet as a row of text.
func (s *Store) AppendEntry(sheet string, e EntryRecord) (models.RowIndex, error) {
	return s.Append(sheet, e.Values())
}
