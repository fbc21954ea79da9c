package parser

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ukaji3/sheetstore-go/pkg/sheetstore/models"
	"github.com/xuri/excelize/v2"
)

func sampleDocument() *models.Document {
	doc := models.NewDocument()
	data, _ := doc.EnsureSheet("Data1")
	data.Rows = append(data.Rows,
		models.NewRow(1, []string{"Date", "Shift", "Area"}, doc.Strings),
		models.NewRow(2, []string{"2024-01-01", "A", "Backend 1"}, doc.Strings),
		models.NewRow(4, []string{"2024-01-02", " B ", "Backend 1"}, doc.Strings),
	)
	other, _ := doc.EnsureSheet("Other")
	other.Rows = append(other.Rows, models.NewRow(1, []string{"x"}, doc.Strings))
	return doc
}

func rowValues(t *testing.T, doc *models.Document, s *models.Sheet) [][]string {
	t.Helper()
	var out [][]string
	for _, r := range s.Rows {
		v, err := r.Values(doc.Strings)
		if err != nil {
			t.Fatalf("row %d: %v", r.Index, err)
		}
		out = append(out, v)
	}
	return out
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	doc := sampleDocument()

	if err := WriteDocument(path, doc); err != nil {
		t.Fatalf("WriteDocument failed: %v", err)
	}
	got, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument failed: %v", err)
	}

	if len(got.Sheets) != 2 {
		t.Fatalf("Expected 2 sheets, got %d", len(got.Sheets))
	}
	if got.Sheets[0].Name != "Data1" || got.Sheets[0].ID != 1 || got.Sheets[1].ID != 2 {
		t.Errorf("sheet identity lost: %+v %+v", *got.Sheets[0], *got.Sheets[1])
	}
	if !reflect.DeepEqual(got.Strings.Items(), doc.Strings.Items()) {
		t.Errorf("shared strings = %q, expected %q", got.Strings.Items(), doc.Strings.Items())
	}

	var indexes []models.RowIndex
	for _, r := range got.Sheets[0].Rows {
		indexes = append(indexes, r.Index)
	}
	if !reflect.DeepEqual(indexes, []models.RowIndex{1, 2, 4}) {
		t.Errorf("row indexes = %v, expected [1 2 4]", indexes)
	}
	if !reflect.DeepEqual(rowValues(t, got, got.Sheets[0]), rowValues(t, doc, doc.Sheets[0])) {
		t.Errorf("rows changed across round trip: %q", rowValues(t, got, got.Sheets[0]))
	}
}

func TestWriteReadRoundTripControlCharacters(t *testing.T) {
	values := []string{
		"a\x01b", "c\x02d", "\x00\x0b\x1f", "tab\tand\r\nbreak",
		"_x0041_", "under_score", "Käse", "\uffff", " padded ",
	}
	path := filepath.Join(t.TempDir(), "book.xlsx")
	doc := models.NewDocument()
	s, _ := doc.EnsureSheet("Data1")
	row := models.NewRow(1, values, doc.Strings)
	row.Cells = append(row.Cells, models.Cell{Column: len(values), Type: "inlineStr", Text: "in\x03line"})
	s.Rows = append(s.Rows, row)

	if err := WriteDocument(path, doc); err != nil {
		t.Fatalf("WriteDocument failed: %v", err)
	}
	got, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument failed: %v", err)
	}

	want := [][]string{append(append([]string{}, values...), "in\x03line")}
	if rows := rowValues(t, got, got.Sheets[0]); !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %q, expected %q", rows, want)
	}
	if !reflect.DeepEqual(got.Strings.Items(), doc.Strings.Items()) {
		t.Errorf("shared strings = %q, expected %q", got.Strings.Items(), doc.Strings.Items())
	}
}

func TestWrittenPackageOpensInExcelize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	doc := models.NewDocument()
	s, _ := doc.EnsureSheet("Data1")
	s.Rows = append(s.Rows,
		models.NewRow(1, []string{"Date", "Shift"}, doc.Strings),
		models.NewRow(2, []string{"2024-01-01", "A"}, doc.Strings),
		models.NewRow(3, []string{"2024-01-01", "  spaced  "}, doc.Strings),
	)
	if err := WriteDocument(path, doc); err != nil {
		t.Fatalf("WriteDocument failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("excelize could not open written package: %v", err)
	}
	defer f.Close()

	if list := f.GetSheetList(); !reflect.DeepEqual(list, []string{"Data1"}) {
		t.Errorf("GetSheetList() = %q", list)
	}
	rows, err := f.GetRows("Data1")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	want := [][]string{{"Date", "Shift"}, {"2024-01-01", "A"}, {"2024-01-01", "  spaced  "}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("GetRows() = %q, expected %q", rows, want)
	}
}

func TestReadExcelizeWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "Header1")
	f.SetCellValue(sheetName, "C1", "Header3")
	f.SetCellValue(sheetName, "A2", 100)
	f.SetCellValue(sheetName, "B2", 200.5)
	f.SetCellValue(sheetName, "A5", "Header1")
	if _, err := f.NewSheet("Second"); err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "foreign.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	doc, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument failed: %v", err)
	}
	if len(doc.Sheets) != 2 || doc.Sheet("second") == nil {
		t.Fatalf("sheets = %d, expected Sheet1 and Second", len(doc.Sheets))
	}

	s := doc.Sheet("Sheet1")
	got := rowValues(t, doc, s)
	want := [][]string{
		{"Header1", "", "Header3"},
		{"100", "200.5"},
		{"Header1"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %q, expected %q", got, want)
	}
	if s.Rows[2].Index != 5 {
		t.Errorf("third row index = %d, expected 5", s.Rows[2].Index)
	}
	if !s.Rows[0].Cells[0].Shared {
		t.Error("string cells written by excelize should be shared")
	}
	if s.Rows[1].Cells[0].Shared {
		t.Error("numeric cells should not be shared")
	}
}

func TestNumericCellsSurviveRewrite(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", 42)
	f.SetCellValue("Sheet1", "B1", "text")

	path := filepath.Join(t.TempDir(), "numbers.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	doc, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument failed: %v", err)
	}
	if err := WriteDocument(path, doc); err != nil {
		t.Fatalf("WriteDocument failed: %v", err)
	}

	f2, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("excelize could not reopen: %v", err)
	}
	defer f2.Close()

	typ, err := f2.GetCellType("Sheet1", "A1")
	if err != nil {
		t.Fatalf("GetCellType failed: %v", err)
	}
	if typ == excelize.CellTypeSharedString || typ == excelize.CellTypeInlineString {
		t.Errorf("numeric cell came back as string type %v", typ)
	}
	if v, _ := f2.GetCellValue("Sheet1", "A1"); v != "42" {
		t.Errorf("A1 = %q, expected 42", v)
	}
}

// readTestPackage builds an in-memory package from part contents and reads it.
func readTestPackage(t *testing.T, files map[string]string) (*models.Document, error) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	return readPackage(r)
}

func TestReadInlineAndRichText(t *testing.T) {
	files := map[string]string{
		"xl/workbook.xml": `<?xml version="1.0"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<sheets><sheet name="Data1" sheetId="3" r:id="rId7"/></sheets></workbook>`,
		"xl/_rels/workbook.xml.rels": `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId7" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="/xl/worksheets/data.xml"/>
<Relationship Id="rId8" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings" Target="strings.xml"/>
</Relationships>`,
		"xl/strings.xml": `<?xml version="1.0"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="2" uniqueCount="2">
<si><t>plain</t></si><si><r><t>ri</t></r><r><t>ch</t></r></si></sst>`,
		"xl/worksheets/data.xml": `<?xml version="1.0"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>
<row><c t="s"><v>1</v></c><c t="inlineStr"><is><t>inline</t></is></c><c t="s"><v>0</v></c></row>
<row><c r="B2" t="str"><v>formula result</v></c></row>
</sheetData></worksheet>`,
	}
	doc, err := readTestPackage(t, files)
	if err != nil {
		t.Fatalf("readPackage failed: %v", err)
	}

	s := doc.Sheet("data1")
	if s == nil || s.ID != 3 {
		t.Fatalf("expected sheet Data1 with id 3, got %+v", s)
	}
	got := rowValues(t, doc, s)
	want := [][]string{{"rich", "inline", "plain"}, {"", "formula result"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %q, expected %q", got, want)
	}
	if s.Rows[0].Index != 1 || s.Rows[1].Index != 2 {
		t.Errorf("implicit row numbers = %d, %d", s.Rows[0].Index, s.Rows[1].Index)
	}
}

func TestReadDocumentErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := ReadDocument(filepath.Join(dir, "missing.xlsx")); !os.IsNotExist(err) {
		t.Errorf("missing file error = %v, expected not-exist", err)
	}

	garbage := filepath.Join(dir, "garbage.xlsx")
	os.WriteFile(garbage, []byte("not a zip"), 0644)
	if _, err := ReadDocument(garbage); err == nil {
		t.Error("expected error for a file that is not a package")
	}
}

func TestWriteDocumentKeepsOriginalOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := WriteDocument(path, sampleDocument()); err != nil {
		t.Fatalf("WriteDocument failed: %v", err)
	}
	before, _ := os.ReadFile(path)

	if err := WriteDocument(path, models.NewDocument()); err == nil {
		t.Fatal("expected error writing a document without sheets")
	}

	after, _ := os.ReadFile(path)
	if !bytes.Equal(before, after) {
		t.Error("failed write modified the existing package")
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("temp file %s left behind", e.Name())
		}
	}
}

func TestWriteDocumentDimension(t *testing.T) {
	tests := []struct {
		rows     []*models.Row
		expected string
	}{
		{nil, "A1"},
		{[]*models.Row{{Index: 3, Cells: []models.Cell{{Column: 1, Shared: true}}}}, "B3"},
		{[]*models.Row{
			{Index: 1, Cells: []models.Cell{{Column: 0}, {Column: 12}}},
			{Index: 9, Cells: []models.Cell{{Column: 2}}},
		}, "A1:M9"},
	}

	for _, tt := range tests {
		ws, _ := buildWorksheet(&models.Sheet{Rows: tt.rows})
		if ws.Dimension.Ref != tt.expected {
			t.Errorf("dimension = %q, expected %q", ws.Dimension.Ref, tt.expected)
		}
	}
}

func TestResolvePartPath(t *testing.T) {
	tests := []struct {
		target   string
		baseDir  string
		expected string
	}{
		{"worksheets/sheet1.xml", "xl", "xl/worksheets/sheet1.xml"},
		{"/xl/worksheets/sheet1.xml", "xl", "xl/worksheets/sheet1.xml"},
		{"../customXml/item1.xml", "xl", "customXml/item1.xml"},
		{"xl/workbook.xml", "", "xl/workbook.xml"},
	}

	for _, tt := range tests {
		result := resolvePartPath(tt.target, tt.baseDir)
		if result != tt.expected {
			t.Errorf("resolvePartPath(%q, %q) = %q, expected %q",
				tt.target, tt.baseDir, result, tt.expected)
		}
	}
}

func TestRelsPathFor(t *testing.T) {
	if got := relsPathFor("xl/workbook.xml"); got != "xl/_rels/workbook.xml.rels" {
		t.Errorf("relsPathFor(xl/workbook.xml) = %q", got)
	}
	if got := relsPathFor("xl/worksheets/sheet2.xml"); got != "xl/worksheets/_rels/sheet2.xml.rels" {
		t.Errorf("relsPathFor(xl/worksheets/sheet2.xml) = %q", got)
	}
}

func TestReadEscapedText(t *testing.T) {
	files := map[string]string{
		"xl/workbook.xml": `<?xml version="1.0"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<sheets><sheet name="Data1" sheetId="1" r:id="rId1"/></sheets></workbook>`,
		"xl/_rels/workbook.xml.rels": `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/>
</Relationships>`,
		"xl/sharedStrings.xml": `<?xml version="1.0"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<si><t>a_x0001_b</t></si><si><t>_x005F_x0041_</t></si><si><r><t>x_x000D_</t></r><r><t>_x000a_y</t></r></si></sst>`,
		"xl/worksheets/sheet1.xml": `<?xml version="1.0"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>
<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c><c r="C1" t="s"><v>2</v></c><c r="D1" t="inlineStr"><is><t>i_x0007_</t></is></c></row>
</sheetData></worksheet>`,
	}
	doc, err := readTestPackage(t, files)
	if err != nil {
		t.Fatalf("readPackage failed: %v", err)
	}

	want := [][]string{{"a\x01b", "_x0041_", "x\r\ny", "i\x07"}}
	if got := rowValues(t, doc, doc.Sheets[0]); !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %q, expected %q", got, want)
	}
}

func TestReadSkipsChartsheets(t *testing.T) {
	files := map[string]string{
		"xl/workbook.xml": `<?xml version="1.0"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<sheets><sheet name="Chart1" sheetId="2" r:id="rId2"/><sheet name="Data1" sheetId="1" r:id="rId1"/></sheets></workbook>`,
		"xl/_rels/workbook.xml.rels": `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/chartsheet" Target="chartsheets/sheet1.xml"/>
</Relationships>`,
		"xl/chartsheets/sheet1.xml": `<?xml version="1.0"?>
<chartsheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetViews/></chartsheet>`,
		"xl/worksheets/sheet1.xml": `<?xml version="1.0"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>
<row r="1"><c r="A1" t="inlineStr"><is><t>kept</t></is></c></row>
</sheetData></worksheet>`,
	}
	doc, err := readTestPackage(t, files)
	if err != nil {
		t.Fatalf("readPackage failed: %v", err)
	}

	if len(doc.Sheets) != 1 || doc.Sheets[0].Name != "Data1" {
		t.Fatalf("sheets = %+v, expected only Data1", doc.Sheets)
	}
	if doc.Sheet("Chart1") != nil {
		t.Error("chartsheet should not be loaded as a sheet")
	}
	if got := rowValues(t, doc, doc.Sheets[0]); !reflect.DeepEqual(got, [][]string{{"kept"}}) {
		t.Errorf("rows = %q", got)
	}
}
