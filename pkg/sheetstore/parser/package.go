// Package parser reads and writes documents as SpreadsheetML (.xlsx)
// packages and extracts spreadsheet views through excelize.
package parser

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ukaji3/sheetstore-go/pkg/sheetstore/cellref"
	"github.com/ukaji3/sheetstore-go/pkg/sheetstore/models"
)

const (
	defaultWorkbookPart = "xl/workbook.xml"
	sharedStringsPart   = "xl/sharedStrings.xml"
)

var errPartNotFound = errors.New("package part not found")

// ReadDocument opens the package at path and loads its worksheets, rows and
// shared strings. Sheets of other kinds, such as chartsheets, are left out.
func ReadDocument(xlsxPath string) (*models.Document, error) {
	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return readPackage(&r.Reader)
}

func readPackage(r *zip.Reader) (*models.Document, error) {
	wbPath := findWorkbookPart(r)

	var wb xlsxWorkbook
	if err := decodePart(r, wbPath, &wb); err != nil {
		return nil, fmt.Errorf("reading workbook: %w", err)
	}

	// rId -> relationship, with targets resolved to package paths
	rels := make(map[string]xlsxRelationship)
	var wbRels xlsxRelationships
	err := decodePart(r, relsPathFor(wbPath), &wbRels)
	if err != nil && !errors.Is(err, errPartNotFound) {
		return nil, fmt.Errorf("reading workbook relationships: %w", err)
	}
	sstPath := sharedStringsPart
	for _, rel := range wbRels.Relationships {
		rel.Target = resolvePartPath(rel.Target, path.Dir(wbPath))
		rels[rel.ID] = rel
		if rel.Type == relSharedStrings {
			sstPath = rel.Target
		}
	}

	doc := models.NewDocument()

	var sst xlsxSST
	err = decodePart(r, sstPath, &sst)
	if err != nil && !errors.Is(err, errPartNotFound) {
		return nil, fmt.Errorf("reading shared strings: %w", err)
	}
	items := make([]string, len(sst.Items))
	for i, si := range sst.Items {
		items[i] = si.text()
	}
	doc.Strings = models.NewStringTable(items...)

	for _, s := range wb.Sheets {
		rel, ok := rels[s.RID]
		if !ok {
			return nil, fmt.Errorf("sheet %q: no relationship %q", s.Name, s.RID)
		}
		// Chartsheets and dialogsheets hold no cells.
		if rel.Type != relWorksheet {
			continue
		}
		var ws xlsxWorksheet
		if err := decodePart(r, rel.Target, &ws); err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", s.Name, err)
		}
		rows, err := convertRows(ws.SheetData.Rows)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", s.Name, err)
		}
		doc.Sheets = append(doc.Sheets, &models.Sheet{ID: s.SheetID, Name: s.Name, Rows: rows})
	}

	return doc, nil
}

// findWorkbookPart follows the package relationships to the workbook part.
func findWorkbookPart(r *zip.Reader) string {
	var rels xlsxRelationships
	if err := decodePart(r, "_rels/.rels", &rels); err != nil {
		return defaultWorkbookPart
	}
	for _, rel := range rels.Relationships {
		if rel.Type == relOfficeDocument {
			return resolvePartPath(rel.Target, "")
		}
	}
	return defaultWorkbookPart
}

func convertRows(xrows []xlsxRow) ([]*models.Row, error) {
	rows := make([]*models.Row, 0, len(xrows))
	prev := 0
	for _, xr := range xrows {
		idx := xr.R
		if idx == 0 {
			idx = prev + 1
		}
		prev = idx

		row := &models.Row{Index: models.RowIndex(idx), Cells: make([]models.Cell, 0, len(xr.Cells))}
		col := -1
		for _, xc := range xr.Cells {
			col++
			if xc.R != "" {
				c, _, err := cellref.Parse(xc.R)
				if err != nil {
					return nil, fmt.Errorf("row %d: %w", idx, err)
				}
				col = c
			}

			cell := models.Cell{Column: col}
			switch xc.T {
			case "s":
				h, err := strconv.Atoi(strings.TrimSpace(xc.V))
				if err != nil {
					return nil, fmt.Errorf("cell %s: bad shared string index %q", cellref.Reference(col, idx), xc.V)
				}
				cell.Shared = true
				cell.Handle = h
			case "inlineStr":
				cell.Type = xc.T
				if xc.IS != nil {
					cell.Text = xc.IS.text()
				}
			default:
				cell.Type = xc.T
				cell.Text = xc.V
			}
			row.Cells = append(row.Cells, cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteDocument saves doc to path, replacing any existing file only once
// the new package is completely written.
func WriteDocument(xlsxPath string, doc *models.Document) error {
	dir := filepath.Dir(xlsxPath)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*.xlsx")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if err := writePackage(tmpFile, doc); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, xlsxPath); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}

func writePackage(w io.Writer, doc *models.Document) error {
	if len(doc.Sheets) == 0 {
		return errors.New("document has no sheets")
	}

	types := xlsxTypes{
		Defaults: []xlsxDefault{
			{Extension: "rels", ContentType: ctRelationships},
			{Extension: "xml", ContentType: ctXML},
		},
		Overrides: []xlsxOverride{
			{PartName: "/" + defaultWorkbookPart, ContentType: ctWorkbook},
		},
	}
	rootRels := xlsxRelationships{Relationships: []xlsxRelationship{
		{ID: "rId1", Type: relOfficeDocument, Target: defaultWorkbookPart},
	}}
	var wb xlsxWorkbook
	var wbRels xlsxRelationships

	type part struct {
		name string
		v    any
	}
	var sheetParts []part
	shared := 0

	for i, s := range doc.Sheets {
		rID := "rId" + strconv.Itoa(i+1)
		name := "worksheets/sheet" + strconv.Itoa(i+1) + ".xml"

		wb.Sheets = append(wb.Sheets, xlsxSheet{Name: s.Name, SheetID: s.ID, RID: rID})
		wbRels.Relationships = append(wbRels.Relationships, xlsxRelationship{ID: rID, Type: relWorksheet, Target: name})
		types.Overrides = append(types.Overrides, xlsxOverride{PartName: "/xl/" + name, ContentType: ctWorksheet})

		ws, n := buildWorksheet(s)
		shared += n
		sheetParts = append(sheetParts, part{"xl/" + name, ws})
	}

	wbRels.Relationships = append(wbRels.Relationships, xlsxRelationship{
		ID:     "rId" + strconv.Itoa(len(doc.Sheets)+1),
		Type:   relSharedStrings,
		Target: "sharedStrings.xml",
	})
	types.Overrides = append(types.Overrides, xlsxOverride{PartName: "/" + sharedStringsPart, ContentType: ctSharedStrings})

	items := doc.Strings.Items()
	sst := xlsxSST{Count: shared, UniqueCount: len(items), Items: make([]xlsxSI, len(items))}
	for i, s := range items {
		t := newT(s)
		sst.Items[i] = xlsxSI{T: &t}
	}

	parts := []part{
		{"[Content_Types].xml", types},
		{"_rels/.rels", rootRels},
		{defaultWorkbookPart, wb},
		{relsPathFor(defaultWorkbookPart), wbRels},
	}
	parts = append(parts, sheetParts...)
	parts = append(parts, part{sharedStringsPart, sst})

	zw := zip.NewWriter(w)
	for _, p := range parts {
		if err := encodePart(zw, p.name, p.v); err != nil {
			zw.Close()
			return fmt.Errorf("writing %s: %w", p.name, err)
		}
	}
	return zw.Close()
}

// buildWorksheet renders a sheet and returns it with its count of shared cells.
func buildWorksheet(s *models.Sheet) (xlsxWorksheet, int) {
	var ws xlsxWorksheet
	shared := 0
	minCol, maxCol, minRow, maxRow := -1, -1, 0, 0

	for _, r := range s.Rows {
		idx := int(r.Index)
		xr := xlsxRow{R: idx, Cells: make([]xlsxC, 0, len(r.Cells))}
		for _, c := range r.Cells {
			xc := xlsxC{R: cellref.Reference(c.Column, idx)}
			switch {
			case c.Shared:
				xc.T = "s"
				xc.V = strconv.Itoa(c.Handle)
				shared++
			case c.Type == "inlineStr":
				t := newT(c.Text)
				xc.T = c.Type
				xc.IS = &xlsxSI{T: &t}
			default:
				xc.T = c.Type
				xc.V = c.Text
			}
			xr.Cells = append(xr.Cells, xc)

			if minCol < 0 || c.Column < minCol {
				minCol = c.Column
			}
			if c.Column > maxCol {
				maxCol = c.Column
			}
			if minRow == 0 || idx < minRow {
				minRow = idx
			}
			if idx > maxRow {
				maxRow = idx
			}
		}
		ws.SheetData.Rows = append(ws.SheetData.Rows, xr)
	}

	ref := "A1"
	if minCol >= 0 {
		ref = cellref.Reference(minCol, minRow)
		if maxCol != minCol || maxRow != minRow {
			ref += ":" + cellref.Reference(maxCol, maxRow)
		}
	}
	ws.Dimension = &xlsxDimension{Ref: ref}
	return ws, shared
}

// Helper functions

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("%w: %s", errPartNotFound, name)
}

func decodePart(r *zip.Reader, name string, v any) error {
	data, err := readZipFile(r, name)
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func encodePart(zw *zip.Writer, name string, v any) error {
	fw, err := zw.Create(name)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(fw, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(fw).Encode(v)
}

// resolvePartPath turns a relationship target into a package path. Targets
// starting with "/" are relative to the package root, others to baseDir.
func resolvePartPath(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(baseDir, target)
}

// relsPathFor returns the relationships part belonging to a part,
// e.g. xl/workbook.xml -> xl/_rels/workbook.xml.rels.
func relsPathFor(part string) string {
	return path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
}
