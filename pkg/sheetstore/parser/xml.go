package parser

import (
	"encoding/xml"
	"strings"
)

// Namespaces, relationship types and content types of a SpreadsheetML package.
const (
	nsMain         = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	nsRelationship = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	relOfficeDocument = nsRelationship + "/officeDocument"
	relWorksheet      = nsRelationship + "/worksheet"
	relSharedStrings  = nsRelationship + "/sharedStrings"

	ctRelationships = "application/vnd.openxmlformats-package.relationships+xml"
	ctXML           = "application/xml"
	ctWorkbook      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"
	ctWorksheet     = "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"
	ctSharedStrings = "application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"
)

type xlsxTypes struct {
	XMLName   xml.Name       `xml:"http://schemas.openxmlformats.org/package/2006/content-types Types"`
	Defaults  []xlsxDefault  `xml:"Default"`
	Overrides []xlsxOverride `xml:"Override"`
}

type xlsxDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type xlsxOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type xlsxRelationships struct {
	XMLName       xml.Name           `xml:"http://schemas.openxmlformats.org/package/2006/relationships Relationships"`
	Relationships []xlsxRelationship `xml:"Relationship"`
}

type xlsxRelationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

type xlsxWorkbook struct {
	XMLName xml.Name    `xml:"http://schemas.openxmlformats.org/spreadsheetml/2006/main workbook"`
	Sheets  []xlsxSheet `xml:"sheets>sheet"`
}

type xlsxSheet struct {
	Name    string `xml:"name,attr"`
	SheetID int    `xml:"sheetId,attr"`
	RID     string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

type xlsxSST struct {
	XMLName     xml.Name `xml:"http://schemas.openxmlformats.org/spreadsheetml/2006/main sst"`
	Count       int      `xml:"count,attr"`
	UniqueCount int      `xml:"uniqueCount,attr"`
	Items       []xlsxSI `xml:"si"`
}

// xlsxSI is a shared string item: plain text, or rich text runs.
type xlsxSI struct {
	T *xlsxT    `xml:"t"`
	R []xlsxRun `xml:"r"`
}

type xlsxRun struct {
	T xlsxT `xml:"t"`
}

type xlsxT struct {
	Space string `xml:"http://www.w3.org/XML/1998/namespace space,attr,omitempty"`
	Value string `xml:",chardata"`
}

// newT wraps text for writing, escaping characters XML cannot carry.
func newT(s string) xlsxT {
	t := xlsxT{Value: escapeText(s)}
	if strings.TrimSpace(s) != s {
		t.Space = "preserve"
	}
	return t
}

func (si xlsxSI) text() string {
	var b strings.Builder
	if si.T != nil {
		b.WriteString(unescapeText(si.T.Value))
	}
	for _, r := range si.R {
		b.WriteString(unescapeText(r.T.Value))
	}
	return b.String()
}

type xlsxWorksheet struct {
	XMLName   xml.Name       `xml:"http://schemas.openxmlformats.org/spreadsheetml/2006/main worksheet"`
	Dimension *xlsxDimension `xml:"dimension"`
	SheetData xlsxSheetData  `xml:"sheetData"`
}

type xlsxDimension struct {
	Ref string `xml:"ref,attr"`
}

type xlsxSheetData struct {
	Rows []xlsxRow `xml:"row"`
}

type xlsxRow struct {
	R     int     `xml:"r,attr,omitempty"`
	Cells []xlsxC `xml:"c"`
}

type xlsxC struct {
	R  string  `xml:"r,attr,omitempty"`
	T  string  `xml:"t,attr,omitempty"`
	V  string  `xml:"v,omitempty"`
	IS *xlsxSI `xml:"is"`
}
