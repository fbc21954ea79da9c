package sheetstore

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func TestInspect(t *testing.T) {
	s := newTestStore(t, "Data1")
	mustEnsureSheet(t, s, "Empty")
	if _, err := s.EnsureHeader("Data1"); err != nil {
		t.Fatalf("EnsureHeader failed: %v", err)
	}
	if _, err := s.AppendEntry("Data1", EntryRecord{Date: "2024-01-01", Shift: "A", QuantityInput: 10, QuantityGood: 9, QuantityBad: 1}); err != nil {
		t.Fatalf("AppendEntry failed: %v", err)
	}

	wb, err := Inspect(s.Path(), DefaultInspectOptions())
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}

	if wb.BookName != filepath.Base(s.Path()) {
		t.Errorf("BookName = %q", wb.BookName)
	}
	if len(wb.Sheets) != 2 {
		t.Fatalf("Expected 2 sheets, got %d", len(wb.Sheets))
	}

	data := wb.Sheets["Data1"]
	if data.ID != 1 || !data.Header {
		t.Errorf("Data1 id/header = %d/%v, expected 1/true", data.ID, data.Header)
	}
	if len(data.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(data.Rows))
	}
	if data.Rows[1].R != 2 || data.Rows[1].C["1"] != "2024-01-01" || data.Rows[1].C["10"] != "10" {
		t.Errorf("data row = %+v", data.Rows[1])
	}
	if _, ok := data.Rows[1].C["6"]; ok {
		t.Error("empty cells should be omitted")
	}
	if !reflect.DeepEqual(data.TableCandidates, []string{"A1:M2"}) {
		t.Errorf("TableCandidates = %q, expected [A1:M2]", data.TableCandidates)
	}

	empty := wb.Sheets["Empty"]
	if empty.ID != 2 || empty.Header || len(empty.Rows) != 0 || empty.TableCandidates != nil {
		t.Errorf("Empty sheet = %+v", empty)
	}
}

func TestInspectWithoutTables(t *testing.T) {
	s := newTestStore(t, "Data1")
	appendN(t, s, "Data1", 3)

	off := false
	wb, err := Inspect(s.Path(), InspectOptions{DetectTables: &off})
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if wb.Sheets["Data1"].TableCandidates != nil {
		t.Errorf("TableCandidates = %q, expected none", wb.Sheets["Data1"].TableCandidates)
	}
}

func TestInspectMissingFile(t *testing.T) {
	_, err := Inspect(filepath.Join(t.TempDir(), "none.xlsx"), DefaultInspectOptions())
	if !errors.Is(err, ErrDocumentUnavailable) {
		t.Errorf("Inspect error = %v, expected ErrDocumentUnavailable", err)
	}
}

func TestInspectOptionsDefaults(t *testing.T) {
	var o InspectOptions
	if o.ShouldIncludeLinks() {
		t.Error("links should be off by default")
	}
	if !o.ShouldDetectTables() {
		t.Error("table detection should be on by default")
	}
	if o.tableParams() != DefaultInspectOptions().Tables {
		t.Error("zero Tables should fall back to defaults")
	}
}
