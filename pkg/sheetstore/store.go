package sheetstore

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ukaji3/sheetstore-go/pkg/sheetstore/models"
	"github.com/ukaji3/sheetstore-go/pkg/sheetstore/parser"
)

// maxSheetNameLen is the longest sheet name spreadsheet applications accept.
const maxSheetNameLen = 31

// Store is a row store over one .xlsx file. It holds only the file path;
// each operation loads, changes and saves the document itself.
type Store struct {
	path string
	log  *slog.Logger
}

// SheetInfo describes one sheet of a document.
type SheetInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Rows int    `json:"rows"`
}

// New returns a Store for the document at path. The file is not touched
// until the first operation.
func New(path string, opts Options) *Store {
	return &Store{
		path: path,
		log:  opts.logger().With("document", path),
	}
}

// Path returns the document path.
func (s *Store) Path() string {
	return s.path
}

// EnsureSheet makes sure the document has a sheet called name, matched
// case-insensitively. A missing document is created holding just that sheet.
func (s *Store) EnsureSheet(name string) error {
	if err := validateSheetName(name); err != nil {
		return err
	}

	_, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		doc := models.NewDocument()
		doc.EnsureSheet(name)
		if err := parser.WriteDocument(s.path, doc); err != nil {
			return newDocumentError(s.path, "create", err)
		}
		s.log.Info("created document", "sheet", name)
		return nil
	}
	if err != nil {
		return newDocumentError(s.path, "open", err)
	}

	return s.update("ensure sheet", func(doc *models.Document) (bool, error) {
		sh, created := doc.EnsureSheet(name)
		if created {
			s.log.Info("created sheet", "sheet", sh.Name, "sheet_id", sh.ID)
		}
		return created, nil
	})
}

// Sheets lists the document's sheets in workbook order.
func (s *Store) Sheets() ([]SheetInfo, error) {
	var out []SheetInfo
	err := s.view(func(doc *models.Document) error {
		for _, sh := range doc.Sheets {
			out = append(out, SheetInfo{ID: sh.ID, Name: sh.Name, Rows: len(sh.Rows)})
		}
		return nil
	})
	return out, err
}

func (s *Store) load() (*models.Document, error) {
	doc, err := parser.ReadDocument(s.path)
	if err != nil {
		return nil, newDocumentError(s.path, "open", err)
	}
	return doc, nil
}

// view runs fn against a freshly loaded document without saving it.
func (s *Store) view(fn func(doc *models.Document) error) error {
	doc, err := s.load()
	if err != nil {
		return err
	}
	return fn(doc)
}

// update runs fn against a freshly loaded document and saves the document
// when fn reports a change. Nothing is saved when fn fails.
func (s *Store) update(op string, fn func(doc *models.Document) (bool, error)) error {
	doc, err := s.load()
	if err != nil {
		return err
	}

	changed, err := fn(doc)
	if err != nil || !changed {
		return err
	}

	if err := parser.WriteDocument(s.path, doc); err != nil {
		return newDocumentError(s.path, "save", err)
	}
	s.log.Debug("document saved", "op", op)
	return nil
}

func findSheet(doc *models.Document, name string) (*models.Sheet, error) {
	sh := doc.Sheet(name)
	if sh == nil {
		return nil, sheetNotFound(name)
	}
	return sh, nil
}

func validateSheetName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.New("sheet name is empty")
	case len([]rune(name)) > maxSheetNameLen:
		return fmt.Errorf("sheet name %q is longer than %d characters", name, maxSheetNameLen)
	case strings.ContainsAny(name, `[]:*?/\`):
		return fmt.Errorf("sheet name %q contains one of []:*?/\\", name)
	case !utf8.ValidString(name) || strings.IndexFunc(name, unicode.IsControl) >= 0:
		return fmt.Errorf("%w (sheet name %q)", ErrInvalidText, name)
	}
	return nil
}
