package sheetstore

import (
	"errors"
	"fmt"

	"github.com/ukaji3/sheetstore-go/pkg/sheetstore/models"
)

// ErrSheetNotFound indicates no sheet matches the requested name.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrDocumentUnavailable indicates the backing document could not be
// opened, created or written.
var ErrDocumentUnavailable = errors.New("document unavailable")

// ErrHandleNotFound indicates a cell references a string handle missing
// from the document's string table.
var ErrHandleNotFound = models.ErrHandleNotFound

// ErrHeaderConflict indicates the header row cannot be inserted because a
// data row already holds row 1.
var ErrHeaderConflict = errors.New("row 1 holds data, header not inserted")

// ErrInvalidText indicates a value that is not valid UTF-8 and so cannot
// be stored unchanged.
var ErrInvalidText = errors.New("value is not valid UTF-8 text")

// DocumentError represents a failure to load or persist a document.
type DocumentError struct {
	Path string
	Op   string // "open", "create", "save"
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s document %q: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes both ErrDocumentUnavailable and the underlying cause.
func (e *DocumentError) Unwrap() []error {
	return []error{ErrDocumentUnavailable, e.Err}
}

func newDocumentError(path, op string, err error) *DocumentError {
	return &DocumentError{
		Path: path,
		Op:   op,
		Err:  err,
	}
}

func sheetNotFound(name string) error {
	return fmt.Errorf("%w: %q", ErrSheetNotFound, name)
}
