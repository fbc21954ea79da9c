// Package sheetstore keeps rows of text in a named sheet of an .xlsx
// document and exposes them through create, read, update and delete
// operations keyed by list position.
//
// Every operation opens the document, applies its change and saves it
// before returning; no document state is held between calls.
package sheetstore

import (
	"log/slog"

	"github.com/ukaji3/sheetstore-go/pkg/sheetstore/parser"
)

// Options configures a Store.
type Options struct {
	// Logger receives operation logs. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns default store options.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// InspectOptions configures Inspect.
type InspectOptions struct {
	// IncludeLinks specifies whether to include cell hyperlinks.
	// If nil, defaults to false.
	IncludeLinks *bool
	// DetectTables specifies whether to report table candidate ranges.
	// If nil, defaults to true.
	DetectTables *bool
	// Tables tunes table detection. Zero value means parser.DefaultTableParams().
	Tables parser.TableDetectionParams
}

// DefaultInspectOptions returns default inspection options.
func DefaultInspectOptions() InspectOptions {
	return InspectOptions{
		Tables: parser.DefaultTableParams(),
	}
}

// ShouldIncludeLinks returns whether to include cell hyperlinks.
func (o InspectOptions) ShouldIncludeLinks() bool {
	if o.IncludeLinks != nil {
		return *o.IncludeLinks
	}
	return false
}

// ShouldDetectTables returns whether to report table candidates.
func (o InspectOptions) ShouldDetectTables() bool {
	if o.DetectTables != nil {
		return *o.DetectTables
	}
	return true
}

func (o InspectOptions) tableParams() parser.TableDetectionParams {
	if o.Tables == (parser.TableDetectionParams{}) {
		return parser.DefaultTableParams()
	}
	return o.Tables
}
