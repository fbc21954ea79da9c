package main

import (
	"errors"

	"github.com/ukaji3/sheetstore-go/pkg/sheetstore"
)

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, document unavailable)
	ExitConfigError = 2 // Configuration error (unreadable config, bad env values)
	ExitDataError   = 3 // Data error (row or sheet not found, invalid index or text, header conflict)
)

// exitError attaches an exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func withExitCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

// exitCode maps a command error to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	switch {
	case errors.Is(err, sheetstore.ErrSheetNotFound),
		errors.Is(err, sheetstore.ErrHeaderConflict),
		errors.Is(err, sheetstore.ErrInvalidText):
		return ExitDataError
	default:
		return ExitError
	}
}
