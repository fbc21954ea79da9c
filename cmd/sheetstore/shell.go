package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ukaji3/sheetstore-go/pkg/sheetstore"
)

const menu = "Choose: (C)reate row, (R)ead rows, (U)pdate row, (D)elete row, (E)ntry record, (H)eader row, (Q)uit"

// Shell is the interactive row editor for one sheet.
type Shell struct {
	store *sheetstore.Store
	sheet string
	in    *bufio.Reader
	out   io.Writer
}

// NewShell returns a shell editing sheet of store.
func NewShell(store *sheetstore.Store, sheet string, in *bufio.Reader, out io.Writer) *Shell {
	return &Shell{store: store, sheet: sheet, in: in, out: out}
}

// Run reads selections until Q or end of input. Store errors are printed
// and the loop continues.
func (sh *Shell) Run() error {
	for {
		fmt.Fprintln(sh.out)
		fmt.Fprintln(sh.out, menu)
		sel, err := sh.prompt("Selection: ")
		if err != nil {
			return endOfInput(err)
		}

		switch strings.ToUpper(strings.TrimSpace(sel)) {
		case "":
			continue
		case "Q":
			return nil
		case "C":
			err = sh.create()
		case "R":
			err = sh.read()
		case "U":
			err = sh.update()
		case "D":
			err = sh.delete()
		case "E":
			err = sh.entry()
		case "H":
			err = sh.header()
		default:
			continue
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(sh.out, "Error: %s\n", err)
		}
	}
}

func (sh *Shell) create() error {
	line, err := sh.prompt("Enter comma-separated values to add: ")
	if err != nil {
		return err
	}
	if _, err := sh.store.Append(sh.sheet, splitValues(line)); err != nil {
		return err
	}
	fmt.Fprintln(sh.out, "Row added.")
	return nil
}

func (sh *Shell) read() error {
	rows, err := sh.store.List(sh.sheet)
	if err != nil {
		return err
	}
	printRows(sh.out, rows)
	return nil
}

func (sh *Shell) update() error {
	ord, ok, err := sh.promptOrdinal("Enter row index to update (1-based): ")
	if err != nil || !ok {
		return err
	}
	line, err := sh.prompt("Enter comma-separated new values: ")
	if err != nil {
		return err
	}
	found, err := sh.store.ReplaceByOrdinal(sh.sheet, ord, splitValues(line))
	if err != nil {
		return err
	}
	if found {
		fmt.Fprintln(sh.out, "Row updated.")
	} else {
		fmt.Fprintln(sh.out, "Row not found.")
	}
	return nil
}

func (sh *Shell) delete() error {
	ord, ok, err := sh.promptOrdinal("Enter row index to delete (1-based): ")
	if err != nil || !ok {
		return err
	}
	found, err := sh.store.DeleteByOrdinal(sh.sheet, ord)
	if err != nil {
		return err
	}
	if found {
		fmt.Fprintln(sh.out, "Row deleted.")
	} else {
		fmt.Fprintln(sh.out, "Row not found.")
	}
	return nil
}

func (sh *Shell) entry() error {
	fmt.Fprintln(sh.out, "Enter record values (press Enter to skip / default empty):")

	var e sheetstore.EntryRecord
	texts := []struct {
		label string
		dst   *string
	}{
		{"Date (yyyy-MM-dd): ", &e.Date},
		{"Shift: ", &e.Shift},
		{"Code Reference: ", &e.CodeReference},
		{"Machine Number: ", &e.MachineNumber},
		{"Area (Backend 1/2/3): ", &e.Area},
		{"Process Auto Adjustment: ", &e.AutoAdjustment},
		{"Process TopTec: ", &e.TopTec},
		{"Process Final Tester: ", &e.FinalTester},
		{"Process Packaging: ", &e.Packaging},
	}
	for _, f := range texts {
		v, err := sh.prompt(f.label)
		if err != nil {
			return err
		}
		*f.dst = strings.TrimSpace(v)
	}

	ints := []struct {
		label string
		dst   *int
	}{
		{"Quantity Input: ", &e.QuantityInput},
		{"Quantity Good: ", &e.QuantityGood},
		{"Quantity Bad: ", &e.QuantityBad},
		{"Reject: ", &e.Reject},
	}
	for _, f := range ints {
		v, err := sh.prompt(f.label)
		if err != nil {
			return err
		}
		// Anything that is not an integer counts as zero.
		n, _ := strconv.Atoi(strings.TrimSpace(v))
		*f.dst = n
	}

	if _, err := sh.store.AppendEntry(sh.sheet, e); err != nil {
		return err
	}
	fmt.Fprintln(sh.out, "Row added.")
	return nil
}

func (sh *Shell) header() error {
	inserted, err := sh.store.EnsureHeader(sh.sheet)
	if err != nil {
		return err
	}
	if inserted {
		fmt.Fprintln(sh.out, "Header row added.")
	} else {
		fmt.Fprintln(sh.out, "Header row already present.")
	}
	return nil
}

// promptOrdinal reads a 1-based row index. ok is false, after printing
// "Invalid index.", when the input is not a positive integer.
func (sh *Shell) promptOrdinal(label string) (sheetstore.Ordinal, bool, error) {
	line, err := sh.prompt(label)
	if err != nil {
		return 0, false, err
	}
	ord, err := parseOrdinal(line)
	if err != nil {
		fmt.Fprintln(sh.out, "Invalid index.")
		return 0, false, nil
	}
	return ord, true, nil
}

func (sh *Shell) prompt(label string) (string, error) {
	fmt.Fprint(sh.out, label)
	return readLine(sh.in)
}

// readLine returns the next line without its line ending. A final line
// without a newline is returned normally; io.EOF is returned only when
// nothing is left.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// splitValues splits a comma-separated line into trimmed values.
func splitValues(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func parseOrdinal(s string) (sheetstore.Ordinal, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	if n < 1 {
		return 0, fmt.Errorf("invalid index %q: must be 1 or greater", s)
	}
	return sheetstore.Ordinal(n), nil
}

func printRows(w io.Writer, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}
	for i, r := range rows {
		fmt.Fprintf(w, "%d: %s\n", i+1, strings.Join(r, ", "))
	}
}
