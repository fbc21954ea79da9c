package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetstore-go/pkg/sheetstore"
	"github.com/ukaji3/sheetstore-go/pkg/sheetstore/output"
)

func (a *app) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [values...]",
		Short: "Append a row to the sheet",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openSheet(a.cfg.FileOrDefault(), a.cfg.SheetOrDefault())
			if err != nil {
				return err
			}
			idx, err := store.Append(a.cfg.SheetOrDefault(), args)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Row added (row %d).\n", idx)
			return nil
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the rows of the sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := a.newStore(a.cfg.FileOrDefault()).List(a.cfg.SheetOrDefault())
			if err != nil {
				return err
			}
			printRows(a.out, rows)
			return nil
		},
	}
}

func (a *app) updateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <index> [values...]",
		Short: "Replace the values of the row at a 1-based list position",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ord, err := parseOrdinal(args[0])
			if err != nil {
				return withExitCode(ExitDataError, err)
			}
			found, err := a.newStore(a.cfg.FileOrDefault()).ReplaceByOrdinal(a.cfg.SheetOrDefault(), ord, args[1:])
			if err != nil {
				return err
			}
			if !found {
				return withExitCode(ExitDataError, fmt.Errorf("row %d not found", ord))
			}
			fmt.Fprintln(a.out, "Row updated.")
			return nil
		},
	}
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <index>",
		Short: "Delete the row at a 1-based list position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ord, err := parseOrdinal(args[0])
			if err != nil {
				return withExitCode(ExitDataError, err)
			}
			found, err := a.newStore(a.cfg.FileOrDefault()).DeleteByOrdinal(a.cfg.SheetOrDefault(), ord)
			if err != nil {
				return err
			}
			if !found {
				return withExitCode(ExitDataError, fmt.Errorf("row %d not found", ord))
			}
			fmt.Fprintln(a.out, "Row deleted.")
			return nil
		},
	}
}

func (a *app) headerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "header",
		Short: "Make sure the sheet starts with the entry header row",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sheet := a.cfg.SheetOrDefault()
			store := a.newStore(a.cfg.FileOrDefault())
			if err := store.EnsureSheet(sheet); err != nil {
				return err
			}
			inserted, err := store.EnsureHeader(sheet)
			if err != nil {
				return err
			}
			if inserted {
				fmt.Fprintln(a.out, "Header row added.")
			} else {
				fmt.Fprintln(a.out, "Header row already present.")
			}
			return nil
		},
	}
}

func (a *app) sheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets",
		Short: "List the sheets of the document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := a.newStore(a.cfg.FileOrDefault()).Sheets()
			if err != nil {
				return err
			}
			for _, s := range sheets {
				fmt.Fprintf(a.out, "%d\t%s\t%d rows\n", s.ID, s.Name, s.Rows)
			}
			return nil
		},
	}
}

func (a *app) inspectCmd() *cobra.Command {
	var (
		outputPath string
		pretty     bool
		links      bool
		noTables   bool
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the document as a spreadsheet application sees it, as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.FileOrDefault()
			if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file not found: %s", path)
			}

			detect := !noTables
			wb, err := sheetstore.Inspect(path, sheetstore.InspectOptions{
				IncludeLinks: &links,
				DetectTables: &detect,
			})
			if err != nil {
				return err
			}

			data, err := output.ToJSON(wb, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			return a.writeOutput(outputPath, data)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().BoolVar(&links, "links", false, "Include hyperlinks")
	cmd.Flags().BoolVar(&noTables, "no-tables", false, "Skip table candidate detection")
	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	var (
		outputPath string
		format     string
		table      string
		pretty     bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the rows of the sheet as JSON or into a SQLite table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, sheet := a.cfg.FileOrDefault(), a.cfg.SheetOrDefault()
			if format != "json" && format != "sqlite" {
				return fmt.Errorf("invalid format: %s (must be json or sqlite)", format)
			}
			if format == "sqlite" && outputPath == "" {
				return errors.New("--output is required for sqlite export")
			}

			rows, err := a.newStore(path).List(sheet)
			if err != nil {
				return err
			}
			e := output.NewSheetExport(filepath.Base(path), sheet, rows, len(rows) > 0 && sheetstore.IsHeader(rows[0]))

			if format == "sqlite" {
				if table == "" {
					table = sheet
				}
				n, err := output.WriteSQLite(outputPath, table, e)
				if err != nil {
					return fmt.Errorf("sqlite export failed: %w", err)
				}
				fmt.Fprintf(a.out, "Exported %d rows to %s (table %q)\n", n, outputPath, table)
				return nil
			}

			data, err := output.ToJSON(e, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			return a.writeOutput(outputPath, data)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout, required for sqlite)")
	cmd.Flags().StringVar(&format, "format", "json", "Export format: json, sqlite")
	cmd.Flags().StringVar(&table, "table", "", "SQLite table name (default: sheet name)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

// writeOutput writes data to path, or to stdout when path is empty.
func (a *app) writeOutput(path string, data []byte) error {
	if path == "" {
		fmt.Fprintln(a.out, string(data))
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
