// Package main provides the sheetstore CLI entry point.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetstore-go/internal/config"
	"github.com/ukaji3/sheetstore-go/internal/logging"
	"github.com/ukaji3/sheetstore-go/pkg/sheetstore"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// execute runs the CLI with args and returns the process exit code.
func execute(args []string, in io.Reader, out, errOut io.Writer) int {
	root := newRootCmd(in, out, errOut)
	if args == nil {
		// cobra falls back to os.Args on nil
		args = []string{}
	}
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		// SilenceErrors is set, so cobra leaves printing to us
		fmt.Fprintf(errOut, "Error: %s\n", err)
		return exitCode(err)
	}
	return ExitSuccess
}

// app carries flag values and the resolved configuration for one run.
type app struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	file       string
	sheet      string
	configPath string
	header     bool
	logLevel   string
	logFormat  string

	cfg *config.Config
	log *slog.Logger
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: bufio.NewReader(in), out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "sheetstore",
		Short: "Keep rows of text in a sheet of an .xlsx file",
		Long: `sheetstore stores rows of text in a named sheet of an .xlsx document.

Run without a subcommand for the interactive shell, or use the subcommands
for one-shot operations. Settings come from flags, SHEETSTORE_* environment
variables (a .env file is honored) and $XDG_CONFIG_HOME/sheetstore/config.yml,
in that order of precedence.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runShell,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.file, "file", "f", "", "Document path (default "+config.DefaultFile+")")
	pf.StringVarP(&a.sheet, "sheet", "s", "", "Sheet name (default "+config.DefaultSheet+")")
	pf.StringVar(&a.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/sheetstore/config.yml)")
	pf.BoolVar(&a.header, "header", false, "Make sure the sheet starts with the entry header row")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (default warn)")
	pf.StringVar(&a.logFormat, "log-format", "", "Log format: text, json (default text)")

	root.AddCommand(
		a.addCmd(),
		a.listCmd(),
		a.updateCmd(),
		a.deleteCmd(),
		a.headerCmd(),
		a.sheetsCmd(),
		a.inspectCmd(),
		a.exportCmd(),
	)
	return root
}

// setup resolves configuration (flags over environment over config file)
// and configures logging.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadEnvFile(); err != nil {
		return withExitCode(ExitConfigError, err)
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return withExitCode(ExitConfigError, err)
	}

	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.File = a.file
	}
	if flags.Changed("sheet") {
		cfg.Sheet = a.sheet
	}
	if flags.Changed("header") {
		cfg.Header = a.header
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}

	a.cfg = cfg
	a.log = logging.Setup(cfg.LogLevelOrDefault(), cfg.LogFormat, a.errOut)
	a.log.Debug("configuration resolved", "file", cfg.File, "sheet", cfg.Sheet, "header", cfg.Header)
	return nil
}

func (a *app) newStore(path string) *sheetstore.Store {
	return sheetstore.New(path, sheetstore.Options{Logger: a.log})
}

// openSheet returns a store for the configured document after making sure
// the configured sheet exists, and the header row when one is requested.
func (a *app) openSheet(path, sheet string) (*sheetstore.Store, error) {
	store := a.newStore(path)
	if err := store.EnsureSheet(sheet); err != nil {
		return nil, err
	}
	if a.cfg.Header {
		if _, err := store.EnsureHeader(sheet); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func (a *app) runShell(cmd *cobra.Command, args []string) error {
	path := a.cfg.File
	if path == "" {
		v, err := a.ask("Enter file path (or press Enter for default): ")
		if err != nil {
			return err
		}
		path = v
	}
	if path == "" {
		path = config.DefaultFile
	}

	sheet := a.cfg.Sheet
	if sheet == "" {
		v, err := a.ask("Please, input your Data Name (sheet name): ")
		if err != nil {
			return err
		}
		sheet = v
	}
	if sheet == "" {
		sheet = config.DefaultSheet
	}

	store, err := a.openSheet(path, sheet)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Using sheet %q of %s\n", sheet, path)
	return NewShell(store, sheet, a.in, a.out).Run()
}

// ask prompts for one line of input. End of input reads as an empty answer.
func (a *app) ask(label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := readLine(a.in)
	if err != nil {
		return "", endOfInput(err)
	}
	return strings.TrimSpace(line), nil
}
