package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/farxc/brake_validator/internal/env"
	"github.com/farxc/brake_validator/internal/logger"
	"github.com/farxc/brake_validator/internal/reconcile"
	"github.com/farxc/brake_validator/internal/reconcile/files"
	"github.com/farxc/brake_validator/internal/reconcile/report"
	"github.com/spf13/cobra"
)

type options struct {
	part1     string
	part2     string
	epList    string
	out       string
	output    string
	logLevel  string
	logFormat string
}

// errReported marks a failure whose message was already printed.
var errReported = errors.New("validation failed")

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate Smart Brake parts against the EP List",
		Long: `Reconciles the two Smart Brake workbooks with the EP List.

Every part row whose C flag disagrees with the EP List AA value, or that has
no EP List entry, is written to the discrepancy report.

Examples:
  validate --part1 part1.xlsx --part2 part2.xlsx --ep-list ep.xlsx
  validate --part1 p1.csv --part2 p2.csv --ep-list ep.xlsx --output json`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.part1, "part1", env.GetString("PART1_PATH", ""), "Smart Brake Part 1 workbook")
	flags.StringVar(&opts.part2, "part2", env.GetString("PART2_PATH", ""), "Smart Brake Part 2 workbook")
	flags.StringVar(&opts.epList, "ep-list", env.GetString("EP_LIST_PATH", ""), "EP List workbook")
	flags.StringVar(&opts.out, "out", env.GetString("REPORT_PATH", report.Filename), "Where to write the xlsx report")
	flags.StringVarP(&opts.output, "output", "o", string(FormatTable), "Output format (table, json, yaml, csv)")
	flags.StringVar(&opts.logLevel, "loglevel", env.GetString("LOG_LEVEL", "warn"), "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "logformat", env.GetString("LOG_FORMAT", "text"), "Log format (text, json)")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	const component = "CLI"

	format, err := ParseFormat(opts.output)
	if err != nil {
		return err
	}

	appLogger := logger.New(logger.ParseLevel(opts.logLevel), cmd.ErrOrStderr(), logger.Format(opts.logFormat))

	fail := func(err error) error {
		appLogger.Warn(component, "Validation failed: error=%v", err)
		fmt.Fprintln(cmd.ErrOrStderr(), reconcile.UserMessage(err))
		return errReported
	}

	tables, err := loadInputs(opts)
	if err != nil {
		return fail(err)
	}

	result, err := reconcile.NewReconciler(appLogger).Run(tables.Part1, tables.Part2, tables.EPList)
	if err != nil {
		return fail(err)
	}

	summary := report.Summarize(result.Discrepancies, result.Stats)
	if summary.Total == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), summary.Message)
		return nil
	}

	if opts.out != "" {
		if err := writeReport(opts.out, result.Discrepancies); err != nil {
			return fail(err)
		}
		appLogger.Info(component, "Report written: path=%s rows=%d", opts.out, summary.Total)
	}

	return NewFormatter(format).Format(cmd.OutOrStdout(), summary, result.Discrepancies)
}

// loadInputs reads the three workbooks named on the command line. Files that
// were not named count as missing inputs.
func loadInputs(opts *options) (files.Tables, error) {
	var in files.Inputs
	var err error

	if in.Part1, err = readUpload(opts.part1); err != nil {
		return files.Tables{}, err
	}
	if in.Part2, err = readUpload(opts.part2); err != nil {
		return files.Tables{}, err
	}
	if in.EPList, err = readUpload(opts.epList); err != nil {
		return files.Tables{}, err
	}

	return in.Load()
}

func readUpload(path string) (*files.Upload, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return &files.Upload{Filename: path, Data: data}, nil
}

func writeReport(path string, discrepancies []reconcile.Discrepancy) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	if err := report.WriteXLSX(f, discrepancies); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
