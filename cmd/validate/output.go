package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/farxc/brake_validator/internal/reconcile"
	"github.com/farxc/brake_validator/internal/reconcile/report"
	"github.com/goccy/go-yaml"
	"github.com/olekukonko/tablewriter"
)

// Format selects how the result is printed.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatCSV   Format = "csv"
)

// ParseFormat converts string to Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(s)))
	switch format {
	case FormatTable, FormatJSON, FormatYAML, FormatCSV:
		return format, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of: table, json, yaml, csv", s)
	}
}

// Formatter prints a finished validation.
type Formatter interface {
	Format(w io.Writer, summary report.Summary, discrepancies []reconcile.Discrepancy) error
}

func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatCSV:
		return &CSVFormatter{}
	default:
		return &TableFormatter{}
	}
}

// Output is the document printed by the json and yaml formats.
type Output struct {
	Summary       report.Summary          `json:"summary" yaml:"summary"`
	Discrepancies []reconcile.Discrepancy `json:"discrepancies" yaml:"discrepancies"`
}

type JSONFormatter struct {
	Indent string
}

func (f *JSONFormatter) Format(w io.Writer, summary report.Summary, discrepancies []reconcile.Discrepancy) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(Output{Summary: summary, Discrepancies: discrepancies})
}

type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(w io.Writer, summary report.Summary, discrepancies []reconcile.Discrepancy) error {
	data, err := yaml.MarshalWithOptions(Output{Summary: summary, Discrepancies: discrepancies},
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

type CSVFormatter struct{}

func (f *CSVFormatter) Format(w io.Writer, _ report.Summary, discrepancies []reconcile.Discrepancy) error {
	return report.WriteCSV(w, discrepancies)
}

// TableFormatter prints the discrepancies followed by the per-field counts.
type TableFormatter struct{}

func (f *TableFormatter) Format(w io.Writer, summary report.Summary, discrepancies []reconcile.Discrepancy) error {
	fmt.Fprintln(w, summary.Message)

	if err := renderTable(w, report.Columns, report.Rows(discrepancies)); err != nil {
		return err
	}

	fields := make([]string, 0, len(summary.ByField))
	for field := range summary.ByField {
		fields = append(fields, string(field))
	}
	sort.Strings(fields)

	counts := make([][]string, 0, len(fields)+1)
	for _, field := range fields {
		counts = append(counts, []string{field, fmt.Sprint(summary.ByField[reconcile.Field(field)])})
	}
	counts = append(counts, []string{"Flagged share", summary.Ratio().String()})

	return renderTable(w, []string{"Field", "Count"}, counts)
}

func renderTable(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewTable(w)

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	table.Header(header...)

	for _, row := range rows {
		cells := make([]any, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		if err := table.Append(cells...); err != nil {
			return err
		}
	}

	return table.Render()
}
