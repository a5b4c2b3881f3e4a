package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/farxc/brake_validator/internal/reconcile"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	Filename    = "validation_discrepancies.xlsx"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	SheetName   = "Sheet1"

	SuccessMessage = "No discrepancies found!"
	FoundMessage   = "Discrepancies Found"
)

// Columns is the header row of every report format.
var Columns = []string{
	reconcile.ColComponentID,
	reconcile.ColSymbol,
	"Field",
	"File_C",
	"EP_AA",
}

// Rows renders discrepancies as string rows in column order.
func Rows(discrepancies []reconcile.Discrepancy) [][]string {
	rows := make([][]string, len(discrepancies))
	for i, d := range discrepancies {
		rows[i] = []string{d.ComponentID, d.Symbol, string(d.Field), d.FileC, d.EPAA}
	}
	return rows
}

// Frame returns the report as a DataFrame.
func Frame(discrepancies []reconcile.Discrepancy) dataframe.DataFrame {
	rows := Rows(discrepancies)
	cols := make([]series.Series, len(Columns))
	for j, name := range Columns {
		values := make([]string, len(rows))
		for i, row := range rows {
			values[i] = row[j]
		}
		cols[j] = series.New(values, series.String, name)
	}
	return dataframe.New(cols...)
}

// WriteCSV writes the report as comma separated values with a header row.
func WriteCSV(w io.Writer, discrepancies []reconcile.Discrepancy) error {
	df := Frame(discrepancies)
	if err := df.Error(); err != nil {
		return err
	}
	return df.WriteCSV(w)
}

// WriteXLSX writes the report workbook. EP_AA cells already in plain integer
// form are stored as numbers, anything else keeps its text.
func WriteXLSX(w io.Writer, discrepancies []reconcile.Discrepancy) error {
	f, err := build(discrepancies)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Write(w)
}

// XLSXBytes returns the report workbook as bytes, ready to be downloaded.
func XLSXBytes(discrepancies []reconcile.Discrepancy) ([]byte, error) {
	f, err := build(discrepancies)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %v", err)
	}
	return buf.Bytes(), nil
}

func build(discrepancies []reconcile.Discrepancy) (*excelize.File, error) {
	f := excelize.NewFile()

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %v", err)
	}

	for i, d := range discrepancies {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []interface{}{d.ComponentID, d.Symbol, string(d.Field), d.FileC, cellValue(d.EPAA)}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %v", i+2, err)
		}
	}

	return f, nil
}

func cellValue(raw string) interface{} {
	if raw == "" {
		return nil
	}
	v := reconcile.ParseValue(raw)
	if !v.Numeric || strconv.FormatInt(v.Int, 10) != raw {
		return raw
	}
	return v.Int
}

// Summary counts discrepancies per field for display.
type Summary struct {
	Total   int                     `json:"total" yaml:"total"`
	ByField map[reconcile.Field]int `json:"by_field" yaml:"by_field"`
	Stats   reconcile.Stats         `json:"stats" yaml:"stats"`
	Message string                  `json:"message" yaml:"message"`
}

func Summarize(discrepancies []reconcile.Discrepancy, stats reconcile.Stats) Summary {
	s := Summary{
		Total:   len(discrepancies),
		ByField: make(map[reconcile.Field]int),
		Stats:   stats,
		Message: SuccessMessage,
	}
	for _, d := range discrepancies {
		s.ByField[d.Field]++
	}
	if s.Total > 0 {
		s.Message = FoundMessage
	}
	return s
}

// Ratio is the share of source rows flagged, rounded to four places.
func (s Summary) Ratio() decimal.Decimal {
	if s.Stats.SourceRows == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(s.Total)).
		DivRound(decimal.NewFromInt(int64(s.Stats.SourceRows)), 4)
}
