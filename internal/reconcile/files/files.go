package files

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/farxc/brake_validator/internal/reconcile"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// Encoding of delimited text inputs
type Encoding string

const (
	EncodingUTF8        Encoding = "utf-8"
	EncodingWindows1252 Encoding = "windows-1252"
)

type readConfig struct {
	skipRows  int
	sheet     string
	delimiter rune
	encoding  Encoding
}

// Option tunes how a table is read
type Option func(*readConfig)

// SkipRows drops the first n rows before the header row
func SkipRows(n int) Option {
	return func(c *readConfig) {
		c.skipRows = n
	}
}

// Sheet reads the named worksheet instead of the first one
func Sheet(name string) Option {
	return func(c *readConfig) {
		c.sheet = name
	}
}

func WithDelimiter(d rune) Option {
	return func(c *readConfig) {
		c.delimiter = d
	}
}

func WithEncoding(e Encoding) Option {
	return func(c *readConfig) {
		c.encoding = e
	}
}

func newReadConfig(opts []Option) readConfig {
	cfg := readConfig{delimiter: ',', encoding: EncodingUTF8}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// ReadXLSX reads the first worksheet (or the one named by Sheet) of a workbook.
func ReadXLSX(r io.Reader, opts ...Option) (dataframe.DataFrame, error) {
	cfg := newReadConfig(opts)

	f, err := excelize.OpenReader(r)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open workbook: %v", err)
	}
	defer f.Close()

	sheet := cfg.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return dataframe.DataFrame{}, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to read sheet %s: %v", sheet, err)
	}

	return FromRows(rows, cfg.skipRows)
}

// ReadCSV reads a delimited file, decoding it first when it is not UTF-8.
func ReadCSV(r io.Reader, opts ...Option) (dataframe.DataFrame, error) {
	cfg := newReadConfig(opts)

	if cfg.encoding == EncodingWindows1252 {
		r = charmap.Windows1252.NewDecoder().Reader(r)
	}

	reader := csv.NewReader(r)
	reader.Comma = cfg.delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to parse csv: %v", err)
	}

	return FromRows(rows, cfg.skipRows)
}

// ReadTable picks the reader from the file extension.
func ReadTable(name string, r io.Reader, opts ...Option) (dataframe.DataFrame, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(r, opts...)
	case ".csv", ".txt":
		return ReadCSV(r, opts...)
	default:
		return dataframe.DataFrame{}, fmt.Errorf("unsupported file type %q: expected .xlsx or .csv", filepath.Ext(name))
	}
}

// OpenFile reads a table from disk.
func OpenFile(path string, opts ...Option) (dataframe.DataFrame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open file %s: %v", path, err)
	}
	return ReadTable(path, bytes.NewReader(data), opts...)
}

// FromRows turns raw spreadsheet rows into a string-typed DataFrame. The row
// after the skipped ones is the header; fully blank rows below it are dropped,
// short rows are padded with blanks and cells past the header get "Unnamed: n"
// columns.
func FromRows(rows [][]string, skipRows int) (dataframe.DataFrame, error) {
	if skipRows > len(rows) {
		skipRows = len(rows)
	}
	rows = rows[skipRows:]

	if len(rows) == 0 || isBlankRow(rows[0]) && !hasData(rows[1:]) {
		return dataframe.DataFrame{}, fmt.Errorf("no header row found")
	}

	header := rows[0]
	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if !isBlankRow(row) {
			data = append(data, row)
		}
	}

	width := len(header)
	for _, row := range data {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("header row is empty")
	}

	columns := make([]series.Series, width)
	for j := 0; j < width; j++ {
		name := fmt.Sprintf("Unnamed: %d", j)
		if j < len(header) && strings.TrimSpace(header[j]) != "" {
			name = header[j]
		}

		values := make([]string, len(data))
		for i, row := range data {
			if j < len(row) {
				values[i] = row[j]
			}
		}
		columns[j] = series.New(values, series.String, name)
	}

	df := dataframe.New(columns...)
	return df, df.Error()
}

func hasData(rows [][]string) bool {
	for _, row := range rows {
		if !isBlankRow(row) {
			return true
		}
	}
	return false
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Upload form fields and the matching display names
const (
	FieldPart1  = "part1"
	FieldPart2  = "part2"
	FieldEPList = "ep_list"
)

// Upload is one workbook handed over by a caller.
type Upload struct {
	Filename string
	Data     []byte
}

// Inputs are the three workbooks of a validation run.
type Inputs struct {
	Part1  *Upload
	Part2  *Upload
	EPList *Upload
}

// Tables are the loaded, not yet normalized inputs.
type Tables struct {
	Part1  dataframe.DataFrame
	Part2  dataframe.DataFrame
	EPList dataframe.DataFrame
}

// Missing lists the display names of the inputs not supplied yet.
func (in Inputs) Missing() []string {
	var missing []string
	for _, u := range []struct {
		name   string
		upload *Upload
	}{
		{reconcile.TablePart1, in.Part1},
		{reconcile.TablePart2, in.Part2},
		{reconcile.TableEPList, in.EPList},
	} {
		if u.upload == nil || len(u.upload.Data) == 0 {
			missing = append(missing, u.name)
		}
	}
	return missing
}

// Load parses every input. The EP List carries a two-row header, so its
// first row is skipped.
func (in Inputs) Load(opts ...Option) (Tables, error) {
	if missing := in.Missing(); len(missing) > 0 {
		return Tables{}, &reconcile.MissingInputError{Inputs: missing}
	}

	part1, err := loadUpload(reconcile.TablePart1, in.Part1, opts)
	if err != nil {
		return Tables{}, err
	}
	part2, err := loadUpload(reconcile.TablePart2, in.Part2, opts)
	if err != nil {
		return Tables{}, err
	}
	epList, err := loadUpload(reconcile.TableEPList, in.EPList, append(append([]Option{}, opts...), SkipRows(1)))
	if err != nil {
		return Tables{}, err
	}

	return Tables{Part1: part1, Part2: part2, EPList: epList}, nil
}

func loadUpload(table string, u *Upload, opts []Option) (dataframe.DataFrame, error) {
	name := u.Filename
	if name == "" {
		name = table + ".xlsx"
	}

	df, err := ReadTable(name, bytes.NewReader(u.Data), opts...)
	if err != nil {
		return dataframe.DataFrame{}, &reconcile.MalformedInputError{Table: table, Err: err}
	}
	return df, nil
}
