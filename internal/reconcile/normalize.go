package reconcile

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Table names used in error messages, matching the upload labels.
const (
	TablePart1  = "Part 1"
	TablePart2  = "Part 2"
	TableEPList = "EP List"
)

// NormalizeColumns trims every header, applies renames and re-materializes each
// column as a string series. The input DataFrame is left untouched.
func NormalizeColumns(df dataframe.DataFrame, table string, renames map[string]string) (dataframe.DataFrame, error) {
	if err := df.Error(); err != nil {
		return dataframe.DataFrame{}, &MalformedInputError{Table: table, Err: err}
	}

	names := df.Names()
	if len(names) == 0 {
		return dataframe.DataFrame{}, &MalformedInputError{Table: table, Message: "table has no columns"}
	}

	seen := make(map[string]string, len(names))
	columns := make([]series.Series, 0, len(names))
	for _, name := range names {
		normalized := strings.TrimSpace(name)
		if renamed, ok := renames[normalized]; ok {
			normalized = renamed
		}
		if prev, dup := seen[normalized]; dup {
			return dataframe.DataFrame{}, &MalformedInputError{
				Table:   table,
				Message: fmt.Sprintf("columns %q and %q both normalize to %q", prev, name, normalized),
			}
		}
		seen[normalized] = name

		columns = append(columns, series.New(df.Col(name).Records(), series.String, normalized))
	}

	out := dataframe.New(columns...)
	if err := out.Error(); err != nil {
		return dataframe.DataFrame{}, &MalformedInputError{Table: table, Err: err}
	}
	return out, nil
}

func requireColumns(df dataframe.DataFrame, table string, required []string) error {
	names := df.Names()
	for _, col := range required {
		if !slices.Contains(names, col) {
			return &MalformedInputError{Table: table, Column: col}
		}
	}
	return nil
}

func normalizeSource(df dataframe.DataFrame, table string) (dataframe.DataFrame, error) {
	out, err := NormalizeColumns(df, table, SmartBrakeRenames)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	if err := requireColumns(out, table, sourceRequiredColumns); err != nil {
		return dataframe.DataFrame{}, err
	}
	return out, nil
}

func normalizeReference(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	out, err := NormalizeColumns(df, TableEPList, EPListRenames)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	if err := requireColumns(out, TableEPList, referenceRequiredColumns); err != nil {
		return dataframe.DataFrame{}, err
	}
	return out, nil
}

// cell returns the text of one element and whether it holds a non-blank value.
func cell(s series.Series, row int) (string, bool) {
	e := s.Elem(row)
	if e.IsNA() {
		return "", false
	}
	v := e.String()
	return v, strings.TrimSpace(v) != ""
}

func sourceRecords(df dataframe.DataFrame) []SourceRecord {
	ids := df.Col(ColComponentID)
	symbols := df.Col(ColSymbol)
	flags := df.Col(ColC)

	records := make([]SourceRecord, df.Nrow())
	for i := range records {
		id, _ := cell(ids, i)
		symbol, _ := cell(symbols, i)
		c, hasC := cell(flags, i)
		records[i] = SourceRecord{ComponentID: id, Symbol: symbol, C: c, HasC: hasC}
	}
	return records
}

func referenceRecords(df dataframe.DataFrame) []ReferenceRecord {
	ids := df.Col(ColComponentID)
	symbols := df.Col(ColSymbol)
	values := df.Col(ColAA)

	records := make([]ReferenceRecord, df.Nrow())
	for i := range records {
		id, _ := cell(ids, i)
		symbol, _ := cell(symbols, i)
		raw, _ := cell(values, i)
		records[i] = ReferenceRecord{
			ComponentID: id,
			Symbol:      symbol,
			AA:          ParseValue(raw),
			Row:         i + 1,
		}
	}
	return records
}
