package files

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/farxc/brake_validator/internal/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// workbook renders rows into an in-memory xlsx file on Sheet1.
func workbook(t *testing.T, rows ...[]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestReadXLSX(t *testing.T) {
	data := workbook(t,
		[]interface{}{"Component ID", "Symbol", "C"},
		[]interface{}{"A1", "X", "-"},
		[]interface{}{"A2", "Y"},
	)

	df, err := ReadXLSX(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"Component ID", "Symbol", "C"}, df.Names())
	assert.Equal(t, 2, df.Nrow())
	assert.Equal(t, []string{"A1", "A2"}, df.Col("Component ID").Records())
	assert.Equal(t, []string{"-", ""}, df.Col("C").Records())
}

func TestReadXLSXSkipsRowsAndReadsNumbers(t *testing.T) {
	data := workbook(t,
		[]interface{}{"EP LIST", nil, nil},
		[]interface{}{"DRAWING NUM.", "REF.", "AA"},
		[]interface{}{"A1", "X", 1},
		[]interface{}{"A2", "Y", 0},
	)

	df, err := ReadXLSX(bytes.NewReader(data), SkipRows(1))
	require.NoError(t, err)
	assert.Equal(t, []string{"DRAWING NUM.", "REF.", "AA"}, df.Names())
	assert.Equal(t, []string{"1", "0"}, df.Col("AA").Records())
}

func TestReadXLSXHeaderOnly(t *testing.T) {
	data := workbook(t, []interface{}{"Component ID", "Symbol", "C"})

	df, err := ReadXLSX(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 0, df.Nrow())
	assert.Equal(t, 3, df.Ncol())
}

func TestReadXLSXRejectsGarbage(t *testing.T) {
	_, err := ReadXLSX(bytes.NewReader([]byte("not a workbook")))
	assert.Error(t, err)
}

func TestReadCSVWindows1252(t *testing.T) {
	encoded, err := charmap.Windows1252.NewEncoder().String("Component ID;Symbol;C;Descrição\nA1;X;-;válvula\n")
	require.NoError(t, err)

	df, err := ReadCSV(bytes.NewReader([]byte(encoded)), WithDelimiter(';'), WithEncoding(EncodingWindows1252))
	require.NoError(t, err)
	assert.Equal(t, []string{"Component ID", "Symbol", "C", "Descrição"}, df.Names())
	assert.Equal(t, []string{"válvula"}, df.Col("Descrição").Records())
}

func TestFromRows(t *testing.T) {
	t.Run("pads short rows and names extra cells", func(t *testing.T) {
		df, err := FromRows([][]string{
			{"Component ID", "", "C"},
			{"A1"},
			{"A2", "X", "S", "extra"},
			{},
			{" ", ""},
		}, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"Component ID", "Unnamed: 1", "C", "Unnamed: 3"}, df.Names())
		assert.Equal(t, 2, df.Nrow())
		assert.Equal(t, []string{"", "extra"}, df.Col("Unnamed: 3").Records())
	})

	t.Run("drops blank rows between data rows", func(t *testing.T) {
		df, err := FromRows([][]string{
			{"Component ID", "Symbol", "C"},
			{"A1", "X", "-"},
			{},
			{"", " ", ""},
			{"A2", "X", "S"},
		}, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, df.Nrow())
		assert.Equal(t, []string{"A1", "A2"}, df.Col("Component ID").Records())
	})

	t.Run("no header", func(t *testing.T) {
		_, err := FromRows([][]string{{"title"}}, 1)
		assert.Error(t, err)

		_, err = FromRows(nil, 0)
		assert.Error(t, err)
	})
}

func TestReadTableByExtension(t *testing.T) {
	_, err := ReadTable("parts.pdf", bytes.NewReader([]byte("x")))
	assert.ErrorContains(t, err, "unsupported file type")

	df, err := ReadTable("parts.CSV", bytes.NewReader([]byte("Component ID,Symbol,C\nA1,X,-\n")))
	require.NoError(t, err)
	assert.Equal(t, 1, df.Nrow())
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part1.xlsx")
	require.NoError(t, os.WriteFile(path, workbook(t,
		[]interface{}{"Component ID", "Symbol", "C"},
		[]interface{}{"A1", "X", "S"},
	), 0o600))

	df, err := OpenFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"S"}, df.Col("C").Records())

	_, err = OpenFile(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

func TestInputsMissing(t *testing.T) {
	in := Inputs{Part1: &Upload{Filename: "p1.xlsx", Data: []byte("x")}, Part2: &Upload{}}
	assert.Equal(t, []string{reconcile.TablePart2, reconcile.TableEPList}, in.Missing())

	_, err := in.Load()
	require.ErrorIs(t, err, reconcile.ErrMissingInput)
	assert.ErrorContains(t, err, "Part 2, EP List")
}

func TestInputsLoadAndReconcile(t *testing.T) {
	in := Inputs{
		Part1: &Upload{Filename: "part1.xlsx", Data: workbook(t,
			[]interface{}{"Component ID ", "Symbol", "C"},
			[]interface{}{"A1", "X", "-"},
		)},
		Part2: &Upload{Filename: "part2.xlsx", Data: workbook(t,
			[]interface{}{"Component ID", " Symbol", "C"},
			[]interface{}{"B2", "Y", "S"},
		)},
		EPList: &Upload{Filename: "ep.xlsx", Data: workbook(t,
			[]interface{}{"Engineering parts", nil, nil},
			[]interface{}{"DRAWING NUM.", "REF.", "AA"},
			[]interface{}{"A1", "X", 0},
		)},
	}

	tables, err := in.Load()
	require.NoError(t, err)

	got, err := reconcile.Reconcile(tables.Part1, tables.Part2, tables.EPList)
	require.NoError(t, err)
	assert.Equal(t, []reconcile.Discrepancy{
		{ComponentID: "A1", Symbol: "X", Field: reconcile.FieldCvsAA, FileC: "-", EPAA: "0"},
		{ComponentID: "B2", Symbol: "Y", Field: reconcile.FieldNoMatch, FileC: "S"},
	}, got)
}

func TestInputsLoadSkipsGapRows(t *testing.T) {
	in := Inputs{
		Part1: &Upload{Filename: "part1.xlsx", Data: workbook(t,
			[]interface{}{"Component ID", "Symbol", "C"},
			[]interface{}{"A1", "X", "-"},
			[]interface{}{},
			[]interface{}{"A2", "X", "S"},
		)},
		Part2: &Upload{Filename: "part2.xlsx", Data: workbook(t,
			[]interface{}{"Component ID", "Symbol", "C"},
			[]interface{}{},
			[]interface{}{"B2", "Y", "S"},
		)},
		EPList: &Upload{Filename: "ep.xlsx", Data: workbook(t,
			[]interface{}{"Engineering parts", nil, nil},
			[]interface{}{"DRAWING NUM.", "REF.", "AA"},
			[]interface{}{"A1", "X", 1},
			[]interface{}{},
			[]interface{}{"A2", "X", 0},
			[]interface{}{},
			[]interface{}{"B2", "Y", 1},
		)},
	}

	tables, err := in.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, tables.Part1.Nrow())
	assert.Equal(t, 1, tables.Part2.Nrow())
	assert.Equal(t, 3, tables.EPList.Nrow())

	got, err := reconcile.Reconcile(tables.Part1, tables.Part2, tables.EPList)
	require.NoError(t, err)
	assert.Equal(t, []reconcile.Discrepancy{
		{ComponentID: "B2", Symbol: "Y", Field: reconcile.FieldCvsAA, FileC: "S", EPAA: "1"},
	}, got)
}

func TestInputsLoadMalformed(t *testing.T) {
	in := Inputs{
		Part1:  &Upload{Filename: "part1.xlsx", Data: []byte("garbage")},
		Part2:  &Upload{Filename: "part2.xlsx", Data: []byte("garbage")},
		EPList: &Upload{Filename: "ep.xlsx", Data: []byte("garbage")},
	}

	_, err := in.Load()
	require.ErrorIs(t, err, reconcile.ErrMalformedInput)

	var malformed *reconcile.MalformedInputError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, reconcile.TablePart1, malformed.Table)
}
