package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTableSkipRowsAndHeader(t *testing.T) {
	raw := [][]string{
		{"title junk"},
		{" Name ", "Qty"},
		{"Widget", "5"},
		{"Gadget", ""},
	}
	tbl, err := newTable(raw, ReadOptions{SkipRows: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Qty"}, tbl.Header)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "Widget", tbl.Cell(0, 0))
	// Blank cells are normalized to "0".
	assert.Equal(t, "0", tbl.Cell(1, 1))
}

func TestNewTableRaggedRowsAreSquared(t *testing.T) {
	raw := [][]string{
		{"Name", "A", "B"},
		{"Widget", "1"}, // trailing cell omitted by the reader
	}
	tbl, err := newTable(raw, ReadOptions{})
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, []string{"Widget", "1", "0"}, tbl.Rows[0])
}

func TestNewTableSkipBeyondData(t *testing.T) {
	tbl, err := newTable([][]string{{"only row"}}, ReadOptions{SkipRows: 5})
	require.NoError(t, err)
	assert.True(t, tbl.Empty())
	assert.Empty(t, tbl.Header)
}

func TestNewTableNoHeader(t *testing.T) {
	raw := [][]string{
		{"a", "b"},
		{"c", "d"},
	}
	tbl, err := newTable(raw, ReadOptions{NoHeader: true})
	require.NoError(t, err)
	assert.Empty(t, tbl.Header)
	assert.Len(t, tbl.Rows, 2)
}

func TestRestrictColumns(t *testing.T) {
	raw := [][]string{
		{"Name", "Junk", "Qty"},
		{"Widget", "x", "5"},
	}
	tbl, err := newTable(raw, ReadOptions{Columns: []string{"Qty", "Name"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Qty", "Name"}, tbl.Header)
	assert.Equal(t, []string{"5", "Widget"}, tbl.Rows[0])
}

func TestRestrictMissingColumnIsUnreadable(t *testing.T) {
	raw := [][]string{
		{"Name"},
		{"Widget"},
	}
	_, err := newTable(raw, ReadOptions{Columns: []string{"Name", "Qty"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadableFile)
	assert.Contains(t, err.Error(), "Qty")
}

func TestCellOutOfRange(t *testing.T) {
	tbl, err := newTable([][]string{{"Name"}, {"Widget"}}, ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "0", tbl.Cell(9, 0))
	assert.Equal(t, "0", tbl.Cell(0, 9))
	assert.Equal(t, "0", tbl.Cell(-1, -1))
}

func TestNumber(t *testing.T) {
	raw := [][]string{
		{"Qty"},
		{"5"},
		{"3,5"},
		{"2.75"},
		{"not a number"},
		{""},
		{"1,234.5"},
		{"1,2,3"},
	}
	tbl, err := newTable(raw, ReadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 5.0, tbl.Number(0, 0))
	// Decimal comma parses as a fraction.
	assert.Equal(t, 3.5, tbl.Number(1, 0))
	assert.Equal(t, 2.75, tbl.Number(2, 0))
	// Arbitrary text counts as zero, like a blank cell.
	assert.Equal(t, 0.0, tbl.Number(3, 0))
	assert.Equal(t, 0.0, tbl.Number(4, 0))
	// The comma swap applies only to a lone decimal comma; cells mixing
	// commas and dots, or carrying several commas, are not rewritten into
	// something ParseFloat would accept.
	assert.Equal(t, 0.0, tbl.Number(5, 0))
	assert.Equal(t, 0.0, tbl.Number(6, 0))
}

func TestReadWorkbookRoundTrip(t *testing.T) {
	data := xlsxBytes(t, [][]interface{}{
		{"Name", "Qty"},
		{"Widget", 5},
	})
	tbl, err := ReadWorkbook(data, ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Qty"}, tbl.Header)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, 5.0, tbl.Number(0, tbl.Col("Qty")))
}

func TestReadWorkbookCorrupt(t *testing.T) {
	_, err := ReadWorkbook([]byte("garbage"), ReadOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadableFile)
}
