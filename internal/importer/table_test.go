package importer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTable(t *testing.T) {
	tbl, err := ReadTable([]byte("Date,Description,Amount\n2024-01-05,\"Coffee, large\",-4.50\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Description", "Amount"}, tbl.Columns)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, []string{"2024-01-05", "Coffee, large", "-4.50"}, tbl.Rows[0])
}

func TestReadTable_HeaderOnly(t *testing.T) {
	tbl, err := ReadTable([]byte("Date,Description,Amount\n"))
	require.NoError(t, err)
	assert.Len(t, tbl.Columns, 3)
	assert.Empty(t, tbl.Rows)
}

func TestReadTable_Empty(t *testing.T) {
	_, err := ReadTable(nil)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, err.Error(), "no header row")
}

func TestReadTable_ShortRowPadded(t *testing.T) {
	tbl, err := ReadTable([]byte("a,b,c\n1\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "", ""}, tbl.Rows[0])
}

func TestReadTable_LongRow(t *testing.T) {
	_, err := ReadTable([]byte("a,b\n1,2\n1,2,3\n"))
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 3, perr.Row)
}

func TestReadTable_Malformed(t *testing.T) {
	_, err := ReadTable([]byte("a,b\n\"unterminated,2\n"))
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
}

func TestReadTable_BOM(t *testing.T) {
	tbl, err := ReadTable(append([]byte{0xEF, 0xBB, 0xBF}, []byte("Date,Amount\n2024-01-01,1\n")...))
	require.NoError(t, err)
	assert.Equal(t, "Date", tbl.Columns[0])
}

func TestReadTable_Windows1252(t *testing.T) {
	// "Café" with 0xE9 for é, as legacy exports write it.
	tbl, err := ReadTable([]byte("date,description\n2024-01-01,Caf\xe9\n"))
	require.NoError(t, err)
	assert.Equal(t, "Café", tbl.Rows[0][1])
}

func TestTableIndex_FirstDuplicateWins(t *testing.T) {
	tbl := &Table{Columns: []string{"date", "amount", "date"}}
	assert.Equal(t, 0, tbl.Index("date"))
	assert.Equal(t, -1, tbl.Index("Date"))
	assert.True(t, tbl.HasColumn("amount"))
}
