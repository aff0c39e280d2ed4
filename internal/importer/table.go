package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is a parsed CSV file: a header row plus data rows. Every row has
// exactly len(Columns) cells; an empty cell means "no value".
type Table struct {
	Columns []string
	Rows    [][]string
}

// Index returns the position of the first column named name, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table has a column named name.
func (t *Table) HasColumn(name string) bool {
	return t.Index(name) >= 0
}

// ReadTable parses a comma-separated blob whose first record is the header.
// Rows shorter than the header are padded with empty cells; longer rows are
// an error.
func ReadTable(blob []byte) (*Table, error) {
	data := decodeText(blob)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, &ParseError{Err: fmt.Errorf("reading CSV: %w", err)}
	}
	if len(records) == 0 {
		return nil, &ParseError{Err: errors.New("no header row")}
	}

	header := records[0]
	t := &Table{Columns: header, Rows: make([][]string, 0, len(records)-1)}
	for i, rec := range records[1:] {
		if len(rec) > len(header) {
			return nil, &ParseError{
				Row: i + 2,
				Err: fmt.Errorf("expected at most %d fields, got %d", len(header), len(rec)),
			}
		}
		row := make([]string, len(header))
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// decodeText strips a UTF-8 byte order mark and re-decodes legacy
// Windows-1252 exports.
func decodeText(blob []byte) []byte {
	blob = bytes.TrimPrefix(blob, utf8BOM)
	if utf8.Valid(blob) {
		return blob
	}
	fixed, err := charmap.Windows1252.NewDecoder().Bytes(blob)
	if err != nil {
		return bytes.ToValidUTF8(blob, nil)
	}
	return fixed
}
