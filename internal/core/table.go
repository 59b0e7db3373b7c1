package core

import (
	"bytes"
	"encoding/csv"
	"io"
	"unicode/utf8"
)

// Table holds an in-memory CSV: an ordered header row plus ordered data
// rows. Every row has exactly len(Headers) fields; a shorter or longer row
// is rejected at construction. The table is never resized after
// construction; only ApplyBulkFix mutates cell values, in place.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NewTable parses CSV text into a Table.
//
// Invalid UTF-8 bytes are replaced with U+FFFD before parsing rather than
// failing, since exports from spreadsheet tools routinely carry stray
// Windows-1252 bytes. A missing or unreadable header row fails with
// HeaderError; any unreadable data row, including a field-count mismatch
// against the header, fails with RecordError and no partial table is built.
func NewTable(csvText string) (*Table, error) {
	data := sanitizeUTF8([]byte(csvText))

	r := csv.NewReader(bytes.NewReader(data))
	r.LazyQuotes = true

	headers, err := r.Read()
	if err != nil {
		return nil, &HeaderError{Err: err}
	}
	headers = append([]string(nil), headers...)

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &RecordError{Err: err}
		}
		rows = append(rows, record)
	}

	return &Table{Headers: headers, Rows: rows}, nil
}

// columnIndex returns the position of the first header matching name,
// or -1 if the name is absent. Duplicate headers resolve to the first
// occurrence.
func (t *Table) columnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// renderCSV serializes a header and rows back to CSV text, escaping per
// RFC 4180.
func renderCSV(header []string, rows [][]string) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// sanitizeUTF8 replaces invalid UTF-8 sequences with the replacement
// character so the CSV reader never chokes on encoding artifacts.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}
