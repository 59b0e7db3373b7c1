package core

import (
	"errors"
	"strings"
	"testing"
)

// ============================================================================
// NewTable Tests
// ============================================================================

func TestNewTable(t *testing.T) {
	table, err := NewTable("name,age\nAlice,30\nBob,25\n")
	if err != nil {
		t.Fatalf("NewTable returned error: %v", err)
	}

	wantHeaders := []string{"name", "age"}
	if len(table.Headers) != len(wantHeaders) {
		t.Fatalf("got %d headers, want %d", len(table.Headers), len(wantHeaders))
	}
	for i, h := range wantHeaders {
		if table.Headers[i] != h {
			t.Errorf("header[%d] = %q, want %q", i, table.Headers[i], h)
		}
	}

	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
	if table.Rows[0][0] != "Alice" || table.Rows[1][1] != "25" {
		t.Errorf("unexpected row contents: %v", table.Rows)
	}
}

func TestNewTableHeaderOnly(t *testing.T) {
	table, err := NewTable("a,b,c\n")
	if err != nil {
		t.Fatalf("NewTable returned error: %v", err)
	}
	if len(table.Rows) != 0 {
		t.Errorf("got %d rows, want 0", len(table.Rows))
	}
}

func TestNewTableQuotedFields(t *testing.T) {
	table, err := NewTable("name,notes\n\"Smith, Jane\",\"said \"\"hi\"\"\"\n")
	if err != nil {
		t.Fatalf("NewTable returned error: %v", err)
	}
	if table.Rows[0][0] != "Smith, Jane" {
		t.Errorf("quoted comma field = %q", table.Rows[0][0])
	}
	if table.Rows[0][1] != `said "hi"` {
		t.Errorf("escaped quote field = %q", table.Rows[0][1])
	}
}

func TestNewTableEmptyInput(t *testing.T) {
	_, err := NewTable("")
	if err == nil {
		t.Fatal("NewTable accepted empty input")
	}

	var headerErr *HeaderError
	if !errors.As(err, &headerErr) {
		t.Errorf("error type is %T, want *HeaderError", err)
	}
}

func TestNewTableColumnMismatch(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{name: "short row", csv: "a,b,c\n1,2\n"},
		{name: "long row", csv: "a,b\n1,2,3\n"},
		{name: "mismatch after good rows", csv: "a,b\n1,2\n3,4\n5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.csv)
			if err == nil {
				t.Fatal("NewTable accepted a row with mismatched field count")
			}

			var recordErr *RecordError
			if !errors.As(err, &recordErr) {
				t.Errorf("error type is %T, want *RecordError", err)
			}
		})
	}
}

func TestNewTableInvalidUTF8Sanitized(t *testing.T) {
	// A stray Windows-1252 byte becomes U+FFFD instead of failing.
	table, err := NewTable("name\ncaf\xe9\n")
	if err != nil {
		t.Fatalf("NewTable returned error: %v", err)
	}
	if table.Rows[0][0] != "caf�" {
		t.Errorf("cell = %q, want %q", table.Rows[0][0], "caf�")
	}
}

func TestNewTableDuplicateHeadersAllowed(t *testing.T) {
	table, err := NewTable("id,id\n1,2\n")
	if err != nil {
		t.Fatalf("NewTable rejected duplicate headers: %v", err)
	}
	if table.columnIndex("id") != 0 {
		t.Errorf("columnIndex resolves duplicate to %d, want first occurrence 0", table.columnIndex("id"))
	}
}

// ============================================================================
// renderCSV Tests
// ============================================================================

func TestRenderCSV(t *testing.T) {
	out, err := renderCSV([]string{"a", "b"}, [][]string{{"1", "2"}, {"x,y", "z"}})
	if err != nil {
		t.Fatalf("renderCSV returned error: %v", err)
	}

	want := "a,b\n1,2\n\"x,y\",z\n"
	if out != want {
		t.Errorf("renderCSV = %q, want %q", out, want)
	}
}

func TestRenderCSVRoundTrip(t *testing.T) {
	in := "h1,h2\n\"quoted, field\",plain\n,empty left\n"
	table, err := NewTable(in)
	if err != nil {
		t.Fatalf("NewTable returned error: %v", err)
	}

	out, err := renderCSV(table.Headers, table.Rows)
	if err != nil {
		t.Fatalf("renderCSV returned error: %v", err)
	}

	again, err := NewTable(out)
	if err != nil {
		t.Fatalf("re-parse returned error: %v", err)
	}
	if len(again.Rows) != len(table.Rows) {
		t.Fatalf("round trip changed row count: %d -> %d", len(table.Rows), len(again.Rows))
	}
	for i := range table.Rows {
		if strings.Join(again.Rows[i], "|") != strings.Join(table.Rows[i], "|") {
			t.Errorf("row %d changed: %v -> %v", i, table.Rows[i], again.Rows[i])
		}
	}
}
