package sink

import "testing"

func TestToIdentifier(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "customers", want: "customers"},
		{name: "uppercase folded", in: "Customers", want: "customers"},
		{name: "spaces to underscores", in: "First Name", want: "first_name"},
		{name: "punctuation collapsed", in: "Amount ($)", want: "amount"},
		{name: "leading digit prefixed", in: "2024 totals", want: "c_2024_totals"},
		{name: "nothing usable", in: "???", want: ""},
		{name: "empty", in: "", want: ""},
		{name: "surrounding whitespace", in: "  id  ", want: "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toIdentifier(tt.in); got != tt.want {
				t.Errorf("toIdentifier(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestColumnNames(t *testing.T) {
	got := columnNames([]string{"Name", "name", "???", "Amount ($)"})
	want := []string{"name", "name_2", "column_3", "amount"}

	if len(got) != len(want) {
		t.Fatalf("got %d columns, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestQuoteIdentifier(t *testing.T) {
	if got := quoteIdentifier("plain"); got != `"plain"` {
		t.Errorf("quoteIdentifier(plain) = %s", got)
	}
	if got := quoteIdentifier(`we"ird`); got != `"we""ird"` {
		t.Errorf("quoteIdentifier embedded quote = %s", got)
	}
}

func TestBuildCreateTable(t *testing.T) {
	got := buildCreateTable("orders", []string{"id", "status"})
	want := `CREATE TABLE IF NOT EXISTS "orders" ("id" TEXT, "status" TEXT)`
	if got != want {
		t.Errorf("buildCreateTable = %q, want %q", got, want)
	}
}
