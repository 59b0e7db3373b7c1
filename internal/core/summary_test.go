package core

import "testing"

func mustProcessor(t *testing.T, csvText, rulesJSON string) *Processor {
	t.Helper()
	p, err := NewProcessor(csvText, rulesJSON)
	if err != nil {
		t.Fatalf("NewProcessor returned error: %v", err)
	}
	return p
}

// ============================================================================
// Summarize Tests
// ============================================================================

func TestSummarize(t *testing.T) {
	csvText := "name,age,email\n" +
		"Alice,30,alice@example.com\n" +
		",abc,bob-at-example\n" +
		"Carol,200,carol@example.com\n"
	rulesJSON := `[
		{"column": "name", "rules": [{"type": "notempty"}]},
		{"column": "age", "rules": [{"type": "number", "min": 0, "max": 120}]},
		{"column": "email", "rules": [{"type": "email"}]}
	]`

	p := mustProcessor(t, csvText, rulesJSON)
	summary := p.Summarize()

	if summary.TotalErrors != 4 {
		t.Errorf("TotalErrors = %d, want 4", summary.TotalErrors)
	}

	if got := summary.Stats["name"][KindRequired]; got != 1 {
		t.Errorf("stats[name][Required] = %d, want 1", got)
	}
	if got := summary.Stats["age"][KindNotANumber]; got != 1 {
		t.Errorf("stats[age][Not a Number] = %d, want 1", got)
	}
	if got := summary.Stats["age"][KindMaxValue]; got != 1 {
		t.Errorf("stats[age][Max Value] = %d, want 1", got)
	}
	if got := summary.Stats["email"][KindInvalidEmail]; got != 1 {
		t.Errorf("stats[email][Invalid Email] = %d, want 1", got)
	}

	if got := summary.Examples["age"][KindNotANumber]; got != "abc" {
		t.Errorf("examples[age][Not a Number] = %q, want %q", got, "abc")
	}
	if got := summary.Examples["email"][KindInvalidEmail]; got != "bob-at-example" {
		t.Errorf("examples[email][Invalid Email] = %q, want %q", got, "bob-at-example")
	}
}

// The sum over stats always equals the grand total.
func TestSummarizeStatsSumEqualsTotal(t *testing.T) {
	csvText := "a,b\n" +
		",x\n" +
		"1,y\n" +
		",z\n" +
		"oops,B\n"
	rulesJSON := `[
		{"column": "a", "rules": [{"type": "notempty"}, {"type": "number"}]},
		{"column": "b", "rules": [{"type": "oneof", "options": ["B"]}]}
	]`

	p := mustProcessor(t, csvText, rulesJSON)
	summary := p.Summarize()

	sum := 0
	for _, kinds := range summary.Stats {
		for _, n := range kinds {
			sum += n
		}
	}
	if sum != summary.TotalErrors {
		t.Errorf("sum of stats = %d, TotalErrors = %d; must be equal", sum, summary.TotalErrors)
	}
}

// A cell with two failing checks contributes two failures, not one.
func TestSummarizeMultipleChecksPerCell(t *testing.T) {
	// A quoted empty field; a fully blank line would be skipped by the
	// CSV reader as a record separator.
	csvText := "v\n\"\"\n"
	rulesJSON := `[{"column": "v", "rules": [{"type": "notempty"}, {"type": "number"}]}]`

	p := mustProcessor(t, csvText, rulesJSON)
	summary := p.Summarize()

	if summary.TotalErrors != 2 {
		t.Errorf("TotalErrors = %d, want 2 (one per failing check)", summary.TotalErrors)
	}
	if summary.Stats["v"][KindRequired] != 1 || summary.Stats["v"][KindNotANumber] != 1 {
		t.Errorf("stats[v] = %v, want one Required and one Not a Number", summary.Stats["v"])
	}
}

// The first offending value in row order is captured and never replaced.
func TestSummarizeFirstExampleKept(t *testing.T) {
	csvText := "n\nfirst-bad\nsecond-bad\n"
	rulesJSON := `[{"column": "n", "rules": [{"type": "number"}]}]`

	p := mustProcessor(t, csvText, rulesJSON)
	summary := p.Summarize()

	if got := summary.Examples["n"][KindNotANumber]; got != "first-bad" {
		t.Errorf("example = %q, want %q", got, "first-bad")
	}
	if got := summary.Stats["n"][KindNotANumber]; got != 2 {
		t.Errorf("count = %d, want 2", got)
	}
}

func TestSummarizeEmptyRuleSet(t *testing.T) {
	p := mustProcessor(t, "a,b\n1,2\n", `[]`)
	summary := p.Summarize()

	if summary.TotalErrors != 0 {
		t.Errorf("TotalErrors = %d, want 0", summary.TotalErrors)
	}
	if len(summary.Stats) != 0 || len(summary.Examples) != 0 {
		t.Errorf("stats/examples not empty: %v / %v", summary.Stats, summary.Examples)
	}
}

// Rules for columns not present in the table never fire.
func TestSummarizeUnknownRuleColumn(t *testing.T) {
	p := mustProcessor(t, "a\nx\n", `[{"column": "ghost", "rules": [{"type": "notempty"}]}]`)
	if got := p.Summarize().TotalErrors; got != 0 {
		t.Errorf("TotalErrors = %d, want 0", got)
	}
}

// Duplicate table headers: both positions are validated against the same
// rule list.
func TestSummarizeDuplicateHeaders(t *testing.T) {
	p := mustProcessor(t, "v,v\n,\n", `[{"column": "v", "rules": [{"type": "notempty"}]}]`)
	summary := p.Summarize()

	if summary.TotalErrors != 2 {
		t.Errorf("TotalErrors = %d, want 2 (both duplicate positions checked)", summary.TotalErrors)
	}
	if got := summary.Stats["v"][KindRequired]; got != 2 {
		t.Errorf("stats[v][Required] = %d, want 2", got)
	}
}

func TestCountErrorsMatchesSummarize(t *testing.T) {
	csvText := "a,b\n,x\n5,y\n"
	rulesJSON := `[
		{"column": "a", "rules": [{"type": "notempty"}]},
		{"column": "b", "rules": [{"type": "oneof", "options": ["y"]}]}
	]`

	p := mustProcessor(t, csvText, rulesJSON)
	if p.CountErrors() != p.Summarize().TotalErrors {
		t.Errorf("CountErrors = %d, Summarize().TotalErrors = %d; must agree",
			p.CountErrors(), p.Summarize().TotalErrors)
	}
}
