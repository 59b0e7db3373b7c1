package core

// Processor owns one parsed Table and its RuleSet for the lifetime of a
// validation session. Exactly one owner exists per instance; nothing is
// shared between instances, so separate processors are safe to use from
// separate goroutines.
type Processor struct {
	table *Table
	rules *RuleSet
}

// NewProcessor parses the rule definition JSON and the CSV text and
// builds a processor over them. Rules are parsed first so a bad rule blob
// is reported even when the CSV is also malformed.
func NewProcessor(csvText, rulesJSON string) (*Processor, error) {
	rules, err := ParseRules(rulesJSON)
	if err != nil {
		return nil, err
	}

	table, err := NewTable(csvText)
	if err != nil {
		return nil, err
	}

	return &Processor{table: table, rules: rules}, nil
}

// Headers returns a copy of the table's header row.
func (p *Processor) Headers() []string {
	return append([]string(nil), p.table.Headers...)
}

// RowCount returns the number of data rows in the table.
func (p *Processor) RowCount() int {
	return len(p.table.Rows)
}

// ColumnCount returns the number of header columns.
func (p *Processor) ColumnCount() int {
	return len(p.table.Headers)
}

// scan walks the table in row order, cells in field order, and calls fn
// for every individual check failure. This is the single traversal all
// operations share: summary, recount, and export all see failures in the
// same row-then-column-then-check order.
func (p *Processor) scan(fn func(column, value string, kind ErrorKind)) {
	for _, row := range p.table.Rows {
		p.scanRow(row, fn)
	}
}

// scanRow applies every check of every ruled column to one row.
func (p *Processor) scanRow(row []string, fn func(column, value string, kind ErrorKind)) {
	for i, value := range row {
		if i >= len(p.table.Headers) {
			continue
		}
		column := p.table.Headers[i]

		for _, check := range p.rules.ChecksFor(column) {
			if kind, failed := Evaluate(value, check); failed {
				fn(column, value, kind)
			}
		}
	}
}
