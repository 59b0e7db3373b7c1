package core

// ApplyBulkFix replaces every cell in the named column that exactly
// equals target with replacement, then recounts and returns the total
// failing-check count. Matching is exact string equality: no trimming,
// no case folding, no patterns.
//
// The column resolves to the first matching header; an absent column
// leaves the table untouched and just returns the recount. The mutation
// is permanent; there is no undo.
func (p *Processor) ApplyBulkFix(column, target, replacement string) int {
	idx := p.table.columnIndex(column)

	if idx >= 0 {
		for _, row := range p.table.Rows {
			if idx < len(row) && row[idx] == target {
				row[idx] = replacement
			}
		}
	}

	return p.CountErrors()
}
