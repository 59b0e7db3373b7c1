package core

import "strings"

// ErrorReasonColumn is the extra trailing column added to the invalid
// export's header.
const ErrorReasonColumn = "Error_Reason"

// SplitResult holds the two partitioned CSV exports. Valid carries the
// original header; Invalid carries the original header plus
// ErrorReasonColumn.
type SplitResult struct {
	Valid   string `json:"valid"`
	Invalid string `json:"invalid"`
}

// SplitExport re-scans the table and partitions rows into valid and
// invalid CSV outputs. A row with zero failing checks is appended
// verbatim to the valid output. A row with any failures gets a trailing
// field listing one "{column}: Invalid" reason per failing check, joined
// by "; " - duplicates included when several checks on the same column
// fail.
func (p *Processor) SplitExport() (*SplitResult, error) {
	validRows, invalidRows := p.partition()

	valid, err := renderCSV(p.table.Headers, validRows)
	if err != nil {
		return nil, err
	}

	invalidHeaders := append(p.Headers(), ErrorReasonColumn)
	invalid, err := renderCSV(invalidHeaders, invalidRows)
	if err != nil {
		return nil, err
	}

	return &SplitResult{Valid: valid, Invalid: invalid}, nil
}

// ValidRows returns the rows that pass every check, for publishing to
// external storage. The returned slices alias the table's rows; callers
// must not mutate them.
func (p *Processor) ValidRows() [][]string {
	valid, _ := p.partition()
	return valid
}

// partition splits rows by validation outcome. Invalid rows come back
// with the reason field already appended.
func (p *Processor) partition() (valid, invalid [][]string) {
	for _, row := range p.table.Rows {
		var reasons []string
		p.scanRow(row, func(column, value string, kind ErrorKind) {
			reasons = append(reasons, column+": Invalid")
		})

		if len(reasons) == 0 {
			valid = append(valid, row)
			continue
		}

		dirty := append(append([]string(nil), row...), strings.Join(reasons, "; "))
		invalid = append(invalid, dirty)
	}
	return valid, invalid
}
