package core

// ErrorSummary aggregates validation failures across the whole table:
// per-column counts by error kind, the first offending value seen for
// each column/kind pair, and the grand total of individual check
// failures. A cell failing two checks contributes two to the total.
type ErrorSummary struct {
	Stats       map[string]map[ErrorKind]int    `json:"stats"`
	Examples    map[string]map[ErrorKind]string `json:"examples"`
	TotalErrors int                             `json:"total_errors"`
}

// Summarize scans the table against the rule set and builds a fresh
// summary. The table is read-only during the pass and no state is kept
// between calls; mutate-then-summarize always reflects the current rows.
//
// Examples capture the first failing raw value in scan order (rows, then
// fields, then checks) and are never overwritten once set.
func (p *Processor) Summarize() *ErrorSummary {
	summary := &ErrorSummary{
		Stats:    make(map[string]map[ErrorKind]int),
		Examples: make(map[string]map[ErrorKind]string),
	}

	p.scan(func(column, value string, kind ErrorKind) {
		summary.TotalErrors++

		colStats, ok := summary.Stats[column]
		if !ok {
			colStats = make(map[ErrorKind]int)
			summary.Stats[column] = colStats
		}
		colStats[kind]++

		colExamples, ok := summary.Examples[column]
		if !ok {
			colExamples = make(map[ErrorKind]string)
			summary.Examples[column] = colExamples
		}
		if _, seen := colExamples[kind]; !seen {
			colExamples[kind] = value
		}
	})

	return summary
}

// CountErrors runs the counting-only scan: the total number of failing
// checks across the table, without the stats/examples breakdown. Used
// after bulk fixes where only the new total matters.
func (p *Processor) CountErrors() int {
	count := 0
	p.scan(func(string, string, ErrorKind) {
		count++
	})
	return count
}
