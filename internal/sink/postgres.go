// Package sink publishes the valid partition of a validation session to
// external storage. The core never persists anything; publishing is an
// explicit, post-validation export of clean rows.
package sink

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Publisher writes rows into PostgreSQL using the COPY protocol. All
// columns are created as TEXT; typing the data is left to whatever
// consumes the published table.
type Publisher struct {
	pool *pgxpool.Pool
}

// New wraps an existing connection pool. The caller owns the pool's
// lifecycle.
func New(pool *pgxpool.Pool) *Publisher {
	return &Publisher{pool: pool}
}

// Publish creates the target table if it does not exist and COPYs the
// rows into it. Returns the number of rows copied.
//
// The table name and headers are sanitized into SQL identifiers; a row
// shorter than the header publishes NULL for the missing trailing fields.
func (p *Publisher) Publish(ctx context.Context, table string, headers []string, rows [][]string) (int64, error) {
	name := toIdentifier(table)
	if name == "" {
		return 0, fmt.Errorf("invalid table name %q", table)
	}
	if len(headers) == 0 {
		return 0, fmt.Errorf("no columns to publish")
	}

	cols := columnNames(headers)

	if _, err := p.pool.Exec(ctx, buildCreateTable(name, cols)); err != nil {
		return 0, fmt.Errorf("create table %s: %w", name, err)
	}

	copyRows := make([][]any, len(rows))
	for i, row := range rows {
		vals := make([]any, len(cols))
		for j := range cols {
			if j < len(row) {
				vals[j] = row[j]
			}
		}
		copyRows[i] = vals
	}

	copied, err := p.pool.CopyFrom(ctx, pgx.Identifier{name}, cols, pgx.CopyFromRows(copyRows))
	if err != nil {
		return 0, fmt.Errorf("copy into %s: %w", name, err)
	}
	return copied, nil
}

// buildCreateTable renders the CREATE TABLE IF NOT EXISTS statement for a
// set of text columns.
func buildCreateTable(name string, cols []string) string {
	defs := make([]string, len(cols))
	for i, col := range cols {
		defs[i] = quoteIdentifier(col) + " TEXT"
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		quoteIdentifier(name), strings.Join(defs, ", "))
}

var identInvalid = regexp.MustCompile(`[^a-z0-9_]+`)

// toIdentifier converts a display name to a safe SQL identifier:
// lowercased, runs of other characters collapsed to underscores. Returns
// "" when nothing usable remains.
func toIdentifier(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = identInvalid.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return ""
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "c_" + s
	}
	return s
}

// columnNames derives unique column identifiers from CSV headers.
// Unusable headers become column_N by position; repeated names get a
// numeric suffix so duplicate CSV headers still publish.
func columnNames(headers []string) []string {
	seen := make(map[string]int, len(headers))
	cols := make([]string, len(headers))

	for i, h := range headers {
		col := toIdentifier(h)
		if col == "" {
			col = fmt.Sprintf("column_%d", i+1)
		}

		seen[col]++
		if n := seen[col]; n > 1 {
			col = fmt.Sprintf("%s_%d", col, n)
		}
		cols[i] = col
	}
	return cols
}

// quoteIdentifier wraps an identifier in double quotes, doubling any
// embedded quotes.
func quoteIdentifier(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
