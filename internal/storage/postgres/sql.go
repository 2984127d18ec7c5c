package postgres

import (
	"fmt"
	"strings"
)

// The builders in this file are pure and deterministic so placeholder
// numbering and ON CONFLICT behavior can be unit tested without a
// database.

// pgIdent quotes a column identifier.
func pgIdent(c string) string {
	return `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
}

// buildInsertSQL constructs a multi-row INSERT and its args.
//
// conflict, when non-empty, is appended verbatim after the VALUES list
// (e.g. the output of conflictNothing or conflictUpdate).
//
// Constraints:
//   - rows must have the same length as columns for every row.
//   - columns must be non-empty.
func buildInsertSQL(table string, columns []string, rows [][]any, conflict string) (string, []any) {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")

	for i, c := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(pgIdent(c))
	}
	b.WriteString(") VALUES ")

	args := make([]any, 0, len(rows)*len(columns))
	p := 1
	for i, row := range rows {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for j := range columns {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(fmt.Sprintf("$%d", p))
			args = append(args, row[j])
			p++
		}
		b.WriteString(")")
	}

	if conflict != "" {
		b.WriteString(" ")
		b.WriteString(conflict)
	}

	b.WriteString(";")
	return b.String(), args
}

// conflictNothing renders "ON CONFLICT (...) DO NOTHING".
//
// This is what makes reprocessing idempotent for append-style tables
// with a natural key (trajectory measurements, parameters).
func conflictNothing(conflictCols []string) string {
	var b strings.Builder
	b.WriteString("ON CONFLICT (")
	for i, c := range conflictCols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(pgIdent(c))
	}
	b.WriteString(") DO NOTHING")
	return b.String()
}

// conflictUpdate renders "ON CONFLICT (...) DO UPDATE SET c = EXCLUDED.c, ...".
//
// updateCols are replaced wholesale from the incoming row. When touch is
// true, updated_at is set to the statement timestamp as well.
func conflictUpdate(conflictCols, updateCols []string, touch bool) string {
	var b strings.Builder
	b.WriteString("ON CONFLICT (")
	for i, c := range conflictCols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(pgIdent(c))
	}
	b.WriteString(") DO UPDATE SET ")
	for i, c := range updateCols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(pgIdent(c))
		b.WriteString(" = EXCLUDED.")
		b.WriteString(pgIdent(c))
	}
	if touch {
		if len(updateCols) > 0 {
			b.WriteString(", ")
		}
		b.WriteString(`"updated_at" = CURRENT_TIMESTAMP`)
	}
	return b.String()
}

// updatableColumns returns columns minus the conflict key, preserving
// order. DO UPDATE must never reassign the key columns themselves.
func updatableColumns(columns, conflictCols []string) []string {
	skip := make(map[string]bool, len(conflictCols))
	for _, c := range conflictCols {
		skip[c] = true
	}
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if !skip[c] {
			out = append(out, c)
		}
	}
	return out
}
