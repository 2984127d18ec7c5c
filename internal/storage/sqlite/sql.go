package sqlite

import "strings"

// SQLite uses positional "?" placeholders; everything else about the
// statements matches the Postgres builders so both backends share the
// column lists in the storage package.

func ident(c string) string {
	return `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
}

func buildInsertSQL(table string, columns []string, rows [][]any, conflict string) (string, []any) {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")

	for i, c := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(ident(c))
	}
	b.WriteString(") VALUES ")

	args := make([]any, 0, len(rows)*len(columns))
	for i, row := range rows {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for j := range columns {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString("?")
			args = append(args, row[j])
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

func conflictNothing(conflictCols []string) string {
	var b strings.Builder
	b.WriteString("ON CONFLICT (")
	for i, c := range conflictCols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(ident(c))
	}
	b.WriteString(") DO NOTHING")
	return b.String()
}

func conflictUpdate(conflictCols, updateCols []string, touch bool) string {
	var b strings.Builder
	b.WriteString("ON CONFLICT (")
	for i, c := range conflictCols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(ident(c))
	}
	b.WriteString(") DO UPDATE SET ")
	for i, c := range updateCols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(ident(c))
		b.WriteString(" = excluded.")
		b.WriteString(ident(c))
	}
	if touch {
		if len(updateCols) > 0 {
			b.WriteString(", ")
		}
		b.WriteString(`"updated_at" = CURRENT_TIMESTAMP`)
	}
	return b.String()
}

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
