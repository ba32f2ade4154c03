package repository

import (
	"strings"
)

// buildUpdate assembles a partial UPDATE statement with ? placeholders.
// Callers pass the statement through db.Rebind before executing so it works
// with both SQLite and PostgreSQL.
func buildUpdate(table string, columns []string, values []any, where string, whereArgs ...any) (string, []any) {
	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(table)
	b.WriteString(" SET ")
	for i, col := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(`"` + col + `"`)
		b.WriteString(" = ?")
	}
	b.WriteString(" WHERE ")
	b.WriteString(where)

	args := append(values, whereArgs...)
	return b.String(), args
}

// isUniqueViolation reports whether err is a unique-constraint failure.
// Matches both SQLite and PostgreSQL driver error text.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed: UNIQUE") ||
		strings.Contains(msg, "duplicate key value")
}
